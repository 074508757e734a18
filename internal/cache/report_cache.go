package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"alzmate/internal/model"
)

// ReportCache handles Redis operations for computed analytics reports.
// Reports are cheap to rebuild, so a missing or expired key just means a
// recompute.
type ReportCache interface {
	GetTrendReport(ctx context.Context, patientID string, days int) (*model.TrendReport, error)
	SetTrendReport(ctx context.Context, report *model.TrendReport) error

	GetCombinedReport(ctx context.Context, patientID string) (*model.CombinedReport, error)
	SetCombinedReport(ctx context.Context, patientID string, report *model.CombinedReport) error
}

type reportCache struct {
	client      *redis.Client
	trendTTL    time.Duration
	combinedTTL time.Duration
}

// NewReportCache creates a new report cache
func NewReportCache(client *redis.Client) ReportCache {
	return &reportCache{
		client:      client,
		trendTTL:    15 * time.Minute,
		combinedTTL: 30 * time.Minute,
	}
}

func (c *reportCache) trendKey(patientID string, days int) string {
	return fmt.Sprintf("patient:%s:trends:%d", patientID, days)
}

func (c *reportCache) combinedKey(patientID string) string {
	return fmt.Sprintf("patient:%s:report:combined", patientID)
}

func (c *reportCache) GetTrendReport(ctx context.Context, patientID string, days int) (*model.TrendReport, error) {
	data, err := c.client.Get(ctx, c.trendKey(patientID, days)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var report model.TrendReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *reportCache) SetTrendReport(ctx context.Context, report *model.TrendReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.trendKey(report.PatientID, report.PeriodDays), data, c.trendTTL).Err()
}

func (c *reportCache) GetCombinedReport(ctx context.Context, patientID string) (*model.CombinedReport, error) {
	data, err := c.client.Get(ctx, c.combinedKey(patientID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var report model.CombinedReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *reportCache) SetCombinedReport(ctx context.Context, patientID string, report *model.CombinedReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.combinedKey(patientID), data, c.combinedTTL).Err()
}
