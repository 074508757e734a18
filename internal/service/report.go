package service

import (
	"context"

	"go.uber.org/zap"

	"alzmate/internal/analysis"
	"alzmate/internal/cache"
	"alzmate/internal/model"
)

// ReportService builds the combined weekly report: task performance,
// emotional state and the fused risk assessment.
type ReportService struct {
	emotions *EmotionService
	progress *ProgressService
	cache    cache.ReportCache
	notifier *NotificationService
	logger   *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(emotions *EmotionService, progress *ProgressService, reportCache cache.ReportCache, notifier *NotificationService, logger *zap.Logger) *ReportService {
	return &ReportService{
		emotions: emotions,
		progress: progress,
		cache:    reportCache,
		notifier: notifier,
		logger:   logger,
	}
}

// GenerateCombinedReport assembles the full weekly picture for a patient.
// A cached report is returned as-is; a fresh one persists the week's score
// as a side effect and alerts caregivers on high or critical risk.
func (s *ReportService) GenerateCombinedReport(ctx context.Context, patientID string) (*model.CombinedReport, error) {
	if cached, err := s.cache.GetCombinedReport(ctx, patientID); err != nil {
		s.logger.Warn("combined report cache read failed", zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	progressReport, err := s.progress.GenerateWeeklyReport(ctx, patientID)
	if err != nil {
		return nil, err
	}

	trends, err := s.emotions.Trends(ctx, patientID, analysis.DefaultTrendDays)
	if err != nil {
		return nil, err
	}
	trendSummary, err := s.emotions.TrendSummary(ctx, patientID, analysis.DefaultTrendDays)
	if err != nil {
		return nil, err
	}
	persistence, err := s.emotions.CheckPersistentNegative(ctx, patientID, analysis.PersistentDaysThreshold)
	if err != nil {
		return nil, err
	}
	volatility, err := s.emotions.DetectVolatility(ctx, patientID, analysis.DefaultTrendDays)
	if err != nil {
		return nil, err
	}

	risk := analysis.AssessCombinedRisk(progressReport, trendSummary, persistence)

	report := &model.CombinedReport{
		ProgressReport: *progressReport,
		EmotionAnalysis: model.EmotionAnalysisSection{
			TrendSummary:               trendSummary,
			WeeklyTrends:               trends,
			PersistentNegativeEmotions: persistence,
			Volatility:                 volatility,
		},
		CombinedRiskAssessment: risk,
	}

	if risk.CombinedRiskLevel == model.RiskHigh || risk.CombinedRiskLevel == model.RiskCritical {
		if s.notifier != nil {
			s.notifier.NotifyCombinedRisk(ctx, patientID, report)
		}
	}

	if err := s.cache.SetCombinedReport(ctx, patientID, report); err != nil {
		s.logger.Warn("combined report cache write failed", zap.Error(err))
	}
	return report, nil
}
