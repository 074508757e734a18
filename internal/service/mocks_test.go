package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"alzmate/internal/model"
)

type mockTaskRepo struct{ mock.Mock }

func (m *mockTaskRepo) RemindersInRange(ctx context.Context, patientID string, start, end time.Time) ([]model.Reminder, error) {
	args := m.Called(ctx, patientID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Reminder), args.Error(1)
}

func (m *mockTaskRepo) BrainTrainingSessions(ctx context.Context, patientID string, start, end time.Time) ([]model.GameScore, error) {
	args := m.Called(ctx, patientID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GameScore), args.Error(1)
}

func (m *mockTaskRepo) MarkMissed(ctx context.Context, reminderID string) (*model.Reminder, error) {
	args := m.Called(ctx, reminderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reminder), args.Error(1)
}

type mockScoreRepo struct{ mock.Mock }

func (m *mockScoreRepo) Append(ctx context.Context, score *model.WeeklyScore) (string, error) {
	args := m.Called(ctx, score)
	return args.String(0), args.Error(1)
}

func (m *mockScoreRepo) Oldest(ctx context.Context, patientID string, n int64) ([]model.WeeklyScore, error) {
	args := m.Called(ctx, patientID, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WeeklyScore), args.Error(1)
}

func (m *mockScoreRepo) Recent(ctx context.Context, patientID string, n int64) ([]model.WeeklyScore, error) {
	args := m.Called(ctx, patientID, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WeeklyScore), args.Error(1)
}

func (m *mockScoreRepo) RecentSince(ctx context.Context, patientID string, since time.Time, n int64) ([]model.WeeklyScore, error) {
	args := m.Called(ctx, patientID, since, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WeeklyScore), args.Error(1)
}

type mockEntryRepo struct{ mock.Mock }

func (m *mockEntryRepo) Save(ctx context.Context, entry *model.EmotionEntry) (string, error) {
	args := m.Called(ctx, entry)
	return args.String(0), args.Error(1)
}

func (m *mockEntryRepo) Query(ctx context.Context, patientID string, start, end *time.Time, limit int64) ([]model.EmotionEntry, error) {
	args := m.Called(ctx, patientID, start, end, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.EmotionEntry), args.Error(1)
}

func (m *mockEntryRepo) AttachToJournalEntry(ctx context.Context, journalEntryID, analysisID string) error {
	args := m.Called(ctx, journalEntryID, analysisID)
	return args.Error(0)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type mockNotificationRepo struct{ mock.Mock }

func (m *mockNotificationRepo) Create(ctx context.Context, notification *model.Notification) (string, error) {
	args := m.Called(ctx, notification)
	return args.String(0), args.Error(1)
}

type mockReportCache struct{ mock.Mock }

func (m *mockReportCache) GetTrendReport(ctx context.Context, patientID string, days int) (*model.TrendReport, error) {
	args := m.Called(ctx, patientID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TrendReport), args.Error(1)
}

func (m *mockReportCache) SetTrendReport(ctx context.Context, report *model.TrendReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *mockReportCache) GetCombinedReport(ctx context.Context, patientID string) (*model.CombinedReport, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CombinedReport), args.Error(1)
}

func (m *mockReportCache) SetCombinedReport(ctx context.Context, patientID string, report *model.CombinedReport) error {
	args := m.Called(ctx, patientID, report)
	return args.Error(0)
}

type mockBroadcaster struct{ mock.Mock }

func (m *mockBroadcaster) BroadcastToCaregiver(caregiverID string, msgType string, payload interface{}) {
	m.Called(caregiverID, msgType, payload)
}
