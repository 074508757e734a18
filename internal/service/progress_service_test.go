package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alzmate/internal/model"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newProgressService(tasks *mockTaskRepo, scores *mockScoreRepo, notifier *NotificationService) *ProgressService {
	svc := NewProgressService(tasks, scores, notifier, zap.NewNop())
	svc.now = func() time.Time { return testNow }
	return svc
}

func silentNotifier() (*NotificationService, *mockUserRepo) {
	users := &mockUserRepo{}
	users.On("GetByID", mock.Anything, mock.Anything).Return(nil, nil)
	return NewNotificationService(users, &mockNotificationRepo{}, zap.NewNop()), users
}

func TestCalculateWeeklyScoreComputesFromTasks(t *testing.T) {
	tasks := &mockTaskRepo{}
	tasks.On("RemindersInRange", mock.Anything, "p1", mock.Anything, mock.Anything).
		Return([]model.Reminder{
			{PatientID: "p1", Type: model.TaskMedication, Completed: true},
		}, nil)
	tasks.On("BrainTrainingSessions", mock.Anything, "p1", mock.Anything, mock.Anything).
		Return([]model.GameScore{}, nil)

	svc := newProgressService(tasks, &mockScoreRepo{}, nil)

	score, err := svc.CalculateWeeklyScore(context.Background(), "p1", nil)

	require.NoError(t, err)
	assert.Equal(t, 3.0, score.EarnedPoints)
	assert.Equal(t, 17.0, score.TotalPossiblePoints)
	assert.InDelta(t, 17.65, score.Score, 0.001)
	assert.Equal(t, model.StateHighRisk, score.PatientState)
	assert.Equal(t, testNow.AddDate(0, 0, -7), score.WeekStart)
	assert.Equal(t, testNow, score.WeekEnd)
}

func TestCalculateWeeklyScoreExplicitWeek(t *testing.T) {
	weekStart := time.Date(2025, 2, 24, 0, 0, 0, 0, time.UTC)

	tasks := &mockTaskRepo{}
	tasks.On("RemindersInRange", mock.Anything, "p1", weekStart, weekStart.AddDate(0, 0, 7)).
		Return([]model.Reminder{}, nil)
	tasks.On("BrainTrainingSessions", mock.Anything, "p1", weekStart, weekStart.AddDate(0, 0, 7)).
		Return([]model.GameScore{}, nil)

	svc := newProgressService(tasks, &mockScoreRepo{}, nil)

	score, err := svc.CalculateWeeklyScore(context.Background(), "p1", &weekStart)

	require.NoError(t, err)
	assert.Equal(t, weekStart, score.WeekStart)
	assert.Equal(t, 0.0, score.Score)
	tasks.AssertExpectations(t)
}

func TestGenerateWeeklyReportPersistsScoreAndDetectsDecline(t *testing.T) {
	tasks := &mockTaskRepo{}
	tasks.On("RemindersInRange", mock.Anything, "p1", mock.Anything, mock.Anything).
		Return([]model.Reminder{}, nil)
	tasks.On("BrainTrainingSessions", mock.Anything, "p1", mock.Anything, mock.Anything).
		Return([]model.GameScore{}, nil)

	scores := &mockScoreRepo{}
	scores.On("RecentSince", mock.Anything, "p1", mock.Anything, int64(2)).
		Return([]model.WeeklyScore{
			{Score: 50, WeekStart: testNow.AddDate(0, 0, -10)},
		}, nil)
	scores.On("Oldest", mock.Anything, "p1", int64(4)).
		Return([]model.WeeklyScore{{Score: 80}, {Score: 80}, {Score: 80}, {Score: 80}}, nil)
	scores.On("Recent", mock.Anything, "p1", int64(2)).
		Return([]model.WeeklyScore{{Score: 60}, {Score: 62}}, nil)
	scores.On("Append", mock.Anything, mock.AnythingOfType("*model.WeeklyScore")).
		Return("score-1", nil)

	notifier, _ := silentNotifier()
	svc := newProgressService(tasks, scores, notifier)

	report, err := svc.GenerateWeeklyReport(context.Background(), "p1")

	require.NoError(t, err)
	assert.Equal(t, "score-1", report.ScoreID)
	assert.Equal(t, 0.0, report.WeeklyScore)

	require.NotNil(t, report.DeclineDetection)
	assert.True(t, report.DeclineDetection.DeclineDetected)
	require.NotNil(t, report.DeclineDetection.Baseline)
	assert.InDelta(t, 80.0, *report.DeclineDetection.Baseline, 0.001)

	require.NotNil(t, report.PreviousScore)
	assert.Equal(t, 50.0, *report.PreviousScore)
	assert.Equal(t, model.TrendDeclining, report.Trend)

	scores.AssertCalled(t, "Append", mock.Anything, mock.AnythingOfType("*model.WeeklyScore"))
}

func TestGenerateWeeklyReportWithoutHistory(t *testing.T) {
	tasks := &mockTaskRepo{}
	tasks.On("RemindersInRange", mock.Anything, "p1", mock.Anything, mock.Anything).
		Return([]model.Reminder{
			{PatientID: "p1", Type: model.TaskMeal, Completed: true},
		}, nil)
	tasks.On("BrainTrainingSessions", mock.Anything, "p1", mock.Anything, mock.Anything).
		Return([]model.GameScore{}, nil)

	scores := &mockScoreRepo{}
	scores.On("RecentSince", mock.Anything, "p1", mock.Anything, int64(2)).
		Return([]model.WeeklyScore{}, nil)
	scores.On("Oldest", mock.Anything, "p1", int64(4)).
		Return([]model.WeeklyScore{}, nil)
	scores.On("Recent", mock.Anything, "p1", int64(2)).
		Return([]model.WeeklyScore{}, nil)
	scores.On("Append", mock.Anything, mock.AnythingOfType("*model.WeeklyScore")).
		Return("score-1", nil)

	svc := newProgressService(tasks, scores, nil)

	report, err := svc.GenerateWeeklyReport(context.Background(), "p1")

	require.NoError(t, err)
	assert.Nil(t, report.PreviousScore)
	assert.Equal(t, model.TrendNoData, report.Trend)
	assert.False(t, report.DeclineDetection.DeclineDetected)
	assert.Equal(t, "Insufficient baseline data", report.DeclineDetection.Reason)
}

func TestMarkReminderMissedAppointmentAlertsCaregivers(t *testing.T) {
	appointment := &model.Reminder{
		ID:        "r1",
		PatientID: "p1",
		Type:      model.TaskAppointment,
		Title:     "neurologist visit",
		Time:      testNow.Add(-2 * time.Hour),
		Missed:    true,
	}
	tasks := &mockTaskRepo{}
	tasks.On("MarkMissed", mock.Anything, "r1").Return(appointment, nil)

	users := &mockUserRepo{}
	users.On("GetByID", mock.Anything, "p1").
		Return(&model.User{ID: "p1", Name: "Rose", CaregiverIDs: []string{"c1"}}, nil)

	notifications := &mockNotificationRepo{}
	notifications.On("Create", mock.Anything, mock.AnythingOfType("*model.Notification")).
		Return("n1", nil)

	broadcaster := &mockBroadcaster{}
	broadcaster.On("BroadcastToCaregiver", "c1", string(model.NotifyAppointmentMissed), mock.Anything).Return()

	notifier := NewNotificationService(users, notifications, zap.NewNop())
	notifier.SetBroadcaster(broadcaster)

	svc := newProgressService(tasks, &mockScoreRepo{}, notifier)

	reminder, err := svc.MarkReminderMissed(context.Background(), "r1")

	require.NoError(t, err)
	require.NotNil(t, reminder)
	assert.True(t, reminder.Missed)
	notifications.AssertNumberOfCalls(t, "Create", 1)
	broadcaster.AssertCalled(t, "BroadcastToCaregiver", "c1", string(model.NotifyAppointmentMissed), mock.Anything)
}

func TestMarkReminderMissedNonAppointmentIsSilent(t *testing.T) {
	tasks := &mockTaskRepo{}
	tasks.On("MarkMissed", mock.Anything, "r2").
		Return(&model.Reminder{ID: "r2", PatientID: "p1", Type: model.TaskMedication, Missed: true}, nil)

	users := &mockUserRepo{}
	notifications := &mockNotificationRepo{}
	notifier := NewNotificationService(users, notifications, zap.NewNop())

	svc := newProgressService(tasks, &mockScoreRepo{}, notifier)

	reminder, err := svc.MarkReminderMissed(context.Background(), "r2")

	require.NoError(t, err)
	require.NotNil(t, reminder)
	notifications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMarkReminderMissedUnknownReminder(t *testing.T) {
	tasks := &mockTaskRepo{}
	tasks.On("MarkMissed", mock.Anything, "missing").Return(nil, nil)

	svc := newProgressService(tasks, &mockScoreRepo{}, nil)

	reminder, err := svc.MarkReminderMissed(context.Background(), "missing")

	require.NoError(t, err)
	assert.Nil(t, reminder)
}

func TestNotificationFanOutToCaregivers(t *testing.T) {
	users := &mockUserRepo{}
	users.On("GetByID", mock.Anything, "p1").
		Return(&model.User{ID: "p1", Name: "Rose", CaregiverIDs: []string{"c1", "c2"}}, nil)

	notifications := &mockNotificationRepo{}
	notifications.On("Create", mock.Anything, mock.AnythingOfType("*model.Notification")).
		Return("n1", nil)

	broadcaster := &mockBroadcaster{}
	broadcaster.On("BroadcastToCaregiver", mock.Anything, string(model.NotifyDeclineAlert), mock.Anything).Return()

	svc := NewNotificationService(users, notifications, zap.NewNop())
	svc.SetBroadcaster(broadcaster)

	baseline := 80.0
	diff := 20.0
	svc.NotifyDeclineAlert(context.Background(), "p1", &model.DeclineResult{
		DeclineDetected: true,
		Baseline:        &baseline,
		CurrentScore:    60,
		Difference:      &diff,
	})

	notifications.AssertNumberOfCalls(t, "Create", 2)
	broadcaster.AssertNumberOfCalls(t, "BroadcastToCaregiver", 2)
}

func TestNotificationPersistFailureIsSwallowed(t *testing.T) {
	users := &mockUserRepo{}
	users.On("GetByID", mock.Anything, "p1").
		Return(&model.User{ID: "p1", Name: "Rose", CaregiverIDs: []string{"c1"}}, nil)

	notifications := &mockNotificationRepo{}
	notifications.On("Create", mock.Anything, mock.Anything).
		Return("", assert.AnError)

	broadcaster := &mockBroadcaster{}

	svc := NewNotificationService(users, notifications, zap.NewNop())
	svc.SetBroadcaster(broadcaster)

	svc.NotifyEmotionAlert(context.Background(), "p1", &model.EmotionEntry{
		PrimaryEmotion:   model.EmotionSad,
		PrimaryIntensity: 85,
	})

	// Failed persist skips the push but never panics or propagates.
	broadcaster.AssertNotCalled(t, "BroadcastToCaregiver", mock.Anything, mock.Anything, mock.Anything)
}
