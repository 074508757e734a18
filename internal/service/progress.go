package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"alzmate/internal/analysis"
	"alzmate/internal/model"
	"alzmate/internal/repository"
)

// ProgressService scores weekly task completion and tracks decline against
// the patient's baseline.
type ProgressService struct {
	tasks    repository.TaskRepo
	scores   repository.ScoreRepo
	notifier *NotificationService
	logger   *zap.Logger
	now      func() time.Time
}

// NewProgressService creates a new progress service
func NewProgressService(tasks repository.TaskRepo, scores repository.ScoreRepo, notifier *NotificationService, logger *zap.Logger) *ProgressService {
	return &ProgressService{
		tasks:    tasks,
		scores:   scores,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// CalculateWeeklyScore computes the weighted completion score for one week.
// A nil weekStart means the week ending now. The result is not persisted;
// GenerateWeeklyReport appends it to the history.
func (s *ProgressService) CalculateWeeklyScore(ctx context.Context, patientID string, weekStart *time.Time) (*model.WeeklyScore, error) {
	start := s.now().AddDate(0, 0, -7)
	if weekStart != nil {
		start = *weekStart
	}
	end := start.AddDate(0, 0, 7)
	daysInWindow := int(math.Round(end.Sub(start).Hours() / 24))

	reminders, err := s.tasks.RemindersInRange(ctx, patientID, start, end)
	if err != nil {
		return nil, err
	}
	sessions, err := s.tasks.BrainTrainingSessions(ctx, patientID, start, end)
	if err != nil {
		return nil, err
	}

	earned, possible := analysis.TaskPoints(reminders, sessions, daysInWindow)
	score := roundTo2(analysis.ScoreValue(earned, possible))

	return &model.WeeklyScore{
		PatientID:           patientID,
		WeekStart:           start,
		WeekEnd:             end,
		Score:               score,
		EarnedPoints:        roundTo2(earned),
		TotalPossiblePoints: roundTo2(possible),
		Breakdown:           analysis.ScoreBreakdown(reminders, sessions, daysInWindow),
		PatientState:        analysis.PatientStateFor(score),
		CalculatedAt:        s.now(),
	}, nil
}

// BaselineScore averages the patient's earliest stored weeks. Nil when the
// history is too short to anchor a baseline.
func (s *ProgressService) BaselineScore(ctx context.Context, patientID string) (*float64, error) {
	earliest, err := s.scores.Oldest(ctx, patientID, analysis.BaselineWeeks)
	if err != nil {
		return nil, err
	}
	return analysis.BaselineScore(scoreValues(earliest)), nil
}

// DetectDecline evaluates the current score against the stored baseline.
func (s *ProgressService) DetectDecline(ctx context.Context, patientID string, currentScore float64) (*model.DeclineResult, error) {
	baseline, err := s.BaselineScore(ctx, patientID)
	if err != nil {
		return nil, err
	}
	recent, err := s.scores.Recent(ctx, patientID, analysis.DeclineConsecutiveWeeks)
	if err != nil {
		return nil, err
	}
	return analysis.EvaluateDecline(baseline, currentScore, scoreValues(recent)), nil
}

// GenerateWeeklyReport computes the current week, runs decline detection
// against the history, then appends the new score. Caregivers are notified
// on a confirmed decline.
func (s *ProgressService) GenerateWeeklyReport(ctx context.Context, patientID string) (*model.ProgressReport, error) {
	weekly, err := s.CalculateWeeklyScore(ctx, patientID, nil)
	if err != nil {
		return nil, err
	}

	previous, err := s.previousScore(ctx, patientID, weekly.WeekStart)
	if err != nil {
		return nil, err
	}

	decline, err := s.DetectDecline(ctx, patientID, weekly.Score)
	if err != nil {
		return nil, err
	}

	scoreID, err := s.scores.Append(ctx, weekly)
	if err != nil {
		return nil, err
	}

	if decline.DeclineDetected && s.notifier != nil {
		s.notifier.NotifyDeclineAlert(ctx, patientID, decline)
	}

	trend, trendDescription := scoreTrend(weekly.Score, previous)

	return &model.ProgressReport{
		PatientID:        patientID,
		ReportDate:       s.now(),
		WeekStart:        weekly.WeekStart,
		WeekEnd:          weekly.WeekEnd,
		WeeklyScore:      weekly.Score,
		PatientState:     weekly.PatientState,
		StateDescription: analysis.StateDescription(weekly.PatientState),
		Trend:            trend,
		TrendDescription: trendDescription,
		PreviousScore:    previous,
		Breakdown:        weekly.Breakdown,
		DeclineDetection: decline,
		ScoreID:          scoreID,
	}, nil
}

// MarkReminderMissed flags a reminder as missed and, for appointments,
// alerts the patient's caregivers. Returns (nil, nil) when the reminder
// does not exist.
func (s *ProgressService) MarkReminderMissed(ctx context.Context, reminderID string) (*model.Reminder, error) {
	reminder, err := s.tasks.MarkMissed(ctx, reminderID)
	if err != nil {
		return nil, err
	}
	if reminder == nil {
		return nil, nil
	}

	if reminder.Type == model.TaskAppointment && s.notifier != nil {
		s.notifier.NotifyAppointmentMissed(ctx, reminder.PatientID, reminder)
	}

	return reminder, nil
}

// previousScore finds the most recent stored score from the prior two weeks,
// skipping any recalculation of the current week.
func (s *ProgressService) previousScore(ctx context.Context, patientID string, currentWeekStart time.Time) (*float64, error) {
	since := s.now().AddDate(0, 0, -14)
	stored, err := s.scores.RecentSince(ctx, patientID, since, 2)
	if err != nil {
		return nil, err
	}
	for i := range stored {
		if !stored[i].WeekStart.Equal(currentWeekStart) {
			value := stored[i].Score
			return &value, nil
		}
	}
	return nil, nil
}

func scoreTrend(current float64, previous *float64) (string, string) {
	if previous == nil {
		return model.TrendNoData, "No previous week to compare"
	}
	diff := current - *previous
	switch {
	case diff > 5:
		return model.TrendImproving, "Score improved compared to last week"
	case diff < -5:
		return model.TrendDeclining, "Score dropped compared to last week"
	default:
		return model.TrendStable, "Score is consistent with last week"
	}
}

func scoreValues(scores []model.WeeklyScore) []float64 {
	values := make([]float64, 0, len(scores))
	for i := range scores {
		values = append(values, scores[i].Score)
	}
	return values
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
