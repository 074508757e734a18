package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alzmate/internal/model"
)

func reminder(taskType model.TaskType, completed, missed bool) model.Reminder {
	return model.Reminder{
		PatientID: "p1",
		Type:      taskType,
		Time:      baseTime,
		Completed: completed,
		Missed:    missed,
	}
}

func session(hoursAgo int) model.GameScore {
	return model.GameScore{
		PatientID: "p1",
		PlayedAt:  baseTime.Add(-time.Duration(hoursAgo) * time.Hour),
	}
}

func TestTaskPointsSingleCompletedMedication(t *testing.T) {
	earned, possible := TaskPoints([]model.Reminder{
		reminder(model.TaskMedication, true, false),
	}, nil, 7)

	assert.Equal(t, 3.0, earned)
	assert.Equal(t, 17.0, possible) // 3 + 7 days × 2 brain training

	score := ScoreValue(earned, possible)
	assert.InDelta(t, 17.647, score, 0.001)
}

func TestTaskPointsMissedAndPendingEarnNothing(t *testing.T) {
	earned, possible := TaskPoints([]model.Reminder{
		reminder(model.TaskMedication, false, true),
		reminder(model.TaskMeal, false, false),
	}, nil, 7)

	assert.Equal(t, 0.0, earned)
	assert.Equal(t, 19.0, possible) // 3 + 2 + 14
}

func TestTaskPointsBrainTrainingSessionsAllCount(t *testing.T) {
	sessions := []model.GameScore{session(1), session(25), session(49)}

	earned, possible := TaskPoints(nil, sessions, 7)

	assert.Equal(t, 6.0, earned)
	assert.Equal(t, 14.0, possible)
}

func TestTaskPointsIgnoresJournalReminders(t *testing.T) {
	earned, possible := TaskPoints([]model.Reminder{
		reminder(model.TaskJournal, true, false),
	}, nil, 7)

	assert.Equal(t, 0.0, earned)
	assert.Equal(t, 14.0, possible)
}

func TestScoreValueZeroPossible(t *testing.T) {
	assert.Equal(t, 0.0, ScoreValue(0, 0))
}

func TestScoreBreakdown(t *testing.T) {
	reminders := []model.Reminder{
		reminder(model.TaskMedication, true, false),
		reminder(model.TaskMedication, false, true),
		reminder(model.TaskMeal, true, false),
	}
	sessions := []model.GameScore{session(1), session(25)}

	breakdown := ScoreBreakdown(reminders, sessions, 7)

	med := breakdown[model.TaskMedication]
	assert.Equal(t, 2, med.Total)
	assert.Equal(t, 1, med.Completed)
	assert.Equal(t, 1, med.Missed)
	assert.Equal(t, 3.0, med.PointsEarned)
	assert.Equal(t, 6.0, med.PointsPossible)

	meal := breakdown[model.TaskMeal]
	assert.Equal(t, 1, meal.Completed)
	assert.Equal(t, 2.0, meal.PointsEarned)

	brain := breakdown[model.TaskBrainTraining]
	assert.Equal(t, 2, brain.Completed)
	assert.Equal(t, 7, brain.Total)
	assert.Equal(t, 4.0, brain.PointsEarned)
	assert.Equal(t, 14.0, brain.PointsPossible)
}

func TestPatientStateBands(t *testing.T) {
	tests := []struct {
		score float64
		want  model.PatientState
	}{
		{100, model.StateStable},
		{80, model.StateStable},
		{79.9, model.StateMildDecline},
		{60, model.StateMildDecline},
		{59.9, model.StateModerateDecline},
		{40, model.StateModerateDecline},
		{39.9, model.StateHighRisk},
		{0, model.StateHighRisk},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PatientStateFor(tt.score), "score %.1f", tt.score)
	}
}

func TestBaselineScoreRequiresTwoWeeks(t *testing.T) {
	assert.Nil(t, BaselineScore(nil))
	assert.Nil(t, BaselineScore([]float64{75}))

	baseline := BaselineScore([]float64{80, 70})
	require.NotNil(t, baseline)
	assert.InDelta(t, 75.0, *baseline, 0.001)
}

func TestEvaluateDeclineNoBaseline(t *testing.T) {
	result := EvaluateDecline(nil, 50, nil)

	assert.False(t, result.DeclineDetected)
	assert.Equal(t, "Insufficient baseline data", result.Reason)
	assert.Nil(t, result.Baseline)
}

func TestEvaluateDeclineBelowThreshold(t *testing.T) {
	baseline := 80.0

	result := EvaluateDecline(&baseline, 70, []float64{70, 72})

	assert.False(t, result.DeclineDetected)
	require.NotNil(t, result.Difference)
	assert.InDelta(t, 10.0, *result.Difference, 0.001)
}

func TestEvaluateDeclineConfirmedByConsecutiveWeeks(t *testing.T) {
	baseline := 80.0

	result := EvaluateDecline(&baseline, 60, []float64{60, 62})

	assert.True(t, result.DeclineDetected)
	assert.Equal(t, DeclineConsecutiveWeeks, result.ConsecutiveWeeks)
	require.NotNil(t, result.Difference)
	assert.InDelta(t, 20.0, *result.Difference, 0.001)
}

func TestEvaluateDeclineRetractedWhenConfirmationFails(t *testing.T) {
	// Raw difference of 20 triggers detection, but only one of the two most
	// recent stored scores satisfies the 15-point gap.
	baseline := 80.0

	result := EvaluateDecline(&baseline, 60, []float64{82, 61})

	assert.False(t, result.DeclineDetected)
	assert.Equal(t, 0, result.ConsecutiveWeeks)
}

func TestEvaluateDeclineStandsWithShortHistory(t *testing.T) {
	// Fewer stored scores than the confirmation window leaves the raw
	// detection standing.
	baseline := 80.0

	result := EvaluateDecline(&baseline, 60, []float64{61})

	assert.True(t, result.DeclineDetected)
}
