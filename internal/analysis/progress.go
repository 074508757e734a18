package analysis

import "alzmate/internal/model"

// TaskWeights are the fixed per-task-type weights behind the weekly score.
var TaskWeights = map[model.TaskType]float64{
	model.TaskMedication:    3,
	model.TaskAppointment:   3,
	model.TaskMeal:          2,
	model.TaskBrainTraining: 2,
	model.TaskJournal:       1,
}

// Decline detection parameters: a drop of DeclineThresholdPoints from
// baseline, confirmed across DeclineConsecutiveWeeks stored weeks.
const (
	DeclineThresholdPoints  = 15.0
	DeclineConsecutiveWeeks = 2
	BaselineWeeks           = 4
)

func isReminderTask(t model.TaskType) bool {
	return t == model.TaskMedication || t == model.TaskAppointment || t == model.TaskMeal
}

// TaskPoints computes earned and total possible points for a window.
// Reminder tasks contribute their weight to the possible total and, when
// completed, to earned. Brain training expects one session per day; every
// recorded session earns its weight.
func TaskPoints(reminders []model.Reminder, sessions []model.GameScore, daysInWindow int) (earned, possible float64) {
	for i := range reminders {
		r := &reminders[i]
		if !isReminderTask(r.Type) {
			continue
		}
		weight := TaskWeights[r.Type]
		possible += weight
		if r.Completed {
			earned += weight
		}
	}

	brainWeight := TaskWeights[model.TaskBrainTraining]
	possible += float64(daysInWindow) * brainWeight
	earned += float64(len(sessions)) * brainWeight

	return earned, possible
}

// ScoreValue turns earned/possible points into the 0-100 score, guarding the
// zero-possible case.
func ScoreValue(earned, possible float64) float64 {
	if possible == 0 {
		return 0
	}
	return earned / possible * 100
}

// ScoreBreakdown builds the per-task-type detail behind a weekly score.
func ScoreBreakdown(reminders []model.Reminder, sessions []model.GameScore, daysInWindow int) map[model.TaskType]model.TaskBreakdown {
	brainWeight := TaskWeights[model.TaskBrainTraining]
	breakdown := map[model.TaskType]model.TaskBreakdown{
		model.TaskMedication:  {},
		model.TaskAppointment: {},
		model.TaskMeal:        {},
		model.TaskBrainTraining: {
			Completed:      len(sessions),
			Total:          daysInWindow,
			PointsEarned:   float64(len(sessions)) * brainWeight,
			PointsPossible: float64(daysInWindow) * brainWeight,
		},
	}

	for i := range reminders {
		r := &reminders[i]
		entry, ok := breakdown[r.Type]
		if !ok || !isReminderTask(r.Type) {
			continue
		}
		weight := TaskWeights[r.Type]
		entry.Total++
		entry.PointsPossible += weight
		if r.Completed {
			entry.Completed++
			entry.PointsEarned += weight
		} else if r.Missed {
			entry.Missed++
		}
		breakdown[r.Type] = entry
	}

	return breakdown
}

// PatientStateFor maps a weekly score to its functional state band.
// Bands are inclusive at the lower edge: stable [80,100], mild [60,80),
// moderate [40,60), high risk [0,40).
func PatientStateFor(score float64) model.PatientState {
	switch {
	case score >= 80:
		return model.StateStable
	case score >= 60:
		return model.StateMildDecline
	case score >= 40:
		return model.StateModerateDecline
	default:
		return model.StateHighRisk
	}
}

// StateDescription is the caregiver-facing explanation for a state band.
func StateDescription(state model.PatientState) string {
	switch state {
	case model.StateStable:
		return "Routine intact - patient is functioning well"
	case model.StateMildDecline:
		return "Mild decline risk - needs attention"
	case model.StateModerateDecline:
		return "Moderate decline risk - frequent misses"
	case model.StateHighRisk:
		return "High risk - requires high supervision"
	default:
		return "Unknown state"
	}
}

// BaselineScore averages the earliest stored weekly scores. Returns nil when
// fewer than two scores exist.
func BaselineScore(scores []float64) *float64 {
	if len(scores) < 2 {
		return nil
	}
	avg := mean(scores)
	return &avg
}

// EvaluateDecline compares the current score against the baseline. A raw
// drop of at least the threshold triggers detection, then the most recent
// stored scores must each individually satisfy the same gap or the
// detection is retracted. Fewer stored scores than the confirmation window
// leaves the raw detection standing.
func EvaluateDecline(baseline *float64, currentScore float64, recentScores []float64) *model.DeclineResult {
	if baseline == nil {
		return &model.DeclineResult{
			DeclineDetected: false,
			Reason:          "Insufficient baseline data",
			CurrentScore:    currentScore,
		}
	}

	difference := *baseline - currentScore
	detected := difference >= DeclineThresholdPoints

	if detected && len(recentScores) >= DeclineConsecutiveWeeks {
		for _, score := range recentScores[:DeclineConsecutiveWeeks] {
			if *baseline-score < DeclineThresholdPoints {
				detected = false
				break
			}
		}
	}

	rounded := round2(difference)
	consecutive := 0
	if detected {
		consecutive = DeclineConsecutiveWeeks
	}

	return &model.DeclineResult{
		DeclineDetected:  detected,
		Baseline:         baseline,
		CurrentScore:     currentScore,
		Difference:       &rounded,
		Threshold:        DeclineThresholdPoints,
		ConsecutiveWeeks: consecutive,
	}
}
