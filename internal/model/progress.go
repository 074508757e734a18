package model

import "time"

// PatientState is the functional state band derived from the weekly score.
type PatientState string

const (
	StateStable          PatientState = "stable"
	StateMildDecline     PatientState = "mild_decline"
	StateModerateDecline PatientState = "moderate_decline"
	StateHighRisk        PatientState = "high_risk"
)

// TaskBreakdown is the per-task-type detail behind a weekly score.
type TaskBreakdown struct {
	Completed      int     `json:"completed" bson:"completed"`
	Missed         int     `json:"missed" bson:"missed"`
	Total          int     `json:"total" bson:"total"`
	PointsEarned   float64 `json:"pointsEarned" bson:"pointsEarned"`
	PointsPossible float64 `json:"pointsPossible" bson:"pointsPossible"`
}

// WeeklyScore is one computed week of task performance. Appended to the
// progress_scores collection; the stored history feeds the baseline.
type WeeklyScore struct {
	ID                  string                     `json:"id,omitempty" bson:"_id,omitempty"`
	PatientID           string                     `json:"patientId" bson:"patientId"`
	WeekStart           time.Time                  `json:"weekStart" bson:"weekStart"`
	WeekEnd             time.Time                  `json:"weekEnd" bson:"weekEnd"`
	Score               float64                    `json:"score" bson:"score"`
	EarnedPoints        float64                    `json:"earnedPoints" bson:"earnedPoints"`
	TotalPossiblePoints float64                    `json:"totalPossiblePoints" bson:"totalPossiblePoints"`
	Breakdown           map[TaskType]TaskBreakdown `json:"breakdown" bson:"breakdown"`
	PatientState        PatientState               `json:"patientState" bson:"patientState"`
	CalculatedAt        time.Time                  `json:"calculatedAt" bson:"calculatedAt"`
	CreatedAt           time.Time                  `json:"createdAt" bson:"createdAt"`
}

// DeclineResult is the outcome of comparing the current score against the
// stored baseline.
type DeclineResult struct {
	DeclineDetected  bool     `json:"declineDetected"`
	Reason           string   `json:"reason,omitempty"`
	Baseline         *float64 `json:"baseline"`
	CurrentScore     float64  `json:"currentScore"`
	Difference       *float64 `json:"difference"`
	Threshold        float64  `json:"threshold"`
	ConsecutiveWeeks int      `json:"consecutiveWeeks"`
}

// ProgressReport is the weekly progress report returned to callers. The
// current WeeklyScore has already been persisted when a report is returned.
type ProgressReport struct {
	PatientID        string                     `json:"patientId"`
	ReportDate       time.Time                  `json:"reportDate"`
	WeekStart        time.Time                  `json:"weekStart"`
	WeekEnd          time.Time                  `json:"weekEnd"`
	WeeklyScore      float64                    `json:"weeklyScore"`
	PatientState     PatientState               `json:"patientState"`
	StateDescription string                     `json:"stateDescription"`
	Trend            string                     `json:"trend"`
	TrendDescription string                     `json:"trendDescription"`
	PreviousScore    *float64                   `json:"previousScore"`
	Breakdown        map[TaskType]TaskBreakdown `json:"breakdown"`
	DeclineDetection *DeclineResult             `json:"declineDetection"`
	ScoreID          string                     `json:"scoreId"`
}
