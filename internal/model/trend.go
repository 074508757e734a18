package model

import "time"

// EmotionTrend is one emotion's aggregate over a trend window.
type EmotionTrend struct {
	Emotion          Emotion `json:"emotion" bson:"emotion"`
	Count            int     `json:"count" bson:"count"`
	Percentage       float64 `json:"percentage" bson:"percentage"`
	AverageIntensity float64 `json:"averageIntensity" bson:"averageIntensity"`
	Description      string  `json:"description" bson:"description"`
}

// TrendReport aggregates a patient's entries over a period. Trends are
// sorted by descending count; ties keep first-seen order.
type TrendReport struct {
	PatientID          string              `json:"patientId" bson:"patientId"`
	PeriodDays         int                 `json:"periodDays" bson:"periodDays"`
	TotalEntries       int                 `json:"totalEntries" bson:"totalEntries"`
	EmotionCounts      map[Emotion]int     `json:"emotionCounts" bson:"emotionCounts"`
	AverageIntensities map[Emotion]float64 `json:"averageIntensities" bson:"averageIntensities"`
	MoodRiskCount      int                 `json:"moodRiskCount" bson:"moodRiskCount"`
	MoodRiskPercentage float64             `json:"moodRiskPercentage" bson:"moodRiskPercentage"`
	Trends             []EmotionTrend      `json:"trends" bson:"trends"`
	StartDate          time.Time           `json:"startDate" bson:"startDate"`
	EndDate            time.Time           `json:"endDate" bson:"endDate"`
}

// WeeklySummary is a trend report plus human-readable insight lines.
type WeeklySummary struct {
	TrendReport
	SummaryInsights []string `json:"summaryInsights"`
}

// DayEmotion is a per-emotion aggregate within a single calendar day.
type DayEmotion struct {
	Emotion          Emotion `json:"emotion"`
	Count            int     `json:"count"`
	MaxIntensity     int     `json:"maxIntensity"`
	AverageIntensity float64 `json:"averageIntensity"`
}

// DaySummary summarizes one UTC calendar day, grouped by primary emotion.
type DaySummary struct {
	PatientID    string       `json:"patientId"`
	Date         string       `json:"date"`
	TotalEntries int          `json:"totalEntries"`
	Emotions     []DayEmotion `json:"emotions"`
	MoodRisk     bool         `json:"moodRisk"`
}

// ShiftResult reports whether a target emotion's intensity rose significantly
// between the early and late halves of a window.
type ShiftResult struct {
	ShiftDetected bool    `json:"shiftDetected"`
	Emotion       Emotion `json:"emotion"`
	Reason        string  `json:"reason,omitempty"`
	Entries       int     `json:"entries,omitempty"`
	EarlyAverage  float64 `json:"earlyAverage,omitempty"`
	LateAverage   float64 `json:"lateAverage,omitempty"`
	Increase      float64 `json:"increase,omitempty"`
	Threshold     float64 `json:"threshold,omitempty"`
	PeriodDays    int     `json:"periodDays,omitempty"`
}

// PersistenceResult reports high-intensity negative emotions recurring on
// enough distinct days.
type PersistenceResult struct {
	PersistentNegativeDetected   bool     `json:"persistentNegativeDetected"`
	Reason                       string   `json:"reason,omitempty"`
	Entries                      int      `json:"entries,omitempty"`
	DaysWithHighNegativeEmotions int      `json:"daysWithHighNegativeEmotions"`
	RequiredDays                 int      `json:"requiredDays"`
	Dates                        []string `json:"dates,omitempty"`
	Threshold                    int      `json:"threshold,omitempty"`
}

// VolatilityResult reports the day-to-day variability of the composite
// emotion score.
type VolatilityResult struct {
	VolatilityDetected     bool    `json:"volatilityDetected"`
	Reason                 string  `json:"reason,omitempty"`
	Entries                int     `json:"entries,omitempty"`
	DaysAnalyzed           int     `json:"daysAnalyzed,omitempty"`
	CoefficientOfVariation float64 `json:"coefficientOfVariation,omitempty"`
	Threshold              float64 `json:"threshold,omitempty"`
	MeanScore              float64 `json:"meanScore"`
	StdDeviation           float64 `json:"stdDeviation,omitempty"`
	PeriodDays             int     `json:"periodDays,omitempty"`
}

// Trend classification labels.
const (
	TrendNoData    = "no_data"
	TrendImproving = "improving"
	TrendStable    = "stable"
	TrendWorsening = "worsening"
	TrendDeclining = "declining"
)

// TrendSummary classifies a patient's negative-emotion trajectory.
type TrendSummary struct {
	Trend                    string  `json:"trend"`
	Description              string  `json:"description"`
	PatientID                string  `json:"patientId"`
	AverageNegativeIntensity float64 `json:"averageNegativeIntensity"`
	EarlyAverage             float64 `json:"earlyAverage,omitempty"`
	LateAverage              float64 `json:"lateAverage,omitempty"`
	TotalEntries             int     `json:"totalEntries,omitempty"`
	MoodRiskCount            int     `json:"moodRiskCount,omitempty"`
}
