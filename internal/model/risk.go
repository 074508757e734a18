package model

// RiskLevel is the fused caregiver-facing risk tier.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// RiskAssessment fuses task-performance decline and emotional-state signals
// into one risk level. Derived per report, never persisted on its own.
type RiskAssessment struct {
	CombinedRiskLevel          RiskLevel `json:"combinedRiskLevel"`
	BaseRiskLevel              RiskLevel `json:"baseRiskLevel"`
	RiskRaised                 bool      `json:"riskRaised"`
	Reason                     string    `json:"reason"`
	DeclineDetected            bool      `json:"declineDetected"`
	PersistentNegativeDetected bool      `json:"persistentNegativeDetected"`
	EmotionTrend               string    `json:"emotionTrend"`
	Recommendation             string    `json:"recommendation"`
}

// EmotionAnalysisSection groups the emotion-side signals of a combined report.
type EmotionAnalysisSection struct {
	TrendSummary               *TrendSummary      `json:"trendSummary"`
	WeeklyTrends               *TrendReport       `json:"weeklyTrends"`
	PersistentNegativeEmotions *PersistenceResult `json:"persistentNegativeEmotions"`
	Volatility                 *VolatilityResult  `json:"volatility"`
}

// CombinedReport is the weekly report with both cognitive performance and
// emotional state, plus the fused risk assessment.
type CombinedReport struct {
	ProgressReport
	EmotionAnalysis        EmotionAnalysisSection `json:"emotionAnalysis"`
	CombinedRiskAssessment *RiskAssessment        `json:"combinedRiskAssessment"`
}
