package analysis

import "alzmate/internal/model"

func baseRiskFor(state model.PatientState) model.RiskLevel {
	switch state {
	case model.StateStable:
		return model.RiskLow
	case model.StateMildDecline:
		return model.RiskMedium
	case model.StateModerateDecline:
		return model.RiskHigh
	case model.StateHighRisk:
		return model.RiskCritical
	default:
		return model.RiskMedium
	}
}

func raiseRisk(level model.RiskLevel) model.RiskLevel {
	switch level {
	case model.RiskLow:
		return model.RiskMedium
	case model.RiskMedium:
		return model.RiskHigh
	case model.RiskHigh:
		return model.RiskCritical
	default:
		return model.RiskCritical
	}
}

// AssessCombinedRisk fuses decline detection, persistent-negative detection
// and the emotion trend into one risk level. The policy is an enumerated
// lookup, not a formula:
//   - both decline and persistence: escalate one tier, riskRaised=true
//   - decline only: stay at base
//   - persistence only: escalate low to medium only
//   - a worsening trend escalates a resulting low/medium one more tier.
func AssessCombinedRisk(progress *model.ProgressReport, trendSummary *model.TrendSummary, persistence *model.PersistenceResult) *model.RiskAssessment {
	declineDetected := progress.DeclineDetection != nil && progress.DeclineDetection.DeclineDetected
	persistentNegative := persistence != nil && persistence.PersistentNegativeDetected

	emotionTrend := model.TrendStable
	if trendSummary != nil && trendSummary.Trend != "" {
		emotionTrend = trendSummary.Trend
	}

	baseRisk := baseRiskFor(progress.PatientState)

	var combined model.RiskLevel
	var raised bool
	var reason string

	switch {
	case declineDetected && persistentNegative:
		combined = raiseRisk(baseRisk)
		raised = true
		reason = "Both functional decline and persistent negative emotions detected"
	case declineDetected:
		combined = baseRisk
		reason = "Functional decline detected, but emotional state is stable"
	case persistentNegative:
		combined = baseRisk
		if baseRisk == model.RiskLow {
			combined = model.RiskMedium
			raised = true
		}
		reason = "Persistent negative emotions detected, but functional performance is stable"
	default:
		combined = baseRisk
		reason = "No significant issues detected"
	}

	if emotionTrend == model.TrendWorsening && (combined == model.RiskLow || combined == model.RiskMedium) {
		combined = raiseRisk(combined)
		reason += "; Emotion trend is worsening"
	}

	return &model.RiskAssessment{
		CombinedRiskLevel:          combined,
		BaseRiskLevel:              baseRisk,
		RiskRaised:                 raised,
		Reason:                     reason,
		DeclineDetected:            declineDetected,
		PersistentNegativeDetected: persistentNegative,
		EmotionTrend:               emotionTrend,
		Recommendation:             RiskRecommendation(combined),
	}
}

// RiskRecommendation is the static caregiver guidance for a risk level.
func RiskRecommendation(level model.RiskLevel) string {
	switch level {
	case model.RiskLow:
		return "Continue monitoring. Patient is functioning well."
	case model.RiskMedium:
		return "Increased monitoring recommended. Schedule check-in with caregiver."
	case model.RiskHigh:
		return "Immediate attention required. Consider medical consultation."
	case model.RiskCritical:
		return "Urgent intervention needed. Contact healthcare provider immediately."
	default:
		return "Monitor closely."
	}
}
