package analysis

import (
	"fmt"
	"math"
	"sort"

	"alzmate/internal/model"
)

// Detector thresholds. Entries handed to the detectors are ordered
// newest-first (the store's descending-timestamp order); the "early" half of
// a window is therefore the tail of the slice. Changing the source ordering
// inverts the shift and trend semantics, so keep it pinned.
const (
	HighIntensityThreshold  = 70
	PersistentDaysThreshold = 3
	VolatilityThreshold     = 0.4
	ShiftIntensityIncrease  = 20.0
	DefaultTrendDays        = 7
)

func dateKey(entry *model.EmotionEntry) string {
	return entry.Timestamp.UTC().Format("2006-01-02")
}

// DetectShift checks whether the target emotion's average intensity rose by
// at least minIncrease between the early and late halves of the window.
func DetectShift(entries []model.EmotionEntry, emotion model.Emotion, days int, minIncrease float64) *model.ShiftResult {
	if len(entries) < 2 {
		return &model.ShiftResult{
			ShiftDetected: false,
			Reason:        "Insufficient data",
			Emotion:       emotion,
			Entries:       len(entries),
		}
	}

	mid := len(entries) / 2
	early := entries[mid:] // chronologically older
	late := entries[:mid]  // chronologically newer

	intensitiesFor := func(half []model.EmotionEntry) []int {
		var out []int
		for i := range half {
			entry := &half[i]
			if entry.PrimaryEmotion == emotion {
				out = append(out, entry.PrimaryIntensity)
			} else if entry.SecondaryEmotion == emotion {
				out = append(out, entry.SecondaryIntensity)
			}
		}
		return out
	}

	earlyIntensities := intensitiesFor(early)
	lateIntensities := intensitiesFor(late)

	if len(earlyIntensities) == 0 || len(lateIntensities) == 0 {
		return &model.ShiftResult{
			ShiftDetected: false,
			Reason:        "Emotion not found in both periods",
			Emotion:       emotion,
		}
	}

	earlyAvg := meanInt(earlyIntensities)
	lateAvg := meanInt(lateIntensities)
	increase := lateAvg - earlyAvg

	return &model.ShiftResult{
		ShiftDetected: increase >= minIncrease,
		Emotion:       emotion,
		EarlyAverage:  round2(earlyAvg),
		LateAverage:   round2(lateAvg),
		Increase:      round2(increase),
		Threshold:     minIncrease,
		PeriodDays:    days,
	}
}

// DetectPersistence flags a patient whose high-intensity negative emotions
// recur on at least `days` distinct UTC dates within the window.
func DetectPersistence(entries []model.EmotionEntry, days int) *model.PersistenceResult {
	if len(entries) < days {
		return &model.PersistenceResult{
			PersistentNegativeDetected: false,
			Reason:                     "Insufficient entries",
			Entries:                    len(entries),
			RequiredDays:               days,
		}
	}

	negativeDays := map[string]bool{}
	for i := range entries {
		entry := &entries[i]
		key := dateKey(entry)
		if entry.PrimaryEmotion.Negative() && entry.PrimaryIntensity >= HighIntensityThreshold {
			negativeDays[key] = true
		}
		if entry.HasSecondary() && entry.SecondaryEmotion.Negative() && entry.SecondaryIntensity >= HighIntensityThreshold {
			negativeDays[key] = true
		}
	}

	dates := make([]string, 0, len(negativeDays))
	for d := range negativeDays {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	return &model.PersistenceResult{
		PersistentNegativeDetected:   len(negativeDays) >= days,
		DaysWithHighNegativeEmotions: len(negativeDays),
		RequiredDays:                 days,
		Dates:                        dates,
		Threshold:                    HighIntensityThreshold,
	}
}

// DetectVolatility computes the coefficient of variation of the daily
// composite emotion score (negative emotions contribute negatively) and
// flags volatility when it reaches the threshold.
func DetectVolatility(entries []model.EmotionEntry, days int, threshold float64) *model.VolatilityResult {
	if len(entries) < 3 {
		return &model.VolatilityResult{
			VolatilityDetected: false,
			Reason:             "Insufficient data",
			Entries:            len(entries),
		}
	}

	dailyScores := map[string][]float64{}
	var order []string
	for i := range entries {
		entry := &entries[i]
		key := dateKey(entry)
		score := float64(entry.PrimaryIntensity)
		if entry.PrimaryEmotion.Negative() {
			score = -score
		}
		if _, ok := dailyScores[key]; !ok {
			order = append(order, key)
		}
		dailyScores[key] = append(dailyScores[key], score)
	}

	if len(dailyScores) < 3 {
		return &model.VolatilityResult{
			VolatilityDetected: false,
			Reason:             "Insufficient daily data",
			DaysAnalyzed:       len(dailyScores),
		}
	}

	averages := make([]float64, 0, len(order))
	for _, key := range order {
		averages = append(averages, mean(dailyScores[key]))
	}

	m := mean(averages)
	if m == 0 {
		return &model.VolatilityResult{
			VolatilityDetected: false,
			Reason:             "Zero mean score",
			MeanScore:          0,
		}
	}

	variance := 0.0
	for _, v := range averages {
		variance += (v - m) * (v - m)
	}
	variance /= float64(len(averages))
	stdDev := math.Sqrt(variance)
	cov := math.Abs(stdDev / m)

	return &model.VolatilityResult{
		VolatilityDetected:     cov >= threshold,
		CoefficientOfVariation: round3(cov),
		Threshold:              threshold,
		MeanScore:              round2(m),
		StdDeviation:           round2(stdDev),
		DaysAnalyzed:           len(dailyScores),
		PeriodDays:             days,
	}
}

// ClassifyTrend labels the negative-emotion trajectory as improving, stable
// or worsening. totalEntries and moodRiskCount come from the window's trend
// report; entries are the up-to-2×days most recent entries, newest first.
// An early-half average of zero always classifies as improving.
func ClassifyTrend(patientID string, totalEntries, moodRiskCount int, entries []model.EmotionEntry) *model.TrendSummary {
	if totalEntries == 0 {
		return &model.TrendSummary{
			Trend:       model.TrendNoData,
			Description: "No emotion data available",
			PatientID:   patientID,
		}
	}
	if len(entries) < 2 {
		return &model.TrendSummary{
			Trend:       model.TrendStable,
			Description: "Insufficient data for trend analysis",
			PatientID:   patientID,
		}
	}

	var negative []float64
	for i := range entries {
		entry := &entries[i]
		if entry.PrimaryEmotion.Negative() {
			negative = append(negative, float64(entry.PrimaryIntensity))
		}
	}

	if len(negative) == 0 {
		return &model.TrendSummary{
			Trend:                    model.TrendImproving,
			Description:              "No negative emotions detected",
			PatientID:                patientID,
			AverageNegativeIntensity: 0,
		}
	}

	mid := len(negative) / 2
	var earlyAvg, lateAvg float64
	if mid > 0 {
		earlyAvg = mean(negative[mid:])
		lateAvg = mean(negative[:mid])
	}

	var trend, description string
	switch {
	case earlyAvg == 0:
		trend = model.TrendImproving
		description = "Negative emotions decreasing"
	case lateAvg > earlyAvg+10:
		trend = model.TrendWorsening
		description = fmt.Sprintf("Negative emotions increasing (from %.1f to %.1f)", earlyAvg, lateAvg)
	case lateAvg < earlyAvg-10:
		trend = model.TrendImproving
		description = fmt.Sprintf("Negative emotions decreasing (from %.1f to %.1f)", earlyAvg, lateAvg)
	default:
		trend = model.TrendStable
		description = "Emotional state remains relatively stable"
	}

	return &model.TrendSummary{
		Trend:                    trend,
		Description:              description,
		PatientID:                patientID,
		AverageNegativeIntensity: round2(mean(negative)),
		EarlyAverage:             round2(earlyAvg),
		LateAverage:              round2(lateAvg),
		TotalEntries:             totalEntries,
		MoodRiskCount:            moodRiskCount,
	}
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func meanInt(vals []int) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return float64(sum) / float64(len(vals))
}
