// Package analysis holds the pure analytics core: trend aggregation, the
// behavioral signal detectors, progress scoring, and risk fusion. Every
// function takes an immutable snapshot and returns a value; nothing here
// touches the store.
package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"alzmate/internal/model"
)

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ComputeTrends aggregates entries into per-emotion counts, percentages and
// average intensities. Primary and secondary emotions are counted
// independently, so the summed counts can exceed the entry count. An empty
// entry list yields a zero report, not an error.
func ComputeTrends(patientID string, entries []model.EmotionEntry, periodDays int) *model.TrendReport {
	report := &model.TrendReport{
		PatientID:          patientID,
		PeriodDays:         periodDays,
		TotalEntries:       len(entries),
		EmotionCounts:      map[model.Emotion]int{},
		AverageIntensities: map[model.Emotion]float64{},
		Trends:             []model.EmotionTrend{},
	}
	if len(entries) == 0 {
		return report
	}

	counts := map[model.Emotion]int{}
	intensities := map[model.Emotion][]int{}
	var seen []model.Emotion // first-seen order, for stable tie-breaking
	moodRiskCount := 0

	record := func(e model.Emotion, intensity int) {
		if e == "" {
			return
		}
		if _, ok := counts[e]; !ok {
			seen = append(seen, e)
		}
		counts[e]++
		intensities[e] = append(intensities[e], intensity)
	}

	for i := range entries {
		entry := &entries[i]
		record(entry.PrimaryEmotion, entry.PrimaryIntensity)
		if entry.HasSecondary() {
			record(entry.SecondaryEmotion, entry.SecondaryIntensity)
		}
		if entry.MoodRisk {
			moodRiskCount++
		}
	}

	total := len(entries)
	for emotion, vals := range intensities {
		sum := 0
		for _, v := range vals {
			sum += v
		}
		report.AverageIntensities[emotion] = float64(sum) / float64(len(vals))
	}

	trends := make([]model.EmotionTrend, 0, len(seen))
	for _, emotion := range seen {
		count := counts[emotion]
		avg := report.AverageIntensities[emotion]
		trends = append(trends, model.EmotionTrend{
			Emotion:          emotion,
			Count:            count,
			Percentage:       round1(float64(count) / float64(total) * 100),
			AverageIntensity: round1(avg),
			Description: fmt.Sprintf("%s appears %d/%d entries (avg intensity %.1f/100)",
				capitalize(string(emotion)), count, total, avg),
		})
	}
	sort.SliceStable(trends, func(i, j int) bool { return trends[i].Count > trends[j].Count })

	report.EmotionCounts = counts
	report.MoodRiskCount = moodRiskCount
	report.MoodRiskPercentage = round1(float64(moodRiskCount) / float64(total) * 100)
	report.Trends = trends
	return report
}

// DailySummary summarizes one UTC calendar day, grouped by primary emotion
// only. The caller restricts entries to the day's window.
func DailySummary(patientID string, entries []model.EmotionEntry, dateKey string) *model.DaySummary {
	summary := &model.DaySummary{
		PatientID: patientID,
		Date:      dateKey,
		Emotions:  []model.DayEmotion{},
	}
	if len(entries) == 0 {
		return summary
	}

	type acc struct {
		count int
		max   int
		sum   int
	}
	byEmotion := map[model.Emotion]*acc{}
	var seen []model.Emotion
	moodRisk := false

	for i := range entries {
		entry := &entries[i]
		if entry.PrimaryEmotion != "" {
			a, ok := byEmotion[entry.PrimaryEmotion]
			if !ok {
				a = &acc{}
				byEmotion[entry.PrimaryEmotion] = a
				seen = append(seen, entry.PrimaryEmotion)
			}
			a.count++
			a.sum += entry.PrimaryIntensity
			if entry.PrimaryIntensity > a.max {
				a.max = entry.PrimaryIntensity
			}
		}
		if entry.MoodRisk {
			moodRisk = true
		}
	}

	emotions := make([]model.DayEmotion, 0, len(seen))
	for _, emotion := range seen {
		a := byEmotion[emotion]
		emotions = append(emotions, model.DayEmotion{
			Emotion:          emotion,
			Count:            a.count,
			MaxIntensity:     a.max,
			AverageIntensity: float64(a.sum) / float64(a.count),
		})
	}
	sort.SliceStable(emotions, func(i, j int) bool { return emotions[i].Count > emotions[j].Count })

	summary.TotalEntries = len(entries)
	summary.Emotions = emotions
	summary.MoodRisk = moodRisk
	return summary
}
