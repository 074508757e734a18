package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"alzmate/internal/analysis"
	"alzmate/internal/cache"
	"alzmate/internal/model"
	"alzmate/internal/repository"
)

// EmotionService analyzes journal entries and serves the emotion-side
// analytics built on the stored history.
type EmotionService struct {
	entries    repository.EntryRepo
	cache      cache.ReportCache
	classifier EmotionClassifier
	uploads    *UploadService
	notifier   *NotificationService
	logger     *zap.Logger
	now        func() time.Time
}

// NewEmotionService creates a new emotion service
func NewEmotionService(entries repository.EntryRepo, reportCache cache.ReportCache, classifier EmotionClassifier, uploads *UploadService, notifier *NotificationService, logger *zap.Logger) *EmotionService {
	return &EmotionService{
		entries:    entries,
		cache:      reportCache,
		classifier: classifier,
		uploads:    uploads,
		notifier:   notifier,
		logger:     logger,
		now:        time.Now,
	}
}

// AnalyzeEntry classifies journal text and persists the analysis.
func (s *EmotionService) AnalyzeEntry(ctx context.Context, patientID, text, journalEntryID string) (*model.EmotionEntry, error) {
	return s.analyze(ctx, patientID, text, journalEntryID, "")
}

// AnalyzeEntryWithAudio uploads a voice recording, then analyzes the
// transcribed text. A failed upload degrades to a text-only analysis.
func (s *EmotionService) AnalyzeEntryWithAudio(ctx context.Context, patientID, text, journalEntryID string, audio io.Reader, filename string) (*model.EmotionEntry, error) {
	audioURL := ""
	if s.uploads != nil {
		url, err := s.uploads.UploadVoiceRecording(ctx, patientID, journalEntryID, audio, filename)
		if err != nil {
			s.logger.Warn("voice upload failed, continuing without audio",
				zap.String("patientId", patientID), zap.Error(err))
		} else {
			audioURL = url
		}
	}
	return s.analyze(ctx, patientID, text, journalEntryID, audioURL)
}

func (s *EmotionService) analyze(ctx context.Context, patientID, text, journalEntryID, audioURL string) (*model.EmotionEntry, error) {
	classification, err := s.classifier.Classify(ctx, text)
	if err != nil {
		return nil, err
	}

	entry := &model.EmotionEntry{
		PatientID:         patientID,
		Timestamp:         s.now(),
		JournalText:       text,
		ProcessedText:     classification.ProcessedText,
		PrimaryEmotion:    classification.Primary.Emotion,
		PrimaryIntensity:  classification.Primary.Intensity,
		PrimaryConfidence: classification.Primary.Confidence,
		InterpretationTag: classification.InterpretationTag,
		MoodRisk:          classification.MoodRisk,
		JournalEntryID:    journalEntryID,
		AudioURL:          audioURL,
	}
	if classification.Secondary != nil {
		entry.SecondaryEmotion = classification.Secondary.Emotion
		entry.SecondaryIntensity = classification.Secondary.Intensity
		entry.SecondaryConfidence = classification.Secondary.Confidence
	}

	if _, err := s.entries.Save(ctx, entry); err != nil {
		return nil, err
	}

	if journalEntryID != "" {
		if err := s.entries.AttachToJournalEntry(ctx, journalEntryID, entry.ID); err != nil {
			s.logger.Warn("journal entry link failed",
				zap.String("journalEntryId", journalEntryID), zap.Error(err))
		}
	}

	if entry.MoodRisk && s.notifier != nil {
		s.notifier.NotifyEmotionAlert(ctx, patientID, entry)
	}

	return entry, nil
}

// Entries returns stored analyses newest-first, optionally filtered by time.
func (s *EmotionService) Entries(ctx context.Context, patientID string, start, end *time.Time, limit int64) ([]model.EmotionEntry, error) {
	return s.entries.Query(ctx, patientID, start, end, limit)
}

// Trends aggregates the last `days` of entries, cached per patient and period.
func (s *EmotionService) Trends(ctx context.Context, patientID string, days int) (*model.TrendReport, error) {
	if cached, err := s.cache.GetTrendReport(ctx, patientID, days); err != nil {
		s.logger.Warn("trend cache read failed", zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	end := s.now()
	start := end.AddDate(0, 0, -days)
	entries, err := s.entries.Query(ctx, patientID, &start, &end, 0)
	if err != nil {
		return nil, err
	}

	report := analysis.ComputeTrends(patientID, entries, days)
	report.StartDate = start
	report.EndDate = end

	if err := s.cache.SetTrendReport(ctx, report); err != nil {
		s.logger.Warn("trend cache write failed", zap.Error(err))
	}
	return report, nil
}

// DailySummary summarizes one UTC calendar day given as "2006-01-02".
func (s *EmotionService) DailySummary(ctx context.Context, patientID, date string) (*model.DaySummary, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	start := day
	end := day.AddDate(0, 0, 1)
	entries, err := s.entries.Query(ctx, patientID, &start, &end, 0)
	if err != nil {
		return nil, err
	}

	return analysis.DailySummary(patientID, entries, date), nil
}

// WeeklySummary is the 7-day trend report with caregiver-readable insights.
func (s *EmotionService) WeeklySummary(ctx context.Context, patientID string) (*model.WeeklySummary, error) {
	report, err := s.Trends(ctx, patientID, analysis.DefaultTrendDays)
	if err != nil {
		return nil, err
	}

	return &model.WeeklySummary{
		TrendReport:     *report,
		SummaryInsights: weeklyInsights(report),
	}, nil
}

func weeklyInsights(report *model.TrendReport) []string {
	if report.TotalEntries == 0 {
		return []string{"No journal entries recorded this week"}
	}

	insights := []string{
		fmt.Sprintf("%d journal entries recorded this week", report.TotalEntries),
	}
	if len(report.Trends) > 0 {
		top := report.Trends[0]
		insights = append(insights, fmt.Sprintf("Most frequent emotion: %s (%d occurrences, avg intensity %.1f/100)",
			top.Emotion, top.Count, top.AverageIntensity))
	}
	if report.MoodRiskCount > 0 {
		insights = append(insights, fmt.Sprintf("Mood risk flagged in %d entries (%.1f%%)",
			report.MoodRiskCount, report.MoodRiskPercentage))
	}
	return insights
}

// DetectShift checks whether an emotion's intensity rose significantly
// within the last `days`.
func (s *EmotionService) DetectShift(ctx context.Context, patientID string, emotion model.Emotion, days int) (*model.ShiftResult, error) {
	entries, err := s.windowEntries(ctx, patientID, days)
	if err != nil {
		return nil, err
	}
	return analysis.DetectShift(entries, emotion, days, analysis.ShiftIntensityIncrease), nil
}

// CheckPersistentNegative checks for high-intensity negative emotions
// recurring across distinct days.
func (s *EmotionService) CheckPersistentNegative(ctx context.Context, patientID string, days int) (*model.PersistenceResult, error) {
	entries, err := s.windowEntries(ctx, patientID, days)
	if err != nil {
		return nil, err
	}
	return analysis.DetectPersistence(entries, days), nil
}

// DetectVolatility measures day-to-day emotional variability over the window.
func (s *EmotionService) DetectVolatility(ctx context.Context, patientID string, days int) (*model.VolatilityResult, error) {
	entries, err := s.windowEntries(ctx, patientID, days)
	if err != nil {
		return nil, err
	}
	return analysis.DetectVolatility(entries, days, analysis.VolatilityThreshold), nil
}

// TrendSummary classifies the negative-emotion trajectory over the most
// recent entries. The fetch is bounded by entry count rather than time so
// sparse journals still produce a classification.
func (s *EmotionService) TrendSummary(ctx context.Context, patientID string, days int) (*model.TrendSummary, error) {
	entries, err := s.entries.Query(ctx, patientID, nil, nil, int64(2*days))
	if err != nil {
		return nil, err
	}

	moodRiskCount := 0
	for i := range entries {
		if entries[i].MoodRisk {
			moodRiskCount++
		}
	}
	return analysis.ClassifyTrend(patientID, len(entries), moodRiskCount, entries), nil
}

func (s *EmotionService) windowEntries(ctx context.Context, patientID string, days int) ([]model.EmotionEntry, error) {
	end := s.now()
	start := end.AddDate(0, 0, -days)
	return s.entries.Query(ctx, patientID, &start, &end, 0)
}
