package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"alzmate/internal/config"
	"alzmate/internal/model"
	"alzmate/internal/textproc"
)

// ErrClassifierUpstream marks a failed call to the inference API. Callers
// surface it as a 502 rather than silently degrading the analysis.
var ErrClassifierUpstream = errors.New("emotion classifier upstream failure")

// EmotionClassifier turns journal text into a ranked emotion classification.
type EmotionClassifier interface {
	Classify(ctx context.Context, text string) (*model.Classification, error)
}

// NewEmotionClassifier returns the Hugging Face classifier when an API
// token is configured, otherwise the deterministic lexicon classifier.
func NewEmotionClassifier(cfg *config.ClassifierConfig, logger *zap.Logger) EmotionClassifier {
	if !cfg.IsEnabled() {
		logger.Warn("HF_API_TOKEN not set, using lexicon emotion classifier")
		return &lexiconClassifier{}
	}
	return &hfClassifier{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
		logger: logger,
	}
}

// labelMap normalizes raw classifier labels into the closed emotion set.
var labelMap = map[string]model.Emotion{
	"happy":          model.EmotionHappy,
	"happiness":      model.EmotionHappy,
	"joy":            model.EmotionHappy,
	"love":           model.EmotionHappy,
	"sad":            model.EmotionSad,
	"sadness":        model.EmotionSad,
	"disappointment": model.EmotionSad,
	"grief":          model.EmotionDepressed,
	"depression":     model.EmotionDepressed,
	"angry":          model.EmotionAngry,
	"anger":          model.EmotionAngry,
	"annoyance":      model.EmotionFrustrated,
	"frustration":    model.EmotionFrustrated,
	"frustrated":     model.EmotionFrustrated,
	"anxious":        model.EmotionAnxious,
	"anxiety":        model.EmotionAnxious,
	"worry":          model.EmotionAnxious,
	"nervousness":    model.EmotionAnxious,
	"fear":           model.EmotionFearful,
	"fearful":        model.EmotionFearful,
	"confused":       model.EmotionConfused,
	"confusion":      model.EmotionConfused,
	"surprise":       model.EmotionConfused,
	"lonely":         model.EmotionLonely,
	"loneliness":     model.EmotionLonely,
	"calm":           model.EmotionCalm,
	"relief":         model.EmotionCalm,
	"neutral":        model.EmotionNeutral,
}

// substring fallbacks for model labels outside the mapping, checked in order
var labelFallbacks = []struct {
	fragment string
	emotion  model.Emotion
}{
	{"depress", model.EmotionDepressed},
	{"sad", model.EmotionSad},
	{"happ", model.EmotionHappy},
	{"joy", model.EmotionHappy},
	{"ang", model.EmotionAngry},
	{"anx", model.EmotionAnxious},
	{"worr", model.EmotionAnxious},
	{"fear", model.EmotionFearful},
	{"scare", model.EmotionFearful},
	{"conf", model.EmotionConfused},
	{"frustrat", model.EmotionFrustrated},
	{"lone", model.EmotionLonely},
	{"calm", model.EmotionCalm},
	{"relax", model.EmotionCalm},
}

// NormalizeEmotionLabel maps a raw model label onto the closed emotion set.
// Unknown labels fall back to substring matching, then to neutral.
func NormalizeEmotionLabel(label string) model.Emotion {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if emotion, ok := labelMap[normalized]; ok {
		return emotion
	}
	for _, fb := range labelFallbacks {
		if strings.Contains(normalized, fb.fragment) {
			return fb.emotion
		}
	}
	return model.EmotionNeutral
}

// InterpretationTag describes an intensity level for caregivers.
func InterpretationTag(emotion model.Emotion, intensity int) string {
	switch {
	case intensity >= 70:
		return fmt.Sprintf("high %s intensity", emotion)
	case intensity >= 50:
		return fmt.Sprintf("moderate %s intensity", emotion)
	default:
		return fmt.Sprintf("mild %s intensity", emotion)
	}
}

type rawScore struct {
	label      string
	confidence float64
}

// buildClassification converts ranked raw scores into the final result.
// The secondary emotion is kept only when it carries real signal.
func buildClassification(scores []rawScore, processedText string) *model.Classification {
	if len(scores) == 0 {
		return neutralClassification(processedText)
	}

	primary := scoreFrom(scores[0])
	var secondary *model.EmotionScore
	if len(scores) > 1 {
		s := scoreFrom(scores[1])
		if s.Confidence >= 0.1 || s.Intensity >= 30 {
			secondary = &s
		}
	}

	moodRisk := primary.Emotion.Negative() && primary.Intensity >= 70
	if !moodRisk && secondary != nil {
		moodRisk = secondary.Emotion.Negative() && secondary.Intensity >= 60
	}

	return &model.Classification{
		Primary:           primary,
		Secondary:         secondary,
		InterpretationTag: primary.InterpretationTag,
		MoodRisk:          moodRisk,
		ProcessedText:     processedText,
	}
}

func scoreFrom(raw rawScore) model.EmotionScore {
	emotion := NormalizeEmotionLabel(raw.label)
	intensity := int(math.Round(raw.confidence * 100))
	return model.EmotionScore{
		Emotion:           emotion,
		OriginalLabel:     raw.label,
		Confidence:        raw.confidence,
		Intensity:         intensity,
		InterpretationTag: InterpretationTag(emotion, intensity),
	}
}

func neutralClassification(processedText string) *model.Classification {
	score := model.EmotionScore{
		Emotion:           model.EmotionNeutral,
		Confidence:        0.5,
		Intensity:         50,
		InterpretationTag: InterpretationTag(model.EmotionNeutral, 50),
	}
	return &model.Classification{
		Primary:           score,
		InterpretationTag: score.InterpretationTag,
		ProcessedText:     processedText,
	}
}

// classifyTarget normalizes the text and returns the string to classify.
// Normalization can strip a short entry down to nothing, in which case the
// raw text is used instead.
func classifyTarget(text string) (target, processed string) {
	processed = textproc.Normalize(text)
	target = processed
	if target == "" {
		target = strings.ToLower(strings.TrimSpace(text))
	}
	return target, processed
}

// hfClassifier calls the Hugging Face inference API
type hfClassifier struct {
	config *config.ClassifierConfig
	client *http.Client
	logger *zap.Logger
}

func (c *hfClassifier) Classify(ctx context.Context, text string) (*model.Classification, error) {
	target, processed := classifyTarget(text)
	if target == "" {
		return neutralClassification(processed), nil
	}

	reqBody := map[string]interface{}{
		"inputs":  target,
		"options": map[string]bool{"wait_for_model": true},
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.config.ModelEndpoint(), bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIToken)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("classifier request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrClassifierUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("classifier returned non-200", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", ErrClassifierUpstream, resp.StatusCode)
	}

	scores, err := decodeInferenceResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassifierUpstream, err)
	}
	if len(scores) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrClassifierUpstream)
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].confidence > scores[j].confidence
	})
	return buildClassification(scores, processed), nil
}

func decodeInferenceResponse(resp *http.Response) ([]rawScore, error) {
	type hfScore struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}

	// The inference API wraps results in a nested array; some deployments
	// return a flat one.
	var nested [][]hfScore
	var flat []hfScore

	decoder := json.NewDecoder(resp.Body)
	var raw json.RawMessage
	if err := decoder.Decode(&raw); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &nested); err == nil && len(nested) > 0 {
		flat = nested[0]
	} else if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, err
	}

	scores := make([]rawScore, 0, len(flat))
	for _, s := range flat {
		scores = append(scores, rawScore{label: s.Label, confidence: s.Score})
	}
	return scores, nil
}

// lexicon keyword lists for the offline classifier, keyed by emotion
var lexicon = map[model.Emotion][]string{
	model.EmotionHappy:      {"happy", "glad", "joy", "great", "wonderful", "good", "smile", "laugh", "enjoyed", "love"},
	model.EmotionSad:        {"sad", "cry", "cried", "tears", "unhappy", "miss", "missing", "down", "blue"},
	model.EmotionAngry:      {"angry", "mad", "furious", "annoyed", "hate", "yelled"},
	model.EmotionAnxious:    {"anxious", "worried", "worry", "nervous", "uneasy", "restless"},
	model.EmotionFearful:    {"afraid", "scared", "fear", "terrified", "frightened"},
	model.EmotionConfused:   {"confused", "lost", "forget", "forgot", "unsure", "strange", "remember"},
	model.EmotionFrustrated: {"frustrated", "stuck", "difficult", "hard", "struggle", "cant"},
	model.EmotionCalm:       {"calm", "peaceful", "relaxed", "quiet", "rested", "fine"},
	model.EmotionLonely:     {"lonely", "alone", "isolated", "nobody", "empty"},
	model.EmotionDepressed:  {"hopeless", "worthless", "depressed", "pointless", "tired of", "give up"},
}

// lexiconOrder fixes the iteration order so equal counts rank the same way
// on every run.
var lexiconOrder = []model.Emotion{
	model.EmotionHappy, model.EmotionSad, model.EmotionAngry,
	model.EmotionAnxious, model.EmotionFearful, model.EmotionConfused,
	model.EmotionFrustrated, model.EmotionCalm, model.EmotionLonely,
	model.EmotionDepressed,
}

// lexiconClassifier is the deterministic offline classifier used when no
// inference token is configured. Keyword counts stand in for confidences.
type lexiconClassifier struct{}

func (c *lexiconClassifier) Classify(ctx context.Context, text string) (*model.Classification, error) {
	target, processed := classifyTarget(text)
	if target == "" {
		return neutralClassification(processed), nil
	}

	total := 0
	counts := make(map[model.Emotion]int)
	for _, emotion := range lexiconOrder {
		for _, keyword := range lexicon[emotion] {
			if strings.Contains(target, keyword) {
				counts[emotion]++
				total++
			}
		}
	}
	if total == 0 {
		return neutralClassification(processed), nil
	}

	var scores []rawScore
	for _, emotion := range lexiconOrder {
		if counts[emotion] == 0 {
			continue
		}
		scores = append(scores, rawScore{
			label:      string(emotion),
			confidence: float64(counts[emotion]) / float64(total),
		})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].confidence > scores[j].confidence
	})

	return buildClassification(scores, processed), nil
}
