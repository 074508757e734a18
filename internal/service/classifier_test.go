package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alzmate/internal/model"
)

func TestNormalizeEmotionLabel(t *testing.T) {
	tests := []struct {
		label string
		want  model.Emotion
	}{
		{"sadness", model.EmotionSad},
		{"JOY", model.EmotionHappy},
		{"love", model.EmotionHappy},
		{"grief", model.EmotionDepressed},
		{"nervousness", model.EmotionAnxious},
		{"surprise", model.EmotionConfused},
		{" Fear ", model.EmotionFearful},
		{"scared stiff", model.EmotionFearful}, // substring fallback
		{"deeply depressive", model.EmotionDepressed},
		{"melancholy", model.EmotionNeutral}, // unknown label
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeEmotionLabel(tt.label), "label %q", tt.label)
	}
}

func TestInterpretationTagBands(t *testing.T) {
	assert.Equal(t, "high sad intensity", InterpretationTag(model.EmotionSad, 70))
	assert.Equal(t, "moderate sad intensity", InterpretationTag(model.EmotionSad, 50))
	assert.Equal(t, "mild sad intensity", InterpretationTag(model.EmotionSad, 49))
}

func TestBuildClassificationSecondaryAndMoodRisk(t *testing.T) {
	// Primary is positive; the negative secondary at intensity 60 still
	// flags mood risk.
	c := buildClassification([]rawScore{
		{label: "happy", confidence: 0.7},
		{label: "sad", confidence: 0.6},
	}, "processed")

	assert.Equal(t, model.EmotionHappy, c.Primary.Emotion)
	require.NotNil(t, c.Secondary)
	assert.Equal(t, model.EmotionSad, c.Secondary.Emotion)
	assert.Equal(t, 60, c.Secondary.Intensity)
	assert.True(t, c.MoodRisk)
	assert.Equal(t, "processed", c.ProcessedText)
}

func TestBuildClassificationDropsWeakSecondary(t *testing.T) {
	c := buildClassification([]rawScore{
		{label: "happy", confidence: 0.9},
		{label: "sad", confidence: 0.05},
	}, "")

	assert.Nil(t, c.Secondary)
	assert.False(t, c.MoodRisk)
}

func TestLexiconClassifierEmptyText(t *testing.T) {
	classifier := &lexiconClassifier{}

	c, err := classifier.Classify(context.Background(), "   ")

	require.NoError(t, err)
	assert.Equal(t, model.EmotionNeutral, c.Primary.Emotion)
	assert.Equal(t, 50, c.Primary.Intensity)
	assert.False(t, c.MoodRisk)
}

func TestLexiconClassifierNoKeywordMatches(t *testing.T) {
	classifier := &lexiconClassifier{}

	c, err := classifier.Classify(context.Background(), "the weather report said rain tomorrow")

	require.NoError(t, err)
	assert.Equal(t, model.EmotionNeutral, c.Primary.Emotion)
}

func TestLexiconClassifierDetectsSadness(t *testing.T) {
	classifier := &lexiconClassifier{}

	c, err := classifier.Classify(context.Background(), "I feel so sad and lonely, I cried all day")

	require.NoError(t, err)
	assert.Equal(t, model.EmotionSad, c.Primary.Emotion)
	assert.True(t, c.Primary.Intensity >= 70)
	require.NotNil(t, c.Secondary)
	assert.Equal(t, model.EmotionLonely, c.Secondary.Emotion)
	assert.True(t, c.MoodRisk)
}

func TestLexiconClassifierDeterministic(t *testing.T) {
	classifier := &lexiconClassifier{}
	text := "worried and scared about forgetting things"

	first, err := classifier.Classify(context.Background(), text)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := classifier.Classify(context.Background(), text)
		require.NoError(t, err)
		assert.Equal(t, first.Primary, again.Primary)
		assert.Equal(t, first.Secondary, again.Secondary)
	}
}
