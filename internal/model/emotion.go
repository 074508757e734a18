package model

import "time"

// Emotion is the closed set of emotion labels the classifier output is
// normalized into.
type Emotion string

const (
	EmotionHappy      Emotion = "happy"
	EmotionSad        Emotion = "sad"
	EmotionAngry      Emotion = "angry"
	EmotionAnxious    Emotion = "anxious"
	EmotionFearful    Emotion = "fearful"
	EmotionConfused   Emotion = "confused"
	EmotionFrustrated Emotion = "frustrated"
	EmotionCalm       Emotion = "calm"
	EmotionLonely     Emotion = "lonely"
	EmotionDepressed  Emotion = "depressed/low mood"
	EmotionNeutral    Emotion = "neutral"
)

var negativeEmotions = map[Emotion]bool{
	EmotionSad:        true,
	EmotionAngry:      true,
	EmotionAnxious:    true,
	EmotionFearful:    true,
	EmotionConfused:   true,
	EmotionFrustrated: true,
	EmotionLonely:     true,
	EmotionDepressed:  true,
}

// Negative reports whether the emotion belongs to the negative subset used by
// the risk detectors.
func (e Emotion) Negative() bool {
	return negativeEmotions[e]
}

// EmotionEntry is one classified journal entry. Entries are immutable after
// creation; the store returns them ordered newest-first.
type EmotionEntry struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	PatientID string    `json:"patientId" bson:"patientId"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`

	JournalText   string `json:"journalText" bson:"journalText"`
	ProcessedText string `json:"processedText,omitempty" bson:"processedText,omitempty"`

	PrimaryEmotion    Emotion `json:"primaryEmotion" bson:"primaryEmotion"`
	PrimaryIntensity  int     `json:"primaryIntensity" bson:"primaryIntensity"`
	PrimaryConfidence float64 `json:"primaryConfidence" bson:"primaryConfidence"`

	SecondaryEmotion    Emotion `json:"secondaryEmotion,omitempty" bson:"secondaryEmotion,omitempty"`
	SecondaryIntensity  int     `json:"secondaryIntensity,omitempty" bson:"secondaryIntensity,omitempty"`
	SecondaryConfidence float64 `json:"secondaryConfidence,omitempty" bson:"secondaryConfidence,omitempty"`

	InterpretationTag string `json:"interpretationTag,omitempty" bson:"interpretationTag,omitempty"`
	MoodRisk          bool   `json:"moodRisk" bson:"moodRisk"`

	JournalEntryID string    `json:"journalEntryId,omitempty" bson:"journalEntryId,omitempty"`
	AudioURL       string    `json:"audioUrl,omitempty" bson:"audioUrl,omitempty"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
}

// HasSecondary reports whether a secondary emotion was recorded.
func (e *EmotionEntry) HasSecondary() bool {
	return e.SecondaryEmotion != ""
}

// EmotionScore is one ranked classifier output after label normalization.
type EmotionScore struct {
	Emotion           Emotion `json:"emotion"`
	OriginalLabel     string  `json:"originalLabel,omitempty"`
	Confidence        float64 `json:"confidence"`
	Intensity         int     `json:"intensity"`
	InterpretationTag string  `json:"interpretationTag,omitempty"`
}

// Classification is the full classifier result for one piece of text.
type Classification struct {
	Primary           EmotionScore  `json:"primaryEmotion"`
	Secondary         *EmotionScore `json:"secondaryEmotion,omitempty"`
	InterpretationTag string        `json:"interpretationTag"`
	MoodRisk          bool          `json:"moodRisk"`
	ProcessedText     string        `json:"processedText,omitempty"`
}
