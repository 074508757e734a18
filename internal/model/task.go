package model

import "time"

// TaskType identifies the kind of scheduled task a reminder tracks.
type TaskType string

const (
	TaskMedication    TaskType = "medication"
	TaskAppointment   TaskType = "appointment"
	TaskMeal          TaskType = "meal"
	TaskBrainTraining TaskType = "brain_training"
	TaskJournal       TaskType = "journal"
)

// Reminder is a scheduled task from the reminders collection. Read-only to
// the analytics layer.
type Reminder struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	PatientID string    `json:"patientId" bson:"userId"`
	Type      TaskType  `json:"type" bson:"type"`
	Title     string    `json:"title,omitempty" bson:"title,omitempty"`
	Time      time.Time `json:"time" bson:"time"`
	Completed bool      `json:"isCompleted" bson:"isCompleted"`
	Missed    bool      `json:"isMissed" bson:"isMissed"`
}

// GameScore is one brain-training session from the game_scores collection.
// Every recorded session counts toward the weekly score.
type GameScore struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	PatientID string    `json:"patientId" bson:"userId"`
	Game      string    `json:"game,omitempty" bson:"game,omitempty"`
	Score     int       `json:"score,omitempty" bson:"score,omitempty"`
	PlayedAt  time.Time `json:"playedAt" bson:"playedAt"`
}
