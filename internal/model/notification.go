package model

import "time"

// NotificationType identifies why a caregiver was notified.
type NotificationType string

const (
	NotifyEmotionAlert      NotificationType = "emotion_alert"
	NotifyDeclineAlert      NotificationType = "decline_alert"
	NotifyAppointmentMissed NotificationType = "appointment_missed"
	NotifyCombinedRiskAlert NotificationType = "combined_risk_alert"
)

// Priority is the notification priority level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Notification is one caregiver notification document. Delivery is
// best-effort; creating one never fails report generation.
type Notification struct {
	ID          string                 `json:"id" bson:"_id,omitempty"`
	RecipientID string                 `json:"recipientId" bson:"recipientId"`
	Title       string                 `json:"title" bson:"title"`
	Message     string                 `json:"message" bson:"message"`
	Type        NotificationType       `json:"type" bson:"type"`
	Priority    Priority               `json:"priority" bson:"priority"`
	Read        bool                   `json:"read" bson:"read"`
	Data        map[string]interface{} `json:"data,omitempty" bson:"data,omitempty"`
	CreatedAt   time.Time              `json:"createdAt" bson:"createdAt"`
}
