package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"alzmate/internal/model"
	"alzmate/internal/repository"
)

// NotificationService fans alerts out to a patient's caregivers: one
// notification document per caregiver plus a WebSocket push when the
// caregiver is connected. Delivery is best-effort; every failure is logged
// and none propagates to the caller.
type NotificationService struct {
	users         repository.UserRepo
	notifications repository.NotificationRepo
	broadcaster   Broadcaster
	logger        *zap.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(users repository.UserRepo, notifications repository.NotificationRepo, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		users:         users,
		notifications: notifications,
		logger:        logger,
	}
}

// SetBroadcaster wires the WebSocket hub after construction (avoids import cycle)
func (s *NotificationService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// NotifyEmotionAlert alerts caregivers about a high-risk journal entry.
func (s *NotificationService) NotifyEmotionAlert(ctx context.Context, patientID string, entry *model.EmotionEntry) {
	name := s.patientName(ctx, patientID)
	message := fmt.Sprintf("%s's journal entry shows %s at intensity %d/100. Consider checking in.",
		name, entry.PrimaryEmotion, entry.PrimaryIntensity)

	s.fanOut(ctx, patientID, &model.Notification{
		Title:    "Emotional Distress Alert",
		Message:  message,
		Type:     model.NotifyEmotionAlert,
		Priority: model.PriorityHigh,
		Data: map[string]interface{}{
			"patientId":      patientID,
			"primaryEmotion": entry.PrimaryEmotion,
			"intensity":      entry.PrimaryIntensity,
			"entryId":        entry.ID,
		},
	})
}

// NotifyDeclineAlert alerts caregivers about a confirmed task-performance decline.
func (s *NotificationService) NotifyDeclineAlert(ctx context.Context, patientID string, decline *model.DeclineResult) {
	name := s.patientName(ctx, patientID)
	message := fmt.Sprintf("%s's weekly task score dropped to %.1f", name, decline.CurrentScore)
	if decline.Baseline != nil {
		message = fmt.Sprintf("%s's weekly task score dropped to %.1f, down %.1f points from their baseline of %.1f.",
			name, decline.CurrentScore, *decline.Difference, *decline.Baseline)
	}

	s.fanOut(ctx, patientID, &model.Notification{
		Title:    "Progress Decline Detected",
		Message:  message,
		Type:     model.NotifyDeclineAlert,
		Priority: model.PriorityHigh,
		Data: map[string]interface{}{
			"patientId":    patientID,
			"currentScore": decline.CurrentScore,
			"baseline":     decline.Baseline,
		},
	})
}

// NotifyCombinedRisk alerts caregivers when the fused risk level reaches
// high or critical.
func (s *NotificationService) NotifyCombinedRisk(ctx context.Context, patientID string, report *model.CombinedReport) {
	risk := report.CombinedRiskAssessment
	if risk == nil {
		return
	}

	priority := model.PriorityHigh
	if risk.CombinedRiskLevel == model.RiskCritical {
		priority = model.PriorityUrgent
	}

	name := s.patientName(ctx, patientID)
	message := fmt.Sprintf("%s's combined risk level is %s. %s %s",
		name, risk.CombinedRiskLevel, risk.Reason, risk.Recommendation)

	s.fanOut(ctx, patientID, &model.Notification{
		Title:    "Combined Risk Alert",
		Message:  message,
		Type:     model.NotifyCombinedRiskAlert,
		Priority: priority,
		Data: map[string]interface{}{
			"patientId":      patientID,
			"riskLevel":      risk.CombinedRiskLevel,
			"reason":         risk.Reason,
			"recommendation": risk.Recommendation,
		},
	})
}

// NotifyAppointmentMissed alerts caregivers about a missed appointment.
func (s *NotificationService) NotifyAppointmentMissed(ctx context.Context, patientID string, reminder *model.Reminder) {
	name := s.patientName(ctx, patientID)
	title := reminder.Title
	if title == "" {
		title = "an appointment"
	}
	message := fmt.Sprintf("%s missed %s scheduled for %s.",
		name, title, reminder.Time.Format("Jan 2 at 3:04 PM"))

	s.fanOut(ctx, patientID, &model.Notification{
		Title:    "Missed Appointment",
		Message:  message,
		Type:     model.NotifyAppointmentMissed,
		Priority: model.PriorityMedium,
		Data: map[string]interface{}{
			"patientId":  patientID,
			"reminderId": reminder.ID,
		},
	})
}

func (s *NotificationService) patientName(ctx context.Context, patientID string) string {
	user, err := s.users.GetByID(ctx, patientID)
	if err != nil {
		s.logger.Warn("patient lookup failed", zap.String("patientId", patientID), zap.Error(err))
		return "Patient"
	}
	if user == nil || user.Name == "" {
		return "Patient"
	}
	return user.Name
}

// fanOut persists and pushes one copy of the notification per caregiver.
func (s *NotificationService) fanOut(ctx context.Context, patientID string, template *model.Notification) {
	user, err := s.users.GetByID(ctx, patientID)
	if err != nil {
		s.logger.Warn("caregiver lookup failed",
			zap.String("patientId", patientID), zap.Error(err))
		return
	}
	if user == nil || len(user.CaregiverIDs) == 0 {
		s.logger.Info("no caregivers linked to patient", zap.String("patientId", patientID))
		return
	}

	for _, caregiverID := range user.CaregiverIDs {
		notification := *template
		notification.RecipientID = caregiverID

		if _, err := s.notifications.Create(ctx, &notification); err != nil {
			s.logger.Warn("notification persist failed",
				zap.String("caregiverId", caregiverID),
				zap.String("type", string(notification.Type)),
				zap.Error(err))
			continue
		}

		if s.broadcaster != nil {
			s.broadcaster.BroadcastToCaregiver(caregiverID, string(notification.Type), &notification)
		}
	}
}
