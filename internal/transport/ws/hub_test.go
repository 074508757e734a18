package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alzmate/internal/model"
	"alzmate/internal/service"
)

var _ service.Broadcaster = (*Hub)(nil)

type stubUserRepo struct {
	user *model.User
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return s.user, nil
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.user, nil
}

type stubNotificationRepo struct{}

func (s *stubNotificationRepo) Create(ctx context.Context, notification *model.Notification) (string, error) {
	return "n1", nil
}

func receiveMessage(t *testing.T, conn *Connection) *Message {
	t.Helper()
	select {
	case data := <-conn.Send:
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return &msg
	case <-time.After(time.Second):
		t.Fatal("no message delivered to connection")
		return nil
	}
}

func TestHubDeliversToRegisteredCaregiver(t *testing.T) {
	hub := NewHub(zap.NewNop())

	conn := &Connection{CaregiverID: "c1", Send: make(chan []byte, 4), Hub: hub}
	hub.Register(conn)

	hub.BroadcastToCaregiver("c1", string(MsgDeclineAlert), map[string]string{"patientId": "p1"})

	msg := receiveMessage(t, conn)
	assert.Equal(t, MsgDeclineAlert, msg.Type)
}

func TestHubIgnoresUnknownCaregiver(t *testing.T) {
	hub := NewHub(zap.NewNop())

	conn := &Connection{CaregiverID: "c1", Send: make(chan []byte, 4), Hub: hub}
	hub.Register(conn)

	hub.BroadcastToCaregiver("someone-else", string(MsgEmotionAlert), map[string]string{})

	select {
	case <-conn.Send:
		t.Fatal("message delivered to the wrong caregiver")
	case <-time.After(50 * time.Millisecond):
	}
}

// A notification fanned out for a patient must arrive on the hub connection
// registered under the caregiver ID linked to that patient.
func TestNotificationFanOutReachesHubConnection(t *testing.T) {
	hub := NewHub(zap.NewNop())

	conn := &Connection{CaregiverID: "c1", Send: make(chan []byte, 4), Hub: hub}
	hub.Register(conn)

	users := &stubUserRepo{user: &model.User{ID: "p1", Name: "Rose", CaregiverIDs: []string{"c1"}}}
	notifier := service.NewNotificationService(users, &stubNotificationRepo{}, zap.NewNop())
	notifier.SetBroadcaster(hub)

	notifier.NotifyEmotionAlert(context.Background(), "p1", &model.EmotionEntry{
		PrimaryEmotion:   model.EmotionSad,
		PrimaryIntensity: 85,
	})

	msg := receiveMessage(t, conn)
	assert.Equal(t, MsgEmotionAlert, msg.Type)

	var notification model.Notification
	require.NoError(t, json.Unmarshal(msg.Payload, &notification))
	assert.Equal(t, "c1", notification.RecipientID)
}
