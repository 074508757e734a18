package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"alzmate/internal/model"
)

// TaskRepo reads scheduled tasks and brain training sessions. The
// collections are written by the patient-facing app; the analytics side
// only reads them, except for flagging a reminder as missed.
type TaskRepo interface {
	RemindersInRange(ctx context.Context, patientID string, start, end time.Time) ([]model.Reminder, error)
	BrainTrainingSessions(ctx context.Context, patientID string, start, end time.Time) ([]model.GameScore, error)

	// MarkMissed flags a reminder as missed and returns the updated
	// document, or (nil, nil) when no reminder has that id.
	MarkMissed(ctx context.Context, reminderID string) (*model.Reminder, error)
}

type taskRepo struct {
	reminders  *mongo.Collection
	gameScores *mongo.Collection
}

// NewTaskRepo creates a new task repository
func NewTaskRepo(db *mongo.Database) TaskRepo {
	return &taskRepo{
		reminders:  db.Collection("reminders"),
		gameScores: db.Collection("game_scores"),
	}
}

func (r *taskRepo) RemindersInRange(ctx context.Context, patientID string, start, end time.Time) ([]model.Reminder, error) {
	filter := bson.M{
		"userId": patientID,
		"time":   bson.M{"$gte": start, "$lte": end},
	}

	cursor, err := r.reminders.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reminders []model.Reminder
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *taskRepo) BrainTrainingSessions(ctx context.Context, patientID string, start, end time.Time) ([]model.GameScore, error) {
	filter := bson.M{
		"userId":   patientID,
		"playedAt": bson.M{"$gte": start, "$lte": end},
	}

	cursor, err := r.gameScores.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []model.GameScore
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *taskRepo) MarkMissed(ctx context.Context, reminderID string) (*model.Reminder, error) {
	filter := bson.M{"_id": reminderID}
	if oid, err := primitive.ObjectIDFromHex(reminderID); err == nil {
		filter = bson.M{"_id": oid}
	}

	update := bson.M{"$set": bson.M{"isMissed": true}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var reminder model.Reminder
	err := r.reminders.FindOneAndUpdate(ctx, filter, update, opts).Decode(&reminder)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reminder, nil
}
