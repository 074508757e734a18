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

// ScoreRepo handles MongoDB operations for weekly progress scores. The
// history is append-only; recalculating the same week appends a new
// document rather than replacing the old one.
type ScoreRepo interface {
	Append(ctx context.Context, score *model.WeeklyScore) (string, error)
	// Oldest returns the earliest stored scores by week start, oldest first.
	Oldest(ctx context.Context, patientID string, n int64) ([]model.WeeklyScore, error)
	// Recent returns the latest stored scores by week start, newest first.
	Recent(ctx context.Context, patientID string, n int64) ([]model.WeeklyScore, error)
	RecentSince(ctx context.Context, patientID string, since time.Time, n int64) ([]model.WeeklyScore, error)
}

type scoreRepo struct {
	collection *mongo.Collection
}

// NewScoreRepo creates a new progress score repository
func NewScoreRepo(db *mongo.Database) ScoreRepo {
	return &scoreRepo{
		collection: db.Collection("progress_scores"),
	}
}

func (r *scoreRepo) Append(ctx context.Context, score *model.WeeklyScore) (string, error) {
	score.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, score)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	score.ID = oid.Hex()
	return score.ID, nil
}

func (r *scoreRepo) Oldest(ctx context.Context, patientID string, n int64) ([]model.WeeklyScore, error) {
	opts := options.Find().SetSort(bson.D{{Key: "weekStart", Value: 1}}).SetLimit(n)
	return r.find(ctx, bson.M{"patientId": patientID}, opts)
}

func (r *scoreRepo) Recent(ctx context.Context, patientID string, n int64) ([]model.WeeklyScore, error) {
	opts := options.Find().SetSort(bson.D{{Key: "weekStart", Value: -1}}).SetLimit(n)
	return r.find(ctx, bson.M{"patientId": patientID}, opts)
}

func (r *scoreRepo) RecentSince(ctx context.Context, patientID string, since time.Time, n int64) ([]model.WeeklyScore, error) {
	filter := bson.M{
		"patientId": patientID,
		"weekStart": bson.M{"$gte": since},
	}
	opts := options.Find().SetSort(bson.D{{Key: "weekStart", Value: -1}}).SetLimit(n)
	return r.find(ctx, filter, opts)
}

func (r *scoreRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]model.WeeklyScore, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var scores []model.WeeklyScore
	if err := cursor.All(ctx, &scores); err != nil {
		return nil, err
	}
	return scores, nil
}
