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

// EntryRepo handles MongoDB operations for emotion analysis entries
type EntryRepo interface {
	Save(ctx context.Context, entry *model.EmotionEntry) (string, error)
	// Query returns entries sorted newest-first. The detectors depend on
	// this ordering when they split histories into early and late halves.
	Query(ctx context.Context, patientID string, start, end *time.Time, limit int64) ([]model.EmotionEntry, error)
	AttachToJournalEntry(ctx context.Context, journalEntryID, analysisID string) error
}

type entryRepo struct {
	analyses *mongo.Collection
	journals *mongo.Collection
}

// NewEntryRepo creates a new emotion entry repository
func NewEntryRepo(db *mongo.Database) EntryRepo {
	return &entryRepo{
		analyses: db.Collection("emotion_analysis"),
		journals: db.Collection("journal_entries"),
	}
}

func (r *entryRepo) Save(ctx context.Context, entry *model.EmotionEntry) (string, error) {
	entry.CreatedAt = time.Now()
	if entry.Timestamp.IsZero() {
		entry.Timestamp = entry.CreatedAt
	}

	result, err := r.analyses.InsertOne(ctx, entry)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	entry.ID = oid.Hex()
	return entry.ID, nil
}

func (r *entryRepo) Query(ctx context.Context, patientID string, start, end *time.Time, limit int64) ([]model.EmotionEntry, error) {
	filter := bson.M{"patientId": patientID}

	timeRange := bson.M{}
	if start != nil {
		timeRange["$gte"] = *start
	}
	if end != nil {
		timeRange["$lte"] = *end
	}
	if len(timeRange) > 0 {
		filter["timestamp"] = timeRange
	}

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.analyses.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []model.EmotionEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *entryRepo) AttachToJournalEntry(ctx context.Context, journalEntryID, analysisID string) error {
	filter := bson.M{"_id": journalEntryID}
	if oid, err := primitive.ObjectIDFromHex(journalEntryID); err == nil {
		filter = bson.M{"_id": oid}
	}

	update := bson.M{"$set": bson.M{
		"emotionAnalysisId": analysisID,
		"analyzedAt":        time.Now(),
	}}
	_, err := r.journals.UpdateOne(ctx, filter, update)
	return err
}
