package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"legiscore/internal/model"
)

// SubmissionRepo persists immutable scorecard submissions
type SubmissionRepo interface {
	// CreateIdempotent inserts the submission unless one already exists for
	// the assignment, in which case the existing record is returned
	// unchanged. Safe to retry after a partial submit failure.
	CreateIdempotent(ctx context.Context, submission *model.Submission) (*model.Submission, error)
	GetByAssignment(ctx context.Context, assignmentID string) (*model.Submission, error)
	ListByBill(ctx context.Context, billID string) ([]*model.Submission, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Submission, error)
}

type submissionRepo struct {
	collection *mongo.Collection
}

// NewSubmissionRepo creates a new submission repository
func NewSubmissionRepo(db *mongo.Database) SubmissionRepo {
	return &submissionRepo{
		collection: db.Collection("submissions"),
	}
}

func (r *submissionRepo) CreateIdempotent(ctx context.Context, submission *model.Submission) (*model.Submission, error) {
	if submission.ID == "" {
		submission.ID = uuid.New().String()
	}
	if submission.SubmittedAt.IsZero() {
		submission.SubmittedAt = time.Now()
	}

	filter := bson.M{"assignmentId": submission.AssignmentID}
	update := bson.M{"$setOnInsert": submission}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored model.Submission
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *submissionRepo) GetByAssignment(ctx context.Context, assignmentID string) (*model.Submission, error) {
	var submission model.Submission
	err := r.collection.FindOne(ctx, bson.M{"assignmentId": assignmentID}).Decode(&submission)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepo) ListByBill(ctx context.Context, billID string) ([]*model.Submission, error) {
	return r.list(ctx, bson.M{"billId": billID})
}

func (r *submissionRepo) ListByUser(ctx context.Context, userID string) ([]*model.Submission, error) {
	return r.list(ctx, bson.M{"userId": userID})
}

func (r *submissionRepo) list(ctx context.Context, filter bson.M) ([]*model.Submission, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var submissions []*model.Submission
	if err := cursor.All(ctx, &submissions); err != nil {
		return nil, err
	}
	return submissions, nil
}
