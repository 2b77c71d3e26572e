package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"legiscore/internal/model"
)

var (
	// ErrDuplicateAssignment is returned when a (user, bill) pair is assigned twice
	ErrDuplicateAssignment = errors.New("assignment already exists for user and bill")
	// ErrInvalidTransition is returned for a status change outside the lifecycle
	ErrInvalidTransition = errors.New("invalid assignment status transition")
)

// AssignmentRepo persists user-to-bill scoring assignments
type AssignmentRepo interface {
	Create(ctx context.Context, assignment *model.Assignment) error
	GetByID(ctx context.Context, id string) (*model.Assignment, error)
	GetByUserAndBill(ctx context.Context, userID, billID string) (*model.Assignment, error)
	GetInProgress(ctx context.Context, userID string) (*model.Assignment, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Assignment, error)
	ListByBill(ctx context.Context, billID string) ([]*model.Assignment, error)
	// UpdateStatus applies a guarded transition: the stored status must still
	// equal from, and from -> to must be a legal lifecycle edge.
	UpdateStatus(ctx context.Context, id string, from, to model.AssignmentStatus) error
	Delete(ctx context.Context, id string) error
}

type assignmentRepo struct {
	collection *mongo.Collection
}

// NewAssignmentRepo creates a new assignment repository
func NewAssignmentRepo(db *mongo.Database) AssignmentRepo {
	return &assignmentRepo{
		collection: db.Collection("assignments"),
	}
}

func (r *assignmentRepo) Create(ctx context.Context, assignment *model.Assignment) error {
	existing, err := r.GetByUserAndBill(ctx, assignment.UserID, assignment.BillID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateAssignment
	}

	if assignment.ID == "" {
		assignment.ID = uuid.New().String()
	}
	if assignment.Status == "" {
		assignment.Status = model.AssignmentAssigned
	}
	assignment.CreatedAt = time.Now()
	assignment.UpdatedAt = assignment.CreatedAt

	_, err = r.collection.InsertOne(ctx, assignment)
	return err
}

func (r *assignmentRepo) GetByID(ctx context.Context, id string) (*model.Assignment, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *assignmentRepo) GetByUserAndBill(ctx context.Context, userID, billID string) (*model.Assignment, error) {
	return r.findOne(ctx, bson.M{"userId": userID, "billId": billID})
}

func (r *assignmentRepo) GetInProgress(ctx context.Context, userID string) (*model.Assignment, error) {
	return r.findOne(ctx, bson.M{"userId": userID, "status": model.AssignmentInProgress})
}

func (r *assignmentRepo) findOne(ctx context.Context, filter bson.M) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.collection.FindOne(ctx, filter).Decode(&assignment)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepo) ListByUser(ctx context.Context, userID string) ([]*model.Assignment, error) {
	return r.list(ctx, bson.M{"userId": userID})
}

func (r *assignmentRepo) ListByBill(ctx context.Context, billID string) ([]*model.Assignment, error) {
	return r.list(ctx, bson.M{"billId": billID})
}

func (r *assignmentRepo) list(ctx context.Context, filter bson.M) ([]*model.Assignment, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assignments []*model.Assignment
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepo) UpdateStatus(ctx context.Context, id string, from, to model.AssignmentStatus) error {
	if !model.ValidTransition(from, to) {
		return ErrInvalidTransition
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrInvalidTransition
	}
	return nil
}

func (r *assignmentRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
