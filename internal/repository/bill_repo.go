package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"legiscore/internal/model"
)

// BillRepo persists bills available for scoring
type BillRepo interface {
	Create(ctx context.Context, bill *model.Bill) (string, error)
	GetByID(ctx context.Context, id string) (*model.Bill, error)
	List(ctx context.Context) ([]*model.Bill, error)
	Delete(ctx context.Context, id string) error
}

type billRepo struct {
	collection *mongo.Collection
}

// NewBillRepo creates a new bill repository
func NewBillRepo(db *mongo.Database) BillRepo {
	return &billRepo{
		collection: db.Collection("bills"),
	}
}

func (r *billRepo) Create(ctx context.Context, bill *model.Bill) (string, error) {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	bill.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, bill)
	if err != nil {
		return "", err
	}
	return bill.ID, nil
}

func (r *billRepo) GetByID(ctx context.Context, id string) (*model.Bill, error) {
	var bill model.Bill
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&bill)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *billRepo) List(ctx context.Context) ([]*model.Bill, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bills []*model.Bill
	if err := cursor.All(ctx, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *billRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
