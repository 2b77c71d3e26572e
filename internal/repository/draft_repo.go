package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"legiscore/internal/model"
)

// DraftRepo persists working drafts, one per (user, bill)
type DraftRepo interface {
	Upsert(ctx context.Context, draft *model.Draft) error
	Get(ctx context.Context, userID, billID string) (*model.Draft, error)
	Delete(ctx context.Context, userID, billID string) error
}

type draftRepo struct {
	collection *mongo.Collection
}

// NewDraftRepo creates a new draft repository
func NewDraftRepo(db *mongo.Database) DraftRepo {
	return &draftRepo{
		collection: db.Collection("drafts"),
	}
}

func (r *draftRepo) Upsert(ctx context.Context, draft *model.Draft) error {
	draft.UpdatedAt = time.Now()
	filter := bson.M{"userId": draft.UserID, "billId": draft.BillID}
	_, err := r.collection.ReplaceOne(ctx, filter, draft, options.Replace().SetUpsert(true))
	return err
}

func (r *draftRepo) Get(ctx context.Context, userID, billID string) (*model.Draft, error) {
	var draft model.Draft
	err := r.collection.FindOne(ctx, bson.M{"userId": userID, "billId": billID}).Decode(&draft)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *draftRepo) Delete(ctx context.Context, userID, billID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID, "billId": billID})
	return err
}
