package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"legiscore/config"
	"legiscore/internal/model"
	"legiscore/internal/repository"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)
	userRepo := repository.NewUserRepo(db)
	billRepo := repository.NewBillRepo(db)
	assignmentRepo := repository.NewAssignmentRepo(db)

	users := []*model.User{
		{Username: "admin", Password: "password123", Role: model.RoleAdmin},
		{Username: "ana", Password: "score123", Role: model.RoleScorer},
		{Username: "ben", Password: "score123", Role: model.RoleScorer},
	}
	for _, u := range users {
		existing, err := userRepo.GetByUsername(ctx, u.Username)
		if err != nil {
			log.Fatalf("Failed to look up user %s: %v", u.Username, err)
		}
		if existing != nil {
			u.ID = existing.ID
			continue
		}
		if _, err := userRepo.Create(ctx, u); err != nil {
			log.Fatalf("Failed to create user %s: %v", u.Username, err)
		}
	}

	bills := []*model.Bill{
		{Number: "SB 1047", Title: "Safe and Secure Innovation for Frontier AI Models Act", State: "CA", Session: "2023-2024"},
		{Number: "HB 2094", Title: "High-Risk Artificial Intelligence Developer and Deployer Act", State: "VA", Session: "2025"},
		{Number: "S 7543", Title: "Legislative Oversight of Automated Decision-Making in Government Act", State: "NY", Session: "2023-2024"},
	}
	for _, b := range bills {
		count, err := db.Collection("bills").CountDocuments(ctx, bson.M{"number": b.Number})
		if err != nil {
			log.Fatalf("Failed to check bill %s: %v", b.Number, err)
		}
		if count > 0 {
			continue
		}
		if _, err := billRepo.Create(ctx, b); err != nil {
			log.Fatalf("Failed to create bill %s: %v", b.Number, err)
		}
	}

	// Give each scorer the first two bills
	for _, u := range users {
		if u.Role != model.RoleScorer || u.ID == "" {
			continue
		}
		for _, b := range bills[:2] {
			if b.ID == "" {
				continue
			}
			err := assignmentRepo.Create(ctx, &model.Assignment{UserID: u.ID, BillID: b.ID})
			if err == repository.ErrDuplicateAssignment {
				continue
			}
			if err != nil {
				log.Fatalf("Failed to assign bill %s to %s: %v", b.Number, u.Username, err)
			}
		}
	}

	fmt.Println("Seeded demo users, bills, and assignments")
}
