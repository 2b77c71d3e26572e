package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"legiscore/config"
	"legiscore/internal/cache"
	"legiscore/internal/catalog"
	"legiscore/internal/repository"
	"legiscore/internal/service"
	"legiscore/internal/transport/rest"
	"legiscore/internal/transport/ws"
)

func main() {
	ctx := context.Background()

	cfg := config.Load()

	// Question catalog: compiled in, validated at startup
	cat := catalog.Default()
	log.Printf("Catalog loaded: %d sections, %d questions", len(cat.Sections()), len(cat.QuestionIDs()))

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	draftRepo := repository.NewDraftRepo(db)
	submissionRepo := repository.NewSubmissionRepo(db)
	assignmentRepo := repository.NewAssignmentRepo(db)
	billRepo := repository.NewBillRepo(db)
	userRepo := repository.NewUserRepo(db)

	// Initialize caches
	draftCache := cache.NewDraftCache(rdb)
	sessionCache := cache.NewSessionCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService(userRepo)
	scorecardSvc := service.NewScorecardService(cat, draftRepo, submissionRepo, assignmentRepo, draftCache, sessionCache)
	assignmentSvc := service.NewAssignmentService(assignmentRepo, billRepo, userRepo, draftRepo, draftCache, sessionCache)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	scorecardSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		Catalog:           cat,
		AuthService:       authSvc,
		ScorecardService:  scorecardSvc,
		AssignmentService: assignmentSvc,
		BillRepo:          billRepo,
		UserRepo:          userRepo,
		SubmissionRepo:    submissionRepo,
		WSHub:             wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  GET  /v1/assignments")
		log.Println("  POST /v1/assignments/{id}/start")
		log.Println("  GET  /v1/scorecard/sections")
		log.Println("  GET  /v1/bills/{billId}/draft")
		log.Println("  PUT  /v1/bills/{billId}/answers/{questionId}")
		log.Println("  POST /v1/bills/{billId}/submit")
		log.Println("  WS   /v1/ws/score")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	// Drain pending draft autosaves before exit
	scorecardSvc.Queue().Close()

	log.Println("Server exited")
}
