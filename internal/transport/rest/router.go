package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"legiscore/internal/catalog"
	"legiscore/internal/repository"
	"legiscore/internal/service"
	"legiscore/internal/transport/rest/handler"
	"legiscore/internal/transport/rest/middleware"
	"legiscore/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	Catalog           *catalog.Catalog
	AuthService       *service.AuthService
	ScorecardService  *service.ScorecardService
	AssignmentService *service.AssignmentService
	BillRepo          repository.BillRepo
	UserRepo          repository.UserRepo
	SubmissionRepo    repository.SubmissionRepo
	WSHub             *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	scorecardHandler := handler.NewScorecardHandler(c.ScorecardService, c.Catalog)
	assignmentHandler := handler.NewAssignmentHandler(c.AssignmentService)
	adminHandler := handler.NewAdminHandler(c.BillRepo, c.UserRepo, c.SubmissionRepo, c.AssignmentService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket route (token in query param)
	v1.HandleFunc("/ws/score", wsHandler.ScoreWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Scorer routes (require auth)
	scorerRoutes := v1.NewRoute().Subrouter()
	scorerRoutes.Use(authMW.RequireAuth)

	scorerRoutes.HandleFunc("/assignments", assignmentHandler.List).Methods("GET", "OPTIONS")
	scorerRoutes.HandleFunc("/assignments/in-progress", assignmentHandler.InProgress).Methods("GET", "OPTIONS")
	scorerRoutes.HandleFunc("/assignments/{id}/start", assignmentHandler.Start).Methods("POST", "OPTIONS")
	scorerRoutes.HandleFunc("/scorecard/sections", scorecardHandler.Sections).Methods("GET", "OPTIONS")
	scorerRoutes.HandleFunc("/bills/{billId}/draft", scorecardHandler.GetDraft).Methods("GET", "OPTIONS")
	scorerRoutes.HandleFunc("/bills/{billId}/answers/{questionId}", scorecardHandler.SetAnswer).Methods("PUT", "OPTIONS")
	scorerRoutes.HandleFunc("/bills/{billId}/flags/{questionId}", scorecardHandler.ToggleFlag).Methods("POST", "OPTIONS")
	scorerRoutes.HandleFunc("/bills/{billId}/notes/{sectionId}", scorecardHandler.SetNote).Methods("PUT", "OPTIONS")
	scorerRoutes.HandleFunc("/bills/{billId}/section", scorecardHandler.SetCurrentSection).Methods("PUT", "OPTIONS")
	scorerRoutes.HandleFunc("/bills/{billId}/submit", scorecardHandler.Submit).Methods("POST", "OPTIONS")

	// Admin routes (require admin role)
	adminRoutes := v1.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/bills", adminHandler.CreateBill).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/bills", adminHandler.ListBills).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/bills/{billId}", adminHandler.GetBill).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/bills/{billId}", adminHandler.DeleteBill).Methods("DELETE", "OPTIONS")
	adminRoutes.HandleFunc("/bills/{billId}/submissions", adminHandler.ListBillSubmissions).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/bills/{billId}/assignments", adminHandler.ListBillAssignments).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/users", adminHandler.ListUsers).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/users/{userId}/role", adminHandler.UpdateUserRole).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/assignments", assignmentHandler.Assign).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/assignments/{id}", assignmentHandler.Unassign).Methods("DELETE", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
