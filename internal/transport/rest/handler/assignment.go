package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"legiscore/internal/repository"
	"legiscore/internal/service"
	"legiscore/internal/transport/rest/middleware"
)

// AssignmentHandler handles assignment endpoints
type AssignmentHandler struct {
	assignmentSvc *service.AssignmentService
}

// NewAssignmentHandler creates a new assignment handler
func NewAssignmentHandler(assignmentSvc *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc}
}

// List handles GET /v1/assignments
func (h *AssignmentHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	views, err := h.assignmentSvc.ListForUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"assignments": views})
}

// InProgress handles GET /v1/assignments/in-progress
func (h *AssignmentHandler) InProgress(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	assignment, err := h.assignmentSvc.GetInProgress(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if assignment == nil {
		writeError(w, http.StatusNotFound, "no assignment in progress")
		return
	}
	writeJSON(w, http.StatusOK, assignment)
}

// Start handles POST /v1/assignments/{id}/start
func (h *AssignmentHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	assignmentID := mux.Vars(r)["id"]

	assignment, err := h.assignmentSvc.Start(r.Context(), userID, assignmentID)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidTransition) {
			writeError(w, http.StatusConflict, "assignment already completed")
			return
		}
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assignment)
}

// AssignRequest is the admin request body for creating an assignment
type AssignRequest struct {
	UserID string `json:"userId"`
	BillID string `json:"billId"`
}

// Assign handles POST /v1/assignments (admin)
func (h *AssignmentHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" || req.BillID == "" {
		writeError(w, http.StatusBadRequest, "userId and billId required")
		return
	}

	assignment, err := h.assignmentSvc.Assign(r.Context(), req.UserID, req.BillID)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateAssignment) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, assignment)
}

// Unassign handles DELETE /v1/assignments/{id} (admin)
func (h *AssignmentHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	assignmentID := mux.Vars(r)["id"]

	if err := h.assignmentSvc.Unassign(r.Context(), assignmentID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
