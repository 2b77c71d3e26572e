package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"legiscore/internal/model"
	"legiscore/internal/repository"
	"legiscore/internal/service"
)

// AdminHandler handles bill, user, and submission administration
type AdminHandler struct {
	billRepo       repository.BillRepo
	userRepo       repository.UserRepo
	submissionRepo repository.SubmissionRepo
	assignmentSvc  *service.AssignmentService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	billRepo repository.BillRepo,
	userRepo repository.UserRepo,
	submissionRepo repository.SubmissionRepo,
	assignmentSvc *service.AssignmentService,
) *AdminHandler {
	return &AdminHandler{
		billRepo:       billRepo,
		userRepo:       userRepo,
		submissionRepo: submissionRepo,
		assignmentSvc:  assignmentSvc,
	}
}

// CreateBillRequest is the request body for adding a bill
type CreateBillRequest struct {
	Number  string `json:"number"`
	Title   string `json:"title"`
	State   string `json:"state"`
	Session string `json:"session"`
	URL     string `json:"url,omitempty"`
}

// CreateBill handles POST /v1/bills
func (h *AdminHandler) CreateBill(w http.ResponseWriter, r *http.Request) {
	var req CreateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title required")
		return
	}

	bill := &model.Bill{
		Number:  req.Number,
		Title:   req.Title,
		State:   req.State,
		Session: req.Session,
		URL:     req.URL,
	}
	id, err := h.billRepo.Create(r.Context(), bill)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"billId": id})
}

// ListBills handles GET /v1/bills
func (h *AdminHandler) ListBills(w http.ResponseWriter, r *http.Request) {
	bills, err := h.billRepo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"bills": bills})
}

// GetBill handles GET /v1/bills/{billId}
func (h *AdminHandler) GetBill(w http.ResponseWriter, r *http.Request) {
	bill, err := h.billRepo.GetByID(r.Context(), mux.Vars(r)["billId"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if bill == nil {
		writeError(w, http.StatusNotFound, "bill not found")
		return
	}
	writeJSON(w, http.StatusOK, bill)
}

// DeleteBill handles DELETE /v1/bills/{billId}
func (h *AdminHandler) DeleteBill(w http.ResponseWriter, r *http.Request) {
	if err := h.billRepo.Delete(r.Context(), mux.Vars(r)["billId"]); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ListUsers handles GET /v1/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userRepo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

// UpdateRoleRequest is the request body for changing a user's role
type UpdateRoleRequest struct {
	Role model.Role `json:"role"`
}

// UpdateUserRole handles PUT /v1/users/{userId}/role
func (h *AdminHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	var req UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Role != model.RoleAdmin && req.Role != model.RoleScorer {
		writeError(w, http.StatusBadRequest, "unknown role")
		return
	}

	if err := h.userRepo.UpdateRole(r.Context(), mux.Vars(r)["userId"], req.Role); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// ListBillSubmissions handles GET /v1/bills/{billId}/submissions
func (h *AdminHandler) ListBillSubmissions(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.submissionRepo.ListByBill(r.Context(), mux.Vars(r)["billId"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"submissions": submissions})
}

// ListBillAssignments handles GET /v1/bills/{billId}/assignments
func (h *AdminHandler) ListBillAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.assignmentSvc.ListByBill(r.Context(), mux.Vars(r)["billId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"assignments": assignments})
}
