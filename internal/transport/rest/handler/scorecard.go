package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"legiscore/internal/catalog"
	"legiscore/internal/model"
	"legiscore/internal/service"
	"legiscore/internal/transport/rest/middleware"
)

// ScorecardHandler handles the questionnaire endpoints
type ScorecardHandler struct {
	scorecardSvc *service.ScorecardService
	cat          *catalog.Catalog
}

// NewScorecardHandler creates a new scorecard handler
func NewScorecardHandler(scorecardSvc *service.ScorecardService, cat *catalog.Catalog) *ScorecardHandler {
	return &ScorecardHandler{
		scorecardSvc: scorecardSvc,
		cat:          cat,
	}
}

// SectionView is one catalog section with its (optionally filtered) questions
type SectionView struct {
	model.Section
	Questions []model.Question `json:"questions"`
}

// Sections handles GET /v1/scorecard/sections. With ?billId= the dependency
// filter is applied against the caller's current draft.
func (h *ScorecardHandler) Sections(w http.ResponseWriter, r *http.Request) {
	var answers model.AnswerMap
	if billID := r.URL.Query().Get("billId"); billID != "" {
		userID := middleware.GetUserID(r.Context())
		draft, err := h.scorecardSvc.GetDraft(r.Context(), userID, billID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		answers = draft.Answers
	}

	sections := h.cat.Sections()
	views := make([]SectionView, 0, len(sections))
	for _, sec := range sections {
		questions := h.cat.Questions(sec.ID)
		if answers != nil {
			questions = h.cat.FilterVisible(questions, answers)
		}
		views = append(views, SectionView{Section: sec, Questions: questions})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"sections": views})
}

// GetDraft handles GET /v1/bills/{billId}/draft
func (h *ScorecardHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	billID := mux.Vars(r)["billId"]

	draft, err := h.scorecardSvc.GetDraft(r.Context(), userID, billID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// SetAnswerRequest is the request body for recording an answer
type SetAnswerRequest struct {
	Choice  string   `json:"choice,omitempty"`
	Choices []string `json:"choices,omitempty"`
}

// SetAnswer handles PUT /v1/bills/{billId}/answers/{questionId}
func (h *ScorecardHandler) SetAnswer(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	vars := mux.Vars(r)

	var req SetAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Choice == "" && len(req.Choices) == 0 {
		writeError(w, http.StatusBadRequest, "answer value required")
		return
	}

	value := model.AnswerValue{Choice: req.Choice, Choices: req.Choices}
	draft, err := h.scorecardSvc.SetAnswer(r.Context(), userID, vars["billId"], vars["questionId"], value)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// ToggleFlag handles POST /v1/bills/{billId}/flags/{questionId}
func (h *ScorecardHandler) ToggleFlag(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	vars := mux.Vars(r)

	draft, err := h.scorecardSvc.ToggleFlag(r.Context(), userID, vars["billId"], vars["questionId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// SetNoteRequest is the request body for replacing a section note
type SetNoteRequest struct {
	Text string `json:"text"`
}

// SetNote handles PUT /v1/bills/{billId}/notes/{sectionId}
func (h *ScorecardHandler) SetNote(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	vars := mux.Vars(r)

	var req SetNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft, err := h.scorecardSvc.SetNote(r.Context(), userID, vars["billId"], vars["sectionId"], req.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// SetSectionRequest is the request body for moving the section pointer
type SetSectionRequest struct {
	SectionID string `json:"sectionId"`
}

// SetCurrentSection handles PUT /v1/bills/{billId}/section
func (h *ScorecardHandler) SetCurrentSection(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	billID := mux.Vars(r)["billId"]

	var req SetSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft, err := h.scorecardSvc.SetCurrentSection(r.Context(), userID, billID, req.SectionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// Submit handles POST /v1/bills/{billId}/submit
func (h *ScorecardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	billID := mux.Vars(r)["billId"]

	submission, err := h.scorecardSvc.Submit(r.Context(), userID, billID)
	if err != nil {
		var blocked *service.ValidationBlockedError
		if errors.As(err, &blocked) {
			writeJSON(w, http.StatusConflict, map[string]interface{}{
				"error":           "submission blocked",
				"unansweredCount": len(blocked.Unanswered),
				"unanswered":      blocked.Unanswered,
				"flagged":         blocked.Flagged,
			})
			return
		}
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, submission)
}

// writeServiceError maps service errors onto HTTP statuses
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrDraftNotFound),
		errors.Is(err, service.ErrAssignmentNotFound),
		errors.Is(err, service.ErrBillNotFound),
		errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUnknownQuestion),
		errors.Is(err, service.ErrUnknownSection):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotAssignee):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrScoringInProgress),
		errors.Is(err, service.ErrAssignmentStarted):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
