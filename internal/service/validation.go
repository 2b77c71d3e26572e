package service

import (
	"context"
	"fmt"
	"log"

	"legiscore/internal/model"
	"legiscore/internal/repository"
)

// ValidationResult reports everything blocking submission at once
type ValidationResult struct {
	Unanswered []string `json:"unanswered"`
	Flagged    []string `json:"flagged"`
}

// OK reports whether the draft may be submitted
func (v *ValidationResult) OK() bool {
	return len(v.Unanswered) == 0 && len(v.Flagged) == 0
}

// FindFirstUnanswered walks the catalog in section order, then question
// order, and returns the first question ID missing from the answer map, or
// "" when every question is answered. Visibility is deliberately ignored: a
// dependency-suppressed question was force-filled with "N/A" and has a key,
// while a question never visited has none and blocks submission.
func (s *ScorecardService) FindFirstUnanswered(answers model.AnswerMap) string {
	for _, id := range s.cat.QuestionIDs() {
		if _, ok := answers[id]; !ok {
			return id
		}
	}
	return ""
}

// Validate collects every unanswered question and every raised flag, in
// catalog order
func (s *ScorecardService) Validate(answers model.AnswerMap, flags model.FlagMap) *ValidationResult {
	result := &ValidationResult{}
	for _, id := range s.cat.QuestionIDs() {
		if _, ok := answers[id]; !ok {
			result.Unanswered = append(result.Unanswered, id)
		}
		if flags[id] {
			result.Flagged = append(result.Flagged, id)
		}
	}
	return result
}

// CanSubmit reports whether the draft is complete and unflagged
func (s *ScorecardService) CanSubmit(answers model.AnswerMap, flags model.FlagMap) bool {
	return s.Validate(answers, flags).OK()
}

// Submit validates the draft, freezes it into an immutable submission,
// completes the assignment and deletes the draft. Submission creation is
// idempotent per assignment, so a retry after a partial failure never yields
// a second submission. Unlike autosave, every failure here is surfaced to
// the caller.
func (s *ScorecardService) Submit(ctx context.Context, userID, billID string) (*model.Submission, error) {
	draft, err := s.GetDraft(ctx, userID, billID)
	if err != nil {
		return nil, err
	}

	if result := s.Validate(draft.Answers, draft.Flags); !result.OK() {
		return nil, &ValidationBlockedError{
			Unanswered: result.Unanswered,
			Flagged:    result.Flagged,
		}
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, draft.AssignmentID)
	if err != nil {
		return nil, fmt.Errorf("load assignment: %w", err)
	}
	if assignment == nil {
		return nil, ErrAssignmentNotFound
	}

	// Drain queued autosaves so a stale snapshot cannot land after the
	// draft is deleted below.
	s.queue.Flush(userID, billID)

	snapshot := draft.Clone()
	submission := &model.Submission{
		UserID:       userID,
		BillID:       billID,
		AssignmentID: draft.AssignmentID,
		Answers:      snapshot.Answers,
		Notes:        snapshot.Notes,
	}

	stored, err := s.submissionRepo.CreateIdempotent(ctx, submission)
	if err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}

	if assignment.Status != model.AssignmentCompleted {
		err = s.assignmentRepo.UpdateStatus(ctx, assignment.ID, model.AssignmentInProgress, model.AssignmentCompleted)
		if err == repository.ErrInvalidTransition {
			// A concurrent retry may have completed it already; only a
			// still-unfinished assignment is a real failure.
			current, gerr := s.assignmentRepo.GetByID(ctx, assignment.ID)
			if gerr != nil || current == nil || current.Status != model.AssignmentCompleted {
				return nil, fmt.Errorf("complete assignment: %w", err)
			}
		} else if err != nil {
			return nil, fmt.Errorf("complete assignment: %w", err)
		}
	}

	if err := s.draftRepo.Delete(ctx, userID, billID); err != nil {
		return nil, fmt.Errorf("delete draft: %w", err)
	}
	if err := s.draftCache.Delete(ctx, userID, billID); err != nil {
		log.Printf("draft cache delete failed for user=%s bill=%s: %v", userID, billID, err)
	}
	if err := s.sessionCache.Delete(ctx, userID); err != nil {
		log.Printf("session cache delete failed for user=%s: %v", userID, err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToUser(userID, "assignment_completed", map[string]string{
			"billId":       billID,
			"assignmentId": assignment.ID,
			"submissionId": stored.ID,
		})
	}

	return stored, nil
}
