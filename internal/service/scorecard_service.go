package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"legiscore/internal/cache"
	"legiscore/internal/catalog"
	"legiscore/internal/model"
	"legiscore/internal/repository"
)

var (
	// ErrDraftNotFound is returned when no working draft exists for the user and bill
	ErrDraftNotFound = errors.New("no draft for user and bill")
	// ErrUnknownQuestion is returned for a question ID outside the catalog
	ErrUnknownQuestion = errors.New("unknown question")
	// ErrUnknownSection is returned for a section ID outside the catalog
	ErrUnknownSection = errors.New("unknown section")
	// ErrAssignmentNotFound is returned when a draft references a missing assignment
	ErrAssignmentNotFound = errors.New("assignment not found")
)

// ValidationBlockedError is returned by Submit when the draft is incomplete
// or still carries review flags. Fully recoverable: the user keeps editing.
type ValidationBlockedError struct {
	Unanswered []string
	Flagged    []string
}

func (e *ValidationBlockedError) Error() string {
	return fmt.Sprintf("submission blocked: %d unanswered, %d flagged", len(e.Unanswered), len(e.Flagged))
}

// ScorecardService is the questionnaire store: it applies dependency-aware
// mutations to the working draft, autosaves best-effort, and runs the
// validate-and-submit flow. The in-memory (cached) draft is the source of
// truth; Mongo persistence trails it on a per-draft write queue.
type ScorecardService struct {
	cat            *catalog.Catalog
	draftRepo      repository.DraftRepo
	submissionRepo repository.SubmissionRepo
	assignmentRepo repository.AssignmentRepo
	draftCache     cache.DraftCache
	sessionCache   cache.SessionCache
	queue          *WriteQueue
	broadcaster    Broadcaster
}

// NewScorecardService creates a new scorecard service
func NewScorecardService(
	cat *catalog.Catalog,
	draftRepo repository.DraftRepo,
	submissionRepo repository.SubmissionRepo,
	assignmentRepo repository.AssignmentRepo,
	draftCache cache.DraftCache,
	sessionCache cache.SessionCache,
) *ScorecardService {
	s := &ScorecardService{
		cat:            cat,
		draftRepo:      draftRepo,
		submissionRepo: submissionRepo,
		assignmentRepo: assignmentRepo,
		draftCache:     draftCache,
		sessionCache:   sessionCache,
	}
	s.queue = NewWriteQueue(draftRepo.Upsert, s.onPersistResult)
	return s
}

// SetBroadcaster sets the broadcaster for autosave and submit events
func (s *ScorecardService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Queue exposes the write queue for shutdown draining
func (s *ScorecardService) Queue() *WriteQueue {
	return s.queue
}

// onPersistResult runs on the write-queue worker after each autosave attempt.
// Draft save failures are logged and swallowed; the user keeps editing
// against the cached draft and a later save catches up.
func (s *ScorecardService) onPersistResult(draft *model.Draft, err error) {
	if err != nil {
		log.Printf("draft autosave failed for user=%s bill=%s: %v", draft.UserID, draft.BillID, err)
		if s.broadcaster != nil {
			s.broadcaster.BroadcastToUser(draft.UserID, "draft_save_failed", map[string]string{
				"billId": draft.BillID,
			})
		}
		return
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToUser(draft.UserID, "draft_saved", map[string]interface{}{
			"billId":    draft.BillID,
			"updatedAt": draft.UpdatedAt,
		})
	}
}

// GetDraft loads the working draft, cache first with Mongo fallback
func (s *ScorecardService) GetDraft(ctx context.Context, userID, billID string) (*model.Draft, error) {
	draft, err := s.draftCache.Get(ctx, userID, billID)
	if err != nil {
		log.Printf("draft cache read failed for user=%s bill=%s: %v", userID, billID, err)
	}
	if draft != nil {
		return draft, nil
	}

	draft, err = s.draftRepo.Get(ctx, userID, billID)
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}
	if draft == nil {
		return nil, ErrDraftNotFound
	}
	if err := s.draftCache.Set(ctx, draft); err != nil {
		log.Printf("draft cache warm failed for user=%s bill=%s: %v", userID, billID, err)
	}
	return draft, nil
}

// SetAnswer records an answer and applies the dependency cascade. A "no" or
// "N/A" on a governing question force-fills every transitive dependent with
// ["N/A"] and clears their flags; any other value deletes dependent answers
// so they can be answered fresh. The sentinel bill-name key bypasses all of
// this. Re-setting the same value still re-persists.
func (s *ScorecardService) SetAnswer(ctx context.Context, userID, billID, questionID string, value model.AnswerValue) (*model.Draft, error) {
	draft, err := s.GetDraft(ctx, userID, billID)
	if err != nil {
		return nil, err
	}

	if questionID == model.SentinelBillName {
		draft.Answers[questionID] = value
		return draft, s.save(ctx, draft)
	}

	if _, ok := s.cat.Question(questionID); !ok {
		return nil, ErrUnknownQuestion
	}

	if value.IsSuppressing() {
		for _, dep := range s.cat.TransitiveDependents(questionID) {
			draft.Answers[dep] = model.NAFill()
			delete(draft.Flags, dep)
		}
	} else {
		for _, dep := range s.cat.TransitiveDependents(questionID) {
			delete(draft.Answers, dep)
		}
	}
	draft.Answers[questionID] = value

	return draft, s.save(ctx, draft)
}

// ToggleFlag flips a question's marked-for-review flag
func (s *ScorecardService) ToggleFlag(ctx context.Context, userID, billID, questionID string) (*model.Draft, error) {
	draft, err := s.GetDraft(ctx, userID, billID)
	if err != nil {
		return nil, err
	}
	if _, ok := s.cat.Question(questionID); !ok {
		return nil, ErrUnknownQuestion
	}

	if draft.Flags[questionID] {
		delete(draft.Flags, questionID)
	} else {
		draft.Flags[questionID] = true
	}

	return draft, s.save(ctx, draft)
}

// SetNote replaces the free-text note for a section
func (s *ScorecardService) SetNote(ctx context.Context, userID, billID, sectionID, text string) (*model.Draft, error) {
	draft, err := s.GetDraft(ctx, userID, billID)
	if err != nil {
		return nil, err
	}
	if !s.knownSection(sectionID) {
		return nil, ErrUnknownSection
	}

	draft.Notes[sectionID] = text
	return draft, s.save(ctx, draft)
}

// SetCurrentSection persists the navigation pointer so a reload resumes
// where the user left off
func (s *ScorecardService) SetCurrentSection(ctx context.Context, userID, billID, sectionID string) (*model.Draft, error) {
	draft, err := s.GetDraft(ctx, userID, billID)
	if err != nil {
		return nil, err
	}
	if !s.knownSection(sectionID) {
		return nil, ErrUnknownSection
	}

	draft.CurrentSection = sectionID
	return draft, s.save(ctx, draft)
}

func (s *ScorecardService) knownSection(sectionID string) bool {
	for _, sec := range s.cat.Sections() {
		if sec.ID == sectionID {
			return true
		}
	}
	return false
}

// save writes the cache synchronously and queues the Mongo upsert. A cache
// failure is an error (the cache is the session's source of truth); a queued
// Mongo failure is best-effort autosave and only logged.
func (s *ScorecardService) save(ctx context.Context, draft *model.Draft) error {
	draft.UpdatedAt = time.Now()
	if err := s.draftCache.Set(ctx, draft); err != nil {
		return fmt.Errorf("cache draft: %w", err)
	}
	s.queue.Enqueue(draft.Clone())
	return nil
}
