package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"legiscore/internal/cache"
	"legiscore/internal/model"
	"legiscore/internal/repository"
)

var (
	// ErrNotAssignee is returned when a user acts on someone else's assignment
	ErrNotAssignee = errors.New("assignment belongs to another user")
	// ErrScoringInProgress is returned when the user already has an open scorecard
	ErrScoringInProgress = errors.New("another assignment is already in progress")
	// ErrAssignmentStarted is returned when unassigning after scoring began
	ErrAssignmentStarted = errors.New("assignment already started")
	// ErrBillNotFound is returned for an unknown bill ID
	ErrBillNotFound = errors.New("bill not found")
	// ErrUserNotFound is returned for an unknown user ID
	ErrUserNotFound = errors.New("user not found")
)

// AssignmentView pairs an assignment with its bill for list responses
type AssignmentView struct {
	Assignment *model.Assignment `json:"assignment"`
	Bill       *model.Bill       `json:"bill,omitempty"`
}

// AssignmentService manages the assignment lifecycle and admin assignment
// operations. At most one assignment per user may be in_progress at a time;
// that guard lives here, server-side, not in client flow.
type AssignmentService struct {
	assignmentRepo repository.AssignmentRepo
	billRepo       repository.BillRepo
	userRepo       repository.UserRepo
	draftRepo      repository.DraftRepo
	draftCache     cache.DraftCache
	sessionCache   cache.SessionCache
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(
	assignmentRepo repository.AssignmentRepo,
	billRepo repository.BillRepo,
	userRepo repository.UserRepo,
	draftRepo repository.DraftRepo,
	draftCache cache.DraftCache,
	sessionCache cache.SessionCache,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		billRepo:       billRepo,
		userRepo:       userRepo,
		draftRepo:      draftRepo,
		draftCache:     draftCache,
		sessionCache:   sessionCache,
	}
}

// Start moves an assignment to in_progress and creates the working draft
// with the bill display name pre-filled under the sentinel key. Calling
// Start again on the same in_progress assignment is a no-op resume.
func (s *AssignmentService) Start(ctx context.Context, userID, assignmentID string) (*model.Assignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("load assignment: %w", err)
	}
	if assignment == nil {
		return nil, ErrAssignmentNotFound
	}
	if assignment.UserID != userID {
		return nil, ErrNotAssignee
	}
	if assignment.Status == model.AssignmentInProgress {
		return assignment, nil
	}
	if assignment.Status != model.AssignmentAssigned {
		return nil, repository.ErrInvalidTransition
	}

	open, err := s.GetInProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	if open != nil && open.ID != assignmentID {
		return nil, ErrScoringInProgress
	}

	bill, err := s.billRepo.GetByID(ctx, assignment.BillID)
	if err != nil {
		return nil, fmt.Errorf("load bill: %w", err)
	}
	if bill == nil {
		return nil, ErrBillNotFound
	}

	if err := s.assignmentRepo.UpdateStatus(ctx, assignmentID, model.AssignmentAssigned, model.AssignmentInProgress); err != nil {
		return nil, fmt.Errorf("start assignment: %w", err)
	}
	assignment.Status = model.AssignmentInProgress

	// Resuming after a crash between status change and draft creation is
	// handled by the upsert: an existing draft is never overwritten here.
	existing, err := s.draftRepo.Get(ctx, userID, assignment.BillID)
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}
	if existing == nil {
		draft := model.NewDraft(userID, assignment.BillID, assignmentID, bill.DisplayName())
		if err := s.draftRepo.Upsert(ctx, draft); err != nil {
			return nil, fmt.Errorf("create draft: %w", err)
		}
		if err := s.draftCache.Set(ctx, draft); err != nil {
			log.Printf("draft cache set failed for user=%s bill=%s: %v", userID, assignment.BillID, err)
		}
	}

	if err := s.sessionCache.Set(ctx, userID, assignment); err != nil {
		log.Printf("session cache set failed for user=%s: %v", userID, err)
	}
	return assignment, nil
}

// GetInProgress returns the user's open assignment, cache first
func (s *AssignmentService) GetInProgress(ctx context.Context, userID string) (*model.Assignment, error) {
	cached, err := s.sessionCache.Get(ctx, userID)
	if err != nil {
		log.Printf("session cache read failed for user=%s: %v", userID, err)
	}
	if cached != nil && cached.Status == model.AssignmentInProgress {
		return cached, nil
	}

	assignment, err := s.assignmentRepo.GetInProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load in-progress assignment: %w", err)
	}
	if assignment != nil {
		if err := s.sessionCache.Set(ctx, userID, assignment); err != nil {
			log.Printf("session cache warm failed for user=%s: %v", userID, err)
		}
	}
	return assignment, nil
}

// Get returns one assignment, restricted to its assignee
func (s *AssignmentService) Get(ctx context.Context, userID, assignmentID string) (*model.Assignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, ErrAssignmentNotFound
	}
	if assignment.UserID != userID {
		return nil, ErrNotAssignee
	}
	return assignment, nil
}

// ListForUser returns the user's assignments joined with their bills
func (s *AssignmentService) ListForUser(ctx context.Context, userID string) ([]*AssignmentView, error) {
	assignments, err := s.assignmentRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}

	views := make([]*AssignmentView, 0, len(assignments))
	for _, a := range assignments {
		bill, err := s.billRepo.GetByID(ctx, a.BillID)
		if err != nil {
			return nil, fmt.Errorf("load bill %s: %w", a.BillID, err)
		}
		views = append(views, &AssignmentView{Assignment: a, Bill: bill})
	}
	return views, nil
}

// Assign creates an assignment (admin). One per (user, bill).
func (s *AssignmentService) Assign(ctx context.Context, userID, billID string) (*model.Assignment, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	bill, err := s.billRepo.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, ErrBillNotFound
	}

	assignment := &model.Assignment{
		UserID: userID,
		BillID: billID,
		Status: model.AssignmentAssigned,
	}
	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// Unassign removes an assignment that has not been started (admin)
func (s *AssignmentService) Unassign(ctx context.Context, assignmentID string) error {
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return err
	}
	if assignment == nil {
		return ErrAssignmentNotFound
	}
	if assignment.Status != model.AssignmentAssigned {
		return ErrAssignmentStarted
	}
	return s.assignmentRepo.Delete(ctx, assignmentID)
}

// ListByBill returns every assignment for a bill (admin)
func (s *AssignmentService) ListByBill(ctx context.Context, billID string) ([]*model.Assignment, error) {
	return s.assignmentRepo.ListByBill(ctx, billID)
}
