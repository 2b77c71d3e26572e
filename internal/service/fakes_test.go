package service

import (
	"context"
	"errors"
	"sync"

	"legiscore/internal/model"
	"legiscore/internal/repository"
)

// Map-backed fakes for the repository and cache interfaces. Keyed the same
// way the real implementations are keyed.

type fakeDraftRepo struct {
	mu          sync.Mutex
	drafts      map[string]*model.Draft
	upserts     int
	failUpserts bool
}

func newFakeDraftRepo() *fakeDraftRepo {
	return &fakeDraftRepo{drafts: make(map[string]*model.Draft)}
}

func (r *fakeDraftRepo) key(userID, billID string) string {
	return userID + ":" + billID
}

func (r *fakeDraftRepo) Upsert(ctx context.Context, draft *model.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserts++
	if r.failUpserts {
		return errors.New("mongo unavailable")
	}
	r.drafts[r.key(draft.UserID, draft.BillID)] = draft.Clone()
	return nil
}

func (r *fakeDraftRepo) Get(ctx context.Context, userID, billID string) (*model.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	draft, ok := r.drafts[r.key(userID, billID)]
	if !ok {
		return nil, nil
	}
	return draft.Clone(), nil
}

func (r *fakeDraftRepo) Delete(ctx context.Context, userID, billID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, r.key(userID, billID))
	return nil
}

func (r *fakeDraftRepo) upsertCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.upserts
}

type fakeSubmissionRepo struct {
	mu          sync.Mutex
	submissions map[string]*model.Submission // by assignment ID
	creates     int
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{submissions: make(map[string]*model.Submission)}
}

func (r *fakeSubmissionRepo) CreateIdempotent(ctx context.Context, submission *model.Submission) (*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if existing, ok := r.submissions[submission.AssignmentID]; ok {
		return existing, nil
	}
	if submission.ID == "" {
		submission.ID = "sub-" + submission.AssignmentID
	}
	r.submissions[submission.AssignmentID] = submission
	return submission, nil
}

func (r *fakeSubmissionRepo) GetByAssignment(ctx context.Context, assignmentID string) (*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.submissions[assignmentID], nil
}

func (r *fakeSubmissionRepo) ListByBill(ctx context.Context, billID string) ([]*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Submission
	for _, s := range r.submissions {
		if s.BillID == billID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSubmissionRepo) ListByUser(ctx context.Context, userID string) ([]*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Submission
	for _, s := range r.submissions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeAssignmentRepo struct {
	mu          sync.Mutex
	assignments map[string]*model.Assignment
}

func newFakeAssignmentRepo(assignments ...*model.Assignment) *fakeAssignmentRepo {
	r := &fakeAssignmentRepo{assignments: make(map[string]*model.Assignment)}
	for _, a := range assignments {
		r.assignments[a.ID] = a
	}
	return r
}

func (r *fakeAssignmentRepo) Create(ctx context.Context, assignment *model.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.assignments {
		if a.UserID == assignment.UserID && a.BillID == assignment.BillID {
			return repository.ErrDuplicateAssignment
		}
	}
	if assignment.ID == "" {
		assignment.ID = "as-" + assignment.UserID + "-" + assignment.BillID
	}
	if assignment.Status == "" {
		assignment.Status = model.AssignmentAssigned
	}
	r.assignments[assignment.ID] = assignment
	return nil
}

func (r *fakeAssignmentRepo) GetByID(ctx context.Context, id string) (*model.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assignments[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAssignmentRepo) GetByUserAndBill(ctx context.Context, userID, billID string) (*model.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.assignments {
		if a.UserID == userID && a.BillID == billID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAssignmentRepo) GetInProgress(ctx context.Context, userID string) (*model.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.assignments {
		if a.UserID == userID && a.Status == model.AssignmentInProgress {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAssignmentRepo) ListByUser(ctx context.Context, userID string) ([]*model.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Assignment
	for _, a := range r.assignments {
		if a.UserID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) ListByBill(ctx context.Context, billID string) ([]*model.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Assignment
	for _, a := range r.assignments {
		if a.BillID == billID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) UpdateStatus(ctx context.Context, id string, from, to model.AssignmentStatus) error {
	if !model.ValidTransition(from, to) {
		return repository.ErrInvalidTransition
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assignments[id]
	if !ok || a.Status != from {
		return repository.ErrInvalidTransition
	}
	a.Status = to
	return nil
}

func (r *fakeAssignmentRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.assignments, id)
	return nil
}

type fakeDraftCache struct {
	mu     sync.Mutex
	drafts map[string]*model.Draft
	sets   int
}

func newFakeDraftCache() *fakeDraftCache {
	return &fakeDraftCache{drafts: make(map[string]*model.Draft)}
}

func (c *fakeDraftCache) Set(ctx context.Context, draft *model.Draft) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.drafts[draft.UserID+":"+draft.BillID] = draft.Clone()
	return nil
}

func (c *fakeDraftCache) Get(ctx context.Context, userID, billID string) (*model.Draft, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	draft, ok := c.drafts[userID+":"+billID]
	if !ok {
		return nil, nil
	}
	return draft.Clone(), nil
}

func (c *fakeDraftCache) Delete(ctx context.Context, userID, billID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.drafts, userID+":"+billID)
	return nil
}

func (c *fakeDraftCache) setCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sets
}

type fakeSessionCache struct {
	mu       sync.Mutex
	sessions map[string]*model.Assignment
}

func newFakeSessionCache() *fakeSessionCache {
	return &fakeSessionCache{sessions: make(map[string]*model.Assignment)}
}

func (c *fakeSessionCache) Set(ctx context.Context, userID string, assignment *model.Assignment) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *assignment
	c.sessions[userID] = &cp
	return nil
}

func (c *fakeSessionCache) Get(ctx context.Context, userID string) (*model.Assignment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.sessions[userID]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (c *fakeSessionCache) Delete(ctx context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, userID)
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*model.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = "u-" + user.Username
	}
	r.users[user.ID] = user
	return user.ID, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(ctx context.Context) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateRole(ctx context.Context, id string, role model.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.Role = role
	}
	return nil
}

type fakeBillRepo struct {
	mu    sync.Mutex
	bills map[string]*model.Bill
}

func newFakeBillRepo(bills ...*model.Bill) *fakeBillRepo {
	r := &fakeBillRepo{bills: make(map[string]*model.Bill)}
	for _, b := range bills {
		r.bills[b.ID] = b
	}
	return r
}

func (r *fakeBillRepo) Create(ctx context.Context, bill *model.Bill) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if bill.ID == "" {
		bill.ID = "b-" + bill.Number
	}
	r.bills[bill.ID] = bill
	return bill.ID, nil
}

func (r *fakeBillRepo) GetByID(ctx context.Context, id string) (*model.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bills[id], nil
}

func (r *fakeBillRepo) List(ctx context.Context) ([]*model.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.Bill, 0, len(r.bills))
	for _, b := range r.bills {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBillRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bills, id)
	return nil
}
