package service

import (
	"context"
	"sync"
	"time"

	"legiscore/internal/model"
)

const persistTimeout = 10 * time.Second

// WriteQueue serializes draft persistence per (user, bill) key so rapid
// mutations land in logical order, not network-arrival order. Writes
// coalesce: only the newest pending snapshot for a key is written once the
// in-flight one finishes.
type WriteQueue struct {
	persist  func(ctx context.Context, draft *model.Draft) error
	onResult func(draft *model.Draft, err error)

	mu     sync.Mutex
	states map[string]*queueState
	closed bool
}

type queueState struct {
	pending *model.Draft
	busy    bool
	waiters []chan struct{}
}

// NewWriteQueue creates a write queue. onResult is invoked after every
// persistence attempt, on the worker goroutine; it may be nil.
func NewWriteQueue(persist func(ctx context.Context, draft *model.Draft) error, onResult func(draft *model.Draft, err error)) *WriteQueue {
	return &WriteQueue{
		persist:  persist,
		onResult: onResult,
		states:   make(map[string]*queueState),
	}
}

func draftQueueKey(userID, billID string) string {
	return userID + ":" + billID
}

// Enqueue schedules the draft snapshot for persistence, replacing any
// not-yet-written snapshot for the same key. Never blocks on I/O.
func (q *WriteQueue) Enqueue(draft *model.Draft) {
	key := draftQueueKey(draft.UserID, draft.BillID)

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}

	st := q.states[key]
	if st == nil {
		st = &queueState{}
		q.states[key] = st
	}
	st.pending = draft
	if !st.busy {
		st.busy = true
		go q.run(st)
	}
}

func (q *WriteQueue) run(st *queueState) {
	for {
		q.mu.Lock()
		draft := st.pending
		st.pending = nil
		if draft == nil {
			st.busy = false
			for _, ch := range st.waiters {
				close(ch)
			}
			st.waiters = nil
			q.mu.Unlock()
			return
		}
		q.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		err := q.persist(ctx, draft)
		cancel()
		if q.onResult != nil {
			q.onResult(draft, err)
		}
	}
}

// Flush blocks until every write enqueued for the key before the call has
// been attempted. Used before submit so the final snapshot cannot be
// overtaken by a stale autosave.
func (q *WriteQueue) Flush(userID, billID string) {
	q.mu.Lock()
	st := q.states[draftQueueKey(userID, billID)]
	if st == nil || (!st.busy && st.pending == nil) {
		q.mu.Unlock()
		return
	}
	ch := make(chan struct{})
	st.waiters = append(st.waiters, ch)
	q.mu.Unlock()
	<-ch
}

// Close drains all keys and rejects further writes
func (q *WriteQueue) Close() {
	q.mu.Lock()
	q.closed = true
	keys := make([]string, 0, len(q.states))
	for k := range q.states {
		keys = append(keys, k)
	}
	q.mu.Unlock()

	for _, k := range keys {
		q.mu.Lock()
		st := q.states[k]
		if st == nil || (!st.busy && st.pending == nil) {
			q.mu.Unlock()
			continue
		}
		ch := make(chan struct{})
		st.waiters = append(st.waiters, ch)
		q.mu.Unlock()
		<-ch
	}
}
