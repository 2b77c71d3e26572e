package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legiscore/internal/model"
)

type recordingPersister struct {
	mu      sync.Mutex
	gate    chan struct{}
	written []*model.Draft
}

func (p *recordingPersister) persist(ctx context.Context, draft *model.Draft) error {
	if p.gate != nil {
		<-p.gate
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.written = append(p.written, draft)
	return nil
}

func (p *recordingPersister) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.written)
}

func (p *recordingPersister) last() *model.Draft {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.written) == 0 {
		return nil
	}
	return p.written[len(p.written)-1]
}

func queuedDraft(userID, billID, section string) *model.Draft {
	draft := model.NewDraft(userID, billID, "a1", "HB 1")
	draft.CurrentSection = section
	return draft
}

func TestWriteQueueCoalescesRapidWrites(t *testing.T) {
	p := &recordingPersister{gate: make(chan struct{})}
	q := NewWriteQueue(p.persist, nil)

	// the first enqueue starts a write that blocks on the gate; the rest
	// pile up behind it and coalesce into a single final snapshot
	q.Enqueue(queuedDraft("u1", "b1", "general"))
	for i := 0; i < 20; i++ {
		q.Enqueue(queuedDraft("u1", "b1", "bias"))
	}
	q.Enqueue(queuedDraft("u1", "b1", "labor"))
	close(p.gate)

	q.Flush("u1", "b1")
	assert.LessOrEqual(t, p.count(), 2)
	assert.Equal(t, "labor", p.last().CurrentSection)
}

func TestWriteQueueFlushWaitsForPendingWrite(t *testing.T) {
	p := &recordingPersister{gate: make(chan struct{})}
	q := NewWriteQueue(p.persist, nil)

	q.Enqueue(queuedDraft("u1", "b1", "general"))

	done := make(chan struct{})
	go func() {
		q.Flush("u1", "b1")
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("flush returned before the write finished")
	case <-time.After(20 * time.Millisecond):
	}

	close(p.gate)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("flush never returned")
	}
	require.Equal(t, 1, p.count())
}

func TestWriteQueueFlushOnIdleKeyReturnsImmediately(t *testing.T) {
	p := &recordingPersister{}
	q := NewWriteQueue(p.persist, nil)

	q.Flush("u1", "never-written")
	assert.Equal(t, 0, p.count())
}

func TestWriteQueueKeysAreIndependent(t *testing.T) {
	p := &recordingPersister{}
	q := NewWriteQueue(p.persist, nil)

	q.Enqueue(queuedDraft("u1", "b1", "general"))
	q.Enqueue(queuedDraft("u1", "b2", "data"))
	q.Enqueue(queuedDraft("u2", "b1", "labor"))

	q.Flush("u1", "b1")
	q.Flush("u1", "b2")
	q.Flush("u2", "b1")
	assert.Equal(t, 3, p.count())
}

func TestWriteQueueCloseDrainsAndRejects(t *testing.T) {
	p := &recordingPersister{}
	var results int
	var mu sync.Mutex
	q := NewWriteQueue(p.persist, func(draft *model.Draft, err error) {
		mu.Lock()
		results++
		mu.Unlock()
	})

	q.Enqueue(queuedDraft("u1", "b1", "general"))
	q.Close()

	assert.GreaterOrEqual(t, p.count(), 1)
	mu.Lock()
	assert.GreaterOrEqual(t, results, 1)
	mu.Unlock()

	written := p.count()
	q.Enqueue(queuedDraft("u1", "b1", "labor"))
	q.Flush("u1", "b1")
	assert.Equal(t, written, p.count())
}
