// Package docsync carries partial document writes from the in-memory
// aggregate to the document store. Every local mutation enqueues one or more
// operations; a single background worker delivers them in FIFO order to the
// configured writers. Delivery is best-effort: a failed write is logged and
// dropped, the local state is kept, and nothing is retried.
package docsync

import (
	"context"
	"log"
	"sync"
	"time"
)

// Op is one partial write against a named document. Data is merged
// field-by-field into the document unless Delete is set, in which case the
// document is removed.
type Op struct {
	Collection string `json:"collectionName"`
	DocID      string `json:"docId"`
	Data       any    `json:"data,omitempty"`
	Delete     bool   `json:"isDelete,omitempty"`
}

// Writer applies a single operation to a backing store.
type Writer interface {
	Apply(ctx context.Context, op Op) error
}

// Queue is the outbound write queue. Operations are applied to every writer
// in the order they were enqueued.
type Queue struct {
	ops     chan Op
	writers []Writer
	timeout time.Duration

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// NewQueue starts a queue with the given buffer size draining into writers.
func NewQueue(size int, writers ...Writer) *Queue {
	if size <= 0 {
		size = 256
	}
	q := &Queue{
		ops:     make(chan Op, size),
		writers: writers,
		timeout: 10 * time.Second,
		done:    make(chan struct{}),
	}
	go q.run()
	return q
}

// Enqueue hands an operation to the background worker without blocking the
// mutating caller. When the buffer is full, or the queue is already closed,
// the operation is dropped and logged, matching the no-guarantees delivery
// contract.
func (q *Queue) Enqueue(op Op) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		log.Printf("docsync: queue closed, dropping %s write for %s/%s",
			kind(op), op.Collection, op.DocID)
		return
	}
	select {
	case q.ops <- op:
	default:
		log.Printf("docsync: queue full, dropping %s write for %s/%s",
			kind(op), op.Collection, op.DocID)
	}
}

// Close stops accepting operations, drains the buffer, and waits for the
// worker to finish. Safe to call more than once; later Enqueues are dropped.
func (q *Queue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.ops)
	}
	q.mu.Unlock()
	<-q.done
}

func (q *Queue) run() {
	defer close(q.done)
	for op := range q.ops {
		for _, w := range q.writers {
			ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
			if err := w.Apply(ctx, op); err != nil {
				log.Printf("docsync: %s write for %s/%s failed: %v",
					kind(op), op.Collection, op.DocID, err)
			}
			cancel()
		}
	}
}

func kind(op Op) string {
	if op.Delete {
		return "delete"
	}
	return "merge"
}
