package input

import (
	"sync/atomic"

	"github.com/gogpu/arcam/internal/logx"
)

// DefaultCapacity is the number of taps a TapQueue holds by default.
const DefaultCapacity = 8

// Tap is a single tap in view pixels, origin top left.
type Tap struct {
	X, Y float32
}

// TapQueue is a bounded single-producer single-consumer queue of taps.
// Neither Offer nor Poll blocks; when the queue is full the newest tap is
// dropped.
type TapQueue struct {
	ch      chan Tap
	offered atomic.Uint64
	dropped atomic.Uint64
}

// NewTapQueue returns a queue holding up to capacity taps. A capacity below
// 1 selects DefaultCapacity.
func NewTapQueue(capacity int) *TapQueue {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &TapQueue{ch: make(chan Tap, capacity)}
}

// Offer enqueues t and reports whether it was accepted.
func (q *TapQueue) Offer(t Tap) bool {
	q.offered.Add(1)
	select {
	case q.ch <- t:
		return true
	default:
		q.dropped.Add(1)
		logx.L().Debug("input: tap queue full, dropping tap", "x", t.X, "y", t.Y)
		return false
	}
}

// Poll dequeues the oldest tap.
func (q *TapQueue) Poll() (Tap, bool) {
	select {
	case t := <-q.ch:
		return t, true
	default:
		return Tap{}, false
	}
}

// Len returns the number of queued taps.
func (q *TapQueue) Len() int { return len(q.ch) }

// Cap returns the queue capacity.
func (q *TapQueue) Cap() int { return cap(q.ch) }

// Stats returns how many taps were offered and how many were dropped.
func (q *TapQueue) Stats() (offered, dropped uint64) {
	return q.offered.Load(), q.dropped.Load()
}
