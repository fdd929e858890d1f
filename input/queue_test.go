package input

import (
	"sync"
	"testing"
)

func TestTapQueueCapacity(t *testing.T) {
	q := NewTapQueue(0)
	if q.Cap() != DefaultCapacity {
		t.Fatalf("Cap() = %d, want %d", q.Cap(), DefaultCapacity)
	}
	for i := range DefaultCapacity {
		if !q.Offer(Tap{X: float32(i)}) {
			t.Fatalf("Offer(%d) rejected before the queue was full", i)
		}
	}
	if q.Offer(Tap{X: 99}) {
		t.Error("ninth Offer should be rejected")
	}
	if q.Len() != DefaultCapacity {
		t.Errorf("Len() = %d, want %d", q.Len(), DefaultCapacity)
	}
	offered, dropped := q.Stats()
	if offered != 9 || dropped != 1 {
		t.Errorf("Stats() = %d, %d, want 9, 1", offered, dropped)
	}

	// The dropped tap is the newest one; the oldest eight remain in order.
	for i := range DefaultCapacity {
		tap, ok := q.Poll()
		if !ok || tap.X != float32(i) {
			t.Errorf("Poll() = %v, %v, want X=%d", tap, ok, i)
		}
	}
	if _, ok := q.Poll(); ok {
		t.Error("Poll() on an empty queue should report false")
	}
}

func TestTapQueueConcurrent(t *testing.T) {
	q := NewTapQueue(4)
	var wg sync.WaitGroup
	var polled int
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := range 1000 {
			q.Offer(Tap{X: float32(i)})
		}
	}()
	go func() {
		defer wg.Done()
		for range 1000 {
			if _, ok := q.Poll(); ok {
				polled++
			}
		}
	}()
	wg.Wait()
	for {
		if _, ok := q.Poll(); !ok {
			break
		}
		polled++
	}
	offered, dropped := q.Stats()
	if offered != 1000 || uint64(polled)+dropped != offered {
		t.Errorf("offered=%d dropped=%d polled=%d: taps lost", offered, dropped, polled)
	}
}
