package input

import (
	"sync"
	"time"

	"github.com/gogpu/gpucontext"
)

// Default gesture thresholds.
const (
	DefaultTouchSlop        = 8.0
	DefaultLongPressTimeout = 500 * time.Millisecond
)

// DetectorOption configures a TapDetector.
type DetectorOption func(*TapDetector)

// WithTouchSlop sets how far, in logical pixels, a pointer may move between
// down and up and still count as a tap.
func WithTouchSlop(px float64) DetectorOption {
	return func(d *TapDetector) {
		d.slop = px
	}
}

// WithLongPressTimeout sets the press duration after which a release no
// longer counts as a tap.
func WithLongPressTimeout(timeout time.Duration) DetectorOption {
	return func(d *TapDetector) {
		d.longPress = timeout
	}
}

// TapDetector recognizes single taps of the primary pointer and offers
// them to a TapQueue. It is safe for concurrent use.
type TapDetector struct {
	queue     *TapQueue
	slop      float64
	longPress time.Duration

	mu      sync.Mutex
	active  bool
	id      int
	downX   float64
	downY   float64
	downAt  time.Duration
	started time.Time
}

// NewTapDetector returns a detector feeding q.
func NewTapDetector(q *TapQueue, opts ...DetectorOption) *TapDetector {
	d := &TapDetector{
		queue:     q,
		slop:      DefaultTouchSlop,
		longPress: DefaultLongPressTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Attach subscribes the detector to src.
func (d *TapDetector) Attach(src gpucontext.PointerEventSource) {
	src.OnPointer(func(ev gpucontext.PointerEvent) {
		d.HandlePointer(ev)
	})
}

// HandlePointer consumes one event and reports whether it completed a tap.
func (d *TapDetector) HandlePointer(ev gpucontext.PointerEvent) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch ev.Type {
	case gpucontext.PointerDown:
		if !ev.IsPrimary {
			d.active = false
			return false
		}
		d.active = true
		d.id = ev.PointerID
		d.downX, d.downY = ev.X, ev.Y
		d.downAt = ev.Timestamp
		d.started = time.Now()
	case gpucontext.PointerMove:
		if d.active && ev.PointerID == d.id && !d.withinSlop(ev) {
			d.active = false
		}
	case gpucontext.PointerUp:
		if !d.active || ev.PointerID != d.id {
			return false
		}
		d.active = false
		if !d.withinSlop(ev) || d.pressDuration(ev) >= d.longPress {
			return false
		}
		return d.queue.Offer(Tap{X: float32(ev.X), Y: float32(ev.Y)})
	case gpucontext.PointerCancel, gpucontext.PointerLeave:
		d.active = false
	}
	return false
}

func (d *TapDetector) withinSlop(ev gpucontext.PointerEvent) bool {
	dx, dy := ev.X-d.downX, ev.Y-d.downY
	return dx*dx+dy*dy <= d.slop*d.slop
}

// pressDuration prefers event timestamps and falls back to wall time on
// platforms that do not report them.
func (d *TapDetector) pressDuration(ev gpucontext.PointerEvent) time.Duration {
	if ev.Timestamp != 0 || d.downAt != 0 {
		return ev.Timestamp - d.downAt
	}
	return time.Since(d.started)
}
