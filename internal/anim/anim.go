// Package anim drives time-based animations from bubbletea frame messages.
//
// An animation receives progress fractions in [0,1] on every frame. Stopping
// is idempotent and the completion callback runs exactly once, whether the
// animation finishes, is stopped, or fails in a step.
package anim

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameInterval is the default delay between animation frames.
const FrameInterval = time.Second / 60

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// FrameMsg asks a Runner to advance its animations.
type FrameMsg struct {
	ID   int
	Time time.Time
}

// Animation describes one transition.
type Animation struct {
	Duration time.Duration
	// Step draws the state at progress p (eased, in [0,1]).
	Step func(p float64) error
	// Done runs once when the animation ends; stopped is true if it did not
	// run to completion.
	Done func(stopped bool)
	// Ease maps linear progress; nil uses EaseOutQuart.
	Ease func(t float64) float64
}

// Handle controls a running animation.
type Handle struct {
	a       Animation
	start   time.Time
	started bool
	done    bool
	r       *Runner
}

// Stop ends the animation without completing it. Safe to call repeatedly.
func (h *Handle) Stop() {
	if h == nil {
		return
	}
	h.finish(true)
}

// Running reports whether the animation is still active.
func (h *Handle) Running() bool {
	return h != nil && !h.done
}

func (h *Handle) finish(stopped bool) {
	if h.done {
		return
	}
	h.done = true
	if h.r != nil {
		h.r.drop(h)
	}
	if h.a.Done != nil {
		h.a.Done(stopped)
	}
}

// Runner owns the animations of one chart instance.
type Runner struct {
	id        int
	interval  time.Duration
	active    []*Handle
	scheduled bool
}

// NewRunner returns a Runner ticking at interval (FrameInterval if zero).
func NewRunner(interval time.Duration) *Runner {
	if interval <= 0 {
		interval = FrameInterval
	}
	return &Runner{id: nextID(), interval: interval}
}

// ID identifies this runner's frame messages.
func (r *Runner) ID() int { return r.id }

// Start registers a and returns its handle. Zero-duration animations step to
// 1 and complete immediately; a step error is returned after the animation
// has been stopped.
func (r *Runner) Start(a Animation) (*Handle, error) {
	h := &Handle{a: a, r: r}
	if a.Duration <= 0 {
		if a.Step != nil {
			if err := a.Step(1); err != nil {
				h.finish(true)
				return h, fmt.Errorf("animation step: %w", err)
			}
		}
		h.finish(false)
		return h, nil
	}
	r.active = append(r.active, h)
	return h, nil
}

// Active reports whether any animation is running.
func (r *Runner) Active() bool { return len(r.active) > 0 }

// StopAll stops every running animation.
func (r *Runner) StopAll() {
	for len(r.active) > 0 {
		r.active[0].Stop()
	}
}

func (r *Runner) drop(h *Handle) {
	for i, a := range r.active {
		if a == h {
			r.active = append(r.active[:i], r.active[i+1:]...)
			return
		}
	}
}

// Advance steps all animations to now. A failing step stops only that
// animation; the first error is returned once all others were stepped.
func (r *Runner) Advance(now time.Time) error {
	var first error
	for _, h := range append([]*Handle(nil), r.active...) {
		if h.done {
			continue
		}
		if !h.started {
			h.started = true
			h.start = now
		}
		t := float64(now.Sub(h.start)) / float64(h.a.Duration)
		t = math.Max(0, math.Min(1, t))
		ease := h.a.Ease
		if ease == nil {
			ease = EaseOutQuart
		}
		if h.a.Step != nil {
			if err := h.a.Step(ease(t)); err != nil {
				h.finish(true)
				if first == nil {
					first = fmt.Errorf("animation step: %w", err)
				}
				continue
			}
		}
		if t >= 1 {
			h.finish(false)
		}
	}
	return first
}

// Frame returns the command for the next frame, or nil when nothing runs or
// a frame is already pending.
func (r *Runner) Frame() tea.Cmd {
	if !r.Active() || r.scheduled {
		return nil
	}
	r.scheduled = true
	id := r.id
	return tea.Tick(r.interval, func(t time.Time) tea.Msg {
		return FrameMsg{ID: id, Time: t}
	})
}

// Update handles a FrameMsg addressed to this runner and schedules the next
// frame while animations remain.
func (r *Runner) Update(msg tea.Msg) (tea.Cmd, error) {
	fm, ok := msg.(FrameMsg)
	if !ok || fm.ID != r.id {
		return nil, nil
	}
	r.scheduled = false
	err := r.Advance(fm.Time)
	return r.Frame(), err
}

// EaseOutQuart decelerates towards the end.
func EaseOutQuart(t float64) float64 {
	return 1 - math.Pow(1-t, 4)
}

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// Lerp interpolates between a and b.
func Lerp(a, b, p float64) float64 {
	return a + (b-a)*p
}
