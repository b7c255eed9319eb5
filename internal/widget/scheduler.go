package widget

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DebounceDefault requests the scheduler's default debounce delay.
const DebounceDefault time.Duration = -1

// DefaultDebounce is used for DebounceDefault unless configured otherwise.
const DefaultDebounce = 100 * time.Millisecond

// UpdateOptions describe one chart update request.
type UpdateOptions struct {
	RequestAnimation bool
	// Debounce is 0 for an immediate update, DebounceDefault or a delay.
	Debounce       time.Duration
	OnlyUpdateData bool
	OnlyRefresh    bool
}

// merge ORs the flags of both requests. The debounce of n wins.
func (o UpdateOptions) merge(n UpdateOptions) UpdateOptions {
	return UpdateOptions{
		RequestAnimation: o.RequestAnimation || n.RequestAnimation,
		Debounce:         n.Debounce,
		OnlyUpdateData:   o.OnlyUpdateData || n.OnlyUpdateData,
		OnlyRefresh:      o.OnlyRefresh || n.OnlyRefresh,
	}
}

// enforceRerender reports whether the request needs a remove and render.
func (o UpdateOptions) enforceRerender() bool {
	return !o.OnlyUpdateData && !o.OnlyRefresh
}

// mergeInto merges o into *dst, allocating it when nil.
func mergeInto(dst **UpdateOptions, o UpdateOptions) {
	if *dst == nil {
		*dst = &o
		return
	}
	m := (*dst).merge(o)
	*dst = &m
}

// TimerMsg fires a debounced update. Messages whose tag is no longer current
// belong to a cancelled timer and are dropped.
type TimerMsg struct {
	ID  int
	Tag int
}

// Scheduler coalesces update requests. At most one timer is live: every new
// request bumps the tag, which invalidates the previous timer.
type Scheduler struct {
	id       int
	debounce time.Duration
	pending  *UpdateOptions
	tag      int
}

// NewScheduler returns a scheduler whose timer messages carry id.
// def replaces DefaultDebounce when positive.
func NewScheduler(id int, def time.Duration) *Scheduler {
	if def <= 0 {
		def = DefaultDebounce
	}
	return &Scheduler{id: id, debounce: def}
}

func (s *Scheduler) delay(d time.Duration) time.Duration {
	if d == DebounceDefault {
		return s.debounce
	}
	return d
}

// Request merges o with the pending request. An immediate request returns
// the merged options with now set; a debounced one returns the timer
// command.
func (s *Scheduler) Request(o UpdateOptions) (run UpdateOptions, now bool, cmd tea.Cmd) {
	merged := o
	if s.pending != nil {
		merged = s.pending.merge(o)
	}
	s.tag++
	d := s.delay(o.Debounce)
	if d <= 0 {
		s.pending = nil
		return merged, true, nil
	}
	s.pending = &merged
	id, tag := s.id, s.tag
	return UpdateOptions{}, false, tea.Tick(d, func(time.Time) tea.Msg {
		return TimerMsg{ID: id, Tag: tag}
	})
}

// Fire returns the pending request when msg belongs to the live timer. The
// scheduler state is cleared before the caller executes the update.
func (s *Scheduler) Fire(msg TimerMsg) (UpdateOptions, bool) {
	if msg.ID != s.id || msg.Tag != s.tag || s.pending == nil {
		return UpdateOptions{}, false
	}
	o := *s.pending
	s.pending = nil
	return o, true
}

// Pending reports whether a debounced update is waiting.
func (s *Scheduler) Pending() bool { return s.pending != nil }

// Cancel drops the pending request and invalidates its timer.
func (s *Scheduler) Cancel() {
	s.tag++
	s.pending = nil
}
