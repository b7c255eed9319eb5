package anim

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	steps []float64
	dones []bool
}

func (r *recorder) animation(d time.Duration) Animation {
	return Animation{
		Duration: d,
		Ease:     Linear,
		Step:     func(p float64) error { r.steps = append(r.steps, p); return nil },
		Done:     func(stopped bool) { r.dones = append(r.dones, stopped) },
	}
}

func TestZeroDurationCompletesImmediately(t *testing.T) {
	r := NewRunner(0)
	var rec recorder
	h, err := r.Start(rec.animation(0))
	require.NoError(t, err)
	assert.False(t, h.Running())
	assert.False(t, r.Active())
	assert.Equal(t, []float64{1}, rec.steps)
	assert.Equal(t, []bool{false}, rec.dones)
	assert.Nil(t, r.Frame())
}

func TestAdvanceRunsToCompletion(t *testing.T) {
	r := NewRunner(time.Millisecond)
	var rec recorder
	h, err := r.Start(rec.animation(100 * time.Millisecond))
	require.NoError(t, err)
	require.True(t, r.Active())

	t0 := time.Now()
	require.NoError(t, r.Advance(t0))
	require.NoError(t, r.Advance(t0.Add(50*time.Millisecond)))
	assert.True(t, h.Running())
	require.NoError(t, r.Advance(t0.Add(200*time.Millisecond)))

	assert.Equal(t, []float64{0, 0.5, 1}, rec.steps)
	assert.Equal(t, []bool{false}, rec.dones)
	assert.False(t, r.Active())
}

func TestStopIsIdempotent(t *testing.T) {
	r := NewRunner(0)
	var rec recorder
	h, _ := r.Start(rec.animation(time.Second))
	h.Stop()
	h.Stop()
	r.StopAll()
	assert.Equal(t, []bool{true}, rec.dones)
	assert.False(t, r.Active())

	var nilHandle *Handle
	assert.NotPanics(t, nilHandle.Stop)
	assert.False(t, nilHandle.Running())
}

func TestFailingStepStopsOnlyThatAnimation(t *testing.T) {
	r := NewRunner(0)
	boom := errors.New("boom")
	var stopped []bool
	_, _ = r.Start(Animation{
		Duration: time.Second,
		Step:     func(float64) error { return boom },
		Done:     func(s bool) { stopped = append(stopped, s) },
	})
	var rec recorder
	ok, _ := r.Start(rec.animation(time.Second))

	err := r.Advance(time.Now())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []bool{true}, stopped)
	assert.True(t, ok.Running())
	assert.Len(t, rec.steps, 1)
}

func TestFailingImmediateStep(t *testing.T) {
	r := NewRunner(0)
	var stopped []bool
	_, err := r.Start(Animation{
		Step: func(float64) error { return errors.New("bad path") },
		Done: func(s bool) { stopped = append(stopped, s) },
	})
	assert.ErrorContains(t, err, "bad path")
	assert.Equal(t, []bool{true}, stopped)
}

func TestUpdateSchedulesFrames(t *testing.T) {
	r := NewRunner(time.Millisecond)
	var rec recorder
	_, _ = r.Start(rec.animation(time.Hour))

	first := r.Frame()
	require.NotNil(t, first)
	assert.Nil(t, r.Frame(), "frame already pending")

	msg := first()
	fm, ok := msg.(FrameMsg)
	require.True(t, ok)
	assert.Equal(t, r.ID(), fm.ID)

	next, err := r.Update(msg)
	require.NoError(t, err)
	assert.NotNil(t, next)

	other, err := r.Update(FrameMsg{ID: r.ID() + 1000})
	assert.NoError(t, err)
	assert.Nil(t, other)
}

func TestEasing(t *testing.T) {
	assert.Equal(t, 0.0, EaseOutQuart(0))
	assert.Equal(t, 1.0, EaseOutQuart(1))
	assert.Greater(t, EaseOutQuart(0.5), 0.5)
	assert.Equal(t, 0.25, Linear(0.25))
	assert.Equal(t, 15.0, Lerp(10, 20, 0.5))
}
