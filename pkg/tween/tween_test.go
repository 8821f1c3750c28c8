package tween

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestEasingEndpoints(t *testing.T) {
	for name, ease := range map[string]Easing{"linear": Linear, "quadIn": QuadraticIn, "quadOut": QuadraticOut} {
		assert.InDelta(t, 0, ease(0), 1e-12, name)
		assert.InDelta(t, 1, ease(1), 1e-12, name)
	}
	// Decelerating: ahead of linear at the midpoint.
	assert.Greater(t, QuadraticOut(0.5), 0.5)
}

func TestTween_ValueAtClamps(t *testing.T) {
	tw := Tween{From: mgl64.Vec3{0, 0, 10}, To: mgl64.Vec3{0, 0, 0}, Start: t0, Duration: time.Second, Ease: Linear}

	assert.Equal(t, mgl64.Vec3{0, 0, 10}, tw.ValueAt(t0.Add(-time.Second)))
	mid := tw.ValueAt(t0.Add(500 * time.Millisecond))
	assert.InDeltaSlice(t, []float64{0, 0, 5}, mid[:], 1e-12)
	assert.Equal(t, mgl64.Vec3{0, 0, 0}, tw.ValueAt(t0.Add(2*time.Second)))
	assert.False(t, tw.Done(t0.Add(999*time.Millisecond)))
	assert.True(t, tw.Done(t0.Add(time.Second)))
}

func TestTween_ZeroDurationJumps(t *testing.T) {
	tw := Tween{From: mgl64.Vec3{1, 1, 1}, To: mgl64.Vec3{2, 2, 2}, Start: t0}
	assert.Equal(t, mgl64.Vec3{2, 2, 2}, tw.ValueAt(t0))
}

func TestAnimator_RunsToCompletion(t *testing.T) {
	a := NewAnimator()
	pos := mgl64.Vec3{0, 0, 10}
	done := 0

	a.Start("camera", VecTarget{&pos}, mgl64.Vec3{0, 0, 20}, t0, time.Second, QuadraticOut, func() { done++ })
	a.Update(t0.Add(500 * time.Millisecond))
	assert.InDelta(t, 10+10*QuadraticOut(0.5), pos[2], 1e-9)
	assert.True(t, a.Active("camera"))

	a.Update(t0.Add(time.Second))
	assert.Equal(t, mgl64.Vec3{0, 0, 20}, pos)
	assert.False(t, a.Active("camera"))
	assert.Equal(t, 1, done)

	a.Update(t0.Add(2 * time.Second))
	assert.Equal(t, 1, done)
}

func TestAnimator_ReplaceStartsFromCurrentValue(t *testing.T) {
	a := NewAnimator()
	pos := mgl64.Vec3{0, 0, 10}
	firstDone := false

	a.Start("camera", VecTarget{&pos}, mgl64.Vec3{0, 0, 0}, t0, time.Second, Linear, func() { firstDone = true })
	a.Update(t0.Add(250 * time.Millisecond))
	require.InDelta(t, 7.5, pos[2], 1e-9)

	a.Start("camera", VecTarget{&pos}, mgl64.Vec3{0, 0, 10}, t0.Add(250*time.Millisecond), time.Second, Linear, nil)
	tw, ok := a.Tween("camera")
	require.True(t, ok)
	assert.InDelta(t, 7.5, tw.From[2], 1e-9)
	assert.Equal(t, 1, a.Len())

	// Past the first tween's end time the value must still be moving away from 0.
	for ms := 300; ms <= 1250; ms += 50 {
		a.Update(t0.Add(time.Duration(ms) * time.Millisecond))
		assert.GreaterOrEqual(t, pos[2], 7.5)
	}
	assert.InDelta(t, 10, pos[2], 1e-9)
	assert.False(t, firstDone)
}

func TestAnimator_CancelLeavesValue(t *testing.T) {
	a := NewAnimator()
	opacity := 0.0

	a.Start("fade", ScalarTarget{&opacity}, mgl64.Vec3{1}, t0, time.Second, Linear, nil)
	a.Update(t0.Add(400 * time.Millisecond))
	a.Cancel("fade")
	a.Update(t0.Add(time.Second))

	assert.InDelta(t, 0.4, opacity, 1e-9)
	assert.Equal(t, 0, a.Len())
	a.Cancel("missing")
}

func TestAnimator_NilTargetIgnored(t *testing.T) {
	a := NewAnimator()
	a.Start("x", nil, mgl64.Vec3{}, t0, time.Second, Linear, nil)
	assert.Equal(t, 0, a.Len())
}
