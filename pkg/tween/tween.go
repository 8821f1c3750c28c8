// Package tween interpolates values over time with an easing curve. Tweens are
// advanced explicitly from a frame loop; nothing runs on its own.
package tween

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Easing maps linear progress in [0,1] to eased progress.
type Easing func(t float64) float64

func Linear(t float64) float64 { return t }

// QuadraticOut decelerates toward the end.
func QuadraticOut(t float64) float64 { return t * (2 - t) }

func QuadraticIn(t float64) float64 { return t * t }

// Tween interpolates a 3-vector from From to To over Duration.
type Tween struct {
	From, To mgl64.Vec3
	Start    time.Time
	Duration time.Duration
	Ease     Easing
}

// Progress returns eased progress at now, clamped to [0,1].
func (tw *Tween) Progress(now time.Time) float64 {
	if tw.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(tw.Start)) / float64(tw.Duration)
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	ease := tw.Ease
	if ease == nil {
		ease = Linear
	}
	return ease(p)
}

// ValueAt returns the interpolated value at now.
func (tw *Tween) ValueAt(now time.Time) mgl64.Vec3 {
	p := tw.Progress(now)
	return tw.From.Add(tw.To.Sub(tw.From).Mul(p))
}

// Done reports whether the tween has reached its end at now.
func (tw *Tween) Done(now time.Time) bool {
	return !now.Before(tw.Start.Add(tw.Duration))
}

// Target is a value the Animator writes to.
type Target interface {
	Get() mgl64.Vec3
	Set(mgl64.Vec3)
}

// VecTarget adapts a *mgl64.Vec3.
type VecTarget struct{ V *mgl64.Vec3 }

func (t VecTarget) Get() mgl64.Vec3  { return *t.V }
func (t VecTarget) Set(v mgl64.Vec3) { *t.V = v }

// ScalarTarget adapts a *float64, stored in the X component.
type ScalarTarget struct{ F *float64 }

func (t ScalarTarget) Get() mgl64.Vec3  { return mgl64.Vec3{*t.F, 0, 0} }
func (t ScalarTarget) Set(v mgl64.Vec3) { *t.F = v[0] }

type active struct {
	target Target
	tween  Tween
	done   func()
}

// Animator runs at most one tween per key. Starting a tween on a key that is already
// animating replaces the old one, and the new tween starts from wherever the target
// currently is.
type Animator struct {
	active map[string]*active
	order  []string
}

func NewAnimator() *Animator {
	return &Animator{active: make(map[string]*active)}
}

// Start animates target toward to. onDone, if non-nil, runs once when the tween finishes;
// it does not run if the tween is replaced or cancelled.
func (a *Animator) Start(key string, target Target, to mgl64.Vec3, now time.Time, d time.Duration, ease Easing, onDone func()) {
	if target == nil {
		return
	}
	if _, ok := a.active[key]; !ok {
		a.order = append(a.order, key)
	}
	a.active[key] = &active{
		target: target,
		tween:  Tween{From: target.Get(), To: to, Start: now, Duration: d, Ease: ease},
		done:   onDone,
	}
}

// Cancel stops the tween on key, leaving the target where it is.
func (a *Animator) Cancel(key string) {
	if _, ok := a.active[key]; !ok {
		return
	}
	delete(a.active, key)
	a.removeKey(key)
}

// Active reports whether key has a running tween.
func (a *Animator) Active(key string) bool {
	_, ok := a.active[key]
	return ok
}

// Tween returns a copy of the running tween on key.
func (a *Animator) Tween(key string) (Tween, bool) {
	act, ok := a.active[key]
	if !ok {
		return Tween{}, false
	}
	return act.tween, true
}

// Len is the number of running tweens.
func (a *Animator) Len() int { return len(a.active) }

// Update writes every running tween's value at now and retires finished ones, in
// start order.
func (a *Animator) Update(now time.Time) {
	keys := append([]string(nil), a.order...)
	for _, k := range keys {
		act, ok := a.active[k]
		if !ok {
			continue
		}
		act.target.Set(act.tween.ValueAt(now))
		if act.tween.Done(now) {
			delete(a.active, k)
			a.removeKey(k)
			if act.done != nil {
				act.done()
			}
		}
	}
}

func (a *Animator) removeKey(key string) {
	for i, k := range a.order {
		if k == key {
			a.order = append(a.order[:i], a.order[i+1:]...)
			return
		}
	}
}
