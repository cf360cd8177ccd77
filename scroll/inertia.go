// Copyright © 2025 Scrollkit contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scroll/inertia.go
// Summary: Wheel-driven inertial motion. Two independent velocity domains
// (pixels and items) share a single scheduled-frame slot; each tick commits
// an offset, decays the velocities, and reschedules until both underflow
// their stop thresholds.

package scroll

import "math"

// DeltaMode classifies a wheel event's delta units, mirroring the standard
// wheel-delta-mode enumeration.
type DeltaMode int

const (
	DeltaPixel DeltaMode = 0
	DeltaLine  DeltaMode = 1
	DeltaPage  DeltaMode = 2
)

// Handle is an opaque token returned by a Scheduler for a pending frame.
type Handle any

// Scheduler yields between inertia ticks. Implementations only need to run
// the callback once, later; the engine does not depend on uniform tick
// timing (decay is per-tick, not per-elapsed-time). A deterministic manual
// scheduler can drive the loop tick by tick in tests.
type Scheduler interface {
	Schedule(callback func()) Handle
	Cancel(handle Handle)
}

// Stop thresholds are domain-local: a pixel velocity below half a pixel and
// an item velocity below a hundredth of an item are inert. The two values
// are not comparable to each other.
const (
	pxStopThreshold   = 0.5
	itemStopThreshold = 0.01
)

// HandleWheelPx feeds a wheel event into the pixel velocity domain. The raw
// delta is normalized to pixels, converted to a sign-preserving velocity
// step clamped into [MinVelocityPxStep, MaxVelocityPxStep], and added to the
// accumulator, so repeated events within one gesture build up speed.
func (e *Engine) HandleWheelPx(delta float64, mode DeltaMode) {
	if !e.ScrollingNeeded() {
		return
	}
	normalized := delta
	switch mode {
	case DeltaLine:
		normalized = delta * e.itemSize()
	case DeltaPage:
		normalized = delta * e.geo.ViewportSize()
	}
	if normalized == 0 {
		return
	}
	e.pxVelocity += clampMagnitude(normalized, e.cfg.MinVelocityPxStep, e.cfg.MaxVelocityPxStep)
	e.armLoop()
}

// HandleWheelItems feeds a wheel event into the item velocity domain. Pixel
// deltas collapse to sign(delta): one wheel notch is exactly one item. A
// normalized magnitude of exactly 1 bypasses the step clamps for the same
// reason, regardless of the configured bounds.
func (e *Engine) HandleWheelItems(delta float64, mode DeltaMode) {
	if !e.ScrollingNeeded() {
		return
	}
	var normalized float64
	switch mode {
	case DeltaLine:
		normalized = delta
	case DeltaPage:
		normalized = delta * (e.geo.ViewportSize() / e.itemSize())
	default:
		switch {
		case delta > 0:
			normalized = 1
		case delta < 0:
			normalized = -1
		}
	}
	if normalized == 0 {
		return
	}
	if math.Abs(normalized) == 1 {
		e.itemVelocity += normalized
	} else {
		e.itemVelocity += clampMagnitude(normalized, e.cfg.MinVelocityItemStep, e.cfg.MaxVelocityItemStep)
	}
	e.armLoop()
}

// StopInertia cancels any scheduled frame and zeroes both velocity
// accumulators. Idempotent. The stored handle is cleared before cancelling
// so a callback that still fires detects staleness and no-ops.
func (e *Engine) StopInertia() {
	e.pxVelocity = 0
	e.itemVelocity = 0
	if e.frame == nil {
		return
	}
	frame := e.frame
	e.frame = nil
	e.frameGen++
	if e.sched != nil {
		e.sched.Cancel(frame)
	}
}

// armLoop transitions Idle -> Running. A frame already in flight keeps the
// loop running; the new velocity is picked up by the next tick.
func (e *Engine) armLoop() {
	if e.frame != nil {
		return
	}
	e.scheduleTick()
}

// scheduleTick arms the next tick, cancelling and replacing any frame
// already in flight so only one tick sequence ever runs per engine.
func (e *Engine) scheduleTick() {
	if e.sched == nil {
		return
	}
	if e.frame != nil {
		frame := e.frame
		e.frame = nil
		e.sched.Cancel(frame)
	}
	e.frameGen++
	gen := e.frameGen
	e.frame = e.sched.Schedule(func() { e.tick(gen) })
}

// tick is one scheduled invocation of the motion loop. Per active domain it
// either zeroes an underflowed velocity or commits the next offset and
// decays; when both domains are inert the loop returns to Idle by simply
// not rescheduling.
//
// The offset is stepped with the velocity as accumulated, then the velocity
// decays; a 30px step therefore moves 30px on its first tick and 21px
// (decay 0.7) on its second.
func (e *Engine) tick(gen uint64) {
	if e.frame == nil || gen != e.frameGen {
		return // stale frame: cancelled or replaced after scheduling
	}
	e.frame = nil

	if e.pxVelocity != 0 {
		if math.Abs(e.pxVelocity) < pxStopThreshold {
			e.pxVelocity = 0
		} else {
			e.commit(e.offset + e.pxVelocity)
			e.pxVelocity *= e.cfg.InertiaDecay
		}
	}

	if e.itemVelocity != 0 {
		if math.Abs(e.itemVelocity) < itemStopThreshold {
			e.itemVelocity = 0
		} else {
			e.commit(e.itemStepOffset(e.itemVelocity))
			e.itemVelocity *= e.cfg.InertiaDecay
		}
	}

	if e.pxVelocity != 0 || e.itemVelocity != 0 {
		e.scheduleTick()
	}
}

// itemStepOffset computes the offset after moving by round(velocity) whole
// items.
//
// Forward motion aligns the viewport's trailing edge to an item boundary by
// adding downOffset (the gap left when the viewport is not a whole number
// of items); backward motion aligns the leading edge instead. The asymmetry
// keeps a partially visible last item flush against the bottom while
// scrolling down, and the first item flush against the top while scrolling
// up.
func (e *Engine) itemStepOffset(velocity float64) float64 {
	stepItems := math.Round(velocity)
	if stepItems == 0 {
		return e.offset
	}
	item := e.itemSize()
	viewport := e.geo.ViewportSize()

	downOffset := 0.0
	if remainder := math.Mod(viewport, item); remainder != 0 {
		downOffset = item - remainder
	}
	maxIndex := float64(e.geo.ItemCount()) - math.Ceil(viewport/item)
	if maxIndex < 0 {
		maxIndex = 0
	}

	if stepItems > 0 {
		base := math.Floor((e.offset - downOffset) / item)
		newIndex := clamp(math.Floor(base+stepItems), 0, maxIndex)
		return newIndex*item + downOffset
	}
	base := math.Ceil(e.offset / item)
	newIndex := clamp(math.Ceil(base+stepItems), 0, maxIndex)
	return newIndex * item
}

// clampMagnitude bounds |v| into [lo, hi], preserving sign.
func clampMagnitude(v, lo, hi float64) float64 {
	return math.Copysign(clamp(math.Abs(v), lo, hi), v)
}
