// Copyright © 2025 Scrollkit contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package scroll

import (
	"math"
	"testing"
)

// manualScheduler drives the inertia loop deterministically, one frame per
// step call, with no real timing source.
type manualScheduler struct {
	entries   []*manualFrame
	scheduled int
	cancelled int
}

type manualFrame struct {
	fn        func()
	cancelled bool
}

func (s *manualScheduler) Schedule(callback func()) Handle {
	f := &manualFrame{fn: callback}
	s.entries = append(s.entries, f)
	s.scheduled++
	return f
}

func (s *manualScheduler) Cancel(h Handle) {
	if f, ok := h.(*manualFrame); ok && !f.cancelled {
		f.cancelled = true
		s.cancelled++
	}
}

// step runs the next live frame. Returns false once the loop is idle.
func (s *manualScheduler) step() bool {
	for len(s.entries) > 0 {
		f := s.entries[0]
		s.entries = s.entries[1:]
		if f.cancelled {
			continue
		}
		f.fn()
		return true
	}
	return false
}

// runToIdle steps until no frame remains, guarding against runaway loops.
func (s *manualScheduler) runToIdle(t *testing.T) int {
	t.Helper()
	ticks := 0
	for s.step() {
		ticks++
		if ticks > 1000 {
			t.Fatal("inertia loop did not reach idle within 1000 ticks")
		}
	}
	return ticks
}

func newInertiaEngine(geo *Measurements) (*Engine, *manualScheduler) {
	sched := &manualScheduler{}
	e := New(geo, DefaultConfig(), sched, nil)
	return e, sched
}

func TestHandleWheelPx_FirstTick(t *testing.T) {
	// A 30px notch is inside [10,60], so the step is 30: the first tick
	// advances the offset by 30 and decays the velocity to 21.
	geo := &Measurements{Viewport: 100, Content: 1000, Track: 100, Item: 20, Items: 50}
	e, sched := newInertiaEngine(geo)

	e.HandleWheelPx(30, DeltaPixel)
	if e.pxVelocity != 30 {
		t.Fatalf("pxVelocity = %v, want 30", e.pxVelocity)
	}
	if !sched.step() {
		t.Fatal("no frame scheduled after wheel input")
	}
	if !almostEqual(e.Offset(), 30) {
		t.Errorf("Offset after first tick = %v, want 30", e.Offset())
	}
	if !almostEqual(e.pxVelocity, 21) {
		t.Errorf("pxVelocity after first tick = %v, want 21", e.pxVelocity)
	}
}

func TestHandleWheelPx_Normalization(t *testing.T) {
	geo := &Measurements{Viewport: 100, Content: 1000, Track: 100, Item: 20, Items: 50}
	tests := []struct {
		name     string
		delta    float64
		mode     DeltaMode
		wantStep float64
	}{
		{"pixel unchanged", 30, DeltaPixel, 30},
		{"line times item size", 2, DeltaLine, 40},
		{"page times viewport, clamped to max", 1, DeltaPage, 60},
		{"small magnitude clamps to min", 3, DeltaPixel, 10},
		{"large magnitude clamps to max", 500, DeltaPixel, 60},
		{"negative preserves sign", -3, DeltaPixel, -10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newInertiaEngine(geo)
			e.HandleWheelPx(tt.delta, tt.mode)
			if !almostEqual(e.pxVelocity, tt.wantStep) {
				t.Errorf("pxVelocity = %v, want %v", e.pxVelocity, tt.wantStep)
			}
		})
	}
}

func TestHandleWheelPx_AccumulatesWithinGesture(t *testing.T) {
	geo := &Measurements{Viewport: 100, Content: 1000, Track: 100, Item: 20, Items: 50}
	e, sched := newInertiaEngine(geo)

	e.HandleWheelPx(30, DeltaPixel)
	e.HandleWheelPx(30, DeltaPixel)
	if e.pxVelocity != 60 {
		t.Errorf("pxVelocity = %v, want 60", e.pxVelocity)
	}
	if sched.scheduled != 1 {
		t.Errorf("frames scheduled = %d, want 1 (shared slot)", sched.scheduled)
	}
}

func TestInertia_DecaysToIdle(t *testing.T) {
	geo := &Measurements{Viewport: 100, Content: 1000, Track: 100, Item: 20, Items: 50}
	e, sched := newInertiaEngine(geo)

	e.HandleWheelPx(60, DeltaPixel)
	prev := math.Abs(e.pxVelocity)
	ticks := 0
	for sched.step() {
		ticks++
		if ticks > 1000 {
			t.Fatal("loop did not terminate")
		}
		if v := math.Abs(e.pxVelocity); v != 0 && v >= prev {
			t.Fatalf("velocity %v did not shrink below %v on tick %d", v, prev, ticks)
		} else if v != 0 {
			prev = v
		}
	}

	if e.pxVelocity != 0 {
		t.Errorf("pxVelocity at idle = %v, want exactly 0", e.pxVelocity)
	}
	if e.frame != nil {
		t.Error("frame handle not cleared at idle")
	}
}

func TestHandleWheelItems_Normalization(t *testing.T) {
	geo := &Measurements{Viewport: 100, Content: 1000, Track: 100, Item: 20, Items: 50}
	tests := []struct {
		name     string
		delta    float64
		mode     DeltaMode
		wantStep float64
	}{
		{"pixel collapses to one notch", 137, DeltaPixel, 1},
		{"negative pixel collapses to minus one", -4, DeltaPixel, -1},
		{"line unchanged", 2, DeltaLine, 2},
		{"line magnitude one bypasses clamps", 1, DeltaLine, 1},
		{"line clamps to max", 7, DeltaLine, 3},
		{"page converts to items", 1, DeltaPage, 3}, // 100/20 = 5, clamped to 3
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newInertiaEngine(geo)
			e.HandleWheelItems(tt.delta, tt.mode)
			if !almostEqual(e.itemVelocity, tt.wantStep) {
				t.Errorf("itemVelocity = %v, want %v", e.itemVelocity, tt.wantStep)
			}
		})
	}
}

func TestHandleWheelItems_NotchBypassesClampsWithTightBounds(t *testing.T) {
	// Even with a min step of 2, a single notch moves exactly one item.
	geo := &Measurements{Viewport: 100, Content: 1000, Track: 100, Item: 20, Items: 50}
	cfg := DefaultConfig()
	cfg.MinVelocityItemStep = 2
	e := New(geo, cfg, &manualScheduler{}, nil)

	e.HandleWheelItems(1, DeltaPixel)
	if e.itemVelocity != 1 {
		t.Errorf("itemVelocity = %v, want exactly 1", e.itemVelocity)
	}
}

func TestItemInertia_ForwardSnapsTrailingEdge(t *testing.T) {
	// viewport=100, item=30: remainder 10, downOffset 20. Scrolling
	// forward aligns the viewport bottom to an item boundary.
	geo := &Measurements{Viewport: 100, Content: 600, Track: 100, Item: 30, Items: 20}
	e, sched := newInertiaEngine(geo)

	e.HandleWheelItems(1, DeltaLine)
	sched.step()

	if !almostEqual(e.Offset(), 20) {
		t.Errorf("Offset after one forward item tick = %v, want 20", e.Offset())
	}
	// 20 + 100 = 120 = 4 * 30: the trailing edge sits on a boundary.
	if edge := e.Offset() + 100; math.Mod(edge, 30) != 0 {
		t.Errorf("trailing edge %v not on an item boundary", edge)
	}
}

func TestItemInertia_BackwardSnapsLeadingEdge(t *testing.T) {
	geo := &Measurements{Viewport: 100, Content: 600, Track: 100, Item: 30, Items: 20}
	e, sched := newInertiaEngine(geo)
	e.SetOffset(20)

	e.HandleWheelItems(-1, DeltaLine)
	sched.step()

	if e.Offset() != 0 {
		t.Errorf("Offset after one backward item tick = %v, want 0", e.Offset())
	}
}

func TestItemInertia_ClampsToLastWindow(t *testing.T) {
	// maxIndex = items - ceil(viewport/item) = 20 - 4 = 16, so the
	// forward snap floor is 16*30 + 20 = 500 = maxScrollOffset.
	geo := &Measurements{Viewport: 100, Content: 600, Track: 100, Item: 30, Items: 20}
	e, sched := newInertiaEngine(geo)
	e.SetOffset(480)

	e.HandleWheelItems(3, DeltaLine)
	sched.runToIdle(t)

	if !almostEqual(e.Offset(), 500) {
		t.Errorf("Offset = %v, want 500 (max)", e.Offset())
	}
}

func TestInertia_DomainsShareOneFrameSlot(t *testing.T) {
	geo := &Measurements{Viewport: 100, Content: 1000, Track: 100, Item: 20, Items: 50}
	e, sched := newInertiaEngine(geo)

	e.HandleWheelPx(30, DeltaPixel)
	e.HandleWheelItems(1, DeltaLine)
	if sched.scheduled != 1 {
		t.Errorf("frames scheduled = %d, want 1", sched.scheduled)
	}

	// One tick advances both domains, then reschedules a single frame.
	sched.step()
	if e.pxVelocity == 0 || e.itemVelocity == 0 {
		t.Error("both domains should still be decaying")
	}
	if len(sched.entries) != 1 {
		t.Errorf("pending frames = %d, want 1", len(sched.entries))
	}
}

func TestStopInertia(t *testing.T) {
	geo := &Measurements{Viewport: 100, Content: 1000, Track: 100, Item: 20, Items: 50}
	e, sched := newInertiaEngine(geo)

	e.HandleWheelPx(60, DeltaPixel)
	e.StopInertia()

	if e.pxVelocity != 0 || e.itemVelocity != 0 {
		t.Error("velocities not zeroed")
	}
	if e.frame != nil {
		t.Error("frame handle not cleared")
	}
	if sched.cancelled != 1 {
		t.Errorf("cancelled frames = %d, want 1", sched.cancelled)
	}
	if sched.step() {
		t.Error("cancelled frame still ran")
	}

	// Idempotent.
	e.StopInertia()
	e.Dispose()
	e.Dispose()
}

func TestInertia_StaleCallbackNoops(t *testing.T) {
	geo := &Measurements{Viewport: 100, Content: 1000, Track: 100, Item: 20, Items: 50}
	e, sched := newInertiaEngine(geo)

	e.HandleWheelPx(60, DeltaPixel)
	stale := sched.entries[0]
	e.Dispose()

	// A scheduler that races cancellation may still deliver the frame;
	// the engine must detect staleness and leave its state alone.
	stale.fn()
	if e.Offset() != 0 {
		t.Errorf("stale tick mutated offset to %v", e.Offset())
	}
	if e.frame != nil {
		t.Error("stale tick re-armed the loop")
	}
}

func TestInertia_NoopWhenContentFits(t *testing.T) {
	geo := &Measurements{Viewport: 100, Content: 50, Track: 100, Item: 20, Items: 2}
	e, sched := newInertiaEngine(geo)

	e.HandleWheelPx(30, DeltaPixel)
	e.HandleWheelItems(1, DeltaLine)

	if e.pxVelocity != 0 || e.itemVelocity != 0 {
		t.Error("velocities accumulated with nothing to scroll")
	}
	if sched.scheduled != 0 {
		t.Errorf("frames scheduled = %d, want 0", sched.scheduled)
	}
}

func TestInertia_ObserverPerCommittedChange(t *testing.T) {
	geo := &Measurements{Viewport: 100, Content: 1000, Track: 100, Item: 20, Items: 50}
	sched := &manualScheduler{}
	fired := 0
	e := New(geo, DefaultConfig(), sched, func() { fired++ })

	e.SetOffset(870) // 30 from the end; fired once
	e.HandleWheelPx(60, DeltaPixel)
	sched.runToIdle(t)

	// The first tick hits the max; later ticks are pinned there and
	// commit nothing.
	if e.Offset() != 900 {
		t.Errorf("Offset = %v, want 900", e.Offset())
	}
	if fired != 2 {
		t.Errorf("observer fired %d times, want 2 (initial set + one moving tick)", fired)
	}
}
