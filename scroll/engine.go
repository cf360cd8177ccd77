// Copyright © 2025 Scrollkit contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scroll/engine.go
// Summary: Engine owns the scroll offset for one axis and commits every
// change to it. Geometry is pulled on demand through the Geometry interface;
// derived metrics are never cached.

package scroll

// Geometry supplies the engine's measurements. Accessors are invoked on
// demand, so the engine never sees stale sizes. One engine instance handles
// one axis; a two-axis host creates two engines.
type Geometry interface {
	// ViewportSize is the visible extent along the axis.
	ViewportSize() float64
	// ContentSize is the total scrollable extent along the axis.
	ContentSize() float64
	// TrackSize is the length of the scrollbar rail. It may differ from
	// the viewport size.
	TrackSize() float64
	// ItemSize is the fixed per-item extent used by virtualization
	// queries and item-domain inertia. Values <= 0 are treated as 1.
	ItemSize() float64
	// ItemCount is the number of fixed-size items.
	ItemCount() int
}

// Measurements is a plain Geometry backed by assignable fields, for hosts
// that push sizes instead of exposing accessors. Mutate Viewport or Content
// only inside Engine.Remeasure so the scroll ratio survives the change.
type Measurements struct {
	Viewport float64
	Content  float64
	Track    float64
	Item     float64
	Items    int
}

func (m *Measurements) ViewportSize() float64 { return m.Viewport }
func (m *Measurements) ContentSize() float64  { return m.Content }
func (m *Measurements) TrackSize() float64    { return m.Track }
func (m *Measurements) ItemSize() float64     { return m.Item }
func (m *Measurements) ItemCount() int        { return m.Items }

// Config tunes thumb sizing and inertial motion. Zero or negative fields
// fall back to the defaults, so a partially filled literal is fine.
type Config struct {
	// MinThumbSize is the floor on rendered thumb length.
	MinThumbSize float64 `json:"minThumbSize"`

	// Velocity step bounds for the pixel wheel domain.
	MinVelocityPxStep float64 `json:"minVelocityPxStep"`
	MaxVelocityPxStep float64 `json:"maxVelocityPxStep"`

	// Velocity step bounds for the item wheel domain.
	MinVelocityItemStep float64 `json:"minVelocityItemStep"`
	MaxVelocityItemStep float64 `json:"maxVelocityItemStep"`

	// InertiaDecay is the per-tick velocity multiplier, in (0,1).
	InertiaDecay float64 `json:"inertiaDecay"`
}

// DefaultConfig returns the stock tuning values.
func DefaultConfig() Config {
	return Config{
		MinThumbSize:        DefaultMinThumbSize,
		MinVelocityPxStep:   10,
		MaxVelocityPxStep:   60,
		MinVelocityItemStep: 1,
		MaxVelocityItemStep: 3,
		InertiaDecay:        0.7,
	}
}

// normalize fills unset fields from the defaults.
func (c Config) normalize() Config {
	d := DefaultConfig()
	if c.MinThumbSize <= 0 {
		c.MinThumbSize = d.MinThumbSize
	}
	if c.MinVelocityPxStep <= 0 {
		c.MinVelocityPxStep = d.MinVelocityPxStep
	}
	if c.MaxVelocityPxStep <= 0 {
		c.MaxVelocityPxStep = d.MaxVelocityPxStep
	}
	if c.MinVelocityItemStep <= 0 {
		c.MinVelocityItemStep = d.MinVelocityItemStep
	}
	if c.MaxVelocityItemStep <= 0 {
		c.MaxVelocityItemStep = d.MaxVelocityItemStep
	}
	if c.InertiaDecay <= 0 || c.InertiaDecay >= 1 {
		c.InertiaDecay = d.InertiaDecay
	}
	return c
}

// Engine computes and maintains the scroll position for one axis. It is the
// sole writer of the offset: handler calls, inertia ticks and explicit
// offset/ratio assignment all funnel through commit.
//
// The engine is single-threaded and cooperative. Handlers run to completion
// synchronously; the inertia loop yields between ticks through the injected
// Scheduler. There is no locking because exactly one owner mutates the
// offset by construction.
type Engine struct {
	geo      Geometry
	cfg      Config
	sched    Scheduler
	onScroll func()

	offset float64

	// Transient motion accumulators, independent of each other.
	pxVelocity   float64
	itemVelocity float64

	// In-flight inertia callback. Doubles as the mutual-exclusion token
	// for the motion loop: at most one tick sequence runs per engine.
	frame    Handle
	frameGen uint64
}

// New creates an engine over the given geometry. sched may be nil when the
// host never feeds wheel input; onScroll may be nil. onScroll fires
// synchronously whenever a handler call or inertia tick changes the offset,
// and never when the committed value is numerically unchanged.
func New(geo Geometry, cfg Config, sched Scheduler, onScroll func()) *Engine {
	return &Engine{
		geo:      geo,
		cfg:      cfg.normalize(),
		sched:    sched,
		onScroll: onScroll,
	}
}

// Config returns the engine's normalized tuning values.
func (e *Engine) Config() Config { return e.cfg }

// Offset returns the current scroll offset in content space.
func (e *Engine) Offset() float64 { return e.offset }

// SetOffset assigns an absolute offset, clamped into the valid range.
func (e *Engine) SetOffset(v float64) {
	e.commit(v)
}

// Ratio returns the offset normalized into [0,1], or 0 when no scrolling is
// needed. Hosts persist this value to restore position across reloads and
// remeasurements.
func (e *Engine) Ratio() float64 {
	return ScrollRatio(e.geo.ViewportSize(), e.geo.ContentSize(), e.offset)
}

// SetRatio positions the offset at clamp(r,0,1) of the scrollable range.
func (e *Engine) SetRatio(r float64) {
	if !e.ScrollingNeeded() {
		e.commit(0)
		return
	}
	e.commit(clamp(r, 0, 1) * e.MaxOffset())
}

// MaxOffset returns the largest valid offset for the current geometry.
func (e *Engine) MaxOffset() float64 {
	return MaxScrollOffset(e.geo.ViewportSize(), e.geo.ContentSize())
}

// ScrollingNeeded reports whether the content overflows the viewport.
func (e *Engine) ScrollingNeeded() bool {
	return ScrollingNeeded(e.geo.ViewportSize(), e.geo.ContentSize())
}

// Metrics derives the full geometry snapshot for the current offset.
func (e *Engine) Metrics() Metrics {
	return Compute(e.geo.ViewportSize(), e.geo.ContentSize(), e.geo.TrackSize(),
		e.offset, e.cfg.MinThumbSize)
}

// Remeasure applies a viewport or content size change while preserving the
// scroll ratio. The prior ratio is captured before update runs, then
// reapplied against the new scrollable range. Track-size-only changes affect
// thumb rendering, not content position, and should not be wrapped here.
func (e *Engine) Remeasure(update func()) {
	oldRatio := e.Ratio()
	if update != nil {
		update()
	}
	if !e.ScrollingNeeded() {
		e.commit(0)
		return
	}
	e.commit(clamp(oldRatio, 0, 1) * e.MaxOffset())
}

// Dispose cancels any scheduled inertia frame and zeroes both velocity
// accumulators. Safe to call repeatedly; a tick that fires after disposal
// detects staleness and no-ops.
func (e *Engine) Dispose() {
	e.StopInertia()
}

// itemSize returns the configured item extent, defending against the
// itemSize <= 0 precondition violation by substituting 1.
func (e *Engine) itemSize() float64 {
	if s := e.geo.ItemSize(); s > 0 {
		return s
	}
	return 1
}

// commit clamps v into the valid range, stores it, and notifies the
// observer. The observer only fires when the stored value actually changed.
func (e *Engine) commit(v float64) bool {
	v = clamp(v, 0, e.MaxOffset())
	if v == e.offset {
		return false
	}
	e.offset = v
	if e.onScroll != nil {
		e.onScroll()
	}
	return true
}
