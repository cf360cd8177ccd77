// Copyright © 2025 Scrollkit contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scroll/geometry.go
// Summary: Pure geometry formulas mapping viewport/content/track sizes and a
// scroll offset to thumb and track metrics. Stateless; everything else in the
// package is built on these.

package scroll

// DefaultMinThumbSize is the floor on rendered thumb length. A tiny thumb is
// hard to grab, so proportional sizing is clamped up to this value.
const DefaultMinThumbSize = 12

// Metrics is a snapshot of every derived scroll quantity for one axis.
// It is always recomputed from the inputs, never cached.
type Metrics struct {
	// Inputs.
	ViewportSize float64
	ContentSize  float64
	TrackSize    float64
	ScrollOffset float64

	// Derived.
	ScrollSize          float64
	MaxScrollOffset     float64
	ScrollingNeeded     bool
	ScrollRatio         float64
	ThumbSize           float64
	ThumbTravel         float64
	ThumbOffset         float64
	ThumbPercent        float64
	TrackToScrollFactor float64
}

// Compute derives the full metric set for the given geometry.
// Degenerate inputs (zero or negative sizes) collapse to zeros; they never
// produce Inf or NaN. Layout code may hand us transiently empty geometry.
func Compute(viewport, content, track, offset, minThumb float64) Metrics {
	m := Metrics{
		ViewportSize: viewport,
		ContentSize:  content,
		TrackSize:    track,
		ScrollOffset: offset,
	}
	m.ScrollSize = ScrollSize(viewport, content)
	m.MaxScrollOffset = MaxScrollOffset(viewport, content)
	m.ScrollingNeeded = ScrollingNeeded(viewport, content)
	m.ScrollRatio = ScrollRatio(viewport, content, offset)
	m.ThumbSize = ThumbSize(viewport, content, track, minThumb)
	m.ThumbTravel = ThumbTravel(track, m.ThumbSize)
	m.ThumbOffset = m.ScrollRatio * m.ThumbTravel
	if m.ThumbSize > 0 {
		m.ThumbPercent = m.ThumbOffset / m.ThumbSize * 100
	}
	if m.ScrollingNeeded {
		m.TrackToScrollFactor = m.ThumbTravel / m.MaxScrollOffset
	}
	return m
}

// ScrollSize returns the total scrollable extent: the larger of content and
// viewport.
func ScrollSize(viewport, content float64) float64 {
	if content > viewport {
		return content
	}
	return viewport
}

// MaxScrollOffset returns the largest valid scroll offset.
func MaxScrollOffset(viewport, content float64) float64 {
	if content > viewport {
		return content - viewport
	}
	return 0
}

// ScrollingNeeded reports whether the content overflows the viewport.
func ScrollingNeeded(viewport, content float64) bool {
	return content > viewport
}

// ScrollRatio normalizes offset into [0,1] over the scrollable range.
// Returns 0 when no scrolling is needed.
func ScrollRatio(viewport, content, offset float64) float64 {
	max := MaxScrollOffset(viewport, content)
	if max <= 0 {
		return 0
	}
	return offset / max
}

// ThumbSize returns the rendered thumb length: the viewport's share of the
// content, scaled to the track and clamped up to minThumb.
//
// The result is deliberately not clamped down to the track length; a
// minThumb larger than the track yields a thumb longer than its track. Hosts
// that care should size their tracks above minThumb.
func ThumbSize(viewport, content, track, minThumb float64) float64 {
	if content <= 0 || track == 0 {
		return 0
	}
	visible := viewport / content
	if visible > 1 {
		visible = 1
	}
	size := visible * track
	if size < minThumb {
		size = minThumb
	}
	return size
}

// ThumbTravel returns the distance the thumb can move along its track.
func ThumbTravel(track, thumbSize float64) float64 {
	travel := track - thumbSize
	if travel < 0 {
		return 0
	}
	return travel
}

// clamp bounds v into [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
