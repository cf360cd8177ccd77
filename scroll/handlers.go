// Copyright © 2025 Scrollkit contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scroll/handlers.go
// Summary: Synchronous interaction handlers: thumb drag deltas, track
// clicks, paging, and scroll-item-into-view. Each computes a new offset and
// commits it; all are no-ops when the content fits the viewport.

package scroll

// Direction selects paging orientation.
type Direction int

const (
	// Backward pages toward offset 0.
	Backward Direction = -1
	// Forward pages toward the maximum offset.
	Forward Direction = 1
)

// Align selects where ScrollItemIntoView places the item.
type Align int

const (
	// AlignStart puts the item's leading edge at the viewport's leading edge.
	AlignStart Align = iota
	// AlignCenter centers the item in the viewport.
	AlignCenter
	// AlignEnd puts the item's trailing edge at the viewport's trailing edge.
	AlignEnd
	// AlignNearest scrolls the minimum distance that makes the item fully
	// visible, leaving the offset unchanged if it already is.
	AlignNearest
)

// HandleDelta converts a track-space delta (e.g. from a thumb drag) into
// content space and applies it.
//
// When the track-to-scroll factor is zero (a zero-length track, or a thumb
// that fills its track), the division would blow up; the contract is that
// the result snaps to the bound in the delta's sign direction instead, so
// the committed offset stays finite.
func (e *Engine) HandleDelta(delta float64) {
	m := e.Metrics()
	if !m.ScrollingNeeded {
		return
	}
	if m.TrackToScrollFactor == 0 {
		switch {
		case delta > 0:
			e.commit(m.MaxScrollOffset)
		case delta < 0:
			e.commit(0)
		}
		return
	}
	e.commit(e.offset + delta/m.TrackToScrollFactor)
}

// HandleTrackClick jumps the scroll position so the thumb centers on the
// clicked coordinate. clientCoord is in the host's coordinate space;
// trackStart is the track's origin in that same space.
func (e *Engine) HandleTrackClick(clientCoord, trackStart float64) {
	m := e.Metrics()
	if !m.ScrollingNeeded {
		return
	}
	clickPos := clientCoord - trackStart
	thumbStart := clamp(clickPos-m.ThumbSize/2, 0, m.ThumbTravel)
	if m.ThumbTravel > 0 {
		e.commit(thumbStart / m.ThumbTravel * m.MaxScrollOffset)
		return
	}
	e.commit(0)
}

// HandlePageScroll moves the offset by one viewport in the given direction.
func (e *Engine) HandlePageScroll(dir Direction) {
	if !e.ScrollingNeeded() {
		return
	}
	e.commit(e.offset + float64(dir)*e.geo.ViewportSize())
}

// ScrollItemIntoView positions the fixed-size item at index according to
// align. The final offset is always clamped into the valid range, so items
// near either end settle as close to the requested alignment as possible.
func (e *Engine) ScrollItemIntoView(index int, align Align) {
	if !e.ScrollingNeeded() {
		return
	}
	item := e.itemSize()
	viewport := e.geo.ViewportSize()
	top := float64(index) * item
	bottom := top + item

	var target float64
	switch align {
	case AlignStart:
		target = top
	case AlignEnd:
		target = bottom - viewport
	case AlignCenter:
		target = top - (viewport-item)/2
	case AlignNearest:
		switch {
		case top < e.offset:
			target = top
		case bottom > e.offset+viewport:
			target = bottom - viewport
		default:
			return
		}
	default:
		return
	}
	e.commit(target)
}
