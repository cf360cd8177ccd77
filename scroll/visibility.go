// Copyright © 2025 Scrollkit contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scroll/visibility.go
// Summary: Read-only visibility and paging queries over fixed-size items,
// used by virtualized-list navigation. None of these mutate the offset.
//
// ItemCount consistency with ContentSize/ItemSize is a caller precondition;
// with inconsistent geometry the index queries can return out-of-range
// values, which callers are expected to clamp against their own data.

package scroll

import "math"

// FirstFullyVisibleIndex returns the index of the first item whose span lies
// entirely at or below the viewport top. When even that item's trailing edge
// overflows the viewport (a viewport shorter than one item), the next index
// is returned.
func (e *Engine) FirstFullyVisibleIndex() int {
	item := e.itemSize()
	idx := int(math.Ceil(e.offset / item))
	if float64(idx)*item+item > e.offset+e.geo.ViewportSize() {
		return idx + 1
	}
	return idx
}

// LastFullyVisibleIndex returns the index of the last item whose span lies
// entirely within the viewport.
func (e *Engine) LastFullyVisibleIndex() int {
	item := e.itemSize()
	top := e.offset
	bottom := top + e.geo.ViewportSize()
	idx := int(math.Floor((bottom - 1) / item))
	itemTop := float64(idx) * item
	if itemTop < top || itemTop+item > bottom {
		return idx - 1
	}
	return idx
}

// IsItemVisible reports whether the item at index is visible. With fully
// set, the item's whole span must fit inside the viewport; otherwise any
// overlap counts.
func (e *Engine) IsItemVisible(index int, fully bool) bool {
	item := e.itemSize()
	top := float64(index) * item
	bottom := top + item
	viewTop := e.offset
	viewBottom := viewTop + e.geo.ViewportSize()
	if fully {
		return top >= viewTop && bottom <= viewBottom
	}
	return top < viewBottom && bottom > viewTop
}

// NextPageUpIndex returns the focus target for a page-up keypress. A focus
// that is not already on the first fully visible item refocuses there
// without scrolling; otherwise the target is one page back, so the old top
// item becomes the new bottom item.
func (e *Engine) NextPageUpIndex(focusedIndex int) int {
	first := e.FirstFullyVisibleIndex()
	if focusedIndex > first {
		return first
	}
	target := first - e.visibleCount(first) + 1
	if target < 0 {
		return 0
	}
	return target
}

// NextPageDownIndex returns the focus target for a page-down keypress,
// symmetric to NextPageUpIndex.
func (e *Engine) NextPageDownIndex(focusedIndex int) int {
	first := e.FirstFullyVisibleIndex()
	last := e.LastFullyVisibleIndex()
	if focusedIndex < last {
		return last
	}
	target := last + e.visibleCount(first) - 1
	if maxIdx := e.geo.ItemCount() - 1; target > maxIdx {
		return maxIdx
	}
	return target
}

// visibleCount returns the number of fully visible items, never below 1.
func (e *Engine) visibleCount(first int) int {
	count := e.LastFullyVisibleIndex() - first + 1
	if count < 1 {
		return 1
	}
	return count
}
