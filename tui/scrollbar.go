// Copyright © 2025 Scrollkit contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tui/scrollbar.go
// Summary: Vertical scrollbar rendering a track/thumb pair from a
// scroll.Metrics snapshot. Pure presentation; the engine owns all state.

package tui

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/scrollkit/scroll"
)

// ScrollBar draws one cell-wide vertical scrollbar column. The zero value
// renders with default styles and the stock glyphs.
type ScrollBar struct {
	TrackRune  rune
	ThumbRune  rune
	TrackStyle tcell.Style
	ThumbStyle tcell.Style
}

// NewScrollBar returns a scrollbar with the stock glyphs.
func NewScrollBar() *ScrollBar {
	return &ScrollBar{
		TrackRune:  '│',
		ThumbRune:  '█',
		TrackStyle: tcell.StyleDefault,
		ThumbStyle: tcell.StyleDefault.Reverse(true),
	}
}

// ThumbSpan returns the thumb's cell row range [start, end) along the track,
// for hit-testing drags. The span is empty when no scrolling is needed.
func (sb *ScrollBar) ThumbSpan(m scroll.Metrics) (start, end int) {
	if !m.ScrollingNeeded {
		return 0, 0
	}
	track := int(m.TrackSize)
	size := int(math.Round(m.ThumbSize))
	if size < 1 {
		size = 1
	}
	if size > track {
		size = track
	}
	start = int(math.Round(m.ThumbOffset))
	if start+size > track {
		start = track - size
	}
	if start < 0 {
		start = 0
	}
	return start, start + size
}

// Draw renders the column at (x, y) for the given metrics. The track length
// is m.TrackSize rounded down to whole cells.
func (sb *ScrollBar) Draw(screen tcell.Screen, x, y int, m scroll.Metrics) {
	track := int(m.TrackSize)
	if track <= 0 {
		return
	}
	trackRune, thumbRune := sb.TrackRune, sb.ThumbRune
	if trackRune == 0 {
		trackRune = '│'
	}
	if thumbRune == 0 {
		thumbRune = '█'
	}
	for row := 0; row < track; row++ {
		screen.SetContent(x, y+row, trackRune, nil, sb.TrackStyle)
	}
	if !m.ScrollingNeeded {
		return
	}
	start, end := sb.ThumbSpan(m)
	for row := start; row < end && row < track; row++ {
		screen.SetContent(x, y+row, thumbRune, nil, sb.ThumbStyle)
	}
}
