// Copyright © 2025 Scrollkit contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tui/listview.go
// Summary: Virtualized fixed-row list view. Only the rows inside the
// engine's viewport are materialized and drawn; keyboard paging rides the
// engine's visibility queries.

package tui

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/scrollkit/scroll"
)

// Cell is one styled rune of a rendered row.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// Line is a rendered row of cells.
type Line []Cell

// ListView windows a list of Count fixed-height rows through a scroll
// engine. Row is called lazily, only for indices inside the viewport.
type ListView struct {
	Engine *scroll.Engine
	Row    func(index int) Line
	Count  int

	// Focused is the row keyboard navigation operates on.
	Focused int

	Style      tcell.Style
	FocusStyle tcell.Style
}

// NewListView wires a list view to an engine.
func NewListView(engine *scroll.Engine, count int, row func(index int) Line) *ListView {
	return &ListView{
		Engine:     engine,
		Row:        row,
		Count:      count,
		Style:      tcell.StyleDefault,
		FocusStyle: tcell.StyleDefault.Reverse(true),
	}
}

// Draw renders the visible window into the given rect. Rows are one cell
// high; the engine's offset is truncated to whole rows.
func (lv *ListView) Draw(screen tcell.Screen, x, y, w, h int) {
	first := int(math.Floor(lv.Engine.Offset()))
	for row := 0; row < h; row++ {
		idx := first + row
		var line Line
		if lv.Row != nil && idx >= 0 && idx < lv.Count {
			line = lv.Row(idx)
		}
		lv.drawRow(screen, x, y+row, w, idx, line)
	}
}

func (lv *ListView) drawRow(screen tcell.Screen, x, y, w, idx int, line Line) {
	focused := idx == lv.Focused && idx >= 0 && idx < lv.Count
	fill := lv.Style
	if focused {
		fill = lv.FocusStyle
	}
	col := 0
	for _, c := range line {
		if col >= w {
			break
		}
		width := runewidth.RuneWidth(c.Ch)
		if width < 1 {
			continue
		}
		style := c.Style
		if focused {
			style = fill
		}
		screen.SetContent(x+col, y, c.Ch, nil, style)
		col += width
	}
	for ; col < w; col++ {
		screen.SetContent(x+col, y, ' ', nil, fill)
	}
}

// MoveFocus shifts the focused row by delta and scrolls just enough to keep
// it visible.
func (lv *ListView) MoveFocus(delta int) {
	lv.setFocus(lv.Focused + delta)
}

// PageUp moves focus the way a page-up keypress should: refocus the top of
// the window first, then jump a page on the next press.
func (lv *ListView) PageUp() {
	lv.setFocus(lv.Engine.NextPageUpIndex(lv.Focused))
}

// PageDown mirrors PageUp toward the end of the list.
func (lv *ListView) PageDown() {
	lv.setFocus(lv.Engine.NextPageDownIndex(lv.Focused))
}

func (lv *ListView) setFocus(idx int) {
	if idx < 0 {
		idx = 0
	}
	if idx > lv.Count-1 {
		idx = lv.Count - 1
	}
	lv.Focused = idx
	lv.Engine.ScrollItemIntoView(idx, scroll.AlignNearest)
}
