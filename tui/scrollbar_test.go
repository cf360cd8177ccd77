// Copyright © 2025 Scrollkit contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/scrollkit/scroll"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func cellRune(s tcell.SimulationScreen, x, y int) rune {
	contents, w, _ := s.GetContents()
	cell := contents[y*w+x]
	if len(cell.Runes) == 0 {
		return ' '
	}
	return cell.Runes[0]
}

// cellEngine builds an engine sized in cells, where the default 12-cell
// minimum thumb would dwarf a 10-cell track.
func cellEngine(content float64, items int) *scroll.Engine {
	cfg := scroll.DefaultConfig()
	cfg.MinThumbSize = 1
	geo := &scroll.Measurements{Viewport: 10, Content: content, Track: 10, Item: 1, Items: items}
	return scroll.New(geo, cfg, nil, nil)
}

func TestScrollBar_ThumbAtEnds(t *testing.T) {
	s := newSimScreen(t, 5, 10)
	e := cellEngine(30, 30)
	sb := NewScrollBar()

	sb.Draw(s, 0, 0, e.Metrics())
	s.Show()
	if got := cellRune(s, 0, 0); got != '█' {
		t.Errorf("top cell at ratio 0 = %q, want thumb", got)
	}
	if got := cellRune(s, 0, 9); got != '│' {
		t.Errorf("bottom cell at ratio 0 = %q, want track", got)
	}

	e.SetRatio(1)
	sb.Draw(s, 0, 0, e.Metrics())
	s.Show()
	if got := cellRune(s, 0, 9); got != '█' {
		t.Errorf("bottom cell at ratio 1 = %q, want thumb", got)
	}
	if got := cellRune(s, 0, 0); got != '│' {
		t.Errorf("top cell at ratio 1 = %q, want track", got)
	}
}

func TestScrollBar_NoThumbWhenContentFits(t *testing.T) {
	s := newSimScreen(t, 5, 10)
	e := cellEngine(5, 5)
	sb := NewScrollBar()

	sb.Draw(s, 0, 0, e.Metrics())
	s.Show()
	for y := 0; y < 10; y++ {
		if got := cellRune(s, 0, y); got != '│' {
			t.Errorf("row %d = %q, want bare track", y, got)
		}
	}
}

func TestScrollBar_ThumbSpan(t *testing.T) {
	e := cellEngine(30, 30)
	sb := NewScrollBar()

	m := e.Metrics()
	start, end := sb.ThumbSpan(m)
	if start != 0 {
		t.Errorf("thumb start at ratio 0 = %d, want 0", start)
	}
	// A third of the content is visible: thumb is ~3 of 10 cells.
	if size := end - start; size != 3 {
		t.Errorf("thumb size = %d, want 3", size)
	}

	e.SetRatio(1)
	_, end = sb.ThumbSpan(e.Metrics())
	if end != 10 {
		t.Errorf("thumb end at ratio 1 = %d, want 10", end)
	}

	fits := cellEngine(5, 5)
	if s0, e0 := sb.ThumbSpan(fits.Metrics()); s0 != 0 || e0 != 0 {
		t.Errorf("ThumbSpan with no overflow = [%d,%d), want empty", s0, e0)
	}
}
