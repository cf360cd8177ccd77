// Copyright © 2025 Scrollkit contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/scrollview/app.go
// Summary: tcell event loop wiring terminal input to the scroll engine's
// handlers. The engine owns the offset; this file only routes events and
// repaints when the observer fires.

package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/scrollkit/config"
	"github.com/framegrace/scrollkit/frame"
	"github.com/framegrace/scrollkit/scroll"
	"github.com/framegrace/scrollkit/session"
	"github.com/framegrace/scrollkit/tui"
)

// frameEvent carries one inertia tick from the timer goroutine onto the
// tcell event loop, keeping the engine single-threaded.
type frameEvent struct {
	when time.Time
	tick func()
}

func (e *frameEvent) When() time.Time { return e.when }

type app struct {
	key     string // document identity for the position store
	lines   []tui.Line
	store   *session.Store
	restore bool

	cfg    config.File
	screen tcell.Screen
	meas   *scroll.Measurements
	engine *scroll.Engine
	list   *tui.ListView
	bar    *tui.ScrollBar
	sched  *frame.TimerScheduler

	dirty    bool
	dragging bool
	dragY    int
}

func newApp(key string, lines []tui.Line, cfg config.File, store *session.Store, restore bool) *app {
	return &app{
		key:     key,
		lines:   lines,
		store:   store,
		restore: restore,
		cfg:     cfg,
	}
}

// cellTuning rescales the configured tuning to a one-cell-per-unit grid.
// The stock values are sized for pixel hosts; a 12px minimum thumb or a
// 10px minimum wheel step is nonsense when a unit is a whole terminal row.
func cellTuning(t scroll.Config) scroll.Config {
	t.MinThumbSize = 1
	t.MinVelocityPxStep = 1
	t.MaxVelocityPxStep = 6
	return t
}

func (a *app) run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	a.screen = screen

	_, h := screen.Size()
	body := float64(bodyHeight(h))
	a.meas = &scroll.Measurements{
		Viewport: body,
		Content:  float64(len(a.lines)),
		Track:    body,
		Item:     1,
		Items:    len(a.lines),
	}
	a.sched = &frame.TimerScheduler{
		Interval: a.cfg.FrameInterval(),
		Deliver: func(tick func()) {
			_ = screen.PostEvent(&frameEvent{when: time.Now(), tick: tick})
		},
	}
	a.engine = scroll.New(a.meas, cellTuning(a.cfg.Tuning), a.sched, func() { a.dirty = true })
	a.list = tui.NewListView(a.engine, len(a.lines), func(i int) tui.Line { return a.lines[i] })
	a.bar = tui.NewScrollBar()

	if a.restore && a.store != nil {
		if ratio, ok, err := a.store.LoadRatio(a.key); err == nil && ok {
			a.engine.SetRatio(ratio)
			a.list.Focused = a.engine.FirstFullyVisibleIndex()
		}
	}

	a.dirty = true
	for {
		if a.dirty {
			a.dirty = false
			a.draw()
		}
		if quit := a.handleEvent(screen.PollEvent()); quit {
			break
		}
	}

	a.engine.Dispose()
	if a.store != nil {
		_ = a.store.SaveRatio(a.key, a.engine.Ratio())
	}
	return nil
}

// bodyHeight reserves the bottom row for the status line.
func bodyHeight(h int) int {
	if h <= 1 {
		return 0
	}
	return h - 1
}

func (a *app) handleEvent(ev tcell.Event) (quit bool) {
	switch ev := ev.(type) {
	case *frameEvent:
		ev.tick()

	case *tcell.EventResize:
		_, h := ev.Size()
		a.engine.Remeasure(func() {
			body := float64(bodyHeight(h))
			a.meas.Viewport = body
			a.meas.Track = body
		})
		a.screen.Sync()
		a.dirty = true

	case *tcell.EventKey:
		return a.handleKey(ev)

	case *tcell.EventMouse:
		a.handleMouse(ev)
	}
	return false
}

func (a *app) handleKey(ev *tcell.EventKey) (quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		if ev.Rune() == 'q' {
			return true
		}
	case tcell.KeyUp:
		a.list.MoveFocus(-1)
	case tcell.KeyDown:
		a.list.MoveFocus(1)
	case tcell.KeyPgUp:
		a.list.PageUp()
	case tcell.KeyPgDn:
		a.list.PageDown()
	case tcell.KeyHome:
		a.engine.SetRatio(0)
		a.list.Focused = 0
	case tcell.KeyEnd:
		a.engine.SetRatio(1)
		a.list.Focused = len(a.lines) - 1
	case tcell.KeyCtrlL:
		a.screen.Sync()
	}
	a.dirty = true
	return false
}

func (a *app) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()
	w, _ := a.screen.Size()
	barX := w - 1

	switch {
	case buttons&tcell.WheelUp != 0:
		a.wheel(-1, ev.Modifiers())
	case buttons&tcell.WheelDown != 0:
		a.wheel(1, ev.Modifiers())

	case buttons&tcell.Button1 != 0:
		if a.dragging {
			if dy := y - a.dragY; dy != 0 {
				a.engine.HandleDelta(float64(dy))
				a.dragY = y
			}
			return
		}
		a.engine.StopInertia()
		if x == barX {
			start, end := a.bar.ThumbSpan(a.engine.Metrics())
			if y >= start && y < end {
				a.dragging = true
				a.dragY = y
			} else {
				a.engine.HandleTrackClick(float64(y), 0)
			}
			a.dirty = true
			return
		}
		// Click in the body focuses that row.
		if idx := int(a.engine.Offset()) + y; idx < len(a.lines) {
			a.list.Focused = idx
			a.dirty = true
		}

	default:
		a.dragging = false
	}
}

// wheel feeds a notch into the engine. Plain wheel scrolls by items, one
// row per notch; Shift engages the pixel(row) domain, which builds more
// momentum; Alt pages.
func (a *app) wheel(dir float64, mods tcell.ModMask) {
	switch {
	case mods&tcell.ModShift != 0:
		a.engine.HandleWheelPx(dir*3, scroll.DeltaPixel)
	case mods&tcell.ModAlt != 0:
		a.engine.HandleWheelItems(dir, scroll.DeltaPage)
	default:
		a.engine.HandleWheelItems(dir, scroll.DeltaLine)
	}
}

func (a *app) draw() {
	w, h := a.screen.Size()
	if w < 2 || h < 2 {
		return
	}
	a.screen.Clear()
	body := bodyHeight(h)
	a.list.Draw(a.screen, 0, 0, w-1, body)
	a.bar.Draw(a.screen, w-1, 0, a.engine.Metrics())
	a.drawStatus(w, h-1)
	a.screen.Show()
}

func (a *app) drawStatus(w, y int) {
	style := tcell.StyleDefault.Reverse(true)
	status := fmt.Sprintf(" %s  %d/%d  %3.0f%% ",
		a.key, a.list.Focused+1, len(a.lines), a.engine.Ratio()*100)
	status = runewidth.Truncate(status, w, "…")
	col := 0
	for _, r := range status {
		a.screen.SetContent(col, y, r, nil, style)
		col += runewidth.RuneWidth(r)
	}
	for ; col < w; col++ {
		a.screen.SetContent(col, y, ' ', nil, style)
	}
}
