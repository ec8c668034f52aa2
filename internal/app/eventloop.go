package app

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"github.com/dshills/cellstorm/internal/renderer/backend"
	"github.com/dshills/cellstorm/internal/renderer/core"
	"github.com/dshills/cellstorm/internal/widget/datatable"
)

const (
	// tickRate is how often the loop advances animations while idle.
	tickRate = 60

	// wheelLines is how far one mouse wheel notch scrolls.
	wheelLines = 3
)

// Run initializes the backend and runs the main loop until a quit key,
// Shutdown or ctx cancellation. A panic on the loop is recovered after
// the terminal is restored and returned as a RecoveredPanicError.
func (app *Application) Run(ctx context.Context) (err error) {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return NewComponentError("backend", "init", err)
	}
	defer app.backend.Shutdown()

	stop := make(chan struct{})
	defer close(stop)
	defer app.logStats()

	defer func() {
		if r := recover(); r != nil {
			perr := NewRecoveredPanicError(r, string(debug.Stack()))
			app.logger.Error("%v", perr)
			err = perr
		}
	}()

	app.resize(app.backend.Size())
	events := app.startInputPolling(stop)

	ticker := time.NewTicker(time.Second / tickRate)
	defer ticker.Stop()

	app.logger.Info("event loop started")
	last := time.Now()
	app.step(0)

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-app.done:
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			timer := StartTimer()
			err := app.handleBackendEvent(ev)
			app.metrics.RecordInput(timer.Elapsed())
			if err != nil {
				if errors.Is(err, ErrQuit) {
					app.logger.Info("quit requested")
					return nil
				}
				app.logger.Warn("event: %v", err)
			}

		case <-ticker.C:
		}

		now := time.Now()
		app.step(now.Sub(last).Seconds())
		last = now
	}
}

// step delivers queued messages, runs the idle phase, advances animations
// by dt seconds and paints whatever was damaged.
func (app *Application) step(dt float64) {
	timer := StartTimer()
	app.pump.RunPending()
	app.compositor.Update(dt)

	pending := app.compositor.NeedsRedraw()
	switch {
	case app.compositor.Render():
		app.metrics.RecordFrame(timer.Elapsed())
	case pending:
		app.metrics.RecordDroppedFrame()
	}
}

// startInputPolling starts a goroutine that forwards backend events until
// stop is closed.
//
// PollEvent is blocking. Shutting down the backend unblocks it, which
// Run does after closing stop.
func (app *Application) startInputPolling(stop <-chan struct{}) <-chan backend.Event {
	events := make(chan backend.Event, 100)

	go func() {
		defer close(events)

		for {
			ev := app.backend.PollEvent()
			if ev.Type == backend.EventNone {
				select {
				case <-stop:
					return
				default:
					continue
				}
			}

			select {
			case events <- ev:
			case <-stop:
				return
			}
		}
	}()

	return events
}

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		app.resize(ev.Width, ev.Height)
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	case backend.EventMouse:
		app.handleMouseEvent(ev)
	}
	return nil
}

// resize fits the compositor, the table layer and the table to the screen.
func (app *Application) resize(width, height int) {
	app.compositor.Resize(width, height)
	app.compositor.MoveLayer(tableLayer, core.Region{Width: width, Height: height})
	app.table.Resize(width, height)
}

// handleKeyEvent processes keyboard input events.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	t := app.table
	switch ev.Key {
	case backend.KeyEscape, backend.KeyCtrlC, backend.KeyCtrlQ:
		return ErrQuit
	case backend.KeyUp:
		t.CursorUp()
	case backend.KeyDown:
		t.CursorDown()
	case backend.KeyLeft, backend.KeyBacktab:
		t.CursorLeft()
	case backend.KeyRight, backend.KeyTab:
		t.CursorRight()
	case backend.KeyEnter:
		t.SelectCursor()
	case backend.KeyPageUp:
		t.PageUp(true)
	case backend.KeyPageDown:
		t.PageDown(true)
	case backend.KeyHome:
		t.ScrollHome(true)
	case backend.KeyEnd:
		t.ScrollEnd(true)
	case backend.KeyCtrlL:
		app.compositor.Tracker().MarkFullRedraw()
	case backend.KeyRune:
		return app.handleRune(ev.Rune)
	}
	return nil
}

// handleRune processes printable keys. hjkl mirror the arrow keys.
func (app *Application) handleRune(r rune) error {
	t := app.table
	switch r {
	case 'q':
		return ErrQuit
	case 'k':
		t.CursorUp()
	case 'j':
		t.CursorDown()
	case 'h':
		t.CursorLeft()
	case 'l':
		t.CursorRight()
	case ' ':
		t.SelectCursor()
	case 'g':
		t.ScrollHome(true)
	case 'G':
		t.ScrollEnd(true)
	case 'c':
		app.cycleCursorType()
	case 'z':
		app.zebra = !app.zebra
		t.SetZebraStripes(app.zebra)
	}
	return nil
}

// cycleCursorType steps through cell, row, column and no cursor.
func (app *Application) cycleCursorType() {
	next := datatable.CursorType((int(app.table.CursorType()) + 1) % (int(datatable.CursorNone) + 1))
	app.table.SetCursorType(next)
	app.logger.Debug("cursor type %s", next)
}

// handleMouseEvent routes pointer input to the table using the metadata
// stamped on the cell under the pointer.
func (app *Application) handleMouseEvent(ev backend.Event) {
	layer, _, ok := app.compositor.LayerAt(ev.MouseX, ev.MouseY)
	if !ok || layer != app.layer {
		return
	}

	t := app.table
	meta := app.compositor.StyleAt(ev.MouseX, ev.MouseY).Meta

	switch ev.MouseButton {
	case backend.MouseWheelUp:
		t.ScrollBy(0, -wheelLines, false)
	case backend.MouseWheelDown:
		t.ScrollBy(0, wheelLines, false)
	case backend.MouseWheelLeft:
		t.ScrollBy(-wheelLines, 0, false)
	case backend.MouseWheelRight:
		t.ScrollBy(wheelLines, 0, false)
	case backend.MouseLeft:
		// Dragging with the button held repeats the press.
		if app.buttonDown {
			t.OnMouseMove(meta)
			return
		}
		app.buttonDown = true
		t.OnClick(meta)
	case backend.MouseNone:
		app.buttonDown = false
		t.OnMouseMove(meta)
	}
}
