// Package term renders the puzzle into a terminal with tcell. Every cell is a
// pixel; cells are assumed to be twice as tall as they are wide.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/phanxgames/twisty"
	"github.com/phanxgames/twisty/internal/app"
	"github.com/phanxgames/twisty/internal/raster"
)

const (
	cellRune   = '█'
	cellAspect = 0.5 // cell width / cell height
)

var moveRunes = map[rune]twisty.Move{
	't': twisty.MoveTop,
	'b': twisty.MoveBottom,
	'l': twisty.MoveLeft,
	'r': twisty.MoveRight,
	'f': twisty.MoveFront,
	'k': twisty.MoveBack,
}

var statusStyle = tcell.StyleDefault.Foreground(tcell.ColorSilver)

// Viewer draws an app.App onto a tcell screen.
type Viewer struct {
	screen tcell.Screen
	app    *app.App
	raster *raster.Rasterizer
	pts    []mgl32.Vec2
}

// NewViewer returns a viewer for an initialized screen.
func NewViewer(screen tcell.Screen, a *app.App) *Viewer {
	return &Viewer{
		screen: screen,
		app:    a,
		raster: raster.New(a.Camera()),
		pts:    make([]mgl32.Vec2, 0, 4),
	}
}

// Draw paints the current frame and a status line, then shows the screen.
func (v *Viewer) Draw() {
	v.screen.Clear()
	w, h := v.screen.Size()
	rows := h - 1
	if w <= 0 || rows <= 0 {
		v.screen.Show()
		return
	}

	aspect := float32(w) * cellAspect / float32(rows)
	polys := v.raster.Project(v.app.Scene().Frame(), w, rows, aspect)
	for i := range polys {
		p := &polys[i]
		style := tcell.StyleDefault.Foreground(toColor(p.Color))
		v.pts = append(v.pts[:0], p.Points[:]...)
		raster.FillPolygon(v.pts, w, rows, func(x, y int) {
			v.screen.SetContent(x, y, cellRune, nil, style)
		})
	}

	p := v.app.Puzzle()
	status := fmt.Sprintf("moves %d  %s  auto %v  paused %v  [tblrfk] move  [space] pause  [a] auto  [q] quit",
		p.MovesCommitted(), p.Phase(), p.Auto(), p.Paused())
	for i, r := range []rune(status) {
		if i >= w {
			break
		}
		v.screen.SetContent(i, h-1, r, nil, statusStyle)
	}
	v.screen.Show()
}

// HandleEvent applies one input event. It returns false when the viewer
// should exit.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		p := v.app.Puzzle()
		r := ev.Rune()
		if m, ok := moveRunes[r]; ok {
			p.PerformMove(m)
			return true
		}
		switch r {
		case 'q':
			return false
		case ' ':
			p.SetPaused(!p.Paused())
		case 'a':
			p.SetAuto(!p.Auto())
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

// Run drives the viewer at fps frames per second until ctx is cancelled or
// the user quits.
func (v *Viewer) Run(ctx context.Context, fps int) error {
	if fps <= 0 {
		return errors.Errorf("invalid fps %d", fps)
	}
	frame := time.Second / time.Duration(fps)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go pollEvents(ctx, v.screen, events)

	last := time.Now()
	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !v.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			v.app.Update(float32(now.Sub(last).Seconds()))
			last = now
			v.Draw()
		}
	}
}

// pollEvents forwards screen events to events until the screen is finalized
// or ctx is done. events is closed once the screen stops delivering.
func pollEvents(ctx context.Context, screen tcell.Screen, events chan<- tcell.Event) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// Run opens the terminal, runs a viewer and restores the terminal on exit.
func Run(ctx context.Context, a *app.App, fps int) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "create screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "init screen")
	}
	defer screen.Fini()

	err = NewViewer(screen, a).Run(ctx, fps)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func toColor(c twisty.Color) tcell.Color {
	return tcell.NewRGBColor(channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float32) int32 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return int32(v*255 + 0.5)
}
