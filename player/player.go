// Package player shows a sequence of renderings in a terminal, one frame
// after another, for video files and live cameras.
package player

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/wbrown/img2ascii"
)

// Frames is the part of img2ascii.Sequencer the player needs.
type Frames interface {
	Next() (img2ascii.Rendering, error)
}

// Player draws renderings onto a tcell screen. The screen must already be
// initialised; the player never calls Fini.
type Player struct {
	screen tcell.Screen
	style  tcell.Style
}

// New returns a player drawing white on black, like the preview pane.
func New(screen tcell.Screen) *Player {
	return &Player{
		screen: screen,
		style:  tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack),
	}
}

// Draw replaces the screen contents with r. Lines and columns that do not
// fit are clipped.
func (p *Player) Draw(r img2ascii.Rendering) {
	p.screen.SetStyle(p.style)
	p.screen.Clear()
	w, h := p.screen.Size()
	for y, line := range r {
		if y >= h {
			break
		}
		x := 0
		for _, g := range line {
			if x >= w {
				break
			}
			p.screen.SetContent(x, y, g, nil, p.style)
			x += img2ascii.GlyphWidth(g)
		}
	}
	p.screen.Show()
}

// Play draws frames until the sequence ends, the context is cancelled, or
// the user presses q, Esc or Ctrl-C. delay is the pause after each frame.
// The end of the sequence and a quit key are not errors.
func (p *Player) Play(ctx context.Context, frames Frames, delay time.Duration) error {
	events := make(chan tcell.Event, 16)
	stop := make(chan struct{})
	go p.screen.ChannelEvents(events, stop)
	defer close(stop)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		r, err := frames.Next()
		if img2ascii.IsEnd(err) {
			return nil
		}
		if err != nil {
			return err
		}
		p.Draw(r)

		quit, err := p.wait(ctx, events, delay)
		if quit || err != nil {
			return err
		}
	}
}

// wait pauses for delay while handling terminal events. It reports whether
// the user asked to quit.
func (p *Player) wait(ctx context.Context, events <-chan tcell.Event, delay time.Duration) (bool, error) {
	timer := time.NewTimer(delay)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return true, ctx.Err()
		case <-timer.C:
			return false, nil
		case ev, ok := <-events:
			if !ok {
				// The screen was finalised.
				return true, nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if isQuitKey(ev) {
					return true, nil
				}
			case *tcell.EventResize:
				p.screen.Sync()
			}
		}
	}
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}
