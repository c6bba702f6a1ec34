package player

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/wbrown/img2ascii"
)

type frameList struct {
	frames []img2ascii.Rendering
	pos    int
	err    error
}

func (f *frameList) Next() (img2ascii.Rendering, error) {
	if f.pos >= len(f.frames) {
		if f.err != nil {
			return nil, f.err
		}
		return nil, io.EOF
	}
	r := f.frames[f.pos]
	f.pos++
	return r, nil
}

// endless repeats one frame forever, like a live camera.
type endless struct{ count int }

func (e *endless) Next() (img2ascii.Rendering, error) {
	e.count++
	return img2ascii.Rendering{"@@", ".."}, nil
}

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)
	return screen
}

func readScreenLine(screen tcell.Screen, y, width int) string {
	runes := make([]rune, width)
	for i := 0; i < width; i++ {
		ch, _, _, _ := screen.GetContent(i, y)
		if ch == 0 {
			ch = ' '
		}
		runes[i] = ch
	}
	return string(runes)
}

func TestDrawClipsToScreen(t *testing.T) {
	screen := newScreen(t, 4, 2)
	p := New(screen)

	p.Draw(img2ascii.Rendering{"@%#*+=", "-,.@%#", "######"})

	if got := readScreenLine(screen, 0, 4); got != "@%#*" {
		t.Errorf("row 0 = %q, want \"@%%#*\"", got)
	}
	if got := readScreenLine(screen, 1, 4); got != "-,.@" {
		t.Errorf("row 1 = %q, want \"-,.@\"", got)
	}
}

func TestDrawBlockGlyphs(t *testing.T) {
	screen := newScreen(t, 5, 1)
	New(screen).Draw(img2ascii.Rendering{"█▓▒░ "})

	if got := readScreenLine(screen, 0, 5); got != "█▓▒░ " {
		t.Errorf("row 0 = %q", got)
	}
}

func TestDrawBlockGlyphsUnderCJKLocale(t *testing.T) {
	prevDefault := runewidth.DefaultCondition
	prevEAW := runewidth.EastAsianWidth
	runewidth.EastAsianWidth = true
	runewidth.DefaultCondition = runewidth.NewCondition()
	t.Cleanup(func() {
		runewidth.DefaultCondition = prevDefault
		runewidth.EastAsianWidth = prevEAW
	})

	screen := newScreen(t, 5, 1)
	New(screen).Draw(img2ascii.Rendering{"█▓▒░ "})

	if got := readScreenLine(screen, 0, 5); got != "█▓▒░ " {
		t.Errorf("row 0 = %q, want one glyph per cell", got)
	}
}

func TestPlayRunsToEnd(t *testing.T) {
	screen := newScreen(t, 3, 1)
	frames := &frameList{frames: []img2ascii.Rendering{{"aaa"}, {"bbb"}, {"ccc"}}}

	if err := New(screen).Play(context.Background(), frames, 0); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if frames.pos != 3 {
		t.Errorf("played %d frames, want 3", frames.pos)
	}
	if got := readScreenLine(screen, 0, 3); got != "ccc" {
		t.Errorf("last frame on screen = %q, want \"ccc\"", got)
	}
}

func TestPlayReturnsSourceError(t *testing.T) {
	screen := newScreen(t, 3, 1)
	boom := errors.New("decoder failed")
	frames := &frameList{frames: []img2ascii.Rendering{{"aaa"}}, err: boom}

	if err := New(screen).Play(context.Background(), frames, 0); !errors.Is(err, boom) {
		t.Errorf("Expected decoder error, got %v", err)
	}
}

func TestPlayQuitKey(t *testing.T) {
	screen := newScreen(t, 2, 2)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	done := make(chan error, 1)
	src := &endless{}
	go func() {
		done <- New(screen).Play(context.Background(), src, 20*time.Millisecond)
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Quit should not be an error, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Play did not stop on q")
	}
}

func TestPlayContextCancel(t *testing.T) {
	screen := newScreen(t, 2, 2)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- New(screen).Play(ctx, &endless{}, 10*time.Millisecond)
	}()
	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Play did not stop on cancel")
	}
}
