package img2ascii

import (
	"errors"
	"io"
	"reflect"
	"testing"
)

// closingGrid records whether the sequencer released it.
type closingGrid struct {
	lumGrid
	closed *int
}

func (g closingGrid) Close() error {
	*g.closed++
	return nil
}

// fakeVideo is a FrameSource whose frame i is a solid grid of luminance
// i*25.5+1, so with digitRamp the rendered glyph is the frame number.
type fakeVideo struct {
	frames   int
	pos      int
	read     []int
	skipped  []int
	closed   int
	released int
}

func (v *fakeVideo) Next() (PixelGrid, error) {
	if v.pos >= v.frames {
		return nil, io.EOF
	}
	v.read = append(v.read, v.pos)
	g := closingGrid{lumGrid: solidGrid(2, 2, float64(v.pos)*25.5+1), closed: &v.released}
	v.pos++
	return g, nil
}

func (v *fakeVideo) Close() error {
	v.closed++
	return nil
}

type skippingVideo struct{ *fakeVideo }

func (v skippingVideo) Skip() error {
	if v.pos >= v.frames {
		return io.EOF
	}
	v.skipped = append(v.skipped, v.pos)
	v.pos++
	return nil
}

type rewindableVideo struct{ *fakeVideo }

func (v rewindableVideo) Rewind() error {
	v.pos = 0
	return nil
}

// digitRamp maps luminance 0..255 onto eleven glyphs.
var digitRamp = MustRamp("0123456789X", DarkFirst)

func collect(t *testing.T, seq *Sequencer) (indexes []int, glyphs string) {
	t.Helper()
	for {
		r, err := seq.Next()
		if errors.Is(err, io.EOF) {
			return indexes, glyphs
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		indexes = append(indexes, seq.Index())
		glyphs += r[0][:1]
	}
}

func TestSequencerKeepsEveryNthFrame(t *testing.T) {
	t.Parallel()

	cfg := testConfig(2)
	cfg.FrameInterval = 3

	for _, canSkip := range []bool{false, true} {
		video := &fakeVideo{frames: 10}
		var src FrameSource = video
		if canSkip {
			src = skippingVideo{video}
		}
		seq, err := NewSequencer(src, cfg, digitRamp)
		if err != nil {
			t.Fatal(err)
		}

		indexes, glyphs := collect(t, seq)
		if want := []int{0, 3, 6, 9}; !reflect.DeepEqual(indexes, want) {
			t.Errorf("skip=%v: rendered frames %v, want %v", canSkip, indexes, want)
		}
		if glyphs != "0369" {
			t.Errorf("skip=%v: rendered glyphs %q, want \"0369\"", canSkip, glyphs)
		}
		if canSkip {
			if want := []int{1, 2, 4, 5, 7, 8}; !reflect.DeepEqual(video.skipped, want) {
				t.Errorf("skipped %v, want %v", video.skipped, want)
			}
			if want := []int{0, 3, 6, 9}; !reflect.DeepEqual(video.read, want) {
				t.Errorf("decoded %v, want %v", video.read, want)
			}
		}
		if video.released != len(video.read) {
			t.Errorf("skip=%v: released %d of %d decoded frames",
				canSkip, video.released, len(video.read))
		}

		if err := seq.Close(); err != nil {
			t.Fatal(err)
		}
		if video.closed != 1 {
			t.Errorf("source closed %d times, want 1", video.closed)
		}
	}
}

func TestSequencerIntervalOne(t *testing.T) {
	t.Parallel()

	seq, err := NewSequencer(&fakeVideo{frames: 4}, testConfig(2), digitRamp)
	if err != nil {
		t.Fatal(err)
	}
	indexes, glyphs := collect(t, seq)
	if want := []int{0, 1, 2, 3}; !reflect.DeepEqual(indexes, want) {
		t.Errorf("rendered frames %v, want %v", indexes, want)
	}
	if glyphs != "0123" {
		t.Errorf("rendered glyphs %q", glyphs)
	}
}

func TestSequencerRestart(t *testing.T) {
	t.Parallel()

	cfg := testConfig(2)
	cfg.FrameInterval = 2
	video := &fakeVideo{frames: 5}
	seq, err := NewSequencer(rewindableVideo{video}, cfg, digitRamp)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := seq.Next(); err != nil {
		t.Fatal(err)
	}
	if _, err := seq.Next(); err != nil {
		t.Fatal(err)
	}
	if seq.Index() != 2 {
		t.Fatalf("Index = %d, want 2", seq.Index())
	}

	if err := seq.Restart(); err != nil {
		t.Fatalf("Restart failed: %v", err)
	}
	if seq.Index() != -1 {
		t.Errorf("Index after restart = %d, want -1", seq.Index())
	}
	indexes, glyphs := collect(t, seq)
	if want := []int{0, 2, 4}; !reflect.DeepEqual(indexes, want) {
		t.Errorf("frames after restart %v, want %v", indexes, want)
	}
	if glyphs != "024" {
		t.Errorf("glyphs after restart %q, want \"024\"", glyphs)
	}
}

func TestSequencerLiveSourceNotRestartable(t *testing.T) {
	t.Parallel()

	seq, err := NewSequencer(&fakeVideo{frames: 3}, testConfig(2), digitRamp)
	if err != nil {
		t.Fatal(err)
	}
	if err := seq.Restart(); !errors.Is(err, ErrNotRestartable) {
		t.Errorf("Expected ErrNotRestartable, got %v", err)
	}
}

func TestSequencerInvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig(2)
	cfg.FrameInterval = 0
	if _, err := NewSequencer(&fakeVideo{}, cfg, digitRamp); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for zero interval, got %v", err)
	}
	if _, err := NewSequencer(&fakeVideo{}, testConfig(2), CharacterRamp{}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for empty ramp, got %v", err)
	}
}

func TestSequencerEmptySource(t *testing.T) {
	t.Parallel()

	seq, err := NewSequencer(&fakeVideo{}, testConfig(2), digitRamp)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := seq.Next(); !IsEnd(err) {
		t.Errorf("Expected end of sequence, got %v", err)
	}
}
