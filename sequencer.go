package img2ascii

import (
	"errors"
	"io"
)

// FrameSource produces the frames of a video file or live camera, one at a
// time. Next returns io.EOF after the last frame. Frames that implement
// io.Closer are closed by the Sequencer once rendered.
type FrameSource interface {
	Next() (PixelGrid, error)
	io.Closer
}

// Skipper is implemented by sources that can drop a frame without
// decoding it into a grid.
type Skipper interface {
	Skip() error
}

// Rewinder is implemented by sources that can seek back to their first
// frame, such as video files. Live cameras do not implement it.
type Rewinder interface {
	Rewind() error
}

// Sequencer renders every FrameInterval-th frame of a FrameSource. Only
// one frame is held at a time; each kept frame is rendered and released
// before the next one is read.
type Sequencer struct {
	src  FrameSource
	cfg  RenderConfig
	ramp CharacterRamp

	next int // source index of the next frame to read
	last int // source index of the last rendered frame
}

// NewSequencer validates cfg and ramp and returns a Sequencer over src.
func NewSequencer(src FrameSource, cfg RenderConfig, ramp CharacterRamp) (*Sequencer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ramp.Validate(); err != nil {
		return nil, err
	}
	return &Sequencer{src: src, cfg: cfg, ramp: ramp, last: -1}, nil
}

// Next returns the rendering of the next kept frame, or io.EOF when the
// source is exhausted.
func (s *Sequencer) Next() (Rendering, error) {
	interval := s.cfg.FrameInterval
	for s.next%interval != 0 {
		if err := s.skip(); err != nil {
			return nil, err
		}
		s.next++
	}

	grid, err := s.src.Next()
	if err != nil {
		return nil, err
	}
	index := s.next
	s.next++

	rendering, err := Render(grid, s.cfg, s.ramp)
	release(grid)
	if err != nil {
		return nil, err
	}
	s.last = index
	return rendering, nil
}

// Index returns the source index of the frame rendered by the last
// successful call to Next, or -1 before the first one.
func (s *Sequencer) Index() int {
	return s.last
}

// Restart seeks the source back to its first frame. It fails with
// ErrNotRestartable for sources that cannot seek.
func (s *Sequencer) Restart() error {
	rw, ok := s.src.(Rewinder)
	if !ok {
		return ErrNotRestartable
	}
	if err := rw.Rewind(); err != nil {
		return err
	}
	s.next = 0
	s.last = -1
	return nil
}

// Close closes the underlying source.
func (s *Sequencer) Close() error {
	return s.src.Close()
}

func (s *Sequencer) skip() error {
	if sk, ok := s.src.(Skipper); ok {
		return sk.Skip()
	}
	grid, err := s.src.Next()
	if err != nil {
		return err
	}
	release(grid)
	return nil
}

func release(grid PixelGrid) {
	if c, ok := grid.(io.Closer); ok {
		_ = c.Close()
	}
}

// IsEnd reports whether err marks the normal end of a frame sequence.
func IsEnd(err error) bool {
	return errors.Is(err, io.EOF)
}
