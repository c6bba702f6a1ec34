package img2ascii

import "errors"

var (
	// ErrInvalidConfig is returned when a RenderConfig or CharacterRamp
	// cannot be used for rendering (bad width, empty ramp, ...).
	ErrInvalidConfig = errors.New("invalid config")

	// ErrInvalidInput is returned when the pixel grid is nil or has a zero
	// dimension.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotRestartable is returned by Sequencer.Restart when the frame
	// source cannot seek back to its first frame, e.g. a live camera.
	ErrNotRestartable = errors.New("frame source is not restartable")
)
