package capture

import (
	"fmt"
	"io"

	"gocv.io/x/gocv"

	"github.com/wbrown/img2ascii"
)

// stream is the frame reading shared by videos and cameras.
type stream struct {
	vc *gocv.VideoCapture
}

// Next decodes the next frame. It returns io.EOF when the capture has no
// more frames.
func (s *stream) Next() (img2ascii.PixelGrid, error) {
	mat := gocv.NewMat()
	if ok := s.vc.Read(&mat); !ok || mat.Empty() {
		mat.Close()
		return nil, io.EOF
	}
	return NewFrame(mat), nil
}

// Skip drops the next frame without decoding it. Running past the end is
// reported by the following Next.
func (s *stream) Skip() error {
	s.vc.Grab(1)
	return nil
}

// Close releases the capture device or file.
func (s *stream) Close() error {
	return s.vc.Close()
}

// Video is a frame source over a video file. It can be rewound.
type Video struct {
	stream
	path string
}

// OpenVideo opens a video file for reading.
func OpenVideo(path string) (*Video, error) {
	vc, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open video %s: %w", path, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("failed to open video %s", path)
	}
	return &Video{stream: stream{vc: vc}, path: path}, nil
}

// Rewind seeks back to the first frame.
func (v *Video) Rewind() error {
	if !v.vc.IsOpened() {
		return fmt.Errorf("failed to rewind %s: capture is closed", v.path)
	}
	v.vc.Set(gocv.VideoCapturePosFrames, 0)
	return nil
}

// FPS returns the frame rate recorded in the file, or 0 when unknown.
func (v *Video) FPS() float64 {
	return v.vc.Get(gocv.VideoCaptureFPS)
}

// FrameCount returns the number of frames the container reports. Some
// containers only give an estimate.
func (v *Video) FrameCount() int {
	return int(v.vc.Get(gocv.VideoCaptureFrameCount))
}

// Camera is a live frame source. It cannot be rewound.
type Camera struct {
	stream
	id int
}

// OpenCamera opens the camera with the given device id.
func OpenCamera(id int) (*Camera, error) {
	vc, err := gocv.OpenVideoCapture(id)
	if err != nil {
		return nil, fmt.Errorf("failed to open camera %d: %w", id, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("camera %d is not available", id)
	}
	return &Camera{stream: stream{vc: vc}, id: id}, nil
}

// ID returns the device id the camera was opened with.
func (c *Camera) ID() int {
	return c.id
}

// ListCameras probes device ids 0..max-1 and returns those that open.
func ListCameras(max int) []int {
	var ids []int
	for id := 0; id < max; id++ {
		vc, err := gocv.VideoCaptureDevice(id)
		if err != nil {
			continue
		}
		if vc.IsOpened() {
			ids = append(ids, id)
		}
		vc.Close()
	}
	return ids
}

var (
	_ img2ascii.FrameSource = (*Video)(nil)
	_ img2ascii.Rewinder    = (*Video)(nil)
	_ img2ascii.Skipper     = (*Video)(nil)
	_ img2ascii.FrameSource = (*Camera)(nil)
	_ img2ascii.Skipper     = (*Camera)(nil)
	_ img2ascii.PixelGrid   = (*Frame)(nil)
)
