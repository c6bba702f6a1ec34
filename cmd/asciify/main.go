package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/font"

	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/capture"
	"github.com/wbrown/img2ascii/imageutil"
	"github.com/wbrown/img2ascii/player"
	"github.com/wbrown/img2ascii/settings"
)

// options holds everything parsed from the command line.
type options struct {
	input       string
	camera      int
	listCameras bool
	gallery     string
	preview     int
	output      string

	cfg  img2ascii.RenderConfig
	ramp img2ascii.CharacterRamp

	fontPath string
	fontSize float64
	copy     bool
	play     bool
	frames   int
	delay    time.Duration

	settingsPath string
	saveSettings bool
	st           *settings.Settings
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseArgs reads the flags and merges them over the saved settings.
// Flags that are not given keep their saved values.
func parseArgs(args []string) (*options, error) {
	fs := flag.NewFlagSet("asciify", flag.ContinueOnError)

	input := fs.String("input", "",
		"Path to an image or video file")
	camera := fs.Int("camera", -1,
		"Capture from the camera with this index instead of a file")
	listCameras := fs.Bool("list-cameras", false,
		"List the camera indexes that can be opened and exit")
	gallery := fs.String("gallery", "",
		"List the images in a directory and exit")
	preview := fs.Int("preview", 0,
		"Width of the ASCII preview printed for each -gallery image, 0 for none")
	last := fs.Bool("last", false,
		"Render the last image used when -input is not given")
	output := fs.String("output", "",
		"Path to save the output, .txt or .png (if not specified, prints to stdout)")
	width := fs.Int("width", 0,
		"Output width in characters")
	height := fs.Int("height", 0,
		"Output height in lines, 0 to follow the aspect ratio")
	brightness := fs.Float64("brightness", 0,
		"Brightness offset added to every pixel (-255 to 255)")
	contrast := fs.Float64("contrast", 1,
		"Contrast factor around mid grey")
	invert := fs.Bool("invert", false,
		"Swap dark and light glyphs")
	spacing := fs.Float64("spacing", 0,
		"Line spacing, the height to width ratio of a character cell")
	interval := fs.Int("interval", 0,
		"Render every Nth frame of a video or camera")
	slot := fs.Int("slot", 0,
		"Use the saved character ramp in slot 1, 2 or 3")
	rampFlag := fs.String("ramp", "",
		"Character ramp to use instead of a saved slot")
	order := fs.String("order", "light-first",
		"Order of the -ramp glyphs: light-first or dark-first")
	nearest := fs.Bool("nearest", false,
		"Sample the centre pixel of each cell instead of averaging")
	fontPath := fs.String("font", "",
		"TrueType font for PNG output (default: built-in 7x13)")
	fontSize := fs.Float64("fontsize", 14,
		"Font size in points for PNG output with -font")
	copyOut := fs.Bool("copy", false,
		"Copy the result to the terminal clipboard")
	play := fs.Bool("play", false,
		"Play a video or camera in the terminal")
	frames := fs.Int("frames", 1,
		"Number of frames to render from a video or camera, 0 for all")
	delay := fs.Duration("delay", 0,
		"Pause between frames during -play (default: from the video frame rate)")
	settingsPath := fs.String("settings", "",
		"Path to the settings file (default: user config directory)")
	saveSettings := fs.Bool("save-settings", false,
		"Save the configuration used for this run")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts := &options{
		input:        *input,
		camera:       *camera,
		listCameras:  *listCameras,
		gallery:      *gallery,
		preview:      *preview,
		output:       *output,
		fontPath:     *fontPath,
		fontSize:     *fontSize,
		copy:         *copyOut,
		play:         *play,
		frames:       *frames,
		delay:        *delay,
		settingsPath: *settingsPath,
		saveSettings: *saveSettings,
	}

	if opts.settingsPath == "" {
		if p, err := settings.DefaultPath(); err == nil {
			opts.settingsPath = p
		}
	}
	st := settings.Default()
	if opts.settingsPath != "" {
		loaded, err := settings.Load(opts.settingsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
		st = loaded
	}
	opts.st = st
	if *last && opts.input == "" {
		opts.input = st.LastImage
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})

	cfg := st.Config()
	if set["width"] {
		cfg.Width = *width
	}
	if set["height"] {
		cfg.Height = *height
	}
	if set["brightness"] {
		cfg.Brightness = *brightness
	}
	if set["contrast"] {
		cfg.Contrast = *contrast
	}
	if set["invert"] {
		cfg.Invert = *invert
	}
	if set["spacing"] {
		cfg.LineSpacing = *spacing
	}
	if set["interval"] {
		cfg.FrameInterval = *interval
	}
	if set["nearest"] {
		cfg.Sampling = img2ascii.SampleArea
		if *nearest {
			cfg.Sampling = img2ascii.SampleNearest
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	opts.cfg = cfg

	if set["slot"] {
		if err := st.SetActiveSlot(*slot); err != nil {
			return nil, err
		}
	}
	if *rampFlag != "" {
		var ro img2ascii.RampOrder
		if err := ro.UnmarshalText([]byte(*order)); err != nil {
			return nil, err
		}
		ramp, err := img2ascii.NewRamp(*rampFlag, ro)
		if err != nil {
			return nil, err
		}
		opts.ramp = ramp
	} else {
		ramp, err := st.Ramp()
		if err != nil {
			return nil, err
		}
		opts.ramp = ramp
	}
	return opts, nil
}

func run(opts *options) error {
	switch {
	case opts.listCameras:
		return listCameras()
	case opts.gallery != "":
		return listGallery(opts)
	case opts.camera >= 0:
		cam, err := capture.OpenCamera(opts.camera)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Capturing from camera %d\n", cam.ID())
		if err := runSequence(opts, cam, 0, 0); err != nil {
			return err
		}
	case opts.input == "":
		return errors.New("please provide an image or video with -input, or a camera with -camera")
	case imageutil.IsURL(opts.input):
		if err := renderImage(opts); err != nil {
			return err
		}
	case imageutil.IsImageFile(opts.input) || capture.IsStillImage(opts.input):
		if err := renderImage(opts); err != nil {
			return err
		}
		rememberImage(opts)
	default:
		video, err := capture.OpenVideo(opts.input)
		if err != nil {
			return err
		}
		if err := runSequence(opts, video, video.FPS(), video.FrameCount()); err != nil {
			return err
		}
	}

	if opts.saveSettings && opts.settingsPath != "" {
		opts.st.Apply(opts.cfg)
		if err := opts.st.Save(opts.settingsPath); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Settings saved to %s\n", opts.settingsPath)
	}
	return nil
}

// rememberImage records the input as the last image. With -save-settings
// it is written together with the rest of the settings.
func rememberImage(opts *options) {
	path := opts.input
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	opts.st.LastImage = path
	if opts.saveSettings || opts.settingsPath == "" {
		return
	}
	if err := settings.RememberImage(opts.settingsPath, path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to remember last image: %v\n", err)
	}
}

func listCameras() error {
	ids := capture.ListCameras(10)
	if len(ids) == 0 {
		fmt.Println("No cameras found")
		return nil
	}
	for _, id := range ids {
		fmt.Printf("Camera %d\n", id)
	}
	return nil
}

// thumbnailSide bounds gallery images before they are previewed.
const thumbnailSide = 300

func listGallery(opts *options) error {
	entries, err := imageutil.ListImages(opts.gallery)
	if err != nil {
		return err
	}
	cfg := opts.cfg
	cfg.Width = opts.preview
	cfg.Height = 0
	for _, e := range entries {
		fmt.Printf("%10d  %s\n", e.Size, e.Name)
		if opts.preview <= 0 {
			continue
		}
		img, _, err := imageutil.LoadImage(e.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			continue
		}
		thumb := imageutil.Thumbnail(img, thumbnailSide)
		r, err := img2ascii.Render(img2ascii.NewImageGrid(thumb), cfg, opts.ramp)
		if err != nil {
			return err
		}
		if _, err := r.WriteTo(os.Stdout); err != nil {
			return err
		}
	}
	fmt.Fprintf(os.Stderr, "%d images in %s\n", len(entries), opts.gallery)
	return nil
}

func renderImage(opts *options) error {
	start := time.Now()
	grid, format, err := loadStill(opts.input)
	if err != nil {
		return err
	}
	if c, ok := grid.(io.Closer); ok {
		defer c.Close()
	}
	r, err := img2ascii.Render(grid, opts.cfg, opts.ramp)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Rendered %s image %dx%d to %dx%d characters in %v\n",
		format, grid.Width(), grid.Height(), r.Columns(), r.Rows(),
		time.Since(start))
	return emit(opts, r, opts.output)
}

// loadStill decodes a still image from a URL, with the Go decoders, or
// with OpenCV for formats the Go decoders do not know.
func loadStill(input string) (img2ascii.PixelGrid, string, error) {
	if imageutil.IsURL(input) {
		img, format, err := imageutil.LoadImageURL(context.Background(), input)
		if err != nil {
			return nil, "", err
		}
		return img2ascii.NewImageGrid(img), format, nil
	}
	img, format, err := imageutil.LoadImage(input)
	if err == nil {
		return img2ascii.NewImageGrid(img), format, nil
	}
	if !errors.Is(err, image.ErrFormat) {
		return nil, "", err
	}
	frame, cvErr := capture.ReadImage(input)
	if cvErr != nil {
		return nil, "", fmt.Errorf("%w (opencv: %v)", err, cvErr)
	}
	return frame, "opencv", nil
}

// runSequence renders or plays frames from src. fps is the source frame
// rate and total its frame count, both 0 when unknown.
func runSequence(opts *options, src img2ascii.FrameSource, fps float64, total int) error {
	seq, err := img2ascii.NewSequencer(src, opts.cfg, opts.ramp)
	if err != nil {
		src.Close()
		return err
	}
	defer seq.Close()

	if opts.play {
		return play(opts, seq, fps)
	}

	for n := 0; opts.frames == 0 || n < opts.frames; n++ {
		r, err := seq.Next()
		if img2ascii.IsEnd(err) {
			if n == 0 {
				return errors.New("no frames could be read")
			}
			return nil
		}
		if err != nil {
			return err
		}
		path := opts.output
		if path != "" && opts.frames != 1 {
			path = frameName(path, seq.Index())
			if total > 0 {
				fmt.Fprintf(os.Stderr, "Frame %d/%d\n", seq.Index()+1, total)
			}
		}
		if path == "" && n > 0 {
			fmt.Println()
		}
		if err := emit(opts, r, path); err != nil {
			return err
		}
	}
	return nil
}

func play(opts *options, seq *img2ascii.Sequencer, fps float64) error {
	delay := opts.delay
	if delay == 0 {
		delay = frameDelay(fps, opts.cfg.FrameInterval)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = player.New(screen).Play(ctx, seq, delay)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// frameDelay is the wall time covered by one kept frame. Unknown rates
// fall back to 30 frames per second.
func frameDelay(fps float64, interval int) time.Duration {
	if fps <= 0 {
		fps = 30
	}
	if interval < 1 {
		interval = 1
	}
	return time.Duration(float64(interval) * float64(time.Second) / fps)
}

// frameName inserts a zero padded frame index before the extension.
func frameName(path string, index int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s_%05d%s", strings.TrimSuffix(path, ext), index, ext)
}

// emit writes r to path, or to stdout when path is empty, and copies it to
// the clipboard when asked.
func emit(opts *options, r img2ascii.Rendering, path string) error {
	switch {
	case path == "":
		if _, err := r.WriteTo(os.Stdout); err != nil {
			return err
		}
	case strings.EqualFold(filepath.Ext(path), ".png"):
		pngOpts, err := pngOptions(opts)
		if err != nil {
			return err
		}
		if err := img2ascii.SavePNG(path, r, pngOpts); err != nil {
			return fmt.Errorf("failed to write PNG: %w", err)
		}
		fmt.Fprintf(os.Stderr, "PNG output written to %s\n", path)
	default:
		written, err := img2ascii.SaveText(path, r)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Output written to %s\n", written)
	}

	if opts.copy {
		if err := copyToClipboard(os.Stdout, r.String()); err != nil {
			return err
		}
	}
	return nil
}

var loadedFace font.Face

func pngOptions(opts *options) (img2ascii.PNGOptions, error) {
	if opts.fontPath == "" {
		return img2ascii.PNGOptions{}, nil
	}
	if loadedFace == nil {
		face, err := img2ascii.LoadFace(opts.fontPath, opts.fontSize)
		if err != nil {
			return img2ascii.PNGOptions{}, err
		}
		loadedFace = face
	}
	return img2ascii.PNGOptions{Face: loadedFace}, nil
}
