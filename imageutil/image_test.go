package imageutil

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestNewRGBAImage(t *testing.T) {
	img := NewRGBAImage(100, 50)
	if img.Width() != 100 {
		t.Errorf("Expected width 100, got %d", img.Width())
	}
	if img.Height() != 50 {
		t.Errorf("Expected height 50, got %d", img.Height())
	}
}

func TestRGBAImageGetSetRGB(t *testing.T) {
	img := NewRGBAImage(10, 10)
	c := RGB{R: 100, G: 150, B: 200}
	img.SetRGB(5, 5, c)

	got := img.GetRGB(5, 5)
	if got != c {
		t.Errorf("Expected %v, got %v", c, got)
	}
}

func TestRGBAImageFromImageOffsetBounds(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 20, 14, 22))
	src.Set(10, 20, color.NRGBA{R: 255, A: 255})

	img := RGBAImageFromImage(src)
	if img.Bounds().Min != (image.Point{}) {
		t.Fatalf("Expected origin bounds, got %v", img.Bounds())
	}
	if img.Width() != 4 || img.Height() != 2 {
		t.Fatalf("Expected 4x2, got %dx%d", img.Width(), img.Height())
	}
	if got := img.GetRGB(0, 0); got != (RGB{R: 255}) {
		t.Errorf("Expected red at origin, got %v", got)
	}
}

func TestGrayImageGetSetGray(t *testing.T) {
	img := NewGrayImage(10, 10)
	img.SetGrayValue(5, 5, 128)

	if got := img.GetGray(5, 5); got != 128 {
		t.Errorf("Expected 128, got %d", got)
	}
}

func TestLuminance(t *testing.T) {
	tests := []struct {
		name string
		c    RGB
		min  float64
		max  float64
	}{
		{"black", RGB{0, 0, 0}, 0, 0},
		{"white", RGB{255, 255, 255}, 254.999, 255.001},
		{"red", RGB{255, 0, 0}, 76.24, 76.25},
		{"green", RGB{0, 255, 0}, 149.68, 149.69},
		{"blue", RGB{0, 0, 255}, 29.06, 29.08},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.c.Luminance()
			if got < tt.min || got > tt.max {
				t.Errorf("Luminance(%v) = %v, want [%v, %v]", tt.c, got, tt.min, tt.max)
			}
		})
	}
}

func TestToGrayscale(t *testing.T) {
	img := NewRGBAImage(3, 1)
	img.SetRGB(0, 0, RGB{R: 255, G: 255, B: 255})
	img.SetRGB(1, 0, RGB{R: 0, G: 0, B: 0})
	img.SetRGB(2, 0, RGB{R: 255, G: 0, B: 0})

	gray := ToGrayscale(img)
	if v := gray.GetGray(0, 0); v != 255 {
		t.Errorf("White pixel should convert to 255, got %d", v)
	}
	if v := gray.GetGray(1, 0); v != 0 {
		t.Errorf("Black pixel should convert to 0, got %d", v)
	}
	if v := gray.GetGray(2, 0); v != 76 {
		t.Errorf("Red pixel should convert to 76, got %d", v)
	}
}

func TestGradientEndpoints(t *testing.T) {
	img := CreateGradientImage(11, 2)
	if got := img.GetRGB(0, 1); got != (RGB{}) {
		t.Errorf("Expected black at left edge, got %v", got)
	}
	if got := img.GetRGB(10, 1); got != (RGB{255, 255, 255}) {
		t.Errorf("Expected white at right edge, got %v", got)
	}

	// A single column must not divide by zero.
	if one := CreateGradientImage(1, 1); one.GetRGB(0, 0) != (RGB{}) {
		t.Errorf("Expected black for 1x1 gradient")
	}
}

func TestSaveAndLoadImage(t *testing.T) {
	dir := t.TempDir()
	img := CreateCheckerboardImage(16, 16, 4)

	for _, name := range []string{"board.png", "board.gif"} {
		path := filepath.Join(dir, name)
		if err := SaveImage(img, path); err != nil {
			t.Fatalf("SaveImage(%s) failed: %v", name, err)
		}
		loaded, _, err := LoadImage(path)
		if err != nil {
			t.Fatalf("LoadImage(%s) failed: %v", name, err)
		}
		if loaded.Bounds().Dx() != 16 || loaded.Bounds().Dy() != 16 {
			t.Errorf("%s: expected 16x16, got %v", name, loaded.Bounds())
		}
		got := RGBFromColor(loaded.At(0, 0))
		if got != (RGB{255, 255, 255}) {
			t.Errorf("%s: expected white top-left, got %v", name, got)
		}
	}
}

func TestLoadImageErrors(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := LoadImage(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("Expected error for missing file")
	}

	bogus := filepath.Join(dir, "bogus.png")
	if err := os.WriteFile(bogus, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadImage(bogus); err == nil {
		t.Error("Expected error for undecodable file")
	}
}

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	files := []string{"b.png", "a.JPG", "c.txt", "d.webp", "e.TIFF", "notes.md"}
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0755); err != nil {
		t.Fatal(err)
	}

	images, err := ListImages(dir)
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	want := []string{"a.JPG", "b.png", "d.webp", "e.TIFF"}
	if len(images) != len(want) {
		t.Fatalf("Expected %d images, got %d: %v", len(want), len(images), images)
	}
	for i, name := range want {
		if images[i].Name != name {
			t.Errorf("images[%d] = %s, want %s", i, images[i].Name, name)
		}
		if images[i].Size != 1 {
			t.Errorf("images[%d].Size = %d, want 1", i, images[i].Size)
		}
	}
}
