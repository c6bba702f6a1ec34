package imageutil

import "testing"

func TestResize(t *testing.T) {
	img := CreateGradientImage(100, 100)

	resized := Resize(img, 50, 50, InterpolationArea)
	if resized.Width() != 50 || resized.Height() != 50 {
		t.Errorf("Expected 50x50, got %dx%d", resized.Width(), resized.Height())
	}

	resized = Resize(img, 200, 200, InterpolationLinear)
	if resized.Width() != 200 || resized.Height() != 200 {
		t.Errorf("Expected 200x200, got %dx%d", resized.Width(), resized.Height())
	}

	// Nearest samples source pixel centres: destination column i of a
	// 100 to 10 resize reads source column 10*i+5.
	resized = Resize(img, 10, 10, InterpolationNearest)
	if got, want := resized.GetRGB(0, 5), img.GetRGB(5, 55); got != want {
		t.Errorf("Left column = %v, want %v", got, want)
	}
	if got, want := resized.GetRGB(9, 5), img.GetRGB(95, 55); got != want {
		t.Errorf("Right column = %v, want %v", got, want)
	}
	if resized.GetRGB(0, 5).R >= resized.GetRGB(9, 5).R {
		t.Error("Gradient order lost after resize")
	}
}

func TestThumbnailSize(t *testing.T) {
	tests := []struct {
		w, h, maxSide int
		wantW, wantH  int
	}{
		{100, 50, 300, 100, 50},
		{600, 300, 300, 300, 150},
		{300, 900, 300, 100, 300},
		{300, 300, 300, 300, 300},
		{5000, 2, 300, 300, 1},
	}
	for _, tt := range tests {
		w, h := ThumbnailSize(tt.w, tt.h, tt.maxSide)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("ThumbnailSize(%d, %d, %d) = %dx%d, want %dx%d",
				tt.w, tt.h, tt.maxSide, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestThumbnail(t *testing.T) {
	small := CreateSolidImage(20, 10, RGB{9, 9, 9})
	if got := Thumbnail(small, 300); got.Width() != 20 || got.Height() != 10 {
		t.Errorf("Small image resized to %dx%d", got.Width(), got.Height())
	}

	big := CreateSolidImage(640, 480, RGB{200, 100, 50})
	thumb := Thumbnail(big, 300)
	if thumb.Width() != 300 || thumb.Height() != 225 {
		t.Fatalf("Thumbnail size = %dx%d, want 300x225", thumb.Width(), thumb.Height())
	}
	c := thumb.GetRGB(150, 112)
	if absDiff(c.R, 200) > 1 || absDiff(c.G, 100) > 1 || absDiff(c.B, 50) > 1 {
		t.Errorf("Solid colour changed to %v", c)
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
