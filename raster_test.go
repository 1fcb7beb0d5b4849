package boxblur

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNewRaster(t *testing.T) {
	r, err := NewRaster(5, 3)
	if err != nil {
		t.Fatalf("NewRaster() error = %v", err)
	}
	if r.Width() != 5 || r.Height() != 3 {
		t.Errorf("size = %dx%d, want 5x3", r.Width(), r.Height())
	}
	if r.Stride() != 15 {
		t.Errorf("Stride() = %d, want 15", r.Stride())
	}
	if len(r.Data()) != 45 {
		t.Errorf("len(Data()) = %d, want 45", len(r.Data()))
	}
	if r.Bounds() != image.Rect(0, 0, 5, 3) {
		t.Errorf("Bounds() = %v", r.Bounds())
	}
}

func TestNewRasterInvalid(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 4},
		{"zero height", 4, 0},
		{"negative", -1, -1},
		{"too wide", maxRasterWidth + 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRaster(tt.w, tt.h); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("NewRaster(%d, %d) error = %v, want ErrInvalidArgument", tt.w, tt.h, err)
			}
		})
	}
}

func TestFromRGB(t *testing.T) {
	data := []uint8{1, 2, 3, 4, 5, 6}
	r, err := FromRGB(data, 2, 1)
	if err != nil {
		t.Fatalf("FromRGB() error = %v", err)
	}
	if got := r.GetPixel(1, 0); got != (Pixel{4, 5, 6}) {
		t.Errorf("GetPixel(1,0) = %v, want {4 5 6}", got)
	}

	if _, err := FromRGB(data, 3, 1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("FromRGB() short data error = %v, want ErrInvalidArgument", err)
	}
}

func TestRasterPixelAccess(t *testing.T) {
	r, _ := NewRaster(3, 2)
	r.SetPixel(2, 1, Pixel{10, 20, 30})

	if got := r.GetPixel(2, 1); got != (Pixel{10, 20, 30}) {
		t.Errorf("GetPixel(2,1) = %v", got)
	}
	if got := r.Row(1)[6:9]; got[0] != 10 || got[1] != 20 || got[2] != 30 {
		t.Errorf("Row(1)[6:9] = %v", got)
	}

	// Out of range access is ignored.
	r.SetPixel(-1, 0, Pixel{1, 1, 1})
	r.SetPixel(3, 0, Pixel{1, 1, 1})
	if got := r.GetPixel(5, 5); got != (Pixel{}) {
		t.Errorf("GetPixel out of range = %v, want zero", got)
	}
}

func TestRasterCloneEqual(t *testing.T) {
	r := randomRaster(4, 4, 42)
	c := r.Clone()
	if !c.Equal(r) {
		t.Fatal("Clone() not equal to original")
	}
	c.SetPixel(0, 0, Pixel{r.GetPixel(0, 0).R + 1, 0, 0})
	if c.Equal(r) {
		t.Error("Clone() shares storage with original")
	}

	other := randomRaster(4, 2, 42)
	if other.Equal(r) {
		t.Error("rasters of different size compare equal")
	}

	var nilRaster *Raster
	if !nilRaster.Equal(nil) {
		t.Error("nil.Equal(nil) = false")
	}
	if r.Equal(nil) {
		t.Error("r.Equal(nil) = true")
	}
}

func TestFromImageNRGBA(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 128})
	img.SetNRGBA(1, 1, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	r, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage() error = %v", err)
	}
	// Alpha is dropped, colors stay non-premultiplied.
	if got := r.GetPixel(0, 0); got != (Pixel{200, 100, 50}) {
		t.Errorf("pixel (0,0) = %v, want {200 100 50}", got)
	}
	if got := r.GetPixel(1, 1); got != (Pixel{1, 2, 3}) {
		t.Errorf("pixel (1,1) = %v, want {1 2 3}", got)
	}
}

func TestFromImageOffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 20, 13, 22))
	img.SetRGBA(12, 21, color.RGBA{R: 9, G: 8, B: 7, A: 255})

	r, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage() error = %v", err)
	}
	if r.Width() != 3 || r.Height() != 2 {
		t.Fatalf("size = %dx%d, want 3x2", r.Width(), r.Height())
	}
	if got := r.GetPixel(2, 1); got != (Pixel{9, 8, 7}) {
		t.Errorf("pixel (2,1) = %v, want {9 8 7}", got)
	}
}

func TestFromImageGray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 1))
	img.SetGray(1, 0, color.Gray{Y: 77})

	r, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage() error = %v", err)
	}
	if got := r.GetPixel(1, 0); got != (Pixel{77, 77, 77}) {
		t.Errorf("pixel (1,0) = %v, want {77 77 77}", got)
	}
}

func TestFromImageEmpty(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 0, 5))
	if _, err := FromImage(img); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("FromImage(empty) error = %v, want ErrInvalidArgument", err)
	}
}

func TestToImageRoundTrip(t *testing.T) {
	r := randomRaster(5, 4, 11)
	img := r.ToImage()

	if img.Bounds() != r.Bounds() {
		t.Fatalf("ToImage bounds = %v, want %v", img.Bounds(), r.Bounds())
	}
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0xff {
			t.Fatalf("alpha at byte %d = %d, want 255", i, img.Pix[i])
		}
	}

	back, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage() error = %v", err)
	}
	if !back.Equal(r) {
		t.Errorf("round trip differs at %s", firstDiff(back, r))
	}
}
