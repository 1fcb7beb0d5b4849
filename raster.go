package boxblur

import (
	"bytes"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Channels is the number of 8-bit channels per raster pixel (R, G, B).
const Channels = 3

// maxRasterWidth bounds the width so that a full-row channel sum
// (255 * width) fits in the int32 row-sum buffer.
const maxRasterWidth = (1<<31 - 1) / 255

// Pixel is a single RGB pixel. There is no alpha channel.
type Pixel struct {
	R, G, B uint8
}

// Raster is a row-major RGB image with 8 bits per channel.
//
// Thread safety: Raster is safe for concurrent reads. Writes (SetPixel,
// Fill, writes through Data or Row) require external synchronization.
type Raster struct {
	width  int
	height int
	data   []uint8 // RGB, Channels bytes per pixel, stride = width*Channels
}

// NewRaster creates a black raster with the given dimensions.
// It returns an error wrapping ErrInvalidArgument if either dimension is
// non-positive or the width exceeds the supported maximum.
func NewRaster(width, height int) (*Raster, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	return &Raster{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*Channels),
	}, nil
}

// FromRGB wraps an existing RGB byte slice without copying.
// len(data) must be exactly width*height*Channels.
func FromRGB(data []uint8, width, height int) (*Raster, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	if want := width * height * Channels; len(data) != want {
		return nil, fmt.Errorf("boxblur: data length %d, want %d: %w", len(data), want, ErrInvalidArgument)
	}
	return &Raster{width: width, height: height, data: data}, nil
}

func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("boxblur: dimensions %dx%d: %w", width, height, ErrInvalidArgument)
	}
	if width > maxRasterWidth {
		return fmt.Errorf("boxblur: width %d exceeds %d: %w", width, maxRasterWidth, ErrInvalidArgument)
	}
	return nil
}

// Width returns the width of the raster in pixels.
func (r *Raster) Width() int {
	return r.width
}

// Height returns the height of the raster in pixels.
func (r *Raster) Height() int {
	return r.height
}

// Stride returns the number of bytes per row.
func (r *Raster) Stride() int {
	return r.width * Channels
}

// Data returns the raw pixel data (RGB, row-major).
func (r *Raster) Data() []uint8 {
	return r.data
}

// Row returns the bytes of row y. The slice aliases the raster storage.
func (r *Raster) Row(y int) []uint8 {
	stride := r.Stride()
	return r.data[y*stride : (y+1)*stride]
}

// Bounds returns the raster rectangle, always anchored at the origin.
func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.width, r.height)
}

// GetPixel returns the pixel at (x, y). Out-of-range coordinates return
// the zero Pixel.
func (r *Raster) GetPixel(x, y int) Pixel {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return Pixel{}
	}
	i := (y*r.width + x) * Channels
	return Pixel{R: r.data[i], G: r.data[i+1], B: r.data[i+2]}
}

// SetPixel sets the pixel at (x, y). Out-of-range coordinates are ignored.
func (r *Raster) SetPixel(x, y int, p Pixel) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return
	}
	i := (y*r.width + x) * Channels
	r.data[i] = p.R
	r.data[i+1] = p.G
	r.data[i+2] = p.B
}

// Fill sets every pixel to p.
func (r *Raster) Fill(p Pixel) {
	for i := 0; i < len(r.data); i += Channels {
		r.data[i] = p.R
		r.data[i+1] = p.G
		r.data[i+2] = p.B
	}
}

// Clone returns a deep copy of the raster.
func (r *Raster) Clone() *Raster {
	data := make([]uint8, len(r.data))
	copy(data, r.data)
	return &Raster{width: r.width, height: r.height, data: data}
}

// Equal reports whether both rasters have the same dimensions and pixels.
func (r *Raster) Equal(other *Raster) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.width == other.width && r.height == other.height && bytes.Equal(r.data, other.data)
}

// FromImage converts any image.Image into a Raster. Colors are taken
// non-premultiplied and the alpha channel is discarded.
func FromImage(img image.Image) (*Raster, error) {
	b := img.Bounds()
	r, err := NewRaster(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	} else {
		nrgba = nrgba.SubImage(b).(*image.NRGBA)
	}

	for y := range r.height {
		src := nrgba.Pix[y*nrgba.Stride:]
		dst := r.Row(y)
		for x := range r.width {
			copy(dst[x*Channels:x*Channels+Channels], src[x*4:x*4+3])
		}
	}
	return r, nil
}

// ToImage converts the raster to an opaque *image.RGBA.
func (r *Raster) ToImage() *image.RGBA {
	img := image.NewRGBA(r.Bounds())
	for y := range r.height {
		src := r.Row(y)
		dst := img.Pix[y*img.Stride:]
		for x := range r.width {
			dst[x*4] = src[x*Channels]
			dst[x*4+1] = src[x*Channels+1]
			dst[x*4+2] = src[x*Channels+2]
			dst[x*4+3] = 0xff
		}
	}
	return img
}
