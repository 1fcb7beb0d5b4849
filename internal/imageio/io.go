// Package imageio decodes image files into boxblur rasters and encodes
// rasters back to files.
//
// Decoding supports JPEG, PNG, GIF, BMP, TIFF and WebP, applying the EXIF
// orientation tag when present. Encoding picks the format from the file
// extension: JPEG, PNG, GIF, BMP or TIFF.
package imageio

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/gogpu/boxblur"
)

// I/O errors. Returned errors wrap one of these together with the
// underlying cause; test with errors.Is.
var (
	// ErrDecode is returned when a file cannot be opened or decoded.
	ErrDecode = errors.New("imageio: decode")

	// ErrEncode is returned when a raster cannot be encoded or written.
	ErrEncode = errors.New("imageio: encode")

	// ErrUnsupportedFormat is returned when an output path has no known
	// image extension. It is always wrapped together with ErrEncode.
	ErrUnsupportedFormat = errors.New("imageio: unsupported format")
)

// Format is an output image format.
type Format = imaging.Format

// Output formats.
const (
	JPEG = imaging.JPEG
	PNG  = imaging.PNG
	GIF  = imaging.GIF
	TIFF = imaging.TIFF
	BMP  = imaging.BMP
)

// DefaultJPEGQuality is the JPEG quality used when none is given.
const DefaultJPEGQuality = 95

// Option configures encoding.
type Option func(*options)

type options struct {
	quality     int
	compression png.CompressionLevel
}

func defaultOptions() options {
	return options{
		quality:     DefaultJPEGQuality,
		compression: png.DefaultCompression,
	}
}

// WithJPEGQuality sets the JPEG quality, clamped to 1..100.
func WithJPEGQuality(quality int) Option {
	return func(o *options) {
		o.quality = min(max(quality, 1), 100)
	}
}

// WithPNGCompression sets the PNG compression level.
func WithPNGCompression(level png.CompressionLevel) Option {
	return func(o *options) {
		o.compression = level
	}
}

// Load decodes the image file at path into a raster.
func Load(path string) (*boxblur.Raster, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer func() { _ = f.Close() }()

	r, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Decode decodes an image from r, auto-detecting the format and applying
// the EXIF orientation.
func Decode(r io.Reader) (*boxblur.Raster, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	ras, err := boxblur.FromImage(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	boxblur.Logger().Debug("imageio: decoded", "width", ras.Width(), "height", ras.Height())
	return ras, nil
}

// FormatFromPath returns the output format for the extension of path.
func FormatFromPath(path string) (Format, error) {
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w %q", ErrEncode, ErrUnsupportedFormat, filepath.Ext(path))
	}
	return f, nil
}

// Save encodes ras to path, choosing the format from the extension.
// Missing parent directories are created.
func Save(path string, ras *boxblur.Raster, opts ...Option) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %w", ErrEncode, err)
		}
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}

	if err := Encode(f, ras, format, opts...); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	boxblur.Logger().Debug("imageio: saved", "path", path, "format", format)
	return nil
}

// Encode writes ras to w in the given format.
func Encode(w io.Writer, ras *boxblur.Raster, format Format, opts ...Option) error {
	if ras == nil {
		return fmt.Errorf("%w: nil raster", ErrEncode)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	err := imaging.Encode(w, ras.ToImage(), format,
		imaging.JPEGQuality(o.quality),
		imaging.PNGCompressionLevel(o.compression))
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEncode, format, err)
	}
	return nil
}
