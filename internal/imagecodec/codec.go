// Package imagecodec wraps decoding and encoding of the raster formats the
// pipeline handles. WebP encoding goes through chai2010/webp because the
// imaging library cannot write it; everything else goes through imaging so
// EXIF orientation is applied on decode and stripped on encode.
package imagecodec

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// DefaultQuality is the lossy encode quality used when the caller does not
// override it.
const DefaultQuality = 90

// SupportedExtension reports whether the file extension is a raster format
// the codec can round-trip.
func SupportedExtension(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".webp", ".bmp":
		return true
	default:
		return false
	}
}

// Decode reads and decodes the image at path, applying EXIF orientation.
func Decode(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// DecodeReader decodes an image from r, applying EXIF orientation.
func DecodeReader(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// Encode writes img to w in the format implied by ext (".png", ".jpg",
// ".webp", ".bmp"). quality applies to lossy formats only.
func Encode(w io.Writer, img image.Image, ext string, quality int) error {
	if quality <= 0 {
		quality = DefaultQuality
	}
	switch strings.ToLower(ext) {
	case ".webp":
		if err := webp.Encode(w, img, &webp.Options{Quality: float32(quality)}); err != nil {
			return fmt.Errorf("failed to encode WebP: %w", err)
		}
		return nil
	case ".jpg", ".jpeg":
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality))
	case ".png":
		return imaging.Encode(w, img, imaging.PNG)
	case ".bmp":
		return imaging.Encode(w, img, imaging.BMP)
	default:
		return fmt.Errorf("unsupported output format %q", ext)
	}
}

// Save encodes img to path, choosing the format from the extension.
func Save(img image.Image, path string, quality int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Base(path), err)
	}
	if err := Encode(f, img, filepath.Ext(path), quality); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
