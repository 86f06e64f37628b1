package output

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"github.com/polds/imgbase64"
)

// Content types for the supported encodings
var contentTypes = map[imaging.Format]string{
	imaging.PNG:  "image/png",
	imaging.JPEG: "image/jpeg",
	imaging.GIF:  "image/gif",
	imaging.BMP:  "image/bmp",
	imaging.TIFF: "image/tiff",
}

// FormatFromName resolves an image format from a file name or a bare extension ("png", ".jpg")
func FormatFromName(name string) (imaging.Format, error) {
	ext := filepath.Ext(name)
	if ext == "" {
		ext = "." + strings.TrimPrefix(name, ".")
	}
	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return format, fmt.Errorf("unsupported image format %q: %w", name, err)
	}
	return format, nil
}

// ContentType returns the MIME type for an image format
func ContentType(format imaging.Format) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Save writes an image to disk, picking the encoder from the file extension
func Save(filename string, img image.Image) error {
	if err := imaging.Save(img, filename); err != nil {
		return fmt.Errorf("failed to save %s: %w", filename, err)
	}
	return nil
}

// Encode writes an image to w in the given format
func Encode(w io.Writer, img image.Image, format imaging.Format) error {
	if err := imaging.Encode(w, img, format); err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}

// EncodeBytes encodes an image into memory
func EncodeBytes(img image.Image, format imaging.Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Upscale enlarges an image by an integer factor with nearest-neighbour sampling,
// so every traced pixel becomes a crisp factor×factor block. Factors below 2 return img unchanged.
func Upscale(img image.Image, factor int) image.Image {
	if factor < 2 {
		return img
	}
	bounds := img.Bounds()
	width := uint(bounds.Dx() * factor)
	height := uint(bounds.Dy() * factor)
	return resize.Resize(width, height, img, resize.NearestNeighbor)
}

// DataURI encodes an image as a base64 PNG data URI for embedding in JSON or HTML
func DataURI(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, imaging.PNG); err != nil {
		return "", err
	}
	return imgbase64.FromBuffer(buf), nil
}
