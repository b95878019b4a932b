// Package qrimage renders clinic QR codes as PNG and extracts the text
// content of QR codes from uploaded images.
package qrimage

import (
	"errors"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/skip2/go-qrcode"
)

const (
	// DefaultSize is the edge length in pixels of generated QR PNGs.
	DefaultSize = 256

	// uploads larger than this edge length are downscaled before decoding
	maxDecodeEdge = 1600
)

// ErrNoCode is returned when no QR code could be located in an image.
var ErrNoCode = errors.New("no QR code found in image")

// GeneratePNG renders the payload text as a QR code PNG.
func GeneratePNG(payload string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}
	return png, nil
}

// DecodeReader reads an uploaded image and returns the text content of the
// QR code it contains. Decoding failures for images without a readable code
// are reported as ErrNoCode so callers can show a targeted message.
func DecodeReader(r io.Reader) (string, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	// bound the work for very large camera photos
	bounds := img.Bounds()
	if bounds.Dx() > maxDecodeEdge || bounds.Dy() > maxDecodeEdge {
		if bounds.Dx() >= bounds.Dy() {
			img = imaging.Resize(img, maxDecodeEdge, 0, imaging.Lanczos)
		} else {
			img = imaging.Resize(img, 0, maxDecodeEdge, imaging.Lanczos)
		}
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("failed to prepare image for decoding: %w", err)
	}

	result, err := zxqrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return "", ErrNoCode
	}

	return result.GetText(), nil
}
