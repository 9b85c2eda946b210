// Package imaging decodes label photos and re-encodes them as JPEG, either
// as-is for storage or resized to the dimensions the vision model prefers.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"math"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Quality is the JPEG quality used for every re-encode.
const Quality = 70

// MaxSide bounds the longer side of images outside the known aspect bands.
const MaxSide = 1568

var (
	ErrDecode = errors.New("image decode failed")
	ErrEncode = errors.New("image encode failed")
)

type band struct {
	min, max      float64
	width, height int
}

// Checked in order; ratio is width/height.
var bands = []band{
	{0.9, 1.1, 1092, 1092},
	{0.7, 0.8, 951, 1268},
	{0.6, 0.7, 896, 1344},
	{0.5, 0.6, 819, 1456},
	{0.4, 0.5, 784, 1568},
}

// TargetSize returns the dimensions an image of w×h is resized to before
// it is sent for label recognition.
func TargetSize(w, h int) (int, int) {
	if w <= 0 || h <= 0 {
		return w, h
	}
	ratio := float64(w) / float64(h)
	for _, b := range bands {
		if ratio >= b.min && ratio <= b.max {
			return b.width, b.height
		}
	}
	if ratio > 1 {
		nw := min(MaxSide, w)
		return nw, max(1, int(math.Round(float64(nw)/ratio)))
	}
	nh := min(MaxSide, h)
	return max(1, int(math.Round(float64(nh)*ratio))), nh
}

// Decode reads any registered format (JPEG, PNG, GIF, WebP).
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

// EncodeJPEG normalises data to a JPEG at Quality without resizing.
func EncodeJPEG(data []byte) ([]byte, error) {
	img, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return encode(img)
}

// OptimizeForVision resizes data to TargetSize and re-encodes it as JPEG.
func OptimizeForVision(data []byte) ([]byte, error) {
	img, err := Decode(data)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	tw, th := TargetSize(b.Dx(), b.Dy())
	if tw == b.Dx() && th == b.Dy() {
		return encode(img)
	}

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return encode(dst)
}

func encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: Quality}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return buf.Bytes(), nil
}
