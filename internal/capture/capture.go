// Package capture turns the data URL a browser produces from a camera
// snapshot into a validated image that can be handed to the photo view.
package capture

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

const (
	// MaxBytes bounds the decoded payload of one snapshot.
	MaxBytes = 8 << 20
	// MaxWidth is the widest frame kept as-is; wider frames are scaled down.
	MaxWidth = 1280
)

var (
	ErrEmpty           = errors.New("empty image")
	ErrInvalidDataURL  = errors.New("invalid data url")
	ErrUnsupportedMIME = errors.New("unsupported image type")
	ErrTooLarge        = errors.New("image too large")
	ErrUndecodable     = errors.New("unable to decode image")
)

var allowedMIMEs = []string{"image/png", "image/jpeg", "image/webp"}

// Image is a single captured frame. It only ever lives in memory.
type Image struct {
	Data          []byte
	MIME          string
	Width         int
	Height        int
	EmployeeIndex int
}

// DataURL renders the image back into a data URL for an <img> tag.
func (i Image) DataURL() string {
	return "data:" + i.MIME + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// ParseDataURL decodes a base64 image data URL. maxBytes <= 0 means MaxBytes.
func ParseDataURL(value string, maxBytes int) (*Image, error) {
	if maxBytes <= 0 {
		maxBytes = MaxBytes
	}

	raw := strings.TrimSpace(value)
	if raw == "" {
		return nil, ErrEmpty
	}
	if !strings.HasPrefix(raw, "data:") {
		return nil, fmt.Errorf("%w: missing data: prefix", ErrInvalidDataURL)
	}
	comma := strings.Index(raw, ",")
	if comma <= len("data:") {
		return nil, fmt.Errorf("%w: missing payload", ErrInvalidDataURL)
	}
	meta := raw[len("data:"):comma]
	payload := raw[comma+1:]
	if !strings.HasSuffix(strings.ToLower(meta), ";base64") {
		return nil, fmt.Errorf("%w: payload must be base64", ErrInvalidDataURL)
	}

	mime := strings.ToLower(strings.TrimSpace(meta[:len(meta)-len(";base64")]))
	if !allowed(mime) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMIME, mime)
	}

	if base64.StdEncoding.DecodedLen(len(payload)) > maxBytes+3 {
		return nil, ErrTooLarge
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	if len(data) > maxBytes {
		return nil, ErrTooLarge
	}

	return decode(data, mime)
}

func decode(data []byte, mime string) (*Image, error) {
	var (
		img image.Image
		err error
	)
	if mime == "image/webp" {
		img, err = webp.Decode(bytes.NewReader(data))
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("%w: invalid dimensions", ErrUndecodable)
	}

	if bounds.Dx() <= MaxWidth {
		return &Image{Data: data, MIME: mime, Width: bounds.Dx(), Height: bounds.Dy()}, nil
	}

	return downscale(img)
}

// downscale keeps the aspect ratio and re-encodes as PNG.
func downscale(img image.Image) (*Image, error) {
	bounds := img.Bounds()
	height := bounds.Dy() * MaxWidth / bounds.Dx()
	if height < 1 {
		height = 1
	}

	resized := image.NewRGBA(image.Rect(0, 0, MaxWidth, height))
	xdraw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, xdraw.Over, nil)

	var out bytes.Buffer
	if err := png.Encode(&out, resized); err != nil {
		return nil, fmt.Errorf("failed to encode resized image: %w", err)
	}
	return &Image{Data: out.Bytes(), MIME: "image/png", Width: MaxWidth, Height: height}, nil
}

func allowed(mime string) bool {
	for _, m := range allowedMIMEs {
		if m == mime {
			return true
		}
	}
	return false
}
