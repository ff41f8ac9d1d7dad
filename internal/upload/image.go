package upload

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

var (
	ErrInvalidFileType = errors.New("file type not allowed")
	ErrInvalidImage    = errors.New("file is not a valid image")
)

// Bounding box and encoding quality for stored profile pictures.
const (
	MaxDimension = 800
	JPEGQuality  = 85
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

func AllowedFile(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// ProcessImage decodes and verifies the upload, flattens any alpha onto a
// white background, downsamples to fit MaxDimension preserving aspect
// ratio, and re-encodes as JPEG. The extension check is advisory only, the
// decode here is what actually rejects a renamed non-image.
func ProcessImage(r io.Reader) ([]byte, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, ErrInvalidImage
	}

	img = flattenOntoWhite(img)

	bounds := img.Bounds()
	if bounds.Dx() > MaxDimension || bounds.Dy() > MaxDimension {
		img = imaging.Fit(img, MaxDimension, MaxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func flattenOntoWhite(img image.Image) image.Image {
	background := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), color.White)
	return imaging.OverlayCenter(background, img, 1.0)
}
