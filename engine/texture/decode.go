package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

var (
	// ErrUnsupportedFormat is returned when a file is not an image format the loaders can decode.
	ErrUnsupportedFormat = errors.New("unsupported texture format")

	// ErrMalformedHDR is returned when a Radiance .hdr file cannot be parsed.
	ErrMalformedHDR = errors.New("malformed hdr image")
)

// decodeImage sniffs the content type of data and decodes it. TGA has no magic number, so it is
// only tried when the content is unrecognized and the name ends in .tga.
//
// Parameters:
//   - name: the source name, used for the TGA fallback
//   - data: the encoded bytes
//
// Returns:
//   - image.Image: the decoded image
//   - error: ErrUnsupportedFormat or a decoder error
func decodeImage(name string, data []byte) (image.Image, error) {
	kind, _ := filetype.Match(data)

	var (
		img image.Image
		err error
	)
	r := bytes.NewReader(data)
	switch {
	case kind == filetype.Unknown && strings.EqualFold(filepath.Ext(name), ".tga"):
		img, err = tga.Decode(r)
	case kind.Extension == "png":
		img, err = png.Decode(r)
	case kind.Extension == "jpg":
		img, err = jpeg.Decode(r)
	case kind.Extension == "gif":
		img, err = gif.Decode(r)
	case kind.Extension == "bmp":
		img, err = bmp.Decode(r)
	case kind.Extension == "webp":
		img, err = webp.Decode(r)
	default:
		return nil, fmt.Errorf("%s: %w", name, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return img, nil
}
