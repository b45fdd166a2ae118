package texture

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/chewxy/math32"
)

// hdrImage is a decoded Radiance image: linear RGB floats with row 0 at the top.
type hdrImage struct {
	width, height int
	rgb           []float32
}

// decodeRGBE parses a Radiance .hdr (RGBE) file, flat or new-style run-length encoded.
// Only the standard "-Y height +X width" orientation is accepted.
//
// Parameters:
//   - data: the file contents
//
// Returns:
//   - hdrImage: the decoded pixels
//   - error: an error wrapping ErrMalformedHDR
func decodeRGBE(data []byte) (hdrImage, error) {
	r := bufio.NewReader(bytes.NewReader(data))

	magic, err := r.ReadString('\n')
	if err != nil || !strings.HasPrefix(magic, "#?") {
		return hdrImage{}, fmt.Errorf("missing radiance signature: %w", ErrMalformedHDR)
	}

	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return hdrImage{}, fmt.Errorf("unterminated header: %w", ErrMalformedHDR)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		if format, ok := strings.CutPrefix(line, "FORMAT="); ok && format != "32-bit_rle_rgbe" {
			return hdrImage{}, fmt.Errorf("format %q: %w", format, ErrMalformedHDR)
		}
	}

	resLine, err := r.ReadString('\n')
	if err != nil {
		return hdrImage{}, fmt.Errorf("missing resolution: %w", ErrMalformedHDR)
	}
	var w, h int
	if _, err := fmt.Sscanf(strings.TrimSpace(resLine), "-Y %d +X %d", &h, &w); err != nil || w <= 0 || h <= 0 {
		return hdrImage{}, fmt.Errorf("resolution %q: %w", strings.TrimSpace(resLine), ErrMalformedHDR)
	}

	out := hdrImage{width: w, height: h, rgb: make([]float32, w*h*3)}
	scan := make([]byte, w*4)
	for y := 0; y < h; y++ {
		if err := readScanline(r, scan, w); err != nil {
			return hdrImage{}, fmt.Errorf("scanline %d: %w", y, err)
		}
		row := out.rgb[y*w*3:]
		for x := 0; x < w; x++ {
			rr, gg, bb, ee := scan[x*4], scan[x*4+1], scan[x*4+2], scan[x*4+3]
			if ee == 0 {
				continue
			}
			f := math32.Pow(2, float32(int(ee)-128)) / 255
			row[x*3] = float32(rr) * f
			row[x*3+1] = float32(gg) * f
			row[x*3+2] = float32(bb) * f
		}
	}
	return out, nil
}

// readScanline fills scan with w RGBE pixels, interleaved.
func readScanline(r *bufio.Reader, scan []byte, w int) error {
	var head [4]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return ErrMalformedHDR
	}

	if w < 8 || w > 0x7fff || head[0] != 2 || head[1] != 2 || head[2]&0x80 != 0 {
		copy(scan, head[:])
		if _, err := io.ReadFull(r, scan[4:]); err != nil {
			return ErrMalformedHDR
		}
		return nil
	}
	if int(head[2])<<8|int(head[3]) != w {
		return fmt.Errorf("scanline width mismatch: %w", ErrMalformedHDR)
	}

	// channels are stored one after another, each run-length encoded
	for c := 0; c < 4; c++ {
		for x := 0; x < w; {
			count, err := r.ReadByte()
			if err != nil {
				return ErrMalformedHDR
			}
			if count > 128 {
				n := int(count) - 128
				v, err := r.ReadByte()
				if err != nil || x+n > w {
					return ErrMalformedHDR
				}
				for ; n > 0; n-- {
					scan[x*4+c] = v
					x++
				}
				continue
			}
			n := int(count)
			if n == 0 || x+n > w {
				return ErrMalformedHDR
			}
			for ; n > 0; n-- {
				v, err := r.ReadByte()
				if err != nil {
					return ErrMalformedHDR
				}
				scan[x*4+c] = v
				x++
			}
		}
	}
	return nil
}
