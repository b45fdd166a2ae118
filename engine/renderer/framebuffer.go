package renderer

import (
	"image"

	"github.com/Carmen-Shannon/oxy-viewport/common"
)

// frameBuffer is the render target as flat slices. Depth is clip-space z/w in [0, 1],
// cleared to 1 (the far plane).
type frameBuffer struct {
	width  int
	height int
	img    *image.RGBA
	depth  []float32
}

func newFrameBuffer(width, height int) *frameBuffer {
	return &frameBuffer{
		width:  width,
		height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		depth:  make([]float32, width*height),
	}
}

// clearRows resets the depth of rows [y0, y1) and fills their color.
func (fb *frameBuffer) clearRows(y0, y1 int, c common.Color) {
	r, g, b := c.Bytes()
	for y := y0; y < y1; y++ {
		row := fb.img.Pix[y*fb.img.Stride : y*fb.img.Stride+fb.width*4]
		for i := 0; i < len(row); i += 4 {
			row[i], row[i+1], row[i+2], row[i+3] = r, g, b, 255
		}
		d := fb.depth[y*fb.width : (y+1)*fb.width]
		for i := range d {
			d[i] = 1
		}
	}
}

// set writes a pixel, blending over the existing color when alpha < 1.
func (fb *frameBuffer) set(x, y int, c common.Color, alpha float32) {
	i := y*fb.img.Stride + x*4
	p := fb.img.Pix[i : i+4 : i+4]
	if alpha >= 1 {
		p[0], p[1], p[2] = c.Bytes()
		p[3] = 255
		return
	}
	if alpha <= 0 {
		return
	}
	dst := common.Color{R: float32(p[0]) / 255, G: float32(p[1]) / 255, B: float32(p[2]) / 255}
	p[0], p[1], p[2] = dst.Lerp(c, alpha).Bytes()
}

func (fb *frameBuffer) get(x, y int) common.Color {
	i := y*fb.img.Stride + x*4
	return common.Color{
		R: float32(fb.img.Pix[i]) / 255,
		G: float32(fb.img.Pix[i+1]) / 255,
		B: float32(fb.img.Pix[i+2]) / 255,
	}
}
