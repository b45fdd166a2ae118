package texture

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
)

// planeFromImage converts any image to a float RGBA plane with straight (non-premultiplied) alpha.
func planeFromImage(src image.Image) plane {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	p := plane{w: w, h: h, pix: make([]float32, w*h*4)}

	if n, ok := src.(*image.NRGBA); ok {
		for y := 0; y < h; y++ {
			row := n.Pix[(y)*n.Stride:]
			for x := 0; x < w; x++ {
				i := (y*w + x) * 4
				p.pix[i] = float32(row[x*4]) / 255
				p.pix[i+1] = float32(row[x*4+1]) / 255
				p.pix[i+2] = float32(row[x*4+2]) / 255
				p.pix[i+3] = float32(row[x*4+3]) / 255
			}
		}
		return p
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			i := (y*w + x) * 4
			p.pix[i] = float32(c.R) / 255
			p.pix[i+1] = float32(c.G) / 255
			p.pix[i+2] = float32(c.B) / 255
			p.pix[i+3] = float32(c.A) / 255
		}
	}
	return p
}

// wrapIndex resolves a texel index outside [0, n) with the given wrapping mode.
func wrapIndex(i, n int, mode Wrapping) int {
	switch mode {
	case RepeatWrapping:
		i %= n
		if i < 0 {
			i += n
		}
		return i
	case MirroredRepeatWrapping:
		period := 2 * n
		i %= period
		if i < 0 {
			i += period
		}
		if i >= n {
			i = period - 1 - i
		}
		return i
	default:
		if i < 0 {
			return 0
		}
		if i >= n {
			return n - 1
		}
		return i
	}
}

// bilinear filters the four texels around (u, v), where v=0 is the top row.
// Texel centers sit at half-integer positions.
func (p plane) bilinear(u, v float32, wrapS, wrapT Wrapping) [4]float32 {
	fx := u*float32(p.w) - 0.5
	fy := v*float32(p.h) - 0.5
	fx0 := math32.Floor(fx)
	fy0 := math32.Floor(fy)
	dx := fx - fx0
	dy := fy - fy0

	x0 := wrapIndex(int(fx0), p.w, wrapS)
	x1 := wrapIndex(int(fx0)+1, p.w, wrapS)
	y0 := wrapIndex(int(fy0), p.h, wrapT)
	y1 := wrapIndex(int(fy0)+1, p.h, wrapT)

	i00 := (y0*p.w + x0) * 4
	i10 := (y0*p.w + x1) * 4
	i01 := (y1*p.w + x0) * 4
	i11 := (y1*p.w + x1) * 4

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	var out [4]float32
	for c := 0; c < 4; c++ {
		out[c] = p.pix[i00+c]*w00 + p.pix[i10+c]*w10 + p.pix[i01+c]*w01 + p.pix[i11+c]*w11
	}
	return out
}

// cubeFace picks the face a direction hits and the (s, t) coordinate on it, with t=0 at the
// top of the face image. Faces are ordered px, nx, py, ny, pz, nz.
func cubeFace(d [3]float32) (face int, s, t float32) {
	x, y, z := d[0], d[1], d[2]
	ax, ay, az := math32.Abs(x), math32.Abs(y), math32.Abs(z)

	var sc, tc, ma float32
	switch {
	case ax >= ay && ax >= az:
		ma = ax
		if x > 0 {
			face, sc, tc = 0, -z, -y
		} else {
			face, sc, tc = 1, z, -y
		}
	case ay >= az:
		ma = ay
		if y > 0 {
			face, sc, tc = 2, x, z
		} else {
			face, sc, tc = 3, x, -z
		}
	default:
		ma = az
		if z > 0 {
			face, sc, tc = 4, x, -y
		} else {
			face, sc, tc = 5, -x, -y
		}
	}
	if ma == 0 {
		return 4, 0.5, 0.5
	}
	return face, (sc/ma + 1) / 2, (tc/ma + 1) / 2
}
