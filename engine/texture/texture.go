package texture

import (
	"fmt"
	"image"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/chewxy/math32"
)

// Kind identifies what a texture's pixels describe.
type Kind int

const (
	// KindImage is a single 2D image addressed by UV coordinates.
	KindImage Kind = iota
	// KindCube is six square faces addressed by a direction (px, nx, py, ny, pz, nz).
	KindCube
	// KindHDR is a floating-point 2D image, usually an equirectangular panorama.
	KindHDR
)

// Wrapping controls how UV coordinates outside [0, 1] are resolved.
type Wrapping int

const (
	ClampToEdgeWrapping Wrapping = iota
	RepeatWrapping
	MirroredRepeatWrapping
)

// Mapping controls how a texture is addressed when used as a background or environment.
type Mapping int

const (
	UVMapping Mapping = iota
	CubeReflectionMapping
	EquirectangularReflectionMapping
)

// plane is a float RGBA pixel buffer with row 0 at the top of the image.
type plane struct {
	w, h int
	pix  []float32
}

type textureImpl struct {
	mu sync.RWMutex

	name    string
	kind    Kind
	mapping Mapping
	version uint64

	img  plane
	cube [6]plane

	offset   [2]float32
	repeat   [2]float32
	center   [2]float32
	rotation float32
	wrapS    Wrapping
	wrapT    Wrapping
	flipY    bool
}

// Texture is an image plus the addressing state used to sample it.
// Loaders hand out a Texture immediately and fill its pixels once decoding finishes;
// until then Ready reports false and sampling returns opaque white.
type Texture interface {
	// Name returns the source the texture was loaded from, or the name given at construction.
	Name() string

	// Kind returns what the pixels describe.
	Kind() Kind

	// Ready reports whether pixel data has been assigned.
	Ready() bool

	// Version returns a counter bumped whenever pixels or addressing change.
	Version() uint64

	// Size returns the pixel size of the image (or of one cube face).
	Size() (width, height int)

	Mapping() Mapping
	SetMapping(m Mapping)

	// Offset returns the UV translation applied after repeat and rotation.
	Offset() [2]float32
	SetOffset(u, v float32)

	// Repeat returns how many times the image tiles across the surface on each axis.
	Repeat() [2]float32
	SetRepeat(u, v float32)

	// Rotation returns the UV rotation in radians around Center.
	Rotation() float32
	SetRotation(radians float32)

	Center() [2]float32
	SetCenter(u, v float32)

	// Wrap returns the wrapping mode on the horizontal (S) and vertical (T) axes.
	Wrap() (s, t Wrapping)
	SetWrap(s, t Wrapping)

	// FlipY reports whether v=0 addresses the bottom row of the image. Defaults to true.
	FlipY() bool
	SetFlipY(flip bool)

	// SetImage assigns 8-bit pixel data and marks the texture as a 2D image.
	//
	// Parameters:
	//   - img: the decoded image
	SetImage(img image.Image)

	// SetHDR assigns floating-point RGB pixel data and marks the texture as HDR.
	//
	// Parameters:
	//   - width, height: image size in pixels
	//   - rgb: width*height*3 linear values, row 0 at the top
	//
	// Returns:
	//   - error: error if the buffer does not match the size
	SetHDR(width, height int, rgb []float32) error

	// SetCubeFaces assigns the six cube faces in px, nx, py, ny, pz, nz order.
	//
	// Parameters:
	//   - faces: the decoded faces, all the same square size
	//
	// Returns:
	//   - error: error if a face is missing or the sizes differ
	SetCubeFaces(faces [6]image.Image) error

	// Sample returns the bilinearly filtered RGBA value at a UV coordinate after the UV
	// transform and wrapping are applied.
	//
	// Parameters:
	//   - u, v: texture coordinates
	//
	// Returns:
	//   - [4]float32: red, green, blue, alpha
	Sample(u, v float32) [4]float32

	// SampleDirection returns the color seen along a world-space direction.
	// Cube textures pick a face; HDR and image textures use an equirectangular lookup.
	//
	// Parameters:
	//   - dir: direction, need not be normalized
	//
	// Returns:
	//   - common.Color: the sampled color
	SampleDirection(dir [3]float32) common.Color
}

var _ Texture = &textureImpl{}

// NewTexture creates an empty texture. Defaults mirror the usual image texture: repeat 1x1,
// clamp-to-edge wrapping, UV mapping and flipped Y.
//
// Parameters:
//   - options: functional options to configure the texture
//
// Returns:
//   - Texture: the new texture
func NewTexture(options ...TextureBuilderOption) Texture {
	t := &textureImpl{
		repeat: [2]float32{1, 1},
		flipY:  true,
	}
	for _, option := range options {
		option(t)
	}
	return t
}

func (t *textureImpl) Name() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.name
}

func (t *textureImpl) Kind() Kind {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.kind
}

func (t *textureImpl) Ready() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.kind == KindCube {
		return t.cube[0].w > 0
	}
	return t.img.w > 0
}

func (t *textureImpl) Version() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.version
}

func (t *textureImpl) Size() (int, int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.kind == KindCube {
		return t.cube[0].w, t.cube[0].h
	}
	return t.img.w, t.img.h
}

func (t *textureImpl) Mapping() Mapping {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.mapping
}

func (t *textureImpl) SetMapping(m Mapping) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.mapping = m
	t.version++
}

func (t *textureImpl) Offset() [2]float32 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.offset
}

func (t *textureImpl) SetOffset(u, v float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.offset = [2]float32{u, v}
	t.version++
}

func (t *textureImpl) Repeat() [2]float32 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.repeat
}

func (t *textureImpl) SetRepeat(u, v float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.repeat = [2]float32{u, v}
	t.version++
}

func (t *textureImpl) Rotation() float32 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.rotation
}

func (t *textureImpl) SetRotation(radians float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rotation = radians
	t.version++
}

func (t *textureImpl) Center() [2]float32 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.center
}

func (t *textureImpl) SetCenter(u, v float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.center = [2]float32{u, v}
	t.version++
}

func (t *textureImpl) Wrap() (Wrapping, Wrapping) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.wrapS, t.wrapT
}

func (t *textureImpl) SetWrap(ws, wt Wrapping) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.wrapS, t.wrapT = ws, wt
	t.version++
}

func (t *textureImpl) FlipY() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.flipY
}

func (t *textureImpl) SetFlipY(flip bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.flipY = flip
	t.version++
}

func (t *textureImpl) SetImage(img image.Image) {
	p := planeFromImage(img)
	t.mu.Lock()
	defer t.mu.Unlock()
	t.kind = KindImage
	t.img = p
	t.version++
}

func (t *textureImpl) SetHDR(width, height int, rgb []float32) error {
	if width <= 0 || height <= 0 || len(rgb) != width*height*3 {
		return fmt.Errorf("hdr buffer of %d values does not match %dx%d", len(rgb), width, height)
	}
	pix := make([]float32, width*height*4)
	for i := 0; i < width*height; i++ {
		pix[i*4] = rgb[i*3]
		pix[i*4+1] = rgb[i*3+1]
		pix[i*4+2] = rgb[i*3+2]
		pix[i*4+3] = 1
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.kind = KindHDR
	t.img = plane{w: width, h: height, pix: pix}
	t.version++
	return nil
}

func (t *textureImpl) SetCubeFaces(faces [6]image.Image) error {
	var planes [6]plane
	for i, f := range faces {
		if f == nil {
			return fmt.Errorf("cube face %d is missing", i)
		}
		planes[i] = planeFromImage(f)
		if planes[i].w != planes[0].w || planes[i].h != planes[0].h {
			return fmt.Errorf("cube face %d is %dx%d, expected %dx%d", i, planes[i].w, planes[i].h, planes[0].w, planes[0].h)
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.kind = KindCube
	t.cube = planes
	if t.mapping == UVMapping {
		t.mapping = CubeReflectionMapping
	}
	t.version++
	return nil
}

func (t *textureImpl) Sample(u, v float32) [4]float32 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.img.w == 0 {
		return [4]float32{1, 1, 1, 1}
	}

	u, v = t.transformUV(u, v)
	if t.flipY {
		v = 1 - v
	}
	return t.img.bilinear(u, v, t.wrapS, t.wrapT)
}

func (t *textureImpl) SampleDirection(dir [3]float32) common.Color {
	t.mu.RLock()
	defer t.mu.RUnlock()

	d := common.Normalize3(dir)
	var rgba [4]float32
	switch {
	case t.kind == KindCube && t.cube[0].w > 0:
		face, s, tc := cubeFace(d)
		rgba = t.cube[face].bilinear(s, tc, ClampToEdgeWrapping, ClampToEdgeWrapping)
	case t.img.w > 0:
		u := math32.Atan2(d[2], d[0])/(2*math32.Pi) + 0.5
		v := math32.Asin(common.Clamp(d[1], -1, 1))/math32.Pi + 0.5
		rgba = t.img.bilinear(u, 1-v, RepeatWrapping, ClampToEdgeWrapping)
	default:
		return common.ColorWhite
	}
	return common.Color{R: rgba[0], G: rgba[1], B: rgba[2]}
}

// transformUV applies repeat, rotation around center, and offset.
// Caller must hold the read lock.
func (t *textureImpl) transformUV(u, v float32) (float32, float32) {
	if t.rotation == 0 {
		return u*t.repeat[0] + t.offset[0], v*t.repeat[1] + t.offset[1]
	}
	c, s := math32.Cos(t.rotation), math32.Sin(t.rotation)
	sx, sy := t.repeat[0], t.repeat[1]
	cx, cy := t.center[0], t.center[1]
	nu := sx*c*u + sx*s*v - sx*(c*cx+s*cy) + cx + t.offset[0]
	nv := -sy*s*u + sy*c*v - sy*(-s*cx+c*cy) + cy + t.offset[1]
	return nu, nv
}
