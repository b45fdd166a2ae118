package texture

import "image"

// TextureBuilderOption is a functional option for configuring a Texture.
type TextureBuilderOption func(*textureImpl)

// WithName sets the texture's name, normally the URL it was loaded from.
//
// Parameters:
//   - name: the texture name
//
// Returns:
//   - TextureBuilderOption: option function to apply
func WithName(name string) TextureBuilderOption {
	return func(t *textureImpl) {
		t.name = name
	}
}

// WithImage assigns initial pixel data.
//
// Parameters:
//   - img: the image
//
// Returns:
//   - TextureBuilderOption: option function to apply
func WithImage(img image.Image) TextureBuilderOption {
	return func(t *textureImpl) {
		t.kind = KindImage
		t.img = planeFromImage(img)
	}
}

// WithWrap sets the wrapping modes on both axes.
//
// Parameters:
//   - s: horizontal wrapping
//   - w: vertical wrapping
//
// Returns:
//   - TextureBuilderOption: option function to apply
func WithWrap(s, w Wrapping) TextureBuilderOption {
	return func(t *textureImpl) {
		t.wrapS, t.wrapT = s, w
	}
}

// WithRepeat sets how many times the image tiles on each axis.
//
// Parameters:
//   - u, v: repeat counts
//
// Returns:
//   - TextureBuilderOption: option function to apply
func WithRepeat(u, v float32) TextureBuilderOption {
	return func(t *textureImpl) {
		t.repeat = [2]float32{u, v}
	}
}

// WithOffset sets the UV translation.
//
// Parameters:
//   - u, v: offset
//
// Returns:
//   - TextureBuilderOption: option function to apply
func WithOffset(u, v float32) TextureBuilderOption {
	return func(t *textureImpl) {
		t.offset = [2]float32{u, v}
	}
}

// WithMapping sets how the texture is addressed as a background or environment.
//
// Parameters:
//   - m: the mapping
//
// Returns:
//   - TextureBuilderOption: option function to apply
func WithMapping(m Mapping) TextureBuilderOption {
	return func(t *textureImpl) {
		t.mapping = m
	}
}
