package texture

import (
	"context"
)

// TextureLoader loads 2D image textures (PNG, JPEG, GIF, BMP, WebP, TGA) in the background.
type TextureLoader interface {
	// SetPath sets the directory relative URLs are resolved against.
	//
	// Parameters:
	//   - dir: the base directory
	//
	// Returns:
	//   - TextureLoader: the loader, for chaining
	SetPath(dir string) TextureLoader

	// Load starts loading url and returns a texture that is filled in once decoding finishes.
	// Callbacks run on a loader goroutine; any of them may be nil.
	//
	// Parameters:
	//   - url: file path, relative to the loader path unless absolute
	//   - onLoad: called with the texture once its pixels are assigned
	//   - onProgress: called as bytes are read
	//   - onError: called with the failure
	//
	// Returns:
	//   - Texture: the texture, not yet Ready
	Load(url string, onLoad func(Texture), onProgress ProgressFunc, onError func(error)) Texture

	// LoadAsync loads url and waits for the result.
	//
	// Parameters:
	//   - ctx: cancels the wait, not the load itself
	//   - url: file path
	//
	// Returns:
	//   - Texture: the loaded texture
	//   - error: load failure or ctx.Err()
	LoadAsync(ctx context.Context, url string) (Texture, error)

	// Manager returns the loading manager loads are reported through.
	Manager() LoadingManager
}

type textureLoaderImpl struct {
	*loaderCore
}

var _ TextureLoader = &textureLoaderImpl{}

// NewTextureLoader creates a TextureLoader.
//
// Parameters:
//   - options: functional options to configure the loader
//
// Returns:
//   - TextureLoader: the new loader
func NewTextureLoader(options ...LoaderBuilderOption) TextureLoader {
	return &textureLoaderImpl{loaderCore: newLoaderCore(options...)}
}

func (l *textureLoaderImpl) SetPath(dir string) TextureLoader {
	l.setPath(dir)
	return l
}

func (l *textureLoaderImpl) Manager() LoadingManager {
	return l.manager
}

func (l *textureLoaderImpl) Load(url string, onLoad func(Texture), onProgress ProgressFunc, onError func(error)) Texture {
	tex := NewTexture(WithName(url))
	l.manager.ItemStart(url)

	l.submit(func() {
		defer l.manager.ItemEnd(url)

		img, err := l.loadImage(url, onProgress)
		if err != nil {
			l.fail(url, err, onError)
			return
		}
		tex.SetImage(img)
		w, h := tex.Size()
		l.logger.Debug().Str("url", url).Int("width", w).Int("height", h).Msg("texture loaded")
		if onLoad != nil {
			onLoad(tex)
		}
	})
	return tex
}

func (l *textureLoaderImpl) LoadAsync(ctx context.Context, url string) (Texture, error) {
	return awaitLoad(ctx, func(onLoad func(Texture), onError func(error)) {
		l.Load(url, onLoad, nil, onError)
	})
}

// awaitLoad adapts a callback-style load into a blocking call.
func awaitLoad(ctx context.Context, start func(onLoad func(Texture), onError func(error))) (Texture, error) {
	type result struct {
		tex Texture
		err error
	}
	done := make(chan result, 1)
	start(
		func(t Texture) { done <- result{tex: t} },
		func(err error) { done <- result{err: err} },
	)

	select {
	case r := <-done:
		return r.tex, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
