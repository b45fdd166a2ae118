package texture

import (
	"context"
	"fmt"
	"image"
	"sync"
)

// CubeTextureLoader loads six images into one cube texture, ordered px, nx, py, ny, pz, nz.
type CubeTextureLoader interface {
	SetPath(dir string) CubeTextureLoader

	// Load starts loading the six faces and returns a texture filled in once all of them decode.
	// The manager counts each face as its own item. If any face fails, onError is called once
	// and the texture stays empty.
	//
	// Parameters:
	//   - urls: the six face files
	//   - onLoad: called with the cube texture
	//   - onProgress: called as bytes of any face are read
	//   - onError: called with the first failure
	//
	// Returns:
	//   - Texture: the cube texture, not yet Ready
	Load(urls [6]string, onLoad func(Texture), onProgress ProgressFunc, onError func(error)) Texture

	LoadAsync(ctx context.Context, urls [6]string) (Texture, error)

	Manager() LoadingManager
}

type cubeTextureLoaderImpl struct {
	*loaderCore
}

var _ CubeTextureLoader = &cubeTextureLoaderImpl{}

// NewCubeTextureLoader creates a CubeTextureLoader.
//
// Parameters:
//   - options: functional options to configure the loader
//
// Returns:
//   - CubeTextureLoader: the new loader
func NewCubeTextureLoader(options ...LoaderBuilderOption) CubeTextureLoader {
	return &cubeTextureLoaderImpl{loaderCore: newLoaderCore(options...)}
}

func (l *cubeTextureLoaderImpl) SetPath(dir string) CubeTextureLoader {
	l.setPath(dir)
	return l
}

func (l *cubeTextureLoaderImpl) Manager() LoadingManager {
	return l.manager
}

func (l *cubeTextureLoaderImpl) Load(urls [6]string, onLoad func(Texture), onProgress ProgressFunc, onError func(error)) Texture {
	tex := NewTexture(WithName(urls[0]), WithMapping(CubeReflectionMapping))
	for _, url := range urls {
		l.manager.ItemStart(url)
	}

	var (
		mu       sync.Mutex
		faces    [6]image.Image
		pending  = len(urls)
		firstErr error
	)
	finish := func() {
		if firstErr != nil {
			if onError != nil {
				onError(firstErr)
			}
			return
		}
		if err := tex.SetCubeFaces(faces); err != nil {
			l.fail(urls[0], err, onError)
			return
		}
		l.logger.Debug().Strs("faces", urls[:]).Msg("cube texture loaded")
		if onLoad != nil {
			onLoad(tex)
		}
	}

	for i, url := range urls {
		l.submit(func() {
			defer l.manager.ItemEnd(url)

			img, err := l.loadImage(url, onProgress)
			if err != nil {
				l.logger.Error().Err(err).Str("url", url).Msg("cube face load failed")
				l.manager.ItemError(url)
			}

			mu.Lock()
			if err != nil && firstErr == nil {
				firstErr = fmt.Errorf("cube face %d: %w", i, err)
			}
			faces[i] = img
			pending--
			last := pending == 0
			mu.Unlock()

			if last {
				finish()
			}
		})
	}
	return tex
}

func (l *cubeTextureLoaderImpl) LoadAsync(ctx context.Context, urls [6]string) (Texture, error) {
	return awaitLoad(ctx, func(onLoad func(Texture), onError func(error)) {
		l.Load(urls, onLoad, nil, onError)
	})
}
