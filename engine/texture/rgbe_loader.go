package texture

import (
	"context"
	"fmt"
)

// RGBELoader loads Radiance .hdr images into HDR textures. The returned texture keeps UV
// mapping; set EquirectangularReflectionMapping to use it as a panorama.
type RGBELoader interface {
	SetPath(dir string) RGBELoader
	Load(url string, onLoad func(Texture), onProgress ProgressFunc, onError func(error)) Texture
	LoadAsync(ctx context.Context, url string) (Texture, error)
	Manager() LoadingManager
}

type rgbeLoaderImpl struct {
	*loaderCore
}

var _ RGBELoader = &rgbeLoaderImpl{}

// NewRGBELoader creates an RGBELoader. HDR images bypass the image cache.
//
// Parameters:
//   - options: functional options to configure the loader
//
// Returns:
//   - RGBELoader: the new loader
func NewRGBELoader(options ...LoaderBuilderOption) RGBELoader {
	return &rgbeLoaderImpl{loaderCore: newLoaderCore(options...)}
}

func (l *rgbeLoaderImpl) SetPath(dir string) RGBELoader {
	l.setPath(dir)
	return l
}

func (l *rgbeLoaderImpl) Manager() LoadingManager {
	return l.manager
}

func (l *rgbeLoaderImpl) Load(url string, onLoad func(Texture), onProgress ProgressFunc, onError func(error)) Texture {
	tex := NewTexture(WithName(url))
	tex.SetFlipY(false)
	l.manager.ItemStart(url)

	l.submit(func() {
		defer l.manager.ItemEnd(url)

		if err := l.loadHDR(tex, url, onProgress); err != nil {
			l.fail(url, err, onError)
			return
		}
		if onLoad != nil {
			onLoad(tex)
		}
	})
	return tex
}

func (l *rgbeLoaderImpl) loadHDR(tex Texture, url string, onProgress ProgressFunc) error {
	path, err := l.resolve(url)
	if err != nil {
		return err
	}
	data, err := readFile(path, onProgress)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", url, err)
	}
	img, err := decodeRGBE(data)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", url, err)
	}
	if err := tex.SetHDR(img.width, img.height, img.rgb); err != nil {
		return err
	}
	l.logger.Debug().Str("url", url).Int("width", img.width).Int("height", img.height).Msg("hdr loaded")
	return nil
}

func (l *rgbeLoaderImpl) LoadAsync(ctx context.Context, url string) (Texture, error) {
	return awaitLoad(ctx, func(onLoad func(Texture), onError func(error)) {
		l.Load(url, onLoad, nil, onError)
	})
}
