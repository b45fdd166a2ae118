package texture

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
)

// ProgressFunc receives the number of bytes read so far and the file size.
type ProgressFunc func(loaded, total int64)

// progressChunk is how many bytes are read between progress reports.
const progressChunk = 32 * 1024

// loaderCore is shared by every loader: base path, worker pool, manager, cache and logger.
type loaderCore struct {
	mu      sync.RWMutex
	path    string
	manager LoadingManager
	cache   *Cache
	logger  zerolog.Logger

	workers int
	pool    worker.DynamicWorkerPool
	taskID  atomic.Int64
}

// LoaderBuilderOption is a functional option shared by every texture loader.
type LoaderBuilderOption func(*loaderCore)

// WithManager reports every load through the given LoadingManager.
//
// Parameters:
//   - m: the loading manager
//
// Returns:
//   - LoaderBuilderOption: option function to apply
func WithManager(m LoadingManager) LoaderBuilderOption {
	return func(c *loaderCore) {
		c.manager = m
	}
}

// WithCache shares decoded images between loaders.
//
// Parameters:
//   - cache: the image cache
//
// Returns:
//   - LoaderBuilderOption: option function to apply
func WithCache(cache *Cache) LoaderBuilderOption {
	return func(c *loaderCore) {
		c.cache = cache
	}
}

// WithLogger sets the logger used for load failures and progress.
//
// Parameters:
//   - logger: the zerolog logger
//
// Returns:
//   - LoaderBuilderOption: option function to apply
func WithLogger(logger zerolog.Logger) LoaderBuilderOption {
	return func(c *loaderCore) {
		c.logger = logger
	}
}

// WithWorkers sets how many files may load at once.
//
// Parameters:
//   - n: the worker count, values below 1 are ignored
//
// Returns:
//   - LoaderBuilderOption: option function to apply
func WithWorkers(n int) LoaderBuilderOption {
	return func(c *loaderCore) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithPath sets the directory relative URLs are resolved against.
//
// Parameters:
//   - dir: the base directory, "~" is expanded
//
// Returns:
//   - LoaderBuilderOption: option function to apply
func WithPath(dir string) LoaderBuilderOption {
	return func(c *loaderCore) {
		c.path = dir
	}
}

func newLoaderCore(options ...LoaderBuilderOption) *loaderCore {
	c := &loaderCore{
		logger:  zerolog.Nop(),
		workers: 4,
	}
	for _, option := range options {
		option(c)
	}
	if c.manager == nil {
		c.manager = NewLoadingManager()
	}
	c.pool = worker.NewDynamicWorkerPool(c.workers, 256, 1*time.Second)
	return c
}

func (c *loaderCore) setPath(dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.path = dir
}

// resolve joins url onto the base path unless it is absolute, then expands "~".
func (c *loaderCore) resolve(url string) (string, error) {
	c.mu.RLock()
	base := c.path
	c.mu.RUnlock()

	p := url
	if base != "" && !filepath.IsAbs(url) && !strings.HasPrefix(url, "~") {
		p = filepath.Join(base, url)
	}
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf("failed to expand %s: %w", p, err)
	}
	return expanded, nil
}

// submit runs fn on the loader pool.
func (c *loaderCore) submit(fn func()) {
	id := int(c.taskID.Add(1))
	c.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			fn()
			return nil, nil
		},
	})
}

// readFile reads path in chunks, reporting progress after each one.
func readFile(path string, onProgress ProgressFunc) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	total := info.Size()

	data := make([]byte, 0, total)
	buf := make([]byte, progressChunk)
	for {
		n, err := f.Read(buf)
		data = append(data, buf[:n]...)
		if n > 0 && onProgress != nil {
			onProgress(int64(len(data)), total)
		}
		if err == io.EOF {
			return data, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// loadImage reads and decodes one image through the cache when one is configured.
func (c *loaderCore) loadImage(url string, onProgress ProgressFunc) (image.Image, error) {
	path, err := c.resolve(url)
	if err != nil {
		return nil, err
	}
	load := func() (image.Image, error) {
		data, err := readFile(path, onProgress)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", url, err)
		}
		return decodeImage(path, data)
	}
	if c.cache == nil {
		return load()
	}
	return c.cache.Resolve(path, load)
}

// fail logs a load error and reports it to the manager and the caller.
func (c *loaderCore) fail(url string, err error, onError func(error)) {
	c.logger.Error().Err(err).Str("url", url).Msg("texture load failed")
	if onError != nil {
		onError(err)
	}
	c.manager.ItemError(url)
}
