package texture

import (
	"image"
	"sync"
)

// Cache holds decoded images by resolved path so repeated loads of the same file skip disk and
// decoding. It is safe for concurrent use.
type Cache struct {
	mu    sync.RWMutex
	items map[string]image.Image
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{items: make(map[string]image.Image)}
}

// Resolve returns the cached image for path, or calls load and stores its result.
// Failed loads are not cached.
//
// Parameters:
//   - path: the resolved file path
//   - load: reads and decodes the file on a miss
//
// Returns:
//   - image.Image: the decoded image
//   - error: the error from load
func (c *Cache) Resolve(path string, load func() (image.Image, error)) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.items[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := load()
	if err != nil {
		return nil, err
	}

	// another goroutine may have loaded the same path meanwhile
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.items[path]; ok {
		return existing, nil
	}
	c.items[path] = img
	return img, nil
}

// Len returns the number of cached images.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
