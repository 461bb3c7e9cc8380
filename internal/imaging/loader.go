package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ImageCache provides thread-safe caching of decoded images so repeated
// pipeline runs against the same upload (generate, outline, crop preview)
// pay the decode cost once.
//
// Cached images remain in memory until Evict() or Clear(); a server holding
// many uploads should evict images it no longer serves.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates an empty cache, ready for concurrent use.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load retrieves an image from the cache or decodes it from disk.
//
// Supported formats are PNG, JPEG, GIF, BMP, TIFF, and WebP. A failure to
// open or decode is the one hard error of the pipeline: no regions can be
// produced without pixels.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Clear removes all cached images.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes one cached image by the exact path it was loaded with.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}
