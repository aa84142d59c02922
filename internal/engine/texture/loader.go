package texture

import (
	"context"
	"image"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/articula/internal/engine/model"
	"github.com/Faultbox/articula/internal/logger"
)

// Cube map faces in upload order.
const (
	FacePosX = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
	CubeFaces
)

// Sources names the image files behind the textured modes. Empty paths
// keep the placeholder.
type Sources struct {
	Bump  string
	Image string
	Cube  [CubeFaces]string
}

// Result is one decoded image. Face is set for TextureReflective only.
type Result struct {
	Mode  model.TextureMode
	Face  int
	Path  string
	Image *image.NRGBA
	Err   error
}

// Cache holds decoded images by path. It is safe for concurrent use.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*image.NRGBA
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{items: make(map[string]*image.NRGBA)}
}

// Load returns the cached image for path, decoding it on first use.
func (c *Cache) Load(path string) (*image.NRGBA, error) {
	c.mu.RLock()
	img, ok := c.items[path]
	c.mu.RUnlock()
	if ok {
		return img, nil
	}

	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if existing, ok := c.items[path]; ok {
		img = existing
	} else {
		c.items[path] = img
	}
	c.mu.Unlock()
	return img, nil
}

// Len returns the number of cached images.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

type job struct {
	mode model.TextureMode
	face int
	path string
}

func (s Sources) jobs() []job {
	var jobs []job
	if s.Bump != "" {
		jobs = append(jobs, job{mode: model.TextureBump, path: s.Bump})
	}
	if s.Image != "" {
		jobs = append(jobs, job{mode: model.TextureImage, path: s.Image})
	}
	for face, path := range s.Cube {
		if path != "" {
			jobs = append(jobs, job{mode: model.TextureReflective, face: face, path: path})
		}
	}
	return jobs
}

// LoadAsync decodes every source on its own goroutine and delivers results
// on the returned channel, which is closed once all loads finish or ctx is
// cancelled. Results are not ordered.
func LoadAsync(ctx context.Context, cache *Cache, src Sources) <-chan Result {
	jobs := src.jobs()
	out := make(chan Result, len(jobs))
	log := logger.Named("texture")

	var wg sync.WaitGroup
	for _, j := range jobs {
		wg.Add(1)
		go func(j job) {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			img, err := cache.Load(j.path)
			if err != nil {
				log.Warn("texture load failed", zap.String("path", j.path), zap.Error(err))
			} else {
				log.Debug("texture loaded",
					zap.String("path", j.path),
					zap.Stringer("mode", j.mode),
					zap.Int("width", img.Bounds().Dx()),
					zap.Int("height", img.Bounds().Dy()),
				)
			}
			select {
			case out <- Result{Mode: j.mode, Face: j.face, Path: j.path, Image: img, Err: err}:
			case <-ctx.Done():
			}
		}(j)
	}

	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// LoadAll is the blocking form of LoadAsync. It returns the first error
// after every load has finished.
func LoadAll(ctx context.Context, cache *Cache, src Sources) ([]Result, error) {
	var results []Result
	var firstErr error
	for r := range LoadAsync(ctx, cache, src) {
		if r.Err != nil {
			if firstErr == nil {
				firstErr = r.Err
			}
			continue
		}
		results = append(results, r)
	}
	if firstErr == nil {
		firstErr = ctx.Err()
	}
	return results, firstErr
}
