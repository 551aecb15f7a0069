package loader

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"runtime"
	"sync"
	"time"

	// Registered image decoders.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-flycam/common"
	"golang.org/x/image/draw"
)

// ErrNoSource is returned when a texture request carries neither a path nor in-memory data.
var ErrNoSource = errors.New("texture request has no path or data")

// ErrClosed is returned by Load after Close has stopped the worker pool.
var ErrClosed = errors.New("loader is closed")

// Request names one texture to load. Data takes precedence over Path when both are set.
type Request struct {
	// Name is the cache key and the label of the resulting texture.
	Name string
	// Path is a file to read the encoded image from.
	Path string
	// Data holds an encoded image already in memory.
	Data []byte
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	textureCache map[string]common.TextureStagingData

	pool    worker.DynamicWorkerPool
	workers int
	closed  bool

	flipVertical bool
	mipmaps      bool
	mipFilter    draw.Interpolator

	fallbackSize  int
	fallbackCells int
}

// Loader decodes image files into RGBA staging data ready for GPU upload.
// Decoding of a batch runs on a bounded worker pool; a texture that fails to load is logged and
// replaced by a generated checkerboard so the caller always receives one result per request.
type Loader interface {
	// Load decodes every request in parallel and caches the results by name.
	// Requests whose name is already cached are served from the cache.
	//
	// Parameters:
	//   - requests: the textures to load
	//
	// Returns:
	//   - []common.TextureStagingData: one result per request, in request order
	//   - error: the joined decode errors of the textures that fell back to a checkerboard, or nil
	Load(requests ...Request) ([]common.TextureStagingData, error)

	// Decode loads one texture on the calling goroutine without caching or fallback.
	//
	// Parameters:
	//   - req: the texture to load
	//
	// Returns:
	//   - common.TextureStagingData: the decoded texture
	//   - error: error if the source is missing or cannot be decoded
	Decode(req Request) (common.TextureStagingData, error)

	// Get retrieves a cached texture by name.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - common.TextureStagingData: the cached texture
	//   - bool: false if nothing is cached under the name
	Get(name string) (common.TextureStagingData, bool)

	// Fallback returns the checkerboard used in place of a texture that failed to load.
	//
	// Parameters:
	//   - name: the label to give the texture
	//
	// Returns:
	//   - common.TextureStagingData: the generated texture
	Fallback(name string) common.TextureStagingData

	// Close stops the worker pool. Cached textures stay readable through Get; Load returns ErrClosed.
	// Closing twice is a no-op.
	Close()
}

var _ Loader = &loader{}

// NewLoader creates a new Loader with the specified options applied.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided options
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		textureCache:  make(map[string]common.TextureStagingData),
		workers:       max(runtime.NumCPU()-1, 1),
		flipVertical:  true,
		mipmaps:       true,
		mipFilter:     draw.BiLinear,
		fallbackSize:  64,
		fallbackCells: 8,
	}
	for _, option := range options {
		option(l)
	}

	// Created after options so WithWorkers can override the default.
	l.pool = worker.NewDynamicWorkerPool(l.workers, 256, 1*time.Second)
	return l
}

func (l *loader) Load(requests ...Request) ([]common.TextureStagingData, error) {
	l.mu.RLock()
	closed := l.closed
	l.mu.RUnlock()
	if closed {
		return nil, ErrClosed
	}

	results := make([]common.TextureStagingData, len(requests))
	errs := make([]error, len(requests))

	// A WaitGroup is the barrier; the pool's own wait blocks until workers idle out.
	var wg sync.WaitGroup
	for i, req := range requests {
		if cached, ok := l.Get(req.Name); ok {
			results[i] = cached
			continue
		}

		wg.Add(1)
		idx, r := i, req
		l.pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				td, err := l.Decode(r)
				if err != nil {
					log.Printf("[Loader] failed to load texture %q, using checkerboard: %v", r.Name, err)
					errs[idx] = fmt.Errorf("texture %q: %w", r.Name, err)
					td = l.Fallback(r.Name)
				}
				results[idx] = td
				return nil, nil
			},
		})
	}
	wg.Wait()

	l.mu.Lock()
	for i, req := range requests {
		if errs[i] == nil {
			l.textureCache[req.Name] = results[i]
		}
	}
	l.mu.Unlock()

	return results, errors.Join(errs...)
}

func (l *loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	l.pool.Stop()
}

func (l *loader) Decode(req Request) (common.TextureStagingData, error) {
	var r io.Reader
	switch {
	case len(req.Data) > 0:
		r = bytes.NewReader(req.Data)
	case req.Path != "":
		f, err := os.Open(req.Path)
		if err != nil {
			return common.TextureStagingData{}, fmt.Errorf("failed to open texture: %w", err)
		}
		defer f.Close()
		r = f
	default:
		return common.TextureStagingData{}, ErrNoSource
	}

	img, format, err := image.Decode(r)
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("failed to decode texture: %w", err)
	}

	rgba := toRGBA(img)
	if l.flipVertical {
		flipVertical(rgba)
	}

	td := common.TextureStagingData{
		Name:   req.Name,
		Width:  uint32(rgba.Bounds().Dx()),
		Height: uint32(rgba.Bounds().Dy()),
	}
	if l.mipmaps {
		td.Levels = mipChain(rgba, l.mipFilter)
	} else {
		td.Levels = [][]byte{rgba.Pix}
	}
	log.Printf("[Loader] decoded %s texture %q (%dx%d, %d levels)", format, req.Name, td.Width, td.Height, td.MipLevelCount())
	return td, nil
}

func (l *loader) Get(name string) (common.TextureStagingData, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	td, ok := l.textureCache[name]
	return td, ok
}

func (l *loader) Fallback(name string) common.TextureStagingData {
	img := checkerboard(l.fallbackSize, l.fallbackCells)
	td := common.TextureStagingData{
		Name:   name,
		Width:  uint32(l.fallbackSize),
		Height: uint32(l.fallbackSize),
	}
	if l.mipmaps {
		td.Levels = mipChain(img, l.mipFilter)
	} else {
		td.Levels = [][]byte{img.Pix}
	}
	return td
}
