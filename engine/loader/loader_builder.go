package loader

import (
	"github.com/Carmen-Shannon/oxy-flycam/common"
	"golang.org/x/image/draw"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithWorkers sets the maximum number of decode goroutines.
//
// Parameters:
//   - n: worker count, values below 1 are raised to 1
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker option to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.workers = max(n, 1)
	}
}

// WithFlipVertical controls whether decoded images are flipped so that UV (0, 0) is the bottom-left corner.
//
// Parameters:
//   - flip: true to flip (the default)
//
// Returns:
//   - LoaderBuilderOption: a function that applies the flip option to a loader
func WithFlipVertical(flip bool) LoaderBuilderOption {
	return func(l *loader) {
		l.flipVertical = flip
	}
}

// WithMipmaps controls whether a full mip chain is generated for every texture.
//
// Parameters:
//   - enabled: true to generate mips (the default)
//
// Returns:
//   - LoaderBuilderOption: a function that applies the mipmap option to a loader
func WithMipmaps(enabled bool) LoaderBuilderOption {
	return func(l *loader) {
		l.mipmaps = enabled
	}
}

// WithMipFilter sets the interpolator used to downsample mip levels. Nil is ignored.
//
// Parameters:
//   - filter: e.g. draw.BiLinear or draw.CatmullRom
//
// Returns:
//   - LoaderBuilderOption: a function that applies the filter option to a loader
func WithMipFilter(filter draw.Interpolator) LoaderBuilderOption {
	return func(l *loader) {
		if filter != nil {
			l.mipFilter = filter
		}
	}
}

// WithFallback sets the dimensions of the checkerboard substituted for textures that fail to load.
//
// Parameters:
//   - size: edge length in pixels
//   - cells: number of squares per edge
//
// Returns:
//   - LoaderBuilderOption: a function that applies the fallback option to a loader
func WithFallback(size, cells int) LoaderBuilderOption {
	return func(l *loader) {
		l.fallbackSize = max(size, 1)
		l.fallbackCells = max(cells, 1)
	}
}

// WithTexture pre-populates the texture cache.
//
// Parameters:
//   - key: the cache key for the texture
//   - td: the texture to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the texture option to a loader
func WithTexture(key string, td common.TextureStagingData) LoaderBuilderOption {
	return func(l *loader) {
		l.textureCache[key] = td
	}
}
