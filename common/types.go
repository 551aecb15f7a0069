// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// TextureStagingData holds RGBA pixel data for a texture binding pending GPU upload.
// Level 0 is the full-size image; any further levels are successively halved mips.
type TextureStagingData struct {
	// Name identifies the texture for logging and bind group labels.
	Name string
	// Levels holds tightly packed RGBA pixels (4 bytes per pixel) for each mip level, largest first.
	Levels [][]byte
	// Width is the width of level 0 in pixels.
	Width uint32
	// Height is the height of level 0 in pixels.
	Height uint32
}

// MipLevelCount returns the number of mip levels carried by the staging data, never less than 1.
//
// Returns:
//   - uint32: the mip level count
func (t TextureStagingData) MipLevelCount() uint32 {
	if len(t.Levels) == 0 {
		return 1
	}
	return uint32(len(t.Levels))
}

// LevelSize returns the dimensions of the given mip level. Dimensions never drop below 1.
//
// Parameters:
//   - level: the mip level index
//
// Returns:
//   - width, height: the level's dimensions in pixels
func (t TextureStagingData) LevelSize(level int) (width, height uint32) {
	width, height = t.Width, t.Height
	for range level {
		width = max(width/2, 1)
		height = max(height/2, 1)
	}
	return width, height
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
// Zero fields fall back to repeat addressing and linear filtering.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside the [0, 1] range.
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp specify the minimum and maximum level of detail for mipmapping.
	LodMinClamp, LodMaxClamp float32
	// MaxAnisotropy specifies the maximum anisotropy level for anisotropic filtering.
	MaxAnisotropy uint16
}

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
