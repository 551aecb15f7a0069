package input

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/engine/camera"
)

// Bindings maps keys to camera movement directions and to the demo's one-shot actions.
type Bindings struct {
	// Movement maps held keys to camera directions.
	Movement map[common.Key]camera.Direction
	// Close requests the window to close when pressed.
	Close common.Key
	// Maximize toggles the window between maximized and restored when pressed.
	Maximize common.Key
	// SpinForward increases the cube angle every frame it is held.
	SpinForward common.Key
	// SpinBackward decreases the cube angle every frame it is held.
	SpinBackward common.Key
}

// DefaultBindings returns W/S/A/D for movement, Q/E for roll, Escape to close,
// Space to toggle maximize and the Right/Left arrows to spin the cube.
func DefaultBindings() Bindings {
	return Bindings{
		Movement: map[common.Key]camera.Direction{
			common.KeyW: camera.Forward,
			common.KeyS: camera.Backward,
			common.KeyA: camera.Left,
			common.KeyD: camera.Right,
			common.KeyQ: camera.RollLeft,
			common.KeyE: camera.RollRight,
		},
		Close:        common.KeyEsc,
		Maximize:     common.KeySpace,
		SpinForward:  common.KeyRight,
		SpinBackward: common.KeyLeft,
	}
}

// ParseMovement builds a movement map from config-file names, e.g. {"w": "forward", "q": "roll_left"}.
//
// Parameters:
//   - names: key name to direction name
//
// Returns:
//   - map[common.Key]camera.Direction: the parsed movement map
//   - error: error naming the first unknown key or direction
func ParseMovement(names map[string]string) (map[common.Key]camera.Direction, error) {
	movement := make(map[common.Key]camera.Direction, len(names))
	for keyName, dirName := range names {
		key, ok := common.ParseKey(keyName)
		if !ok {
			return nil, fmt.Errorf("unknown key %q", keyName)
		}
		dir, ok := camera.ParseDirection(dirName)
		if !ok {
			return nil, fmt.Errorf("unknown direction %q for key %q", dirName, keyName)
		}
		movement[key] = dir
	}
	return movement, nil
}
