package camera

// Direction is a discrete camera movement input, issued once per held key per frame.
type Direction int

const (
	// Forward moves the camera along its forward vector.
	Forward Direction = iota
	// Backward moves the camera against its forward vector.
	Backward
	// Left moves the camera against its right vector.
	Left
	// Right moves the camera along its right vector.
	Right
	// RollLeft tilts the camera counter-clockwise about its forward vector.
	RollLeft
	// RollRight tilts the camera clockwise about its forward vector.
	RollRight
)

var directionNames = [...]string{
	Forward:   "forward",
	Backward:  "backward",
	Left:      "left",
	Right:     "right",
	RollLeft:  "roll_left",
	RollRight: "roll_right",
}

// String returns the config-file name of the direction.
func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return "unknown"
	}
	return directionNames[d]
}

// ParseDirection resolves a config-file direction name such as "forward" or "roll_left".
//
// Parameters:
//   - name: the direction name
//
// Returns:
//   - Direction: the matching direction
//   - bool: false if the name is not recognized
func ParseDirection(name string) (Direction, bool) {
	for i, n := range directionNames {
		if n == name {
			return Direction(i), true
		}
	}
	return 0, false
}

// IsRoll reports whether the direction changes roll rather than position.
func (d Direction) IsRoll() bool {
	return d == RollLeft || d == RollRight
}
