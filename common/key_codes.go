package common

// Key is a virtual key code as delivered by the window's key callbacks.
// The values match GLFW key codes, which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
type Key uint32

const (
	KeyW     Key = 87  // W key (ASCII)
	KeyA     Key = 65  // A key (ASCII)
	KeyS     Key = 83  // S key (ASCII)
	KeyD     Key = 68  // D key (ASCII)
	KeyQ     Key = 81  // Q key (ASCII)
	KeyE     Key = 69  // E key (ASCII)
	KeySpace Key = 32  // Spacebar (ASCII)
	KeyEsc   Key = 256 // Escape key (GLFW)
	KeyRight Key = 262 // Right arrow (GLFW)
	KeyLeft  Key = 263 // Left arrow (GLFW)
	KeyDown  Key = 264 // Down arrow (GLFW)
	KeyUp    Key = 265 // Up arrow (GLFW)
)

// keyNames maps the key codes used in config files to their Key values.
var keyNames = map[string]Key{
	"w":      KeyW,
	"a":      KeyA,
	"s":      KeyS,
	"d":      KeyD,
	"q":      KeyQ,
	"e":      KeyE,
	"space":  KeySpace,
	"escape": KeyEsc,
	"right":  KeyRight,
	"left":   KeyLeft,
	"down":   KeyDown,
	"up":     KeyUp,
}

// ParseKey resolves a lower-case key name ("w", "space", "left", ...) to its Key code.
// Single printable characters not in the table resolve to their upper-case ASCII code,
// which is how GLFW reports them.
//
// Parameters:
//   - name: the key name
//
// Returns:
//   - Key: the key code
//   - bool: false if the name is not recognized
func ParseKey(name string) (Key, bool) {
	if k, ok := keyNames[name]; ok {
		return k, true
	}
	if len(name) == 1 {
		c := name[0]
		switch {
		case c >= 'a' && c <= 'z':
			return Key(c - 'a' + 'A'), true
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			return Key(c), true
		}
	}
	return 0, false
}
