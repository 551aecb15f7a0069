package camera

// Settings is the hot-reloadable tuning of a Camera.
// Scalars are used as given, so a zero Speed or Sensitivity freezes movement or mouse look.
// A range whose bounds are both zero falls back to the default range.
type Settings struct {
	Speed       float32
	Sensitivity float32
	RollSpeed   float32
	MinZoom     float32
	MaxZoom     float32
	MinPitch    float32
	MaxPitch    float32
}

// DefaultSettings returns the tuning a camera starts with when no options are given.
//
// Returns:
//   - Settings: the default tuning
func DefaultSettings() Settings {
	return Settings{
		Speed:       DefaultSpeed,
		Sensitivity: DefaultSensitivity,
		RollSpeed:   DefaultRollSpeed,
		MinZoom:     DefaultMinZoom,
		MaxZoom:     DefaultMaxZoom,
		MinPitch:    DefaultMinPitch,
		MaxPitch:    DefaultMaxPitch,
	}
}

func (s Settings) normalized() Settings {
	if s.MinZoom == 0 && s.MaxZoom == 0 {
		s.MinZoom, s.MaxZoom = DefaultMinZoom, DefaultMaxZoom
	}
	if s.MinPitch == 0 && s.MaxPitch == 0 {
		s.MinPitch, s.MaxPitch = DefaultMinPitch, DefaultMaxPitch
	}
	s.MinZoom, s.MaxZoom = min(s.MinZoom, s.MaxZoom), max(s.MinZoom, s.MaxZoom)
	s.MinPitch, s.MaxPitch = min(s.MinPitch, s.MaxPitch), max(s.MinPitch, s.MaxPitch)
	return s
}
