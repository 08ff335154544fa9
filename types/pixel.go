package types

// RGBPixel is a single opaque colour on a presentation surface.
type RGBPixel struct {
	R uint8 `json:"r" toml:"r"`
	G uint8 `json:"g" toml:"g"`
	B uint8 `json:"b" toml:"b"`
}

var (
	Black = RGBPixel{0, 0, 0}
	White = RGBPixel{255, 255, 255}
	Red   = RGBPixel{255, 0, 0}
	Blue  = RGBPixel{0, 0, 255}
)
