// File: render/ascii.go
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/lguibr/pongduel/types"
)

// ASCII characters for grayscale, from lighter to darker
const asciiChars = " .,:;i1tfLCG08@"

// Dividing factor to convert RGB color space to grayscale
const grayFactor = 255.0 / float64(len(asciiChars)-1)

// Grayscale conversion factors for RGB components
const (
	RFactor = 0.299
	GFactor = 0.587
	BFactor = 0.114
)

// cellAspect is the height of a terminal cell relative to its width.
const cellAspect = 2.0

// rgbToGray converts an RGB pixel to grayscale using the luminosity method
func rgbToGray(pixel types.RGBPixel) uint8 {
	r := RFactor * float64(pixel.R)
	g := GFactor * float64(pixel.G)
	b := BFactor * float64(pixel.B)
	return uint8(math.Min(255, math.Round(r+g+b)))
}

// grayToAscii maps a grayscale value to an ASCII character
func grayToAscii(gray uint8) byte {
	index := int(math.Round(float64(gray) / grayFactor))
	return asciiChars[index]
}

// rgbToAnsi converts an RGB pixel to an ANSI escape code for that color
func rgbToAnsi(pixel types.RGBPixel) string {
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", pixel.R, pixel.G, pixel.B)
}

// RenderToASCII draws rows of pixels as coloured ASCII art `columns`
// characters wide. Rows are sampled at twice the column step so the picture
// keeps its proportions in a terminal.
func RenderToASCII(pixels [][]types.RGBPixel, columns int) string {
	height := len(pixels)
	if height == 0 || columns <= 0 {
		return ""
	}
	width := len(pixels[0])
	if width == 0 {
		return ""
	}
	stepX := float64(width) / float64(columns)
	stepY := stepX * cellAspect

	var ascii strings.Builder
	for y := 0.0; y < float64(height); y += stepY {
		j := int(y)
		for x := 0.0; x < float64(width); x += stepX {
			pixel := pixels[j][int(x)]
			ascii.WriteString(rgbToAnsi(pixel))
			ascii.WriteByte(grayToAscii(rgbToGray(pixel)))
			ascii.WriteString("\033[0m") // Reset color after each character
		}
		ascii.WriteString("\n")
	}
	return ascii.String()
}

// RenderPlain is RenderToASCII without colour escapes.
func RenderPlain(pixels [][]types.RGBPixel, columns int) string {
	height := len(pixels)
	if height == 0 || columns <= 0 || len(pixels[0]) == 0 {
		return ""
	}
	width := len(pixels[0])
	stepX := float64(width) / float64(columns)
	stepY := stepX * cellAspect

	var ascii strings.Builder
	for y := 0.0; y < float64(height); y += stepY {
		j := int(y)
		for x := 0.0; x < float64(width); x += stepX {
			ascii.WriteByte(grayToAscii(rgbToGray(pixels[j][int(x)])))
		}
		ascii.WriteString("\n")
	}
	return ascii.String()
}
