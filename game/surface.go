// File: game/surface.go
package game

import (
	"sync"

	"github.com/lguibr/pongduel/types"
	"github.com/lguibr/pongduel/utils"
)

// Surface is what paddles and balls paint themselves on.
type Surface interface {
	Clear(c types.RGBPixel)
	DrawRect(x, y, w, h int, c types.RGBPixel)
}

// Frame is an in-memory Surface shared between the MatchActor, which paints
// it, and the hosts that display it.
type Frame struct {
	mu     sync.RWMutex
	width  int
	height int
	pixels []types.RGBPixel // Row major
}

func NewFrame(width, height int) *Frame {
	return &Frame{
		width:  width,
		height: height,
		pixels: make([]types.RGBPixel, width*height),
	}
}

func (f *Frame) Width() int  { return f.width }
func (f *Frame) Height() int { return f.height }

// Paint runs draw with the frame locked, so readers never see half a redraw.
func (f *Frame) Paint(draw func(Surface)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	draw(unlockedFrame{f})
}

func (f *Frame) Clear(c types.RGBPixel) {
	f.Paint(func(s Surface) { s.Clear(c) })
}

func (f *Frame) DrawRect(x, y, w, h int, c types.RGBPixel) {
	f.Paint(func(s Surface) { s.DrawRect(x, y, w, h, c) })
}

// At returns the pixel at (x, y), or the zero colour outside the frame.
func (f *Frame) At(x, y int) types.RGBPixel {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return types.RGBPixel{}
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.pixels[y*f.width+x]
}

// CopyRGBA writes the frame as opaque RGBA bytes into dst, growing it when
// it is too small, and returns it.
func (f *Frame) CopyRGBA(dst []byte) []byte {
	n := f.width * f.height * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	f.mu.RLock()
	defer f.mu.RUnlock()
	for i, p := range f.pixels {
		dst[4*i] = p.R
		dst[4*i+1] = p.G
		dst[4*i+2] = p.B
		dst[4*i+3] = 0xff
	}
	return dst
}

// Rows returns a copy of the frame as rows of pixels.
func (f *Frame) Rows() [][]types.RGBPixel {
	f.mu.RLock()
	defer f.mu.RUnlock()
	rows := make([][]types.RGBPixel, f.height)
	for y := range rows {
		rows[y] = make([]types.RGBPixel, f.width)
		copy(rows[y], f.pixels[y*f.width:(y+1)*f.width])
	}
	return rows
}

// unlockedFrame draws straight into the pixels; Paint holds the lock.
type unlockedFrame struct{ f *Frame }

func (u unlockedFrame) Clear(c types.RGBPixel) {
	for i := range u.f.pixels {
		u.f.pixels[i] = c
	}
}

// DrawRect fills the rectangle, clipped to the frame.
func (u unlockedFrame) DrawRect(x, y, w, h int, c types.RGBPixel) {
	x0, x1 := utils.ClampInt(x, 0, u.f.width), utils.ClampInt(x+w, 0, u.f.width)
	y0, y1 := utils.ClampInt(y, 0, u.f.height), utils.ClampInt(y+h, 0, u.f.height)
	for row := y0; row < y1; row++ {
		line := u.f.pixels[row*u.f.width : (row+1)*u.f.width]
		for col := x0; col < x1; col++ {
			line[col] = c
		}
	}
}
