package catcher

import "github.com/vovakirdan/coin-catcher/internal/core"

// Collector is the player-controlled paddle near the bottom of the field.
type Collector struct {
	Width        float64
	Height       float64
	BottomOffset float64
	rect         core.Rect
}

// Rect returns the current bounding rectangle.
func (c Collector) Rect() core.Rect {
	return c.rect
}

// CenterX returns the horizontal center of the paddle.
func (c Collector) CenterX() float64 {
	return c.rect.CenterX()
}

// place recomputes the rect around centerX. The paddle is shifted, never
// shrunk, to stay inside [0, fieldW].
func (c *Collector) place(centerX, fieldW, fieldH float64) {
	left := core.ClampF(centerX-c.Width/2, 0, fieldW-c.Width)

	bottom := fieldH - c.BottomOffset
	top := bottom - c.Height
	c.rect = core.NewRect(left, top, c.Width, bottom-top)
}
