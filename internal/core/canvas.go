package core

import "math"

// Shape identifies the primitive a DrawCommand paints.
type Shape int

const (
	ShapeRect Shape = iota
	ShapeCircle
	ShapeText
)

// Align controls how text is positioned relative to its anchor.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Paint holds style constants for a draw command.
type Paint struct {
	Color    Color
	Fill     bool    // Filled shape when true, outline otherwise
	Stroke   float64 // Outline width in pixels
	TextSize float64 // Glyph size in pixels (informational for cell output)
}

// DrawCommand is a single resolution-independent drawing instruction in
// play-field pixels. Renderers produce them, rasterizers consume them.
type DrawCommand struct {
	Shape Shape
	X, Y  float64 // Rect: top-left. Circle: center. Text: anchor point.
	W, H  float64 // Rect size
	R     float64 // Circle radius
	Text  string
	Align Align
	Paint Paint
}

// FillRect returns a filled rectangle command.
func FillRect(r Rect, c Color) DrawCommand {
	return DrawCommand{Shape: ShapeRect, X: r.X, Y: r.Y, W: r.W, H: r.H, Paint: Paint{Color: c, Fill: true}}
}

// StrokeRect returns an outlined rectangle command.
func StrokeRect(r Rect, c Color, stroke float64) DrawCommand {
	return DrawCommand{Shape: ShapeRect, X: r.X, Y: r.Y, W: r.W, H: r.H, Paint: Paint{Color: c, Stroke: stroke}}
}

// FillCircle returns a filled circle command.
func FillCircle(cx, cy, r float64, c Color) DrawCommand {
	return DrawCommand{Shape: ShapeCircle, X: cx, Y: cy, R: r, Paint: Paint{Color: c, Fill: true}}
}

// StrokeCircle returns an outlined circle command.
func StrokeCircle(cx, cy, r float64, c Color, stroke float64) DrawCommand {
	return DrawCommand{Shape: ShapeCircle, X: cx, Y: cy, R: r, Paint: Paint{Color: c, Stroke: stroke}}
}

// Text returns a text command anchored at (x, y).
func Text(x, y float64, text string, align Align, size float64, c Color) DrawCommand {
	return DrawCommand{Shape: ShapeText, X: x, Y: y, Text: text, Align: align, Paint: Paint{Color: c, TextSize: size}}
}

// Glyphs used when converting shapes to terminal cells.
const (
	RectFillGlyph     = '█'
	CircleFillGlyph   = '●'
	CircleStrokeGlyph = '○'
)

// Rasterize paints commands onto the screen in order. sx and sy are cells per
// pixel on each axis. Later commands overwrite earlier ones.
func Rasterize(dst *Screen, cmds []DrawCommand, sx, sy float64) {
	if sx <= 0 || sy <= 0 {
		return
	}
	for _, cmd := range cmds {
		switch cmd.Shape {
		case ShapeRect:
			rasterRect(dst, cmd, sx, sy)
		case ShapeCircle:
			rasterCircle(dst, cmd, sx, sy)
		case ShapeText:
			rasterText(dst, cmd, sx, sy)
		}
	}
}

// cellSpan converts a pixel interval to a half-open cell interval that always
// covers at least one cell.
func cellSpan(lo, hi, scale float64) (int, int) {
	a := int(math.Floor(lo * scale))
	b := int(math.Ceil(hi * scale))
	if b <= a {
		b = a + 1
	}
	return a, b
}

func rasterRect(dst *Screen, cmd DrawCommand, sx, sy float64) {
	x0, x1 := cellSpan(cmd.X, cmd.X+cmd.W, sx)
	y0, y1 := cellSpan(cmd.Y, cmd.Y+cmd.H, sy)
	if cmd.Paint.Fill {
		dst.DrawRect(x0, y0, x1-x0, y1-y0, RectFillGlyph, cmd.Paint.Color)
		return
	}
	// Thin rects have no interior in cell space; an outline would hide the fill.
	if x1-x0 < 3 || y1-y0 < 3 {
		return
	}
	dst.DrawBox(x0, y0, x1-x0, y1-y0, cmd.Paint.Color)
}

func rasterCircle(dst *Screen, cmd DrawCommand, sx, sy float64) {
	x0, x1 := cellSpan(cmd.X-cmd.R, cmd.X+cmd.R, sx)
	y0, y1 := cellSpan(cmd.Y-cmd.R, cmd.Y+cmd.R, sy)

	glyph := CircleStrokeGlyph
	inner := -1.0
	if cmd.Paint.Fill {
		glyph = CircleFillGlyph
	} else {
		band := math.Max(cmd.Paint.Stroke, math.Max(1/sx, 1/sy))
		inner = cmd.R - band
	}

	painted := false
	for row := y0; row < y1; row++ {
		for col := x0; col < x1; col++ {
			px := (float64(col) + 0.5) / sx
			py := (float64(row) + 0.5) / sy
			d := math.Hypot(px-cmd.X, py-cmd.Y)
			if d <= cmd.R && d > inner {
				dst.SetCell(col, row, glyph, cmd.Paint.Color)
				painted = true
			}
		}
	}

	// Circles smaller than a cell still occupy the cell holding their center.
	if !painted && cmd.Paint.Fill {
		dst.SetCell(int(math.Floor(cmd.X*sx)), int(math.Floor(cmd.Y*sy)), glyph, cmd.Paint.Color)
	}
}

func rasterText(dst *Screen, cmd DrawCommand, sx, sy float64) {
	n := len([]rune(cmd.Text))
	col := int(math.Floor(cmd.X * sx))
	row := int(math.Floor(cmd.Y * sy))
	switch cmd.Align {
	case AlignCenter:
		col -= n / 2
	case AlignRight:
		col -= n
	}
	dst.DrawTextColored(col, row, cmd.Text, cmd.Paint.Color)
}
