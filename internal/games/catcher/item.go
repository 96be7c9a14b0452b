package catcher

import "github.com/vovakirdan/coin-catcher/internal/core"

// ItemKind distinguishes falling items.
type ItemKind int

const (
	ItemCoin ItemKind = iota // Scores a point, costs a life when missed
	ItemLife                 // Restores a life, harmless when missed
)

// String returns the name of the item kind.
func (k ItemKind) String() string {
	switch k {
	case ItemCoin:
		return "Coin"
	case ItemLife:
		return "Life"
	default:
		return "?"
	}
}

// FallingItem is a coin or heart moving down the field at a constant speed.
type FallingItem struct {
	X, Y  float64 // Center position
	Speed float64 // Pixels per tick
	Kind  ItemKind
}

// HitBox returns the square collision box around the item.
func (it FallingItem) HitBox(radius float64) core.Rect {
	return core.RectAround(it.X, it.Y, radius)
}
