package catcher

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/coin-catcher/internal/core"
)

// View is a read-only copy of the state the renderer needs.
type View struct {
	Width, Height float64
	Phase         core.Phase
	Score         int
	Lives         int
	Collector     core.Rect
	Items         []FallingItem
	CoinRadius    float64
}

// Style constants, in play-field pixels.
const (
	CollectorStroke = 5.0
	CoinRingInset   = 5.0
	HUDMargin       = 50.0
	ScoreY          = 200.0
	LivesY          = 100.0
	HUDTextSize     = 60.0
	BannerTextSize  = 100.0
	FinalScoreGap   = 150.0

	CoinGlyph  = "$"
	HeartGlyph = "♥"
	PausedText = "PAUSED"
	OverText   = "Game Over"
)

// Draw converts a view into draw commands. It never touches the engine.
func Draw(v View) []core.DrawCommand {
	switch v.Phase {
	case core.PhasePlaying:
		return drawPlaying(v)
	case core.PhasePaused:
		return []core.DrawCommand{
			core.Text(v.Width/2, v.Height/2, PausedText, core.AlignCenter, BannerTextSize, core.ColorBrightWhite),
		}
	case core.PhaseGameOver:
		return []core.DrawCommand{
			core.Text(v.Width/2, v.Height/2, OverText, core.AlignCenter, BannerTextSize, core.ColorBrightRed),
			core.Text(v.Width/2, v.Height/2+FinalScoreGap, scoreText(v.Score), core.AlignCenter, HUDTextSize, core.ColorBrightWhite),
		}
	default:
		return nil
	}
}

func drawPlaying(v View) []core.DrawCommand {
	cmds := make([]core.DrawCommand, 0, 4+3*len(v.Items))

	cmds = append(cmds,
		core.FillRect(v.Collector, core.ColorGray),
		core.StrokeRect(v.Collector, core.ColorWhite, CollectorStroke),
	)

	r := v.CoinRadius
	for _, it := range v.Items {
		switch it.Kind {
		case ItemCoin:
			cmds = append(cmds,
				core.FillCircle(it.X, it.Y, r, core.ColorBrightYellow),
				core.StrokeCircle(it.X, it.Y, r-CoinRingInset, core.ColorYellow, CollectorStroke),
				core.Text(it.X, it.Y, CoinGlyph, core.AlignCenter, r*1.2, core.ColorOrange),
			)
		case ItemLife:
			cmds = append(cmds, core.Text(it.X, it.Y, HeartGlyph, core.AlignCenter, 2*r, core.ColorBrightRed))
		}
	}

	cmds = append(cmds,
		core.Text(HUDMargin, ScoreY, scoreText(v.Score), core.AlignLeft, HUDTextSize, core.ColorBrightWhite),
		core.Text(v.Width-HUDMargin, LivesY, livesText(v.Lives), core.AlignRight, HUDTextSize, core.ColorBrightRed),
	)
	return cmds
}

func scoreText(score int) string {
	return fmt.Sprintf("Score: %d", score)
}

// livesText returns one heart per life, separated by spaces.
func livesText(lives int) string {
	if lives <= 0 {
		return ""
	}
	return strings.TrimSpace(strings.Repeat(HeartGlyph+" ", lives))
}
