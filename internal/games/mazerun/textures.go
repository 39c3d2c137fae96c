package mazerun

import (
	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/raycast"
)

// textureColors maps wall texture names to terminal colors.
var textureColors = map[string]core.Color{
	"brick":           core.ColorBrightRed,
	"stone":           core.ColorBrightWhite,
	"moss":            core.ColorBrightGreen,
	"wood":            core.ColorOrange,
	"iron":            core.ColorBrightCyan,
	"rust":            core.ColorOrange,
	"hedge":           core.ColorGreen,
	"ice":             core.ColorCyan,
	playerWallTexture: core.ColorBrightMagenta,
}

func textureColor(name string) core.Color {
	if c, ok := textureColors[name]; ok {
		return c
	}
	return core.ColorWhite
}

type look struct {
	glyph rune
	color core.Color
	scale float64 // fraction of a tile the sprite fills
}

var decorationLooks = map[string]look{
	"plant":  {'♣', core.ColorGreen, 0.5},
	"lamp":   {'¡', core.ColorBrightYellow, 0.6},
	"barrel": {'o', core.ColorBrown, 0.4},
	"pillar": {'║', core.ColorGray, 1.0},
	"bones":  {'%', core.ColorWhite, 0.25},
}

// spriteLook returns how a sprite is drawn in the first-person view.
func spriteLook(sp raycast.SpriteCollision) look {
	switch sp.Kind {
	case raycast.SpriteMonster:
		return look{'█', core.ColorBrightRed, 0.9}
	case raycast.SpriteKey:
		return look{'*', core.ColorBrightYellow, 0.3}
	case raycast.SpriteKeySensor:
		return look{'¤', core.ColorBrightCyan, 0.3}
	case raycast.SpriteGun:
		return look{'¬', core.ColorBrightMagenta, 0.3}
	case raycast.SpriteEndPoint:
		return look{'▒', core.ColorGray, 0.8}
	case raycast.SpriteEndPointActive:
		return look{'▒', core.ColorBrightGreen, 0.8}
	case raycast.SpriteStartPoint:
		return look{'░', core.ColorBlue, 0.2}
	case raycast.SpriteFlag:
		return look{'▲', core.ColorOrange, 0.4}
	case raycast.SpriteDecoration:
		if l, ok := decorationLooks[sp.Name]; ok {
			return l
		}
		return look{'?', core.ColorGray, 0.4}
	default:
		return look{'?', core.ColorGray, 0.4}
	}
}
