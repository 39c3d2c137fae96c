package mazerun

import (
	"math"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/maze"
)

// mapCellW is the width of one tile on the map; two cells keep tiles
// roughly square.
const mapCellW = 2

// hintCache holds solution hints for one layout of the grid. The layout
// only changes when the player wall appears or goes away.
type hintCache struct {
	valid     bool
	wall      maze.Coord
	hasWall   bool
	best, alt map[maze.Coord]struct{}
}

// solutionHints returns the tiles of the best path and of the alternates.
func (s *session) solutionHints() (best, alt map[maze.Coord]struct{}) {
	pw, hasWall := s.level.PlayerWall()
	h := &s.hints
	if h.valid && h.hasWall == hasWall && h.wall == pw.Tile {
		return h.best, h.alt
	}
	h.best, h.alt = maze.HintTiles(s.level.FindPossiblePaths())
	h.valid, h.hasWall, h.wall = true, hasWall, pw.Tile
	return h.best, h.alt
}

// renderMap draws the top-down map in a box over the view. When the level
// does not fit, the window follows the player.
func (g *Game) renderMap(dst *core.Screen, view core.Rect) {
	s := g.session
	l := s.level
	box := view.Centered(l.Width()*mapCellW+2, l.Height()+2)
	inner := box.Inset(1)
	cols := inner.W / mapCellW
	rows := inner.H
	if cols <= 0 || rows <= 0 {
		return
	}

	player := l.PlayerTile()
	offX := core.Clamp(player.X-cols/2, 0, max(l.Width()-cols, 0))
	offY := core.Clamp(player.Y-rows/2, 0, max(l.Height()-rows, 0))

	var best, alt map[maze.Coord]struct{}
	if s.cfg.Cheats.Map && s.cfg.Cheats.Solutions {
		best, alt = s.solutionHints()
	}

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorGray)
	dst.DrawTextColor(box.X+2, box.Y, " map ", core.ColorBrightWhite)

	for y := 0; y < min(rows, l.Height()); y++ {
		for x := 0; x < min(cols, l.Width()); x++ {
			c := maze.C(offX+x, offY+y)
			glyph, color := g.mapCell(c, best, alt)
			sx := inner.X + x*mapCellW
			dst.SetColor(sx, inner.Y+y, glyph, color)
			if glyph == '█' {
				dst.SetColor(sx+1, inner.Y+y, glyph, color)
			}
		}
	}
}

// mapCell picks the glyph for one tile. What is revealed depends on the
// cheat settings and the key sensor.
func (g *Game) mapCell(c maze.Coord, best, alt map[maze.Coord]struct{}) (rune, core.Color) {
	s := g.session
	l := s.level
	cheat := s.cfg.Cheats.Map

	if c == l.PlayerTile() {
		f := s.camera.Facing
		return Arrow(math.Atan2(f.X, -f.Y)), core.ColorBrightWhite
	}
	if m, ok := l.Monster(); cheat && ok && m == c {
		return 'M', core.ColorBrightRed
	}

	t, err := l.Tile(c)
	if err != nil {
		return ' ', core.ColorDefault
	}
	if t.Presence.Present() {
		return '█', textureColor(t.Presence.Wall.Texture(maze.SideNorth))
	}

	switch {
	case l.HasFlag(c):
		return 'F', core.ColorOrange
	case c == l.End():
		if got, total := l.KeysCollected(); got == total {
			return 'E', core.ColorBrightGreen
		}
		return 'E', core.ColorGreen
	case c == l.Start():
		return 'S', core.ColorBlue
	case l.HasExitKey(c) && (cheat || s.sensorLeft > 0):
		return 'k', core.ColorBrightYellow
	}

	if cheat {
		if contains(l.KeySensors(), c) {
			return '¤', core.ColorBrightCyan
		}
		if contains(l.Guns(), c) {
			return '¬', core.ColorBrightMagenta
		}
		if t.PlayerCollide {
			return '+', core.ColorDarkGray
		}
		if t.MonsterCollide {
			return '~', core.ColorDarkGray
		}
	}
	if _, ok := best[c]; ok {
		return '·', core.ColorBrightGreen
	}
	if _, ok := alt[c]; ok {
		return '·', core.ColorYellow
	}
	return ' ', core.ColorDefault
}

func contains(coords []maze.Coord, c maze.Coord) bool {
	for _, x := range coords {
		if x == c {
			return true
		}
	}
	return false
}
