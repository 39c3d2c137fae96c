package mazerun

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/maze"
	"github.com/vovakirdan/tui-maze/internal/raycast"
)

const (
	minViewW = 20
	minViewH = 6
)

const controlsHelp = "WASD move  Q/E strafe  M map  C compass  F flag  Space fire  X wall  [ ] level  R reset  P pause"

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.session == nil {
		msg := g.loadError
		if msg == "" {
			msg = "no levels loaded"
		}
		g.renderOverlay(dst, core.ColorRed, "Cannot start", msg)
		return
	}

	view := core.NewRect(0, 1, dst.Width(), dst.Height()-2)
	if view.W < minViewW || view.H < minViewH {
		g.renderOverlay(dst, core.ColorYellow, "Window too small", "Resize to continue")
		return
	}

	g.renderView(dst, view)
	g.renderHUD(dst)
	g.renderStatus(dst)

	if g.showMap {
		g.renderMap(dst, view)
	}

	s := g.session
	l := s.level
	switch {
	case g.resetPrompt:
		g.renderOverlay(dst, core.ColorBrightYellow, "Reset level?", "Y: reset   N: keep playing")
	case l.Won():
		line := fmt.Sprintf("%.1fs  %.1f moves", s.time, s.moves)
		if b, ok := g.best[l.ID()]; ok {
			line += fmt.Sprintf("   best %.1fs / %.1f", b.Time, b.Moves)
		}
		g.renderOverlay(dst, core.ColorBrightGreen, "You escaped!", line, "R: play again   [ ]: other level")
	case l.Killed():
		g.renderOverlay(dst, core.ColorBrightRed, "The monster got you", "R: try again   [ ]: other level")
	case s.escape != nil:
		left := s.cfg.Monster.PressesToEscape - s.escape.presses
		remaining := math.Max(0, s.cfg.Monster.TimeToEscape-s.escape.elapsed)
		g.renderOverlay(dst, core.ColorBrightRed, "CAUGHT!",
			fmt.Sprintf("Press forward %d more times (%.1fs)", left, remaining))
	case g.paused:
		g.renderOverlay(dst, core.ColorWhite, "Paused", "Press P to continue")
	}
}

// renderView paints the first-person view: floor, then every wall column
// and sprite from farthest to nearest.
func (g *Game) renderView(dst *core.Screen, view core.Rect) {
	s := g.session
	columns := s.cfg.Display.Columns
	if columns <= 0 {
		columns = view.W
	}
	frame := raycast.Render(columns, s.level, s.options(), s.camera.Facing, s.camera.Plane)

	fog := s.cfg.Display.FogStrength
	if g.flicker {
		fog /= 3
	}

	horizon := view.Y + view.H/2
	for y := horizon + view.H/6; y < view.Bottom(); y++ {
		dst.DrawHLine(view.X, y, view.W, '.', core.ColorDarkGray)
	}

	for _, item := range frame.Paint {
		switch c := item.(type) {
		case raycast.WallCollision:
			g.paintColumn(dst, view, horizon, columns, c, fog)
		case raycast.SpriteCollision:
			g.paintSprite(dst, view, horizon, c)
		}
	}
}

func (g *Game) paintColumn(dst *core.Screen, view core.Rect, horizon, columns int, c raycast.WallCollision, fog float64) {
	if !c.Hit() {
		return
	}
	x0 := view.X + c.Column*view.W/columns
	x1 := view.X + (c.Column+1)*view.W/columns
	if x1 == x0 {
		return
	}

	lineH := view.H
	if c.DrawDistance > 0 {
		lineH = min(int(float64(view.H)/c.DrawDistance), view.H)
	}
	lineH = max(lineH, 1)
	top := horizon - lineH/2

	glyph := core.Shade(c.DrawDistance, fog)
	color := g.wallColor(c)
	if c.Side.Shaded() {
		color = color.Dim()
	}
	if lineH > 2 {
		// Tile seams read as vertical grooves.
		if u := c.TextureU(g.session.camera.Facing, g.session.camera.Plane, columns); u < 0.04 || u > 0.96 {
			color = color.Dim()
		}
	}

	for x := x0; x < x1; x++ {
		for y := max(top, view.Y); y < min(top+lineH, view.Bottom()); y++ {
			dst.SetColor(x, y, glyph, color)
		}
	}
}

func (g *Game) wallColor(c raycast.WallCollision) core.Color {
	l := g.session.level
	switch c.Kind {
	case raycast.HitKey:
		return core.ColorBrightYellow
	case raycast.HitEndPoint:
		if got, total := l.KeysCollected(); got == total {
			return core.ColorBrightGreen
		}
		return core.ColorGray
	case raycast.HitEdge:
		return textureColor(l.EdgeTexture())
	default:
		return textureColor(l.PresenceOrEdge(c.Tile).Wall.Texture(c.Side))
	}
}

func (g *Game) paintSprite(dst *core.Screen, view core.Rect, horizon int, sp raycast.SpriteCollision) {
	if sp.Depth <= 0 {
		return
	}
	lk := spriteLook(sp)
	_, tileH := sp.Size(view.W, view.H)
	h := max(int(float64(tileH)*lk.scale), 1)
	w := max(h*2, 1) // terminal cells are about twice as tall as wide

	cx := view.X + sp.ScreenX(view.W)
	floor := min(horizon+tileH/2, view.Bottom()-1)
	top := floor - h + 1
	left := cx - w/2

	for y := max(top, view.Y); y <= floor && y < view.Bottom(); y++ {
		for x := max(left, view.X); x < left+w && x < view.Right(); x++ {
			dst.SetColor(x, y, lk.glyph, lk.color)
		}
	}
	if sp.Kind == raycast.SpriteMonster && h >= 3 && w >= 6 {
		eyes := top + h/3
		dst.SetColor(cx-w/4, eyes, 'O', core.ColorBrightYellow)
		dst.SetColor(cx+w/4, eyes, 'O', core.ColorBrightYellow)
	}
}

// flickering decides whether the lights stutter this tick because the
// monster is close. It draws from the game's random source, so only Step
// calls it.
func (g *Game) flickering() bool {
	s := g.session
	if !s.cfg.Monster.FlickerLights || g.rng == nil {
		return false
	}
	m, ok := s.level.Monster()
	if !ok {
		return false
	}
	d := maze.DistanceSquared(m.Center(), s.level.PlayerPos())
	if d > 16 {
		return false
	}
	return g.rng.Float64() < 0.5*(1-d/16)
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	s := g.session
	l := s.level
	got, total := l.KeysCollected()

	parts := []string{
		fmt.Sprintf(" %s", l.Name()),
		fmt.Sprintf("%.1fs", s.time),
		fmt.Sprintf("%.1f moves", s.moves),
	}
	if total > 0 {
		parts = append(parts, fmt.Sprintf("keys %d/%d", got, total))
	}
	if s.hasGun {
		parts = append(parts, "gun")
	}
	switch {
	case s.wallCooldown > 0:
		parts = append(parts, fmt.Sprintf("wall %.0fs", s.wallCooldown))
	default:
		if pw, ok := l.PlayerWall(); ok {
			left := s.cfg.Items.PlayerWallTime - (s.time - pw.PlacedAt)
			parts = append(parts, fmt.Sprintf("wall up %.0fs", math.Max(left, 0)))
		}
	}
	if s.sensorLeft > 0 {
		parts = append(parts, fmt.Sprintf("sensor %.0fs", s.sensorLeft))
	}
	parts = append(parts, g.compassText())
	if b, ok := g.best[l.ID()]; ok && s.cfg.Display.ShowStats {
		parts = append(parts, fmt.Sprintf("best %.1fs/%.1f", b.Time, b.Moves))
	}

	dst.DrawTextColor(0, 0, strings.Join(parts, " │ "), core.ColorBrightWhite)
}

func (g *Game) compassText() string {
	s := g.session
	switch {
	case s.compassBurned:
		return fmt.Sprintf("compass burned %.1f", s.compassCharge)
	case s.compassActive():
		m, _ := s.level.Monster()
		arrow := Arrow(s.camera.Bearing(s.level.PlayerPos(), m.Center()))
		return fmt.Sprintf("compass %c %.1f", arrow, s.compassCharge)
	default:
		return fmt.Sprintf("compass %.1f", s.compassCharge)
	}
}

// renderStatus draws the bottom line: the latest notice or the controls.
func (g *Game) renderStatus(dst *core.Screen) {
	y := dst.Height() - 1
	if g.session.notice != "" {
		dst.DrawTextColor(1, y, g.session.notice, core.ColorBrightYellow)
		return
	}
	if g.loadError != "" {
		dst.DrawTextColor(1, y, g.loadError, core.ColorRed)
		return
	}
	dst.DrawTextColor(1, y, controlsHelp, core.ColorGray)
	if g.session.cfg.Display.ShowStats {
		p := g.session.level.PlayerPos()
		stats := fmt.Sprintf("%s  pos %.2f,%.2f", g.session.level.ID(), p.X, p.Y)
		if x := dst.Width() - len(stats) - 1; x > len(controlsHelp)+2 {
			dst.DrawTextColor(x, y, stats, core.ColorGray)
		}
	}
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *core.Screen, color core.Color, title string, lines ...string) {
	width := len([]rune(title))
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	screen := core.NewRect(0, 0, dst.Width(), dst.Height())
	box := screen.Centered(width+4, len(lines)+4)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, color)
	dst.DrawTextCenteredColor(box.Y+1, title, color)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+3+i, l)
	}
}
