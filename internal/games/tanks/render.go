package tanks

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/units"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/world"
)

const (
	hudHeight   = 2
	charsPerCol = 2 // a cell is two characters wide and one high
	blinkPeriod = 250 * time.Millisecond
)

var tankGlyphs = map[world.Direction][2]string{
	world.DirUp:    {" ▐▌ ", "████"},
	world.DirDown:  {"████", " ▐▌ "},
	world.DirLeft:  {"━██▌", " ██▌"},
	world.DirRight: {"▐██━", "▐██ "},
}

var baseGlyphs = [2][2]string{
	{" ◣◢ ", "▐██▌"},
	{"▚▞▚▞", "▞▚▞▚"},
}

var bonusLabels = map[units.BonusType]string{
	units.BonusDestruction: "DS",
	units.BonusCask:        "SH",
	units.BonusUpgrade:     "UP",
	units.BonusTimer:       "TM",
	units.BonusStiffBase:   "SB",
	units.BonusTopTank:     "TT",
	units.BonusGun:         "GN",
}

// Resize adapts the layout to a new terminal size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
	g.tooSmall = w < g.minScreenW() || h < g.minScreenH()
}

func (g *Game) minScreenW() int {
	if g.field == nil {
		return 0
	}
	return g.field.Cols()*charsPerCol + 2
}

func (g *Game) minScreenH() int {
	if g.field == nil {
		return 0
	}
	return g.field.Rows() + hudHeight + 2
}

// origin is the screen position of the field's top-left cell.
func (g *Game) origin() (int, int) {
	return (g.screenW-g.minScreenW())/2 + 1, hudHeight + 1
}

// toScreen converts world px to screen coordinates.
func (g *Game) toScreen(x, y int) (int, int) {
	ox, oy := g.origin()
	return ox + x*charsPerCol/world.CellSize, oy + y/world.CellSize
}

func (g *Game) blink() bool {
	return (g.clock.Now()/blinkPeriod)%2 == 0
}

// Render draws the battle to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.field == nil {
		g.renderLoadError(dst)
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	ox, oy := g.origin()
	dst.DrawBox(core.NewRect(ox-1, oy-1, g.minScreenW(), g.field.Rows()+2), core.ColorGray)

	g.renderHUD(dst)
	g.renderTerrain(dst, false)
	g.renderBase(dst)
	g.renderBonuses(dst)
	g.renderTanks(dst)
	g.renderProjectiles(dst)
	g.renderTerrain(dst, true)
	g.renderExplosions(dst)
	g.renderPopups(dst)
	g.renderOverlays(dst)
}

func (g *Game) renderLoadError(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Cannot load level", core.ColorRed)
	if g.loadErr != nil {
		dst.DrawTextCentered(y+1, g.loadErr.Error(), core.ColorDefault)
	}
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", g.minScreenW(), g.minScreenH()), core.ColorDefault)
}

func (g *Game) renderHUD(dst *core.Screen) {
	ox, _ := g.origin()
	w := g.minScreenW() - 2

	dst.DrawColoredText(ox, 0, fmt.Sprintf("%s  %s", g.Title(), g.level.Name), core.ColorBrightWhite)
	score := fmt.Sprintf("Score: %d", g.score)
	dst.DrawColoredText(ox+w-len(score), 0, score, core.ColorBrightYellow)

	info := fmt.Sprintf("Enemies: %d", g.EnemiesLeft())
	if g.player != nil {
		info += fmt.Sprintf("  %s", g.player.Type)
		if g.player.Shielded() {
			info += fmt.Sprintf("  Shield %.0fs", g.player.ShieldRemaining().Seconds())
		}
	}
	if g.Frozen() {
		info += fmt.Sprintf("  Freeze %.0fs", g.freeze.Remaining().Seconds())
	}
	if g.protector.Active() {
		info += fmt.Sprintf("  Steel %.0fs", g.protector.Remaining().Seconds())
	}
	dst.DrawColoredText(ox, 1, info, core.ColorDefault)

	if msg := g.Message(); msg != "" {
		dst.DrawColoredText(ox+w-len([]rune(msg)), 1, msg, core.ColorBrightGreen)
	}
}

func tileGlyph(t world.Tile) (rune, core.Color) {
	switch t {
	case world.TileBrick, world.TileBaseWall:
		return '▓', core.ColorOrange
	case world.TileSteel:
		return '█', core.ColorGray
	case world.TileWater:
		return '~', core.ColorBlue
	case world.TileGrass:
		return '♣', core.ColorGreen
	case world.TileIce:
		return '░', core.ColorCyan
	default:
		return ' ', core.ColorDefault
	}
}

// renderTerrain draws every tile; grass goes in a second pass on top of
// the tanks.
func (g *Game) renderTerrain(dst *core.Screen, grass bool) {
	ox, oy := g.origin()
	for r := 0; r < g.field.Rows(); r++ {
		for c := 0; c < g.field.Cols(); c++ {
			t := g.field.Tile(world.Cell{Col: c, Row: r})
			if (t == world.TileGrass) != grass || t == world.TileEmpty {
				continue
			}
			ch, col := tileGlyph(t)
			for i := 0; i < charsPerCol; i++ {
				dst.SetColored(ox+c*charsPerCol+i, oy+r, ch, col)
			}
		}
	}
}

func (g *Game) drawSprite(dst *core.Screen, r core.Rect, rows [2]string, c core.Color) {
	sx, sy := g.toScreen(r.X, r.Y)
	for dy, row := range rows {
		dst.DrawColoredText(sx, sy+dy, row, c)
	}
}

func (g *Game) renderBase(dst *core.Screen) {
	i, c := 0, core.ColorBrightYellow
	if g.base.Broken {
		i, c = 1, core.ColorRed
	}
	g.drawSprite(dst, g.base.Rect(), baseGlyphs[i], c)
}

func (g *Game) renderBonuses(dst *core.Screen) {
	if !g.blink() {
		return
	}
	for _, b := range g.bonuses {
		label, ok := bonusLabels[b.Type]
		if !ok {
			label = "??"
		}
		g.drawSprite(dst, b.Rect(), [2]string{"[" + label + "]", "└──┘"}, core.ColorMagenta)
	}
}

func (g *Game) tankColor(t *units.Tank) core.Color {
	if t.Shielded() && g.blink() {
		return core.ColorBrightWhite
	}
	if t.Fraction == units.FractionFriend {
		return core.ColorBrightYellow
	}
	if t.Bonus && g.blink() {
		return core.ColorBrightRed
	}
	switch t.Color {
	case units.ColorGreen:
		return core.ColorGreen
	case units.ColorYellow:
		return core.ColorYellow
	default:
		return core.ColorWhite
	}
}

func (g *Game) renderTanks(dst *core.Screen) {
	for _, t := range g.tanks.All() {
		if t.Spawning {
			star := "✦"
			if g.blink() {
				star = "+"
			}
			g.drawSprite(dst, t.Rect(), [2]string{" " + star + star + " ", " " + star + star + " "}, core.ColorBrightWhite)
			continue
		}
		glyph, ok := tankGlyphs[t.Direction]
		if !ok {
			glyph = tankGlyphs[world.DirUp]
		}
		g.drawSprite(dst, t.Rect(), glyph, g.tankColor(t))
	}
}

func (g *Game) renderProjectiles(dst *core.Screen) {
	for _, p := range g.projectiles {
		x, y := p.Point()
		sx, sy := g.toScreen(x, y)
		dst.SetColored(sx, sy, '•', core.ColorBrightWhite)
	}
}

func (g *Game) renderExplosions(dst *core.Screen) {
	for _, e := range g.explosions {
		sx, sy := g.toScreen(e.X, e.Y)
		switch e.Kind {
		case units.ExplosionSuperShort:
			dst.SetColored(sx, sy, '*', core.ColorYellow)
		case units.ExplosionShort:
			dst.DrawColoredText(sx-1, sy, "**", core.ColorBrightYellow)
		default:
			c := core.ColorBrightRed
			if e.Progress() > 0.5 {
				c = core.ColorOrange
			}
			dst.DrawColoredText(sx-2, sy-1, "\\ | /", c)
			dst.DrawColoredText(sx-2, sy, "- * -", c)
			dst.DrawColoredText(sx-2, sy+1, "/ | \\", c)
		}
	}
}

func (g *Game) renderPopups(dst *core.Screen) {
	for _, p := range g.popups {
		sx, sy := g.toScreen(p.X, p.Y)
		text := fmt.Sprintf("%d", p.Points)
		dst.DrawColoredText(sx-len(text)/2, sy-1, text, core.ColorBrightWhite)
	}
}

func (g *Game) renderOverlays(dst *core.Screen) {
	_, oy := g.origin()
	y := oy + g.field.Rows()/2
	switch {
	case g.won:
		dst.DrawTextCentered(y, " YOU WIN! ", core.ColorBrightGreen)
		dst.DrawTextCentered(y+1, " Press R to play again ", core.ColorDefault)
	case !g.running:
		dst.DrawTextCentered(y, " GAME OVER ", core.ColorBrightRed)
		dst.DrawTextCentered(y+1, " Press R to restart ", core.ColorDefault)
	case g.paused:
		dst.DrawTextCentered(y, " PAUSED ", core.ColorBrightYellow)
	}
}
