package tanks

import (
	"fmt"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks/units"
)

// applyBonus gives the player the effect of a picked up bonus.
func (g *Game) applyBonus(typ units.BonusType) {
	p := g.player
	switch typ {
	case units.BonusDestruction:
		for _, t := range g.enemies.Enemies() {
			if t.Spawning {
				continue
			}
			cx, cy := t.Center()
			g.tanks.Remove(t.ID)
			g.enemies.Forget(t.ID)
			g.explosions = append(g.explosions, units.NewExplosion(g.clock, cx, cy, units.ExplosionFull))
		}
		g.ShowMessage("DESTRUCTION!", 0)
	case units.BonusCask:
		p.ActivateShield(g.cfg.Bonuses.Shield)
		g.ShowMessage("SHIELD ON", 0)
	case units.BonusUpgrade:
		p.Upgrade()
		g.ShowMessage(fmt.Sprintf("UPGRADE: %s", p.Type), 0)
	case units.BonusTimer:
		g.freeze.Start()
		g.ShowMessage("ENEMIES FROZEN", 0)
	case units.BonusStiffBase:
		g.protector.Activate()
		g.ShowMessage("BASE REINFORCED", 0)
	case units.BonusTopTank:
		g.switchPlayer(p.Type.Next())
		g.ShowMessage(fmt.Sprintf("TANK: %s", g.player.Type), 0)
	case units.BonusGun:
		g.ShowMessage("GUN: no effect", 0)
	default:
		g.log.Warn("unknown bonus", "type", typ)
		g.ShowMessage(fmt.Sprintf("UNKNOWN BONUS %d", int(typ)), 0)
	}
	g.log.Debug("bonus taken", "type", typ)
}

// switchPlayer replaces the player tank with a new one of the given type at
// the same position and heading. The occupancy cells of the old tank are
// handed to the new one so a move later in the frame is not blocked by them.
func (g *Game) switchPlayer(typ units.Type) {
	old := g.player
	t := units.NewTank(g.clock, units.FractionFriend, units.ColorYellow, typ)
	t.Direction = old.Direction
	r := old.Rect()
	t.Place(r.X, r.Y)
	t.ActivateShield(g.cfg.Gameplay.SpawnShield)
	g.tanks.Replace(old, t)
	g.player = t
	g.field.Occupancy().FillRect(r, tankOccupant(t), false)
}
