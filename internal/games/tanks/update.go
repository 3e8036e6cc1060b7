package tanks

import (
	"time"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks/units"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/world"
)

// Update advances the battle by dt. The stages run in a fixed order and all
// of them read the occupancy map rebuilt at the top of the frame.
func (g *Game) Update(dt time.Duration) {
	if g.field == nil || !g.running || g.paused {
		return
	}
	g.clock.Advance(dt)
	g.ticks++

	occ := g.field.Occupancy()
	occ.Clear()
	occ.FillRect(g.base.Rect(), baseOccupant, false)

	g.protector.Update()
	g.pruneEffects()

	g.updateTanks(dt)
	g.updateBonuses()
	g.updateProjectiles(dt)

	g.msgTimer.Tick()

	switch {
	case g.base.Broken:
		g.running = false
		g.lose()
	case g.Victory():
		g.running = false
		g.win()
	}
}

func (g *Game) pruneEffects() {
	popups := g.popups[:0]
	for _, p := range g.popups {
		if !p.Done() {
			popups = append(popups, p)
		}
	}
	g.popups = popups

	explosions := g.explosions[:0]
	for _, e := range g.explosions {
		if !e.Done() {
			explosions = append(explosions, e)
		}
	}
	g.explosions = explosions
}

func (g *Game) updateTanks(dt time.Duration) {
	all := g.tanks.All()
	for _, t := range all {
		t.BeginFrame()
	}

	occ := g.field.Occupancy()
	for _, t := range all {
		if !t.Spawning {
			occ.FillRect(t.Rect(), tankOccupant(t), true)
		}
	}

	g.drivePlayer(dt)

	if g.freeze.Tick() {
		g.enemies.Update(dt)
	} else {
		g.enemies.Frozen()
	}

	for _, t := range g.tanks.All() {
		if t.Spawning {
			continue
		}
		if t.WantToFire {
			t.WantToFire = false
			g.fire(t)
		}
		if t.ToDestroy {
			g.destroyTank(t)
			continue
		}
		if t.Moved() && (g.field.IntersectRect(t.Rect()) || !occ.TestRect(t.Rect(), world.NoOccupant, tankOccupant(t))) {
			t.UndoMove()
		}
	}
}

func (g *Game) drivePlayer(dt time.Duration) {
	p := g.player
	if p == nil {
		return
	}
	in := g.input
	if in.Switch {
		g.switchPlayer(p.Type.Next())
		p = g.player
	}
	if p.Spawning || p.ToDestroy {
		return
	}
	if in.Move.Valid() {
		p.Move(in.Move, dt)
	} else {
		p.Stop()
		p.Align()
	}
	if in.Fire {
		p.WantToFire = true
	}
}

func (g *Game) fire(t *units.Tank) {
	if !t.TryFire() {
		return
	}
	g.nextProjectile++
	p := units.NewProjectile(t)
	p.ID = g.nextProjectile
	g.projectiles = append(g.projectiles, p)
}

// destroyTank removes a tank queued for destruction and books the kill.
func (g *Game) destroyTank(t *units.Tank) {
	g.tanks.Remove(t.ID)
	g.enemies.Forget(t.ID)
	cx, cy := t.Center()
	g.explosions = append(g.explosions, units.NewExplosion(g.clock, cx, cy, units.ExplosionFull))
	if t.Fraction == units.FractionEnemy {
		g.onEnemyDestroyed(t)
	}
}

func (g *Game) onEnemyDestroyed(t *units.Tank) {
	cx, cy := t.Center()
	if t.Bonus {
		g.bonuses = append(g.bonuses, units.NewBonus(units.RandomBonusType(g.rng), cx, cy))
	}
	points := t.Type.Spec().Score
	g.score += points
	g.popups = append(g.popups, units.NewScorePopup(g.clock, cx, cy, points))

	e := g.cfg.Enemies
	g.enemies.SetPacing(
		g.difficulty.FireInterval(e.FireInterval, g.score, int(g.ticks)),
		g.difficulty.Reinforcement(e.Reinforcement, g.score, int(g.ticks)),
	)
}

func (g *Game) updateBonuses() {
	p := g.player
	if p == nil || p.Spawning || p.ToDestroy {
		return
	}
	kept := g.bonuses[:0]
	var taken []*units.Bonus
	for _, b := range g.bonuses {
		if b.Touches(p.Rect()) {
			taken = append(taken, b)
			continue
		}
		kept = append(kept, b)
	}
	g.bonuses = kept
	for _, b := range taken {
		g.applyBonus(b.Type)
	}
}

func (g *Game) updateProjectiles(dt time.Duration) {
	occ := g.field.Occupancy()
	for _, p := range g.projectiles {
		occ.FillRect(p.Rect(), projectileOccupant(p), false)
	}

	removed := make(map[units.ProjectileID]bool)
	for _, p := range g.projectiles {
		if removed[p.ID] {
			continue
		}
		n, hop := p.Hops(dt)
		for i := 0; i < n && !removed[p.ID]; i++ {
			p.Advance(hop)
			g.resolveProjectile(p, removed)
		}
	}

	if len(removed) == 0 {
		return
	}
	kept := g.projectiles[:0]
	for _, p := range g.projectiles {
		if !removed[p.ID] {
			kept = append(kept, p)
		}
	}
	g.projectiles = kept
}

// resolveProjectile runs the hit checks at the projectile's current point.
// Terrain is checked before the base and the base before tanks.
func (g *Game) resolveProjectile(p *units.Projectile, removed map[units.ProjectileID]bool) {
	occ := g.field.Occupancy()
	x, y := p.Point()

	if other := occ.CellAt(x, y); other.Kind == world.OccupantProjectile && other.ID != uint32(p.ID) {
		removed[p.ID] = true
		removed[units.ProjectileID(other.ID)] = true
		return
	}

	if g.field.CheckHit(x, y, p.Direction, p.High()) {
		removed[p.ID] = true
		g.explosions = append(g.explosions, units.NewExplosion(g.clock, x, y, units.ExplosionSuperShort))
		return
	}

	if g.base.CheckHit(x, y) {
		removed[p.ID] = true
		g.breakBase()
		return
	}

	if t := g.tankAt(x, y, p.Sender); t != nil {
		removed[p.ID] = true
		if !t.Shielded() && g.hostile(p, t) {
			g.explosions = append(g.explosions, units.NewExplosion(g.clock, x, y, units.ExplosionShort))
			g.hitTank(t)
		}
	}
}

// tankAt returns the first tank in play containing the point, skipping the
// sender.
func (g *Game) tankAt(x, y int, sender units.TankID) *units.Tank {
	for _, t := range g.tanks.All() {
		if t.ID == sender || !t.Alive() {
			continue
		}
		if t.CheckHit(x, y) {
			return t
		}
	}
	return nil
}

// hostile reports whether a projectile damages the tank. A sender that has
// left the registry no longer exempts anyone.
func (g *Game) hostile(p *units.Projectile, t *units.Tank) bool {
	sender, ok := g.tanks.Get(p.Sender)
	if !ok {
		return true
	}
	return sender.Fraction != t.Fraction
}

func (g *Game) hitTank(t *units.Tank) {
	if t.Fraction == units.FractionFriend {
		cx, cy := t.Center()
		g.explosions = append(g.explosions, units.NewExplosion(g.clock, cx, cy, units.ExplosionFull))
		g.respawnPlayer(t)
		t.ActivateShield(g.cfg.Gameplay.SpawnShield)
		return
	}
	t.Hit = true
	if t.ResolveHit() {
		g.destroyTank(t)
	}
}

func (g *Game) breakBase() {
	if g.base.Broken {
		return
	}
	g.base.Broken = true
	cx, cy := g.base.Rect().Center()
	g.explosions = append(g.explosions, units.NewExplosion(g.clock, cx, cy, units.ExplosionFull))
	if g.player != nil {
		g.player.Stop()
	}
}
