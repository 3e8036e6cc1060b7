package ai

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks/units"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/world"
)

// FractionConfig tunes the enemy side of a battle.
type FractionConfig struct {
	Total         int           // enemies to spawn over the whole battle
	MaxAlive      int           // hard cap on enemies on the field at once
	Increment     int           // extra spawn attempts per reinforcement tick
	Reinforcement time.Duration // reinforcement interval
	BonusChance   float64       // chance a spawned enemy carries a bonus
	SpawnDelay    time.Duration // spawn animation length
	FireInterval  time.Duration // per-tank fire interval
	SpawnsPerCall int           // spawns per TryToSpawn invocation
}

// DefaultFractionConfig returns the classic pacing.
func DefaultFractionConfig() FractionConfig {
	return FractionConfig{
		Total:         20,
		MaxAlive:      5,
		Increment:     3,
		Reinforcement: 5 * time.Second,
		BonusChance:   0.65,
		SpawnDelay:    DefaultSpawnDelay,
		FireInterval:  DefaultFireInterval,
		SpawnsPerCall: 2,
	}
}

type spawnPoint struct {
	cell world.Cell
	tank *units.Tank
}

// EnemyFraction spawns enemy tanks and runs their controllers.
type EnemyFraction struct {
	cfg   FractionConfig
	tanks *units.Registry
	bf    Battlefield
	clock *world.Clock
	rng   *rand.Rand

	points    []spawnPoint
	queue     int
	spawned   int
	reinforce *world.Timer
	ais       map[units.TankID]*TankAI
}

// NewEnemyFraction registers the field's enemy respawn cells and makes a
// first spawn attempt.
func NewEnemyFraction(cfg FractionConfig, tanks *units.Registry, bf Battlefield, clock *world.Clock, rng *rand.Rand) *EnemyFraction {
	if cfg.Total < 0 {
		cfg.Total = 0
	}
	if cfg.SpawnsPerCall <= 0 {
		cfg.SpawnsPerCall = 2
	}
	ef := &EnemyFraction{
		cfg:       cfg,
		tanks:     tanks,
		bf:        bf,
		clock:     clock,
		rng:       rng,
		reinforce: world.NewArmedTimer(clock, cfg.Reinforcement),
		ais:       make(map[units.TankID]*TankAI),
	}
	for _, c := range bf.Field().RespawnPoints(true) {
		ef.points = append(ef.points, spawnPoint{cell: c})
	}
	ef.TryToSpawn()
	return ef
}

// Total is the spawn quota.
func (ef *EnemyFraction) Total() int { return ef.cfg.Total }

// Spawned is how many enemies have been created so far.
func (ef *EnemyFraction) Spawned() int { return ef.spawned }

// HasMore reports whether the quota is not yet exhausted.
func (ef *EnemyFraction) HasMore() bool { return ef.spawned < ef.cfg.Total }

// Enemies returns a snapshot of the enemy tanks, spawning ones included.
func (ef *EnemyFraction) Enemies() []*units.Tank {
	return ef.tanks.Fraction(units.FractionEnemy)
}

// EnemiesLeft counts enemies not yet destroyed: unspawned quota plus the
// ones on the field.
func (ef *EnemyFraction) EnemiesLeft() int {
	left := ef.cfg.Total - ef.spawned + len(ef.Enemies())
	if left < 0 {
		return 0
	}
	return left
}

// AI returns the controller of an enemy tank.
func (ef *EnemyFraction) AI(id units.TankID) (*TankAI, bool) {
	a, ok := ef.ais[id]
	return a, ok
}

// Forget drops the controller of a removed tank.
func (ef *EnemyFraction) Forget(id units.TankID) {
	delete(ef.ais, id)
}

// TryToSpawn frees spawn cells whose tank has left them and spawns up to
// SpawnsPerCall new enemies on random free cells.
func (ef *EnemyFraction) TryToSpawn() {
	var free []int
	for i := range ef.points {
		p := &ef.points[i]
		if p.tank != nil {
			if _, alive := ef.tanks.Get(p.tank.ID); alive && p.tank.Spawning && !p.tank.ToDestroy {
				continue
			}
			p.tank = nil
		}
		free = append(free, i)
	}

	for n := 0; n < ef.cfg.SpawnsPerCall && len(free) > 0; n++ {
		if !ef.HasMore() || len(ef.Enemies()) >= ef.cfg.MaxAlive {
			return
		}
		k := ef.rng.Intn(len(free))
		i := free[k]
		free = append(free[:k], free[k+1:]...)
		ef.points[i].tank = ef.spawn(ef.points[i].cell)
	}
}

func (ef *EnemyFraction) spawn(c world.Cell) *units.Tank {
	typ := units.EnemyQueue[ef.queue]
	ef.queue = (ef.queue + 1) % len(units.EnemyQueue)

	t := units.NewTank(ef.clock, units.FractionEnemy, units.ColorPlain, typ)
	t.Spawning = true
	t.Bonus = ef.rng.Float64() < ef.cfg.BonusChance
	t.PlaceAtCell(c)
	ef.tanks.Add(t)

	a := NewTankAI(t, ef.bf, ef.clock, ef.rng, ef.cfg.SpawnDelay, ef.cfg.FireInterval)
	a.Reset()
	ef.ais[t.ID] = a
	ef.spawned++
	return t
}

// Update runs reinforcements and every enemy controller.
func (ef *EnemyFraction) Update(dt time.Duration) {
	if ef.reinforce.Tick() {
		ef.reinforce.Start()
		if remaining := ef.cfg.Total - ef.spawned; remaining > 0 {
			n := min(ef.cfg.Increment, remaining, ef.cfg.MaxAlive-len(ef.Enemies()))
			for i := 0; i < n; i++ {
				ef.TryToSpawn()
			}
		}
	}

	for _, t := range ef.Enemies() {
		if t.ToDestroy {
			continue
		}
		if a, ok := ef.ais[t.ID]; ok {
			a.Update(dt)
		}
	}
}

// Frozen is the update used while a TIMER bonus holds: enemies stand still
// and hold fire, pending hits still resolve.
func (ef *EnemyFraction) Frozen() {
	for _, t := range ef.Enemies() {
		t.Stop()
		t.WantToFire = false
		if !t.Spawning {
			t.ResolveHit()
		}
	}
}

// SetPacing changes the fire interval of future spawns and the reinforcement
// interval.
func (ef *EnemyFraction) SetPacing(fireInterval, reinforcement time.Duration) {
	if fireInterval > 0 {
		ef.cfg.FireInterval = fireInterval
	}
	if reinforcement > 0 {
		ef.cfg.Reinforcement = reinforcement
		ef.reinforce.Delay = reinforcement
	}
}

// Halt ends spawning for good and stops every enemy.
func (ef *EnemyFraction) Halt() {
	ef.cfg.Total = ef.spawned
	for _, t := range ef.Enemies() {
		t.Stop()
		t.WantToFire = false
	}
}
