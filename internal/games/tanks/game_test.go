package tanks

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/levels"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/units"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/world"
)

const frame = time.Second / 60

type memSink struct {
	results []Result
	err     error
}

func (s *memSink) SaveResult(_ context.Context, r Result) error {
	s.results = append(s.results, r)
	return s.err
}

// testLevel is an open 13x13 level with the base at the bottom middle, one
// enemy respawn cell in the top-left corner and one player cell left of the
// base.
func testLevel(enemies int, edit func(l *world.Layout)) *levels.Level {
	const size = 13
	l := world.Layout{
		Cols:         size,
		Rows:         size,
		Tiles:        make([]world.Tile, size*size),
		Base:         world.Cell{Col: 5, Row: 11},
		EnemySpawns:  []world.Cell{{Col: 0, Row: 0}},
		PlayerSpawns: []world.Cell{{Col: 2, Row: 11}},
	}
	if edit != nil {
		edit(&l)
	}
	return &levels.Level{ID: "test", Name: "Test", Enemies: enemies, Layout: l}
}

func testConfig() *config.TanksConfig {
	cfg := config.DefaultTanksConfig()
	cfg.Gameplay.SpawnShield = 0
	cfg.Gameplay.Enemies = 0
	cfg.Difficulty.Enabled = false
	return &cfg
}

func newTestGame(t *testing.T, lvl *levels.Level, cfg *config.TanksConfig) (*Game, *memSink) {
	t.Helper()
	sink := &memSink{}
	g := NewWithOptions(ModeCampaign, Options{Config: cfg, Level: lvl, Sink: sink})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 32, TickRate: 60, Seed: 1})
	if err := g.Err(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	return g, sink
}

func freezeEnemies(g *Game) {
	g.freeze.Delay = time.Hour
	g.freeze.Start()
}

// matureEnemy finishes the spawn of the first enemy and moves it to (x, y).
func matureEnemy(t *testing.T, g *Game, x, y int) *units.Tank {
	t.Helper()
	enemies := g.enemies.Enemies()
	if len(enemies) == 0 {
		t.Fatal("no enemy spawned")
	}
	e := enemies[0]
	e.Spawning = false
	e.Bonus = false
	e.Type = units.TypeEnemySimple
	e.Place(x, y)
	return e
}

func runUntil(g *Game, frames int, done func() bool) bool {
	for i := 0; i < frames; i++ {
		if done() {
			return true
		}
		g.Update(frame)
	}
	return done()
}

func TestPlayerKillScoresAndWins(t *testing.T) {
	g, sink := newTestGame(t, testLevel(1, nil), testConfig())
	freezeEnemies(g)
	e := matureEnemy(t, g, 16, 16)
	cx, cy := e.Center()

	g.SetInput(Input{Move: world.DirNone, Fire: true})
	g.Update(frame)
	g.SetInput(Input{Move: world.DirNone})

	if !runUntil(g, 300, func() bool { return !g.Running() }) {
		t.Fatal("battle did not end")
	}
	if g.Score() != 100 {
		t.Errorf("Score = %d, want 100", g.Score())
	}
	if len(g.Popups()) != 1 {
		t.Fatalf("popups = %d, want 1", len(g.Popups()))
	}
	p := g.Popups()[0]
	if p.X != cx || p.Y != cy || p.Points != 100 {
		t.Errorf("popup = (%d,%d) %d, want (%d,%d) 100", p.X, p.Y, p.Points, cx, cy)
	}
	if !g.Won() || g.GameOver() {
		t.Errorf("Won = %v, GameOver = %v", g.Won(), g.GameOver())
	}
	if len(sink.results) != 1 || sink.results[0].Outcome != OutcomeWin || sink.results[0].Score != 100 {
		t.Errorf("results = %+v", sink.results)
	}
}

func TestZeroQuotaWinsOnce(t *testing.T) {
	g, sink := newTestGame(t, testLevel(0, nil), testConfig())

	if g.EnemiesLeft() != 0 {
		t.Fatalf("EnemiesLeft = %d, want 0", g.EnemiesLeft())
	}
	g.Update(frame)
	if !g.Victory() || !g.Won() || g.Running() {
		t.Fatalf("Victory = %v, Won = %v, Running = %v", g.Victory(), g.Won(), g.Running())
	}
	for i := 0; i < 10; i++ {
		g.Update(frame)
	}
	if len(sink.results) != 1 {
		t.Fatalf("results = %d, want 1", len(sink.results))
	}
	r := sink.results[0]
	if r.Outcome != OutcomeWin || r.Mode != "tanks" || r.Level != "test" {
		t.Errorf("result = %+v", r)
	}
	if !g.State().GameOver || !g.State().Won {
		t.Errorf("State = %+v", g.State())
	}
}

func TestCaskShield(t *testing.T) {
	g, _ := newTestGame(t, testLevel(1, nil), testConfig())
	freezeEnemies(g)
	p := g.Player()
	if p.Shielded() {
		t.Fatal("player shielded before the bonus")
	}

	pickup := func() {
		cx, cy := g.Player().Center()
		g.bonuses = append(g.bonuses, units.NewBonus(units.BonusCask, cx, cy))
		g.Update(frame)
		if len(g.Bonuses()) != 0 {
			t.Fatal("bonus not consumed")
		}
	}

	pickup()
	if !p.Shielded() {
		t.Fatal("player not shielded after CASK")
	}
	for i := 0; i < 9; i++ {
		g.Update(time.Second)
	}
	if !p.Shielded() {
		t.Fatal("shield dropped early")
	}

	pickup()
	g.Update(5 * time.Second)
	if !p.Shielded() {
		t.Fatal("second pickup did not re-arm the shield")
	}
	g.Update(5 * time.Second)
	if p.Shielded() {
		t.Error("shield outlived its duration")
	}
}

func TestBaseHitEndsBattle(t *testing.T) {
	g, sink := newTestGame(t, testLevel(1, nil), testConfig())
	freezeEnemies(g)

	bx, _ := g.Base().Rect().Center()
	g.projectiles = append(g.projectiles, &units.Projectile{
		ID:        99,
		X:         float64(bx),
		Y:         float64(g.Base().Rect().Y - 10),
		Direction: world.DirDown,
		Speed:     units.ShotSpeedNormal,
		Sender:    units.TankID(999),
	})

	if !runUntil(g, 120, func() bool { return !g.Running() }) {
		t.Fatal("battle still running")
	}
	if !g.GameOver() || !g.Base().Broken || g.Won() {
		t.Errorf("GameOver = %v, Broken = %v, Won = %v", g.GameOver(), g.Base().Broken, g.Won())
	}
	if len(g.Projectiles()) != 0 {
		t.Errorf("projectiles = %d, want 0", len(g.Projectiles()))
	}
	var full int
	for _, e := range g.Explosions() {
		if e.Kind == units.ExplosionFull {
			full++
		}
	}
	if full != 1 {
		t.Errorf("full explosions = %d, want 1", full)
	}

	g.Update(frame)
	g.Update(frame)
	if len(sink.results) != 1 || sink.results[0].Outcome != OutcomeLose {
		t.Errorf("results = %+v", sink.results)
	}
}

func TestProjectilesAnnihilate(t *testing.T) {
	g, _ := newTestGame(t, testLevel(1, nil), testConfig())
	freezeEnemies(g)
	enemy := g.enemies.Enemies()[0]

	g.projectiles = []*units.Projectile{
		{ID: 1, X: 60, Y: 40, Direction: world.DirDown, Speed: units.ShotSpeedNormal, Sender: g.Player().ID},
		{ID: 2, X: 60, Y: 44, Direction: world.DirUp, Speed: units.ShotSpeedNormal, Sender: enemy.ID},
	}
	g.Update(frame)

	if len(g.Projectiles()) != 0 {
		t.Fatalf("projectiles = %d, want 0", len(g.Projectiles()))
	}
	if len(g.Explosions()) != 0 {
		t.Errorf("explosions = %d, want 0", len(g.Explosions()))
	}
	if g.Score() != 0 {
		t.Errorf("Score = %d, want 0", g.Score())
	}
}

func TestPlayerHitRespawns(t *testing.T) {
	g, _ := newTestGame(t, testLevel(1, nil), testConfig())
	freezeEnemies(g)
	enemy := g.enemies.Enemies()[0]

	p := g.Player()
	p.SetType(units.TypeLevel3)
	p.Place(40, 40)
	r := p.Rect()
	g.projectiles = append(g.projectiles, &units.Projectile{
		ID:        7,
		X:         float64(r.X + r.W/2),
		Y:         float64(r.Y - 8),
		Direction: world.DirDown,
		Speed:     units.ShotSpeedNormal,
		Sender:    enemy.ID,
	})

	if !runUntil(g, 60, func() bool { return len(g.Projectiles()) == 0 }) {
		t.Fatal("projectile never resolved")
	}
	if g.Player() != p {
		t.Error("player tank instance replaced on hit")
	}
	if p.Type != units.TypeLevel1 {
		t.Errorf("Type = %v, want LEVEL_1", p.Type)
	}
	if got := p.Cell(); got != (world.Cell{Col: 2, Row: 11}) {
		t.Errorf("Cell = %v, want respawn cell", got)
	}
	if !g.Running() {
		t.Error("player hit ended the battle")
	}
}

func TestFriendlyFireIgnored(t *testing.T) {
	lvl := testLevel(2, func(l *world.Layout) {
		l.EnemySpawns = append(l.EnemySpawns, world.Cell{Col: 10, Row: 0})
	})
	g, _ := newTestGame(t, lvl, testConfig())
	freezeEnemies(g)
	enemies := g.enemies.Enemies()
	if len(enemies) != 2 {
		t.Fatalf("enemies = %d, want 2", len(enemies))
	}
	shooter, target := enemies[0], enemies[1]
	for _, e := range enemies {
		e.Spawning = false
		e.Type = units.TypeEnemySimple
	}
	shooter.Place(80, 16)
	target.Place(40, 40)

	r := target.Rect()
	g.projectiles = append(g.projectiles, &units.Projectile{
		ID:        3,
		X:         float64(r.X + r.W/2),
		Y:         float64(r.Y - 8),
		Direction: world.DirDown,
		Speed:     units.ShotSpeedNormal,
		Sender:    shooter.ID,
	})
	if !runUntil(g, 60, func() bool { return len(g.Projectiles()) == 0 }) {
		t.Fatal("projectile never resolved")
	}
	if _, ok := g.tanks.Get(target.ID); !ok {
		t.Error("enemy destroyed by an ally")
	}
	if g.Score() != 0 {
		t.Errorf("Score = %d, want 0", g.Score())
	}
}

func TestStaleSenderIsHostile(t *testing.T) {
	g, _ := newTestGame(t, testLevel(1, nil), testConfig())
	freezeEnemies(g)
	e := matureEnemy(t, g, 40, 40)

	stale := e.ID + 100
	r := e.Rect()
	g.projectiles = append(g.projectiles, &units.Projectile{
		ID:        3,
		X:         float64(r.X + r.W/2),
		Y:         float64(r.Y - 8),
		Direction: world.DirDown,
		Speed:     units.ShotSpeedNormal,
		Sender:    stale,
	})
	runUntil(g, 60, func() bool { return len(g.Projectiles()) == 0 })
	if _, ok := g.tanks.Get(e.ID); ok {
		t.Fatal("projectile from a removed tank did not damage the enemy")
	}
	if g.Score() != 100 {
		t.Errorf("Score = %d, want 100", g.Score())
	}
}

func TestDestructionBonus(t *testing.T) {
	g, _ := newTestGame(t, testLevel(1, nil), testConfig())
	freezeEnemies(g)
	matureEnemy(t, g, 40, 16)

	g.applyBonus(units.BonusDestruction)

	if n := len(g.enemies.Enemies()); n != 0 {
		t.Fatalf("enemies = %d, want 0", n)
	}
	if g.Score() != 0 {
		t.Errorf("Score = %d, want 0", g.Score())
	}
	if g.Message() == "" {
		t.Error("no message shown")
	}
}

func TestDestructionSparesSpawning(t *testing.T) {
	g, _ := newTestGame(t, testLevel(1, nil), testConfig())
	g.applyBonus(units.BonusDestruction)
	if n := len(g.enemies.Enemies()); n != 1 {
		t.Errorf("enemies = %d, want the spawning one kept", n)
	}
}

func TestTopTankReplacesPlayer(t *testing.T) {
	g, _ := newTestGame(t, testLevel(1, nil), testConfig())
	old := g.Player()
	old.Direction = world.DirRight
	old.Place(40, 48)

	g.applyBonus(units.BonusTopTank)

	p := g.Player()
	if p == old || p.ID == old.ID {
		t.Fatal("player tank not replaced")
	}
	if _, ok := g.tanks.Get(old.ID); ok {
		t.Error("old tank still registered")
	}
	if p.Type != old.Type.Next() {
		t.Errorf("Type = %v, want %v", p.Type, old.Type.Next())
	}
	if p.Rect() != old.Rect() || p.Direction != world.DirRight {
		t.Errorf("rect %v dir %v, want %v right", p.Rect(), p.Direction, old.Rect())
	}
}

func TestSwitchKeepsPlayerInPlace(t *testing.T) {
	tests := []struct {
		name  string
		move  world.Direction
		moved bool
	}{
		{"idle", world.DirNone, false},
		{"driving", world.DirRight, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGame(t, testLevel(1, nil), testConfig())
			freezeEnemies(g)
			old := g.Player()
			before := old.Rect()

			g.SetInput(Input{Move: tt.move, Switch: true})
			g.Update(frame)

			p := g.Player()
			if p == old || p.Type != old.Type.Next() {
				t.Fatalf("player not switched: type %v", p.Type)
			}
			after := p.Rect()
			if after.Y != before.Y {
				t.Errorf("Y = %d, want %d", after.Y, before.Y)
			}
			if tt.moved && after.X <= before.X {
				t.Errorf("X = %d, want > %d", after.X, before.X)
			}
			if !tt.moved && (after.X != before.X || p.Direction != world.DirUp) {
				t.Errorf("rect %v dir %v, want %v up", after, p.Direction, before)
			}
		})
	}
}

func TestProjectilesHitAtLowFrameRate(t *testing.T) {
	t.Run("steel row shields the base", func(t *testing.T) {
		lvl := testLevel(1, func(l *world.Layout) {
			for col := 0; col < l.Cols; col++ {
				l.Tiles[10*l.Cols+col] = world.TileSteel
			}
		})
		g, _ := newTestGame(t, lvl, testConfig())
		freezeEnemies(g)

		bx, _ := g.Base().Rect().Center()
		g.projectiles = append(g.projectiles, &units.Projectile{
			ID:        1,
			X:         float64(bx),
			Y:         77,
			Direction: world.DirDown,
			Speed:     units.ShotSpeedFast,
			Sender:    units.TankID(999),
		})
		for i := 0; i < 5; i++ {
			g.Update(50 * time.Millisecond)
		}

		if g.Base().Broken {
			t.Fatal("shot passed the steel row and broke the base")
		}
		if len(g.Projectiles()) != 0 {
			t.Errorf("projectiles = %d, want 0", len(g.Projectiles()))
		}
		if g.Field().Tile(world.Cell{Col: bx / world.CellSize, Row: 10}) != world.TileSteel {
			t.Error("normal shot broke steel")
		}
	})

	t.Run("tank is not skipped", func(t *testing.T) {
		g, _ := newTestGame(t, testLevel(1, nil), testConfig())
		freezeEnemies(g)
		matureEnemy(t, g, 48, 40)

		g.projectiles = append(g.projectiles, &units.Projectile{
			ID:        1,
			X:         56,
			Y:         30,
			Direction: world.DirDown,
			Speed:     units.ShotSpeedFast,
			Sender:    g.Player().ID,
		})
		g.Update(150 * time.Millisecond)

		if g.Score() != 100 {
			t.Errorf("Score = %d, want 100", g.Score())
		}
		if len(g.Projectiles()) != 0 {
			t.Errorf("projectiles = %d, want 0", len(g.Projectiles()))
		}
	})
}

func TestBonusEffects(t *testing.T) {
	ring := world.Cell{Col: 4, Row: 10}
	lvl := testLevel(1, func(l *world.Layout) {
		l.Tiles[ring.Row*l.Cols+ring.Col] = world.TileBaseWall
	})

	tests := []struct {
		name  string
		bonus units.BonusType
		check func(t *testing.T, g *Game)
	}{
		{"upgrade", units.BonusUpgrade, func(t *testing.T, g *Game) {
			if g.Player().Type != units.TypeLevel2 {
				t.Errorf("Type = %v, want LEVEL_2", g.Player().Type)
			}
		}},
		{"timer", units.BonusTimer, func(t *testing.T, g *Game) {
			if !g.Frozen() {
				t.Error("enemies not frozen")
			}
		}},
		{"stiff base", units.BonusStiffBase, func(t *testing.T, g *Game) {
			if got := g.Field().Tile(ring); got != world.TileSteel {
				t.Errorf("ring tile = %v, want steel", got)
			}
		}},
		{"gun", units.BonusGun, func(t *testing.T, g *Game) {
			if g.Player().Type != units.TypeLevel1 {
				t.Error("GUN changed the tank")
			}
		}},
		{"unknown", units.BonusType(42), func(t *testing.T, g *Game) {
			if g.Message() == "" {
				t.Error("unknown bonus not reported")
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGame(t, lvl, testConfig())
			g.applyBonus(tt.bonus)
			tt.check(t, g)
		})
	}
}

func TestFrozenEnemiesHold(t *testing.T) {
	g, _ := newTestGame(t, testLevel(1, nil), testConfig())
	freezeEnemies(g)
	e := matureEnemy(t, g, 40, 16)
	before := e.Rect()

	for i := 0; i < 120; i++ {
		g.Update(frame)
	}
	if e.Rect() != before {
		t.Errorf("frozen enemy moved from %v to %v", before, e.Rect())
	}
	if len(g.Projectiles()) != 0 {
		t.Errorf("frozen enemy fired %d shots", len(g.Projectiles()))
	}
}

func TestPlayerBlockedByBase(t *testing.T) {
	g, _ := newTestGame(t, testLevel(1, nil), testConfig())
	freezeEnemies(g)
	p := g.Player()
	start := p.Rect()

	g.SetInput(Input{Move: world.DirRight})
	for i := 0; i < 60; i++ {
		g.Update(frame)
	}
	if p.Rect().Intersects(g.Base().Rect()) {
		t.Errorf("player %v drove into base %v", p.Rect(), g.Base().Rect())
	}
	if p.Rect().X <= start.X {
		t.Errorf("player did not move: %v", p.Rect())
	}
}

func TestDeterministicReplay(t *testing.T) {
	run := func() Snapshot {
		g := NewWithOptions(ModeCampaign, Options{Config: testConfig(), Level: testLevel(4, nil)})
		g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 32, TickRate: 60, Seed: 42})
		for i := 0; i < 600; i++ {
			g.Update(frame)
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("replays diverged:\n%+v\n%+v", a, b)
	}
	if a.Ticks != 600 {
		t.Errorf("Ticks = %d, want 600", a.Ticks)
	}
}

func TestSinkErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	sink := &memSink{err: errors.New("disk full")}
	g := NewWithOptions(ModeCampaign, Options{
		Config: testConfig(),
		Level:  testLevel(0, nil),
		Sink:   sink,
		Logger: log.New(&buf),
	})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 32, TickRate: 60, Seed: 1})

	g.Update(frame)
	if !g.Won() {
		t.Fatal("battle not won")
	}
	if !strings.Contains(buf.String(), "disk full") {
		t.Errorf("log = %q, want the sink error", buf.String())
	}
}

func TestStepPauseAndRestart(t *testing.T) {
	g, _ := newTestGame(t, testLevel(0, nil), testConfig())

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	if !g.Paused() {
		t.Fatal("not paused")
	}
	ticks := g.ticks
	g.Step(core.NewInputFrame())
	if g.ticks != ticks {
		t.Error("paused battle advanced")
	}
	g.Step(pause)
	if g.Paused() {
		t.Fatal("still paused")
	}

	g.Step(core.NewInputFrame())
	if g.Running() {
		t.Fatal("zero quota battle still running")
	}

	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	g.Step(restart)
	if !g.Running() || g.Won() {
		t.Errorf("Running = %v, Won = %v after restart", g.Running(), g.Won())
	}
}

func TestSurvivalQuota(t *testing.T) {
	cfg := testConfig()
	cfg.Gameplay.SurvivalEnemies = 7
	g := NewWithOptions(ModeSurvival, Options{Config: cfg, Level: testLevel(1, nil)})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 32, TickRate: 60, Seed: 1})
	if g.ID() != "tanks_survival" {
		t.Errorf("ID = %q", g.ID())
	}
	if g.enemies.Total() != 7 {
		t.Errorf("Total = %d, want 7", g.enemies.Total())
	}
}

func TestMalformedLevelStopsBattle(t *testing.T) {
	lvl := testLevel(1, func(l *world.Layout) { l.PlayerSpawns = nil })
	g := NewWithOptions(ModeCampaign, Options{Config: testConfig(), Level: lvl})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 32, TickRate: 60, Seed: 1})

	if !errors.Is(g.Err(), world.ErrMalformedLevel) {
		t.Fatalf("Err = %v, want ErrMalformedLevel", g.Err())
	}
	g.Step(core.NewInputFrame())
	screen := core.NewScreen(80, 32)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Cannot load level") {
		t.Error("load error not rendered")
	}
}

func TestRender(t *testing.T) {
	g, _ := newTestGame(t, testLevel(1, nil), testConfig())
	screen := core.NewScreen(80, 32)
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "Score: 0") {
		t.Error("HUD missing score")
	}
	if !strings.Contains(out, "Enemies: 1") {
		t.Error("HUD missing enemies left")
	}

	g.Resize(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("small window not reported")
	}
}
