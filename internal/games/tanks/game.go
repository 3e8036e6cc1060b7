// Package tanks implements the tank battle: the per-frame orchestrator that
// ties the field, the tanks, projectiles, bonuses and the enemy AI together.
package tanks

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/ai"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/levels"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/units"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/world"
	"github.com/vovakirdan/tui-tanks/internal/registry"
)

// Mode selects the enemy quota policy.
type Mode int

const (
	ModeCampaign Mode = iota // quota from the level, else the config
	ModeSurvival             // the large fixed survival quota
)

// Settings applied by the CLI before games are created.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	levelID          string
	levelsDir        string
	resultSink       ResultSink
	logger           *log.Logger
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) { configPath = path }

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) { difficultyPreset = config.ParsePreset(preset) }

// SetLevel selects the level ID to play.
func SetLevel(id string) { levelID = id }

// SetLevelsDir adds a directory of level files to the built-in set.
func SetLevelsDir(dir string) { levelsDir = dir }

// SetResultSink sets where finished runs are recorded.
func SetResultSink(s ResultSink) { resultSink = s }

// SetLogger sets the logger new games use.
func SetLogger(l *log.Logger) { logger = l }

// Options pins what a battle is built from. Nil fields fall back to the
// package settings.
type Options struct {
	Config *config.TanksConfig
	Level  *levels.Level
	Sink   ResultSink
	Logger *log.Logger
}

// Input is the per-frame request from the player.
type Input struct {
	Move   world.Direction // DirNone when idle
	Fire   bool
	Switch bool // debug: cycle the player's tank type
}

var (
	baseOccupant = world.Occupant{Kind: world.OccupantBase, ID: 1}
)

func tankOccupant(t *units.Tank) world.Occupant {
	return world.Occupant{Kind: world.OccupantTank, ID: uint32(t.ID)}
}

func projectileOccupant(p *units.Projectile) world.Occupant {
	return world.Occupant{Kind: world.OccupantProjectile, ID: uint32(p.ID)}
}

// Game implements the tank battle.
type Game struct {
	mode Mode
	opts Options

	runtime    core.RuntimeConfig
	cfg        config.TanksConfig
	difficulty *config.DifficultyManager
	level      levels.Level
	log        *log.Logger
	sink       ResultSink
	loadErr    error

	rng       *rand.Rand
	clock     *world.Clock
	field     *world.Field
	protector *world.FieldProtector
	base      *units.Base
	tanks     *units.Registry
	player    *units.Tank
	enemies   *ai.EnemyFraction

	projectiles    []*units.Projectile
	nextProjectile units.ProjectileID
	bonuses        []*units.Bonus
	explosions     []*units.Explosion
	popups         []*units.ScorePopup

	freeze   *world.Timer
	message  string
	msgTimer *world.Timer

	input    Input
	score    int
	ticks    uint64
	running  bool
	paused   bool
	won      bool
	recorded bool

	screenW, screenH int
	tooSmall         bool
}

// New creates a campaign battle.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewSurvival creates a survival battle.
func NewSurvival() *Game {
	return &Game{mode: ModeSurvival}
}

// NewWithOptions creates a battle from fixed options instead of the
// package settings.
func NewWithOptions(mode Mode, opts Options) *Game {
	return &Game{mode: mode, opts: opts}
}

func init() {
	registry.Register("tanks", func() registry.Game {
		return New()
	})
	registry.Register("tanks_survival", func() registry.Game {
		return NewSurvival()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeSurvival {
		return "tanks_survival"
	}
	return "tanks"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeSurvival {
		return "Tanks (Survival)"
	}
	return "Tanks"
}

// Reset loads config and level and starts a new battle.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = 60
	}
	g.runtime = runtime
	g.screenW, g.screenH = runtime.ScreenW, runtime.ScreenH

	g.log = g.opts.Logger
	if g.log == nil {
		g.log = logger
	}
	if g.log == nil {
		g.log = log.New(io.Discard)
	}
	g.sink = g.opts.Sink
	if g.sink == nil {
		g.sink = resultSink
	}

	g.cfg = g.loadConfig()
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	lvl, err := g.loadLevel()
	if err != nil {
		g.fail(err)
		return
	}
	g.level = lvl
	if err := g.start(runtime.Seed); err != nil {
		g.fail(err)
		return
	}
	g.tooSmall = g.screenW < g.minScreenW() || g.screenH < g.minScreenH()
}

func (g *Game) loadConfig() config.TanksConfig {
	if g.opts.Config != nil {
		return *g.opts.Config
	}
	cfg, err := config.LoadTanks(configPath)
	if err != nil {
		g.log.Warn("using default config", "err", err)
		cfg = config.DefaultTanksConfig()
	}
	if difficultyPreset != "" {
		config.ApplyTanksPreset(&cfg, difficultyPreset)
	}
	return cfg
}

func (g *Game) loadLevel() (levels.Level, error) {
	if g.opts.Level != nil {
		return *g.opts.Level, nil
	}
	dir := levelsDir
	if dir == "" {
		dir = g.cfg.Gameplay.LevelsDir
	}
	id := levelID
	if id == "" {
		id = g.cfg.Gameplay.Level
	}
	return levels.NewLoader(dir).LoadByID(id)
}

func (g *Game) fail(err error) {
	g.loadErr = err
	g.field = nil
	g.running = false
	g.log.Error("cannot start battle", "err", err)
}

// quota is the number of enemies this run spawns.
func (g *Game) quota() int {
	if g.mode == ModeSurvival {
		return g.cfg.Gameplay.SurvivalEnemies
	}
	n := g.level.Enemies
	if n <= 0 {
		n = g.cfg.Gameplay.Enemies
	}
	return g.difficulty.Quota(n)
}

func (g *Game) start(seed int64) error {
	field, err := g.level.NewField()
	if err != nil {
		return err
	}

	g.rng = rand.New(rand.NewSource(seed))
	g.clock = world.NewClock()
	g.field = field
	g.protector = world.NewFieldProtector(field, g.clock, g.cfg.Bonuses.Protect)
	g.base = units.NewBase(field)
	g.tanks = units.NewRegistry()

	g.projectiles = nil
	g.nextProjectile = 0
	g.bonuses = nil
	g.explosions = nil
	g.popups = nil
	g.input = Input{Move: world.DirNone}
	g.score = 0
	g.ticks = 0
	g.running = true
	g.paused = false
	g.won = false
	g.recorded = false
	g.loadErr = nil
	g.message = ""

	g.freeze = world.NewTimer(g.clock, g.cfg.Bonuses.Freeze)
	g.freeze.Finish()
	g.msgTimer = world.NewTimer(g.clock, g.cfg.Gameplay.MessageDuration)
	g.msgTimer.Finish()

	g.makePlayer()

	e := g.cfg.Enemies
	g.enemies = ai.NewEnemyFraction(ai.FractionConfig{
		Total:         g.quota(),
		MaxAlive:      e.MaxAlive,
		Increment:     e.Increment,
		Reinforcement: g.difficulty.Reinforcement(e.Reinforcement, 0, 0),
		BonusChance:   e.BonusChance,
		SpawnDelay:    e.SpawnDelay,
		FireInterval:  g.difficulty.FireInterval(e.FireInterval, 0, 0),
		SpawnsPerCall: 2,
	}, g.tanks, g, g.clock, g.rng)

	g.log.Info("battle started", "mode", g.ID(), "level", g.level.ID, "enemies", g.enemies.Total(), "seed", seed)
	return nil
}

func (g *Game) makePlayer() {
	t := units.NewTank(g.clock, units.FractionFriend, units.ColorYellow, units.TypeLevel1)
	g.respawnPlayer(t)
	t.ActivateShield(g.cfg.Gameplay.SpawnShield)
	g.tanks.Add(t)
	g.player = t
}

// respawnPlayer puts the player tank on a random friendly respawn cell as a
// LEVEL_1 tank facing up.
func (g *Game) respawnPlayer(t *units.Tank) {
	points := g.field.RespawnPoints(false)
	t.PlaceAtCell(points[g.rng.Intn(len(points))])
	t.Direction = world.DirUp
	t.SetType(units.TypeLevel1)
}

// SetInput records the player's request for the next Update.
func (g *Game) SetInput(in Input) {
	g.input = in
}

// Step maps platform input onto the battle and advances one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.field == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) && !g.running {
		rt := g.runtime
		rt.Seed++
		g.Reset(rt)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && g.running {
		g.paused = !g.paused
	}

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.SetInput(inputFromFrame(in))
	g.Update(time.Second / time.Duration(g.runtime.TickRate))
	return core.StepResult{State: g.State()}
}

func inputFromFrame(in core.InputFrame) Input {
	out := Input{
		Move:   world.DirNone,
		Fire:   in.Has(core.ActionFire),
		Switch: in.Has(core.ActionSwitch),
	}
	switch {
	case in.Has(core.ActionUp):
		out.Move = world.DirUp
	case in.Has(core.ActionDown):
		out.Move = world.DirDown
	case in.Has(core.ActionLeft):
		out.Move = world.DirLeft
	case in.Has(core.ActionRight):
		out.Move = world.DirRight
	}
	return out
}

// State returns the platform-facing summary.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: !g.running,
		Won:      g.won,
		Paused:   g.paused,
	}
}

// ShowMessage puts text on the HUD for duration; zero means the configured
// default.
func (g *Game) ShowMessage(text string, duration time.Duration) {
	if duration <= 0 {
		duration = g.cfg.Gameplay.MessageDuration
	}
	g.message = text
	g.msgTimer.Delay = duration
	g.msgTimer.Start()
}

// Message returns the HUD message while it is visible.
func (g *Game) Message() string {
	if g.msgTimer == nil || g.msgTimer.Done() {
		return ""
	}
	return g.message
}

// Running reports whether the battle loop is active.
func (g *Game) Running() bool { return g.running }

// GameOver reports whether the base has fallen.
func (g *Game) GameOver() bool { return g.base != nil && g.base.Broken }

// Victory reports whether the quota is exhausted, every enemy is dead and
// the base stands.
func (g *Game) Victory() bool {
	if g.enemies == nil || g.GameOver() {
		return false
	}
	return !g.enemies.HasMore() && len(g.enemies.Enemies()) == 0
}

// Won reports whether the win was announced.
func (g *Game) Won() bool { return g.won }

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool { return g.paused }

// Score returns the running score.
func (g *Game) Score() int { return g.score }

// EnemiesLeft counts enemies still to be destroyed.
func (g *Game) EnemiesLeft() int {
	if g.enemies == nil {
		return 0
	}
	return g.enemies.EnemiesLeft()
}

// Player returns the player's tank.
func (g *Game) Player() *units.Tank { return g.player }

// Tanks returns a snapshot of every tank.
func (g *Game) Tanks() []*units.Tank {
	if g.tanks == nil {
		return nil
	}
	return g.tanks.All()
}

// Projectiles returns the projectiles in flight.
func (g *Game) Projectiles() []*units.Projectile { return g.projectiles }

// Bonuses returns the bonuses lying on the field.
func (g *Game) Bonuses() []*units.Bonus { return g.bonuses }

// Base returns the player's base.
func (g *Game) Base() *units.Base { return g.base }

// Field returns the terrain.
func (g *Game) Field() *world.Field { return g.field }

// Explosions returns the live explosions.
func (g *Game) Explosions() []*units.Explosion { return g.explosions }

// Popups returns the live score popups.
func (g *Game) Popups() []*units.ScorePopup { return g.popups }

// Frozen reports whether a TIMER bonus holds the enemies.
func (g *Game) Frozen() bool { return g.freeze != nil && !g.freeze.Done() }

// Level returns the level being played.
func (g *Game) Level() levels.Level { return g.level }

// Err returns the error that kept the battle from starting, if any.
func (g *Game) Err() error { return g.loadErr }

// ModeFromID maps a registered game ID to its mode.
func ModeFromID(id string) (Mode, bool) {
	switch id {
	case "tanks":
		return ModeCampaign, true
	case "tanks_survival":
		return ModeSurvival, true
	default:
		return ModeCampaign, false
	}
}
