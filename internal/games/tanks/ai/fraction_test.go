package ai

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks/units"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/world"
)

func newFraction(t *testing.T, cfg FractionConfig, spawns []world.Cell) (*EnemyFraction, *units.Registry, *world.Clock) {
	t.Helper()
	bf := openBattlefield(t, 26, 26, func(l *world.Layout) {
		if spawns != nil {
			l.EnemySpawns = spawns
		}
	})
	clock := world.NewClock()
	reg := units.NewRegistry()
	return NewEnemyFraction(cfg, reg, bf, clock, newRng()), reg, clock
}

func TestInitialSpawn(t *testing.T) {
	ef, reg, _ := newFraction(t, DefaultFractionConfig(), nil)

	if ef.Spawned() != 2 {
		t.Fatalf("Expected 2 enemies spawned on construction, got %d", ef.Spawned())
	}
	all := reg.All()
	if all[0].Type != units.TypeEnemySimple || all[1].Type != units.TypeEnemyFast {
		t.Errorf("Queue should start SIMPLE, FAST; got %v, %v", all[0].Type, all[1].Type)
	}
	for _, tank := range all {
		if !tank.Spawning || tank.Fraction != units.FractionEnemy || tank.Color != units.ColorPlain {
			t.Errorf("Unexpected spawned tank %+v", tank)
		}
		if _, ok := ef.AI(tank.ID); !ok {
			t.Errorf("Tank %d has no controller", tank.ID)
		}
	}
	if left := ef.EnemiesLeft(); left != 20 {
		t.Errorf("Expected 20 enemies left, got %d", left)
	}
}

func TestZeroQuota(t *testing.T) {
	cfg := DefaultFractionConfig()
	cfg.Total = 0
	ef, reg, clock := newFraction(t, cfg, nil)

	for i := 0; i < 10; i++ {
		clock.Advance(6 * time.Second)
		ef.Update(frame)
	}
	if ef.Spawned() != 0 || reg.Len() != 0 {
		t.Errorf("Nothing should spawn with a zero quota, spawned=%d", ef.Spawned())
	}
	if ef.HasMore() || ef.EnemiesLeft() != 0 {
		t.Errorf("hasMore=%v left=%d", ef.HasMore(), ef.EnemiesLeft())
	}
}

func TestSpawnCellHeldWhileSpawning(t *testing.T) {
	cfg := DefaultFractionConfig()
	ef, reg, _ := newFraction(t, cfg, []world.Cell{{Col: 0, Row: 0}})

	if ef.Spawned() != 1 {
		t.Fatalf("One spawn cell allows one spawn, got %d", ef.Spawned())
	}
	ef.TryToSpawn()
	if ef.Spawned() != 1 {
		t.Fatalf("Cell is held by a spawning tank, got %d spawns", ef.Spawned())
	}

	first := reg.All()[0]
	reg.Remove(first.ID)
	ef.Forget(first.ID)
	ef.TryToSpawn()
	if ef.Spawned() != 2 {
		t.Errorf("Cell should be free after its tank left, got %d spawns", ef.Spawned())
	}
}

func TestQueueCycles(t *testing.T) {
	cfg := DefaultFractionConfig()
	ef, reg, _ := newFraction(t, cfg, []world.Cell{{Col: 0, Row: 0}})

	var got []units.Type
	for i := 0; i < 6; i++ {
		tank := reg.All()[0]
		got = append(got, tank.Type)
		reg.Remove(tank.ID)
		ef.Forget(tank.ID)
		ef.TryToSpawn()
	}
	want := []units.Type{
		units.TypeEnemySimple, units.TypeEnemyFast, units.TypeEnemyMiddle,
		units.TypeEnemyHeavy, units.TypeEnemySimple, units.TypeEnemyFast,
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Spawn %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestSpawnerInvariants(t *testing.T) {
	cfg := DefaultFractionConfig()
	cfg.Total = 12
	ef, reg, clock := newFraction(t, cfg, nil)

	for i := 0; i < 3000; i++ {
		clock.Advance(frame)
		ef.Update(frame)

		// Destroy an enemy now and then so the quota drains.
		if i%97 == 0 {
			for _, tank := range reg.All() {
				if !tank.Spawning {
					reg.Remove(tank.ID)
					ef.Forget(tank.ID)
					break
				}
			}
		}

		if ef.Spawned() > ef.Total() {
			t.Fatalf("Frame %d: spawned %d exceeds quota %d", i, ef.Spawned(), ef.Total())
		}
		if ef.EnemiesLeft() < 0 {
			t.Fatalf("Frame %d: negative enemies left", i)
		}
		if n := reg.Len(); n > cfg.MaxAlive {
			t.Fatalf("Frame %d: %d enemies alive, cap is %d", i, n, cfg.MaxAlive)
		}
	}
	if ef.Spawned() != ef.Total() {
		t.Errorf("Quota should drain over time, spawned %d of %d", ef.Spawned(), ef.Total())
	}
}

func TestFrozenHoldsEnemies(t *testing.T) {
	ef, reg, clock := newFraction(t, DefaultFractionConfig(), nil)
	clock.Advance(2 * time.Second)
	ef.Update(frame)

	tank := reg.All()[0]
	tank.Hit = true
	tank.WantToFire = true
	tank.BeginFrame()
	x, y := tank.X, tank.Y

	ef.Frozen()
	if tank.WantToFire || tank.Moving() {
		t.Error("Frozen enemies should neither fire nor move")
	}
	if tank.X != x || tank.Y != y {
		t.Error("Frozen enemy moved")
	}
	if !tank.ToDestroy {
		t.Error("Pending hits should still resolve while frozen")
	}
}
