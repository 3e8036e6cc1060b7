package tanks

import (
	"context"
	"time"
)

// Outcome is how a battle ended.
type Outcome string

const (
	OutcomeWin  Outcome = "WIN"
	OutcomeLose Outcome = "LOSE"
)

// Result is the record written once per finished battle.
type Result struct {
	At      time.Time
	Outcome Outcome
	Score   int
	Mode    string
	Level   string
}

// ResultSink stores finished battles. Failures are logged and ignored.
type ResultSink interface {
	SaveResult(ctx context.Context, r Result) error
}

// now is replaced in tests.
var now = time.Now

func (g *Game) lose() {
	g.ShowMessage("GAME OVER", 0)
	g.record(OutcomeLose)
}

func (g *Game) win() {
	if g.won {
		return
	}
	g.won = true
	g.enemies.Halt()
	g.ShowMessage("YOU WIN!", 0)
	g.record(OutcomeWin)
}

func (g *Game) record(outcome Outcome) {
	if g.recorded {
		return
	}
	g.recorded = true

	r := Result{
		At:      now().UTC(),
		Outcome: outcome,
		Score:   g.score,
		Mode:    g.ID(),
		Level:   g.level.ID,
	}
	g.log.Info("battle finished", "outcome", r.Outcome, "score", r.Score, "level", r.Level)
	if g.sink == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := g.sink.SaveResult(ctx, r); err != nil {
		g.log.Error("saving result", "err", err)
	}
}
