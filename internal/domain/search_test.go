package domain

import (
	"context"
	"errors"
	"testing"
)

func machineFirst(t *testing.T, opts ...Option) *Board {
	t.Helper()
	return newTestBoard(t, opts...).withMover(Machine)
}

func TestMachineOpensInCentre(t *testing.T) {
	b := machineFirst(t, WithLevel(1))

	next, ok, err := b.MachineMove(context.Background())
	if err != nil || !ok {
		t.Fatalf("MachineMove: ok=%v err=%v", ok, err)
	}
	if got, _ := next.Slot(Rows-1, 3); got != Machine {
		t.Fatalf("expected machine token at bottom of column 3:\n%s", next)
	}
	if next.ToMove() != Human || next.Tokens() != 1 {
		t.Fatalf("expected human to move after one token, got %s with %d tokens", next.ToMove(), next.Tokens())
	}
}

func TestAnalyzeEmptyBoard(t *testing.T) {
	a, err := machineFirst(t, WithLevel(1)).Analyze(context.Background())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	w := DefaultWeights()
	for col, score := range a.Scores {
		if score == nil {
			t.Fatalf("column %d has no score", col)
		}
		if want := w.Offset + w.ColumnWeights[col]; *score != want {
			t.Fatalf("column %d: expected %d, got %d", col, want, *score)
		}
	}
	if a.Column != 3 {
		t.Fatalf("expected column 3, got %d", a.Column)
	}
	if a.Nodes != 1+Columns {
		t.Fatalf("expected %d nodes, got %d", 1+Columns, a.Nodes)
	}

	deeper, err := machineFirst(t, WithLevel(2)).Analyze(context.Background())
	if err != nil {
		t.Fatalf("Analyze level 2: %v", err)
	}
	if want := 1 + Columns + Columns*Columns; deeper.Nodes != want {
		t.Fatalf("expected %d nodes at level 2, got %d", want, deeper.Nodes)
	}
}

func TestSearchTieBreaksLeftmost(t *testing.T) {
	w := DefaultWeights()
	w.ColumnWeights = [Columns]int{}

	a, err := machineFirst(t, WithLevel(1), WithWeights(w)).Analyze(context.Background())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if a.Column != 0 {
		t.Fatalf("expected leftmost column on a tie, got %d (scores %v)", a.Column, a.Scores)
	}
}

func TestSearchIsDeterministic(t *testing.T) {
	b := playColumns(t, newTestBoard(t, WithLevel(3)), 3, 2, 4, 4, 1)

	first, err := b.Analyze(context.Background())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := b.Analyze(context.Background())
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		if again.Column != first.Column || again.Nodes != first.Nodes {
			t.Fatalf("run %d: expected column %d/%d nodes, got %d/%d", i, first.Column, first.Nodes, again.Column, again.Nodes)
		}
		for col := range first.Scores {
			if (first.Scores[col] == nil) != (again.Scores[col] == nil) {
				t.Fatalf("run %d: column %d presence differs", i, col)
			}
			if first.Scores[col] != nil && *first.Scores[col] != *again.Scores[col] {
				t.Fatalf("run %d: column %d score %d, then %d", i, col, *first.Scores[col], *again.Scores[col])
			}
		}
	}
}

func TestMachineTakesImmediateWin(t *testing.T) {
	b := boardFromRows(t, Machine,
		". . . . . . .",
		". . . . . . .",
		". . . . . . .",
		". . . . . . .",
		"X X X . . . .",
		"O O O . . . X",
	)

	for level := 1; level <= 3; level++ {
		leveled, err := b.SetLevel(level)
		if err != nil {
			t.Fatalf("SetLevel(%d): %v", level, err)
		}
		next, ok, err := leveled.MachineMove(context.Background())
		if err != nil || !ok {
			t.Fatalf("level %d: ok=%v err=%v", level, ok, err)
		}
		if next.Winner() != Machine {
			t.Fatalf("level %d: expected machine to win:\n%s", level, next)
		}
	}
}

func TestMachineBlocksHumanWin(t *testing.T) {
	b := boardFromRows(t, Machine,
		". . . . . . .",
		". . . . . . .",
		". . . . . . .",
		". . . . . . .",
		"O O . . . . .",
		"X X X . . . .",
	)
	b, err := b.SetLevel(2)
	if err != nil {
		t.Fatalf("SetLevel: %v", err)
	}

	a, err := b.Analyze(context.Background())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if a.Column != 3 {
		t.Fatalf("expected block in column 3, got %d (scores %v)", a.Column, a.Scores)
	}
}

func TestAnalyzeSkipsFullColumns(t *testing.T) {
	b := playColumns(t, newTestBoard(t, WithLevel(1)), 0, 0, 0, 0, 0, 0, 6)

	a, err := b.Analyze(context.Background())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if a.Scores[0] != nil {
		t.Fatalf("full column 0 must have no score, got %d", *a.Scores[0])
	}
	if a.Column == 0 {
		t.Fatalf("search picked the full column")
	}
}

func TestSearchHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := machineFirst(t, WithLevel(MaxLevel))
	if _, _, err := b.MachineMove(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := b.Analyze(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestAnalyzeRequiresMachineTurn(t *testing.T) {
	b := playColumns(t, newTestBoard(t), 3, 3)
	if _, err := b.Analyze(context.Background()); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
}
