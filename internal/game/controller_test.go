package game

import (
	"context"
	"testing"

	"github.com/nullmoveio/chesscore/internal/board"
	"github.com/nullmoveio/chesscore/internal/engine"
)

func newTestController(t *testing.T, fenStr string) *Controller {
	t.Helper()
	var pos *board.Position
	if fenStr == "" {
		pos = board.NewPosition()
	} else {
		var err error
		pos, err = board.ParseFEN(fenStr)
		if err != nil {
			t.Fatalf("ParseFEN: %v", err)
		}
	}
	return NewController(pos, engine.NewEngine(4))
}

func TestMakeHumanMoveLegal(t *testing.T) {
	c := newTestController(t, "")

	m, err := board.ParseMove("e2e4", c.Position())
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}

	if err := c.MakeHumanMove(m); err != nil {
		t.Fatalf("MakeHumanMove: %v", err)
	}
	if c.Position().SideToMove != board.Black {
		t.Error("expected side to move to flip to black")
	}
}

func TestMakeHumanMoveIllegal(t *testing.T) {
	c := newTestController(t, "")

	illegal := board.NewMove(board.E2, board.E5)
	if err := c.MakeHumanMove(illegal); err == nil {
		t.Error("expected an error for an illegal move")
	}
}

func TestMakeAIMoveFindsMate(t *testing.T) {
	c := newTestController(t, "6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	c.engine.SetDifficulty(engine.Easy)

	move, err := c.MakeAIMove(context.Background())
	if err != nil {
		t.Fatalf("MakeAIMove: %v", err)
	}
	if move == board.NoMove {
		t.Fatal("expected a move, got NoMove")
	}
	if !c.IsCheckmate() {
		t.Errorf("expected checkmate after %v, position is not checkmate", move)
	}
}

func TestIsGameOverStalemate(t *testing.T) {
	c := newTestController(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")

	if !c.IsStalemate() {
		t.Fatal("expected stalemate")
	}
	if !c.IsGameOver() {
		t.Error("expected IsGameOver to report true on stalemate")
	}
}

func TestIsInsufficientMaterialKNNvsK(t *testing.T) {
	c := newTestController(t, "8/8/8/4k3/8/4K3/8/2N1N3 w - - 0 1")

	if !c.IsInsufficientMaterial() {
		t.Error("KNN vs K should be treated as insufficient material")
	}
}

func TestIsInsufficientMaterialKBNvsKB(t *testing.T) {
	// White has two minor pieces (knight and bishop), black has one
	// (bishop): not insufficient, since white has more than one minor.
	c := newTestController(t, "8/8/8/2bk4/8/1N1K4/8/3B4 w - - 0 1")

	if c.IsInsufficientMaterial() {
		t.Error("KBN vs KB should not be insufficient (white has two minors)")
	}
}

func TestSAN(t *testing.T) {
	c := newTestController(t, "")

	m, err := board.ParseMove("g1f3", c.Position())
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if got := c.SAN(m); got != "Nf3" {
		t.Errorf("SAN(g1f3) = %q, want %q", got, "Nf3")
	}

	mate := newTestController(t, "6k1/5ppp/R7/8/8/8/5PPP/6K1 w - - 0 1")
	mm, err := board.ParseMove("a6a8", mate.Position())
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if got := mate.SAN(mm); got != "Ra8#" {
		t.Errorf("SAN(a6a8) = %q, want %q", got, "Ra8#")
	}
}

func TestThreefoldRepetition(t *testing.T) {
	c := newTestController(t, "")

	moves := []string{"g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6", "f3g1", "f6g8"}
	for _, s := range moves {
		m, err := board.ParseMove(s, c.Position())
		if err != nil {
			t.Fatalf("ParseMove(%s): %v", s, err)
		}
		if err := c.MakeHumanMove(m); err != nil {
			t.Fatalf("MakeHumanMove(%s): %v", s, err)
		}
	}

	if !c.IsThreefoldRepetition() {
		t.Error("expected threefold repetition after returning to the start position three times")
	}
}
