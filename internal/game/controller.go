// Package game implements GameController: the glue between a Position, the
// search engine, and the move-history bookkeeping needed for threefold
// repetition and fifty-move-rule detection. None of this lives in the core
// (internal/board, internal/engine); it is the "ofstream-equivalent history
// log... glued here" described alongside the core.
package game

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/nullmoveio/chesscore/internal/board"
	"github.com/nullmoveio/chesscore/internal/engine"
)

// ErrIllegalMove is returned by MakeHumanMove when the move is not a
// member of the current legal move list.
var ErrIllegalMove = errors.New("game: illegal move")

// ErrNoLegalMoves is returned by MakeAIMove when the engine has nothing to
// play, which should only happen if the caller failed to check IsGameOver
// first.
var ErrNoLegalMoves = errors.New("game: no legal moves available")

// Controller owns a Position and an Engine, and tracks the game's hash
// history to answer threefold-repetition questions that the core itself
// does not track. The fifty-move rule is read from the position's
// half-move clock.
type Controller struct {
	pos    *board.Position
	engine *engine.Engine
	hashes []uint64 // every position hash seen this game, oldest first
}

// NewController starts a game from pos with the given engine.
func NewController(pos *board.Position, eng *engine.Engine) *Controller {
	return &Controller{
		pos:    pos,
		engine: eng,
		hashes: []uint64{pos.Hash},
	}
}

// Position returns the current position. Callers must not mutate it.
func (c *Controller) Position() *board.Position {
	return c.pos
}

// LegalMoves returns the legal moves available to the side to move.
func (c *Controller) LegalMoves() *board.MoveList {
	return c.pos.GenerateLegalMoves()
}

// SAN returns m in Standard Algebraic Notation, as it would read in the
// current position. m must not have been applied yet.
func (c *Controller) SAN(m board.Move) string {
	return m.ToSAN(c.pos)
}

// MakeHumanMove validates m against the current legal move list, applies
// it, and records the resulting hash for repetition detection.
func (c *Controller) MakeHumanMove(m board.Move) error {
	legal := c.pos.GenerateLegalMoves()
	if !legal.Contains(m) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}

	c.pos.MakeMove(m)
	c.hashes = append(c.hashes, c.pos.Hash)
	return nil
}

// MakeAIMove runs the engine's search on a worker goroutine per §5 (the
// search owns a by-value copy of the position while this controller's copy
// stays untouched until the move is known), applies the resulting move,
// and records its hash. ctx cancellation stops the search early; the best
// move found by the last fully-completed depth is still applied.
func (c *Controller) MakeAIMove(ctx context.Context) (board.Move, error) {
	c.engine.SetPositionHistory(c.hashes)

	posSnapshot := c.pos.Copy()

	var move board.Move
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		move = c.engine.Search(posSnapshot)
		return nil
	})

	go func() {
		<-ctx.Done()
		c.engine.Stop()
	}()

	if err := g.Wait(); err != nil {
		return board.NoMove, err
	}
	if move == board.NoMove {
		return board.NoMove, ErrNoLegalMoves
	}

	c.pos.MakeMove(move)
	c.hashes = append(c.hashes, c.pos.Hash)
	return move, nil
}

// IsCheckmate reports whether the side to move is checkmated.
func (c *Controller) IsCheckmate() bool {
	return c.pos.IsCheckmate()
}

// IsStalemate reports whether the side to move is stalemated.
func (c *Controller) IsStalemate() bool {
	return c.pos.IsStalemate()
}

// IsThreefoldRepetition reports whether the current position's hash has
// occurred three or more times in the game's history.
func (c *Controller) IsThreefoldRepetition() bool {
	count := 0
	current := c.pos.Hash
	for _, h := range c.hashes {
		if h == current {
			count++
			if count >= 3 {
				return true
			}
		}
	}
	return false
}

// IsFiftyMoveRule reports whether the fifty-move rule has been reached.
func (c *Controller) IsFiftyMoveRule() bool {
	return c.pos.HalfMoveClock >= 100
}

// IsInsufficientMaterial reports whether neither side has mating material:
// no pawns, rooks, or queens anywhere, and each side has at most one minor
// piece -- with the single exception that two knights against a bare king
// (KNN vs K) is also treated as insufficient, though that case is debated
// among rule sets.
func (c *Controller) IsInsufficientMaterial() bool {
	pos := c.pos
	if pos.Pieces[board.White][board.Pawn]|pos.Pieces[board.Black][board.Pawn] != 0 ||
		pos.Pieces[board.White][board.Rook]|pos.Pieces[board.Black][board.Rook] != 0 ||
		pos.Pieces[board.White][board.Queen]|pos.Pieces[board.Black][board.Queen] != 0 {
		return false
	}

	whiteMinors := pos.Pieces[board.White][board.Knight].PopCount() + pos.Pieces[board.White][board.Bishop].PopCount()
	blackMinors := pos.Pieces[board.Black][board.Knight].PopCount() + pos.Pieces[board.Black][board.Bishop].PopCount()

	if whiteMinors <= 1 && blackMinors <= 1 {
		return true
	}

	// KNN vs K.
	if whiteMinors == 2 && pos.Pieces[board.White][board.Bishop] == 0 && blackMinors == 0 {
		return true
	}
	if blackMinors == 2 && pos.Pieces[board.Black][board.Bishop] == 0 && whiteMinors == 0 {
		return true
	}

	return false
}

// IsGameOver reports whether the game has reached a terminal state, per
// §4.11: checkmate, stalemate, threefold repetition, the fifty-move rule,
// or insufficient material.
func (c *Controller) IsGameOver() bool {
	if c.pos.GenerateLegalMoves().Len() == 0 {
		return true // checkmate or stalemate
	}
	return c.IsThreefoldRepetition() || c.IsFiftyMoveRule() || c.IsInsufficientMaterial()
}
