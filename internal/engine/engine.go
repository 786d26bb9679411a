package engine

import (
	"time"

	"github.com/nullmoveio/chesscore/internal/board"
)

// SearchLimits specifies constraints on a search.
type SearchLimits struct {
	Depth    int           // Maximum depth (0 = MaxPly)
	MoveTime time.Duration // Time budget for this move (0 = no time limit)
}

// Difficulty is an AI strength preset, recovered from the original engine's
// difficulty levels: depth and time budget scale together.
type Difficulty int

const (
	Easy   Difficulty = iota // shallow, fast
	Medium                   // moderate depth and time
	Hard                     // full depth, generous time budget
)

// DifficultySettings maps a Difficulty to the SearchLimits it applies.
var DifficultySettings = map[Difficulty]SearchLimits{
	Easy:   {Depth: 3, MoveTime: 500 * time.Millisecond},
	Medium: {Depth: 7, MoveTime: 2 * time.Second},
	Hard:   {Depth: MaxPly, MoveTime: 10 * time.Second},
}

// Engine wraps a Searcher and a TranspositionTable with a difficulty preset,
// presenting the single-threaded search core described in §4.9/§5. One
// Engine instance should be used for one game; it is not safe for
// concurrent use by more than one caller at a time.
type Engine struct {
	tt         *TranspositionTable
	searcher   *Searcher
	difficulty Difficulty
}

// NewEngine creates a new Engine with a transposition table of the given
// size in MB.
func NewEngine(ttSizeMB int) *Engine {
	tt := NewTranspositionTable(ttSizeMB)
	return &Engine{
		tt:         tt,
		searcher:   NewSearcher(tt),
		difficulty: Medium,
	}
}

// SetDifficulty sets the engine's strength preset.
func (e *Engine) SetDifficulty(d Difficulty) {
	e.difficulty = d
}

// SetPositionHistory seeds the search's repetition table with the game's
// hash history, per §4.8: positions that repeated earlier in the real game
// must be visible to the search's twofold-repetition check.
func (e *Engine) SetPositionHistory(hashes []uint64) {
	e.searcher.LoadRepetitionHistory(hashes)
}

// Search finds the best move for pos using the engine's current difficulty.
func (e *Engine) Search(pos *board.Position) board.Move {
	return e.SearchWithLimits(pos, DifficultySettings[e.difficulty])
}

// SearchWithLimits finds the best move for pos under explicit limits,
// running iterative deepening up to the depth or time budget, whichever
// triggers first.
func (e *Engine) SearchWithLimits(pos *board.Position, limits SearchLimits) board.Move {
	e.tt.NewSearch()

	maxDepth := limits.Depth
	if maxDepth <= 0 {
		maxDepth = MaxPly
	}

	if limits.MoveTime > 0 {
		e.searcher.SetStopper(NewTimeBudgetStopper(limits.MoveTime))
	} else {
		e.searcher.SetStopper(NewManualStopper())
	}

	move, _ := e.searcher.Run(*pos, maxDepth)
	return move
}

// Stop aborts the current search.
func (e *Engine) Stop() {
	e.searcher.Stop()
}

// Clear clears the transposition table. The searcher's move-ordering
// tables are not touched here.
func (e *Engine) Clear() {
	e.tt.Clear()
}

// Perft performs a perft test (used for validating move generation).
func (e *Engine) Perft(pos *board.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := pos.GenerateLegalMoves()
	if depth == 1 {
		return uint64(moves.Len())
	}

	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		move := moves.Get(i)
		undo := pos.MakeMove(move)
		nodes += e.Perft(pos, depth-1)
		pos.UnmakeMove(move, undo)
	}

	return nodes
}

// Evaluate returns the static evaluation of a position.
func (e *Engine) Evaluate(pos *board.Position) int {
	return Evaluate(pos)
}

// ScoreToString converts a centipawn score to a human-readable string,
// recognising mate scores.
func ScoreToString(score int) string {
	if score > MateScore-MaxPly {
		mateIn := (MateScore - score + 1) / 2
		return "Mate in " + itoa(mateIn)
	}
	if score < -MateScore+MaxPly {
		mateIn := (MateScore + score + 1) / 2
		return "Mated in " + itoa(mateIn)
	}

	sign := ""
	if score < 0 {
		sign = "-"
		score = -score
	}
	pawns := score / 100
	centipawns := score % 100

	return sign + itoa(pawns) + "." + itoa(centipawns)
}

// itoa avoids pulling in fmt/strconv for this one conversion, matching the
// original engine's preference for a tiny hand-rolled helper here.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	if n < 0 {
		return "-" + itoa(-n)
	}
	s := ""
	for n > 0 {
		s = string('0'+byte(n%10)) + s
		n /= 10
	}
	return s
}
