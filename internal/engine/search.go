package engine

import (
	"log"

	"github.com/nullmoveio/chesscore/internal/board"
)

// Search constants
const (
	Infinity  = 30000
	MateScore = 29000
	MaxPly    = 128
)

// nodePollInterval is how often the search polls the SearchStopper, in
// nodes. Cheap atomic load, throttled so it never shows up in profiles.
const nodePollInterval = 2048

// PVTable stores the principal variation.
type PVTable struct {
	length [MaxPly]int
	moves  [MaxPly][MaxPly]board.Move
}

// Searcher performs the negamax alpha-beta search with quiescence and
// iterative deepening. One Searcher is meant to own one Position for the
// duration of a search; it is not safe for concurrent use.
type Searcher struct {
	pos        *board.Position
	tt         *TranspositionTable
	orderer    *MoveOrderer
	stopper    SearchStopper
	repetition *board.RepetitionTable

	nodes uint64
	pv    PVTable

	undoStack [MaxPly]board.UndoInfo
}

// NewSearcher creates a new searcher backed by the given transposition
// table. The default stopper is a ManualStopper; callers wanting a time
// budget should call SetStopper.
func NewSearcher(tt *TranspositionTable) *Searcher {
	return &Searcher{
		tt:         tt,
		orderer:    NewMoveOrderer(),
		stopper:    NewManualStopper(),
		repetition: board.NewRepetitionTable(),
	}
}

// SetStopper installs the SearchStopper used to cancel this search.
func (s *Searcher) SetStopper(stopper SearchStopper) {
	s.stopper = stopper
}

// LoadRepetitionHistory seeds the search's repetition table with the real
// game's hash history (oldest first) so that repeating a position that
// already occurred earlier in the game is caught mid-search, not just
// repetitions internal to the search tree.
func (s *Searcher) LoadRepetitionHistory(hashes []uint64) {
	s.repetition.Clear()
	for _, h := range hashes {
		s.repetition.Push(h)
	}
}

// Stop aborts any in-progress search.
func (s *Searcher) Stop() {
	s.stopper.Abort()
}

// Reset prepares the searcher for a new search, clearing node count and
// move-ordering tables but leaving the repetition history untouched.
func (s *Searcher) Reset() {
	s.stopper.Reset()
	s.nodes = 0
	s.orderer.Clear()
}

// Nodes returns the number of nodes searched.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// Search performs a single fixed-depth search from pos and returns the
// best move found together with its score. Run does not call it; Run's
// iterative-deepening loop calls negamax directly.
func (s *Searcher) Search(pos *board.Position, depth int) (board.Move, int) {
	s.pos = pos.Copy()
	s.Reset()

	score := s.negamax(depth, 0, -Infinity, Infinity)

	var bestMove board.Move
	if s.pv.length[0] > 0 {
		bestMove = s.pv.moves[0][0]
	}

	return bestMove, score
}

// Run performs iterative deepening up to max_depth, per §4.9: pos is taken
// by value because search runs on a worker thread while the caller may
// still be reading the live game position. Only fully-completed depths are
// committed; a depth aborted mid-search never overwrites the previous
// depth's result.
func (s *Searcher) Run(pos board.Position, maxDepth int) (board.Move, int) {
	s.pos = &pos
	s.Reset()

	var bestMove board.Move
	var bestScore int

	for depth := 1; depth <= maxDepth; depth++ {
		s.pv = PVTable{}
		score := s.negamax(depth, 0, -Infinity, Infinity)

		if s.stopper.IsStopped() {
			break
		}

		if s.pv.length[0] > 0 {
			bestMove = s.pv.moves[0][0]
		}
		bestScore = score

		log.Printf("depth %d, nodes %d, score cp %d", depth, s.nodes, score)
	}

	return bestMove, bestScore
}

// negamax implements negamax with alpha-beta pruning, a transposition
// table, and repetition detection, per §4.9.
func (s *Searcher) negamax(depth, ply int, alpha, beta int) int {
	if s.nodes%nodePollInterval == 0 && s.stopper.IsStopped() {
		return 0
	}
	s.nodes++

	s.pv.length[ply] = ply
	origAlpha := alpha

	var ttMove board.Move
	if entry, found := s.tt.Probe(s.pos.Hash); found {
		ttMove = entry.BestMove
	}
	if ply > 0 {
		if entry, ok := s.tt.Lookup(s.pos.Hash, depth); ok {
			score := AdjustScoreFromTT(int(entry.Score), ply)
			switch entry.Flag {
			case TTExact:
				return score
			case TTLowerBound:
				if score >= beta {
					return score
				}
			case TTUpperBound:
				if score <= alpha {
					return score
				}
			}
		}
	}

	if depth <= 0 {
		return s.quiescence(ply, alpha, beta)
	}

	if ply > 0 && s.repetition.Contains(s.pos.Hash) {
		return 0
	}

	s.repetition.Push(s.pos.Hash)

	inCheck := s.pos.InCheck()
	moves := s.pos.GeneratePseudoLegalMoves()
	scores := s.orderer.ScoreMoves(s.pos, moves, ply, ttMove)

	bestScore := -Infinity
	bestMove := board.NoMove
	legalMoves := 0

	for i := 0; i < moves.Len(); i++ {
		PickMove(moves, scores, i)
		move := moves.Get(i)

		if !s.pos.IsLegal(move) {
			continue
		}
		legalMoves++

		s.undoStack[ply] = s.pos.MakeMove(move)
		if !s.undoStack[ply].Valid {
			continue
		}

		score := -s.negamax(depth-1, ply+1, -beta, -alpha)

		s.pos.UnmakeMove(move, s.undoStack[ply])

		if s.stopper.IsStopped() {
			s.repetition.Pop()
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = move
		}

		if score > alpha {
			alpha = score

			s.pv.moves[ply][ply] = move
			for j := ply + 1; j < s.pv.length[ply+1]; j++ {
				s.pv.moves[ply][j] = s.pv.moves[ply+1][j]
			}
			s.pv.length[ply] = s.pv.length[ply+1]

			if score >= beta {
				s.tt.Store(s.pos.Hash, depth, AdjustScoreToTT(score, ply), TTLowerBound, bestMove)
				s.repetition.Pop()

				if !move.IsCapture(s.pos) {
					s.orderer.UpdateKillers(move, ply)
					s.orderer.UpdateHistory(move, depth, true)
				}
				return beta
			}
		}
	}

	s.repetition.Pop()

	if legalMoves == 0 {
		if inCheck {
			return -MateScore + ply
		}
		return 0
	}

	flag := TTExact
	if bestScore <= origAlpha {
		flag = TTUpperBound
	}
	s.tt.Store(s.pos.Hash, depth, AdjustScoreToTT(bestScore, ply), flag, bestMove)

	return alpha
}

// quiescence searches only captures to avoid the horizon effect, per §4.9.
func (s *Searcher) quiescence(ply int, alpha, beta int) int {
	standPat := Evaluate(s.pos)
	if standPat >= beta {
		return standPat
	}
	if standPat > alpha {
		alpha = standPat
	}

	if s.nodes%nodePollInterval == 0 && s.stopper.IsStopped() {
		return 0
	}
	s.nodes++

	if ply >= MaxPly {
		return alpha
	}

	if s.repetition.Contains(s.pos.Hash) {
		return 0
	}

	// Delta pruning: skip captures that can't plausibly raise alpha.
	queenValue := board.PieceValue[board.Queen]
	if standPat+queenValue < alpha {
		return alpha
	}

	moves := s.pos.GenerateCaptures()
	scores := s.orderer.ScoreMoves(s.pos, moves, ply, board.NoMove)

	for i := 0; i < moves.Len(); i++ {
		PickMove(moves, scores, i)
		move := moves.Get(i)

		if !s.pos.InCheck() {
			captureValue := 0
			if move.IsEnPassant() {
				captureValue = board.PieceValue[board.Pawn]
			} else if captured := s.pos.PieceAt(move.To()); captured != board.NoPiece {
				captureValue = board.PieceValue[captured.Type()]
			}
			if move.IsPromotion() {
				captureValue += board.PieceValue[board.Queen] - board.PieceValue[board.Pawn]
			}
			if standPat+captureValue+200 < alpha {
				continue
			}
		}

		undo := s.pos.MakeMove(move)
		if !undo.Valid {
			continue
		}

		score := -s.quiescence(ply+1, -beta, -alpha)
		s.pos.UnmakeMove(move, undo)

		if s.stopper.IsStopped() {
			return 0
		}

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

// GetPV returns the principal variation from the last search.
func (s *Searcher) GetPV() []board.Move {
	pv := make([]board.Move, s.pv.length[0])
	for i := 0; i < s.pv.length[0]; i++ {
		pv[i] = s.pv.moves[0][i]
	}
	return pv
}
