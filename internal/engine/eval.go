package engine

import (
	"github.com/nullmoveio/chesscore/internal/board"
)

// Material values in centipawns, kept identical to board.PieceValue so the
// move sorter and the evaluator never disagree about what a piece is worth.
var pieceValues = [7]int{100, 300, 320, 500, 900, 500000, 0}

// mobilityWeight is the bonus per legal move available to the side to move.
const mobilityWeight = 2

// Pawn PST - encourages center control and advancement
var pawnPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	50, 50, 50, 50, 50, 50, 50, 50,
	10, 10, 20, 30, 30, 20, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, -5, -10, 0, 0, -10, -5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

// Knight PST - discourages rim/corner placement
var knightPST = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

// Bishop PST - rewards long diagonals
var bishopPST = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

// Rook PST - rewards open files and the seventh rank
var rookPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0,
}

// Queen PST - slight central preference
var queenPST = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

// King PST - encourages castling and staying out of the center. One table
// for both phases: the spec calls for "a per-piece 8x8 positional bonus",
// not a midgame/endgame taper.
var kingPST = [64]int{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	20, 20, 0, 0, 0, 0, 20, 20,
	20, 30, 10, 0, 0, 10, 30, 20,
}

// psts indexes by board.PieceType; King uses kingPST directly in Evaluate.
var psts = [...][64]int{
	pawnPST, knightPST, bishopPST, rookPST, queenPST, kingPST,
}

// Evaluate returns the static evaluation of pos in centipawns from the
// perspective of the side to move: material plus piece-square placement
// plus a mobility bonus proportional to the side to move's legal move count.
func Evaluate(pos *board.Position) int {
	return EvaluateWithMobility(pos, pos.GenerateLegalMoves().Len())
}

// EvaluateWithMobility is like Evaluate but takes a caller-supplied legal
// move count, letting search reuse the move list it already generated at
// this node instead of generating it twice.
func EvaluateWithMobility(pos *board.Position, mobilityCount int) int {
	var score int

	for c := board.White; c <= board.Black; c++ {
		sign := 1
		if c == board.Black {
			sign = -1
		}

		for pt := board.Pawn; pt <= board.King; pt++ {
			bb := pos.Pieces[c][pt]
			for bb != 0 {
				sq := bb.PopLSB()

				score += sign * pieceValues[pt]

				pstSq := sq
				if c == board.Black {
					pstSq = sq.Mirror()
				}
				if pt == board.King {
					score += sign * kingPST[pstSq]
				} else {
					score += sign * psts[pt][pstSq]
				}
			}
		}
	}

	mobilitySign := 1
	if pos.SideToMove == board.Black {
		mobilitySign = -1
	}
	score += mobilitySign * mobilityWeight * mobilityCount

	if pos.SideToMove == board.Black {
		return -score
	}
	return score
}
