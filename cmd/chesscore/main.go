// Command chesscore is a thin demonstration CLI for the search core: it
// takes a FEN and a depth, runs the search, and prints the best move. It is
// not a UCI engine; it exists only to exercise the external interface
// boundary described alongside the core (FEN in, search result out).
package main

import (
	"flag"
	"log"
	"time"

	"github.com/nullmoveio/chesscore/internal/board"
	"github.com/nullmoveio/chesscore/internal/engine"
)

func main() {
	fen := flag.String("fen", board.StartFEN, "FEN of the position to search")
	depth := flag.Int("depth", 7, "maximum search depth")
	moveTime := flag.Duration("movetime", 2*time.Second, "time budget for the search")
	hashMB := flag.Int("hash", 64, "transposition table size in MB")
	flag.Parse()

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		log.Fatalf("invalid FEN: %v", err)
	}

	eng := engine.NewEngine(*hashMB)

	start := time.Now()
	move := eng.SearchWithLimits(pos, engine.SearchLimits{
		Depth:    *depth,
		MoveTime: *moveTime,
	})
	elapsed := time.Since(start)

	if move == board.NoMove {
		log.Printf("no legal move found (checkmate or stalemate)")
		return
	}

	log.Printf("bestmove %s (%s)", move.String(), elapsed)
}
