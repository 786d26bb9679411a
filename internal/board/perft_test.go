package board

import "testing"

// perft counts the number of leaf nodes at the given depth. This is the
// standard way to verify move generation correctness.
func perft(p *Position, depth int) int64 {
	if depth == 0 {
		return 1
	}

	moves := p.GenerateLegalMoves()
	if depth == 1 {
		return int64(moves.Len())
	}

	var nodes int64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := p.MakeMove(m)
		nodes += perft(p, depth-1)
		p.UnmakeMove(m, undo)
	}
	return nodes
}

func TestPerftStartingPosition(t *testing.T) {
	pos := NewPosition()

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
		{5, 4865609},
		{6, 119060324},
	}

	for _, tc := range tests {
		if tc.depth >= 6 && testing.Short() {
			continue
		}
		t.Run("", func(t *testing.T) {
			got := perft(pos, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftKiwipete exercises castling, en-passant, and promotion together.
// FEN: r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -
func TestPerftKiwipete(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
		{4, 4085603},
		{5, 193690690},
	}

	for _, tc := range tests {
		if tc.depth >= 5 && testing.Short() {
			continue
		}
		t.Run("", func(t *testing.T) {
			got := perft(pos, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftPosition3 exercises en-passant edge cases.
// FEN: 8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -
func TestPerftPosition3(t *testing.T) {
	pos, err := ParseFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
		{4, 43238},
		{5, 674624},
		{6, 11030083},
	}

	for _, tc := range tests {
		if tc.depth >= 5 && testing.Short() {
			continue
		}
		t.Run("", func(t *testing.T) {
			got := perft(pos, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftEnPassantPin covers the specific en-passant horizontal-pin edge
// case: a black pawn on e4 could capture en passant on d3, but doing so
// would expose the black king on a4 to the white rook on h4.
// FEN: 8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1
func TestPerftEnPassantPin(t *testing.T) {
	pos, err := ParseFEN("8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		if m := moves.Get(i); m.IsEnPassant() {
			t.Errorf("en passant move %v should be illegal (horizontal pin)", m)
		}
	}

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 6},
		{2, 94},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := perft(pos, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestEnPassantSquareAfterDoublePush covers §8's double-push scenario.
func TestEnPassantSquareAfterDoublePush(t *testing.T) {
	pos, err := ParseFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	m, err := ParseMove("d7d5", pos)
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}

	if !pos.GenerateLegalMoves().Contains(m) {
		t.Fatalf("d7d5 should be legal")
	}

	undo := pos.MakeMove(m)
	defer pos.UnmakeMove(m, undo)

	if pos.EnPassant != D6 {
		t.Errorf("en passant square = %v, want d6", pos.EnPassant)
	}
}

// TestMakeUnmakeRestoresHash covers §8 invariant 1/2 on a minimal position.
func TestMakeUnmakeRestoresHash(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	before := *pos
	m, err := ParseMove("e2e4", pos)
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}

	undo := pos.MakeMove(m)
	pos.UnmakeMove(m, undo)

	if pos.Hash != before.Hash {
		t.Errorf("hash not restored: got %016x, want %016x", pos.Hash, before.Hash)
	}
	if pos.EnPassant != NoSquare {
		t.Errorf("en passant square = %v, want NoSquare", pos.EnPassant)
	}
	if pos.AllOccupied != before.AllOccupied || pos.Occupied != before.Occupied || pos.Pieces != before.Pieces {
		t.Errorf("board state not restored")
	}
	if pos.CastlingRights != before.CastlingRights || pos.HalfMoveClock != before.HalfMoveClock {
		t.Errorf("metadata not restored")
	}
}

// TestHashConsistency covers §8 invariant 2 across a short game.
func TestHashConsistency(t *testing.T) {
	pos := NewPosition()
	moves := []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1b5"}

	for _, s := range moves {
		m, err := ParseMove(s, pos)
		if err != nil {
			t.Fatalf("ParseMove(%s): %v", s, err)
		}
		pos.MakeMove(m)
		if want := pos.ComputeHash(); pos.Hash != want {
			t.Fatalf("after %s: hash = %016x, want %016x", s, pos.Hash, want)
		}
	}
}

// TestInsufficientMaterialSymmetry covers §8 invariant 6.
func TestInsufficientMaterialSymmetry(t *testing.T) {
	pos, err := ParseFEN("8/8/4k3/8/8/4K3/8/8 w - - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}
	white := pos.IsInsufficientMaterial()

	pos.SideToMove = Black
	black := pos.IsInsufficientMaterial()

	if white != black || !white {
		t.Errorf("insufficient material must be side-to-move independent: white=%v black=%v", white, black)
	}
}
