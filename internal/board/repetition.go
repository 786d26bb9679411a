package board

// RepetitionTable is a fixed-capacity stack of Zobrist hashes, pushed on
// every ply made during game play and during search, popped on unmake.
// contains reports a twofold repetition; the search treats that as a draw
// without waiting for the game-level threefold count (see game.Controller).
type RepetitionTable struct {
	table [repetitionCapacity]uint64
	index int
}

const repetitionCapacity = 512

// NewRepetitionTable returns an empty table.
func NewRepetitionTable() *RepetitionTable {
	return &RepetitionTable{}
}

// Push records a position hash.
func (rt *RepetitionTable) Push(hash uint64) {
	rt.table[rt.index] = hash
	rt.index++
}

// Pop removes the most recently pushed hash.
func (rt *RepetitionTable) Pop() {
	rt.index--
}

// Contains reports whether hash currently appears anywhere on the stack.
func (rt *RepetitionTable) Contains(hash uint64) bool {
	for i := 0; i < rt.index; i++ {
		if rt.table[i] == hash {
			return true
		}
	}
	return false
}

// Len returns the number of hashes currently on the stack.
func (rt *RepetitionTable) Len() int {
	return rt.index
}

// Clear empties the table, e.g. on a new game.
func (rt *RepetitionTable) Clear() {
	rt.index = 0
}
