package engine

import "github.com/hailam/chesskit/internal/board"

// TTFlag is the kind of bound a table entry carries.
type TTFlag uint8

const (
	TTExact TTFlag = iota
	TTLowerBound
	TTUpperBound
)

// TTEntry caches one searched position. The full key is stored so a hash
// collision can never surface a foreign entry.
type TTEntry struct {
	Key      uint64
	BestMove board.Move
	Score    int16
	Depth    int8
	Flag     TTFlag
}

// TranspositionTable is a single-probe hash table. The search is
// single-threaded, so no locking is needed.
type TranspositionTable struct {
	entries []TTEntry
	mask    uint64
}

// NewTranspositionTable sizes the table in megabytes, rounded down to a
// power-of-two entry count.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	n := uint64(sizeMB) * 1024 * 1024 / 16
	for n&(n-1) != 0 {
		n &= n - 1
	}
	if n == 0 {
		n = 1
	}
	return &TranspositionTable{
		entries: make([]TTEntry, n),
		mask:    n - 1,
	}
}

// Probe returns the cached entry for hash, if present.
func (tt *TranspositionTable) Probe(hash uint64) (TTEntry, bool) {
	e := tt.entries[hash&tt.mask]
	if e.Key == hash && e.Depth > 0 {
		return e, true
	}
	return TTEntry{}, false
}

// Store caches a search result, keeping the deeper entry on collision
// unless the stored position differs.
func (tt *TranspositionTable) Store(hash uint64, depth int, score int, flag TTFlag, best board.Move) {
	e := &tt.entries[hash&tt.mask]
	if e.Key == hash && int(e.Depth) > depth {
		return
	}
	*e = TTEntry{
		Key:      hash,
		BestMove: best,
		Score:    int16(score),
		Depth:    int8(depth),
		Flag:     flag,
	}
}

// Clear wipes the table.
func (tt *TranspositionTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
}
