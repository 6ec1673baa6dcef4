package search

import (
	"sync"

	"github.com/Ingo60/frech/board"
)

// BoundKind is the two-bit tag on a stored score: whether it is the
// exact value, or only a lower/upper bound because the search was
// cut off before completing the window.
type BoundKind int

const (
	BoundExact BoundKind = 0
	BoundLower BoundKind = 1
	BoundUpper BoundKind = 2
)

// Transposition is the record cached per position, matching the
// {depth, score+boundKind, pvMoves, orderedMoves} tuple.
type Transposition struct {
	Depth        int
	Score        int
	Bound        BoundKind
	PVMoves      []board.Move
	OrderedMoves []board.Move
}

type ttEntry struct {
	key   uint64
	used  bool
	entry Transposition
}

// TranspositionTable is a fixed-size, non-chaining hash table keyed by
// the position's Zobrist hash modulo the table length; a colliding
// write simply overwrites the previous occupant. gate serializes
// Read/Update/Clear, since the table is shared across every goroutine
// a parallel root-move search fans out.
type TranspositionTable struct {
	gate  sync.Mutex
	items []ttEntry
}

// NewTranspositionTable allocates a table sized for roughly megabytes
// of storage.
func NewTranspositionTable(megabytes int) *TranspositionTable {
	var slots = 1024 * 1024 * megabytes / 64
	if slots < 1 {
		slots = 1
	}
	return &TranspositionTable{items: make([]ttEntry, slots)}
}

func (tt *TranspositionTable) index(hash uint64) uint64 {
	return hash % uint64(len(tt.items))
}

// Read returns the cached Transposition for hash, if any.
func (tt *TranspositionTable) Read(hash uint64) (Transposition, bool) {
	tt.gate.Lock()
	defer tt.gate.Unlock()
	var slot = &tt.items[tt.index(hash)]
	if !slot.used || slot.key != hash {
		return Transposition{}, false
	}
	return slot.entry, true
}

// Update stores t keyed by hash, overwriting whatever was there.
func (tt *TranspositionTable) Update(hash uint64, t Transposition) {
	tt.gate.Lock()
	defer tt.gate.Unlock()
	var slot = &tt.items[tt.index(hash)]
	slot.key = hash
	slot.used = true
	slot.entry = t
}

// Clear empties the table without reallocating it.
func (tt *TranspositionTable) Clear() {
	tt.gate.Lock()
	defer tt.gate.Unlock()
	for i := range tt.items {
		tt.items[i] = ttEntry{}
	}
}
