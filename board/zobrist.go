package board

import "math/rand"

// zobristKeys is a fixed table of pseudo-random 64-bit values. It is seeded
// deterministically so that the same keys are emitted on every run of the
// program, which is what the incremental-hash invariant in applyMove
// depends on; a real compile-time-constant table produced by a one-off
// generator would serve the same purpose.
var zobristKeys [1000]uint64

const flagKeyBase = 800

func init() {
	var r = rand.New(rand.NewSource(0))
	for i := range zobristKeys {
		zobristKeys[i] = r.Uint64()
	}
}

func pieceKey(side Player, piece Piece, sq Square) uint64 {
	var index = (int(side)*6+int(piece)-1)<<6 + int(sq)
	return zobristKeys[index]
}

func flagKey(bit int) uint64 {
	return zobristKeys[flagKeyBase+bit]
}

// computeHash recomputes the Zobrist hash of p from scratch; ApplyMove
// instead updates Hash incrementally, and the two are expected to always
// agree (see VerifyHash).
func computeHash(p *Position) uint64 {
	var h uint64
	var occ = p.Occupied()
	for sq := occ; sq != 0; sq = sq.ClearLowest() {
		var s = sq.Lowest()
		var side = White
		if !p.Whites.Has(s) {
			side = Black
		}
		h ^= pieceKey(side, p.PieceAt(s), s)
	}
	for f := p.Flags; f != 0; f = f.ClearLowest() {
		h ^= flagKey(int(f.Lowest()))
	}
	return h
}

// VerifyHash reports whether p.Hash, maintained incrementally by
// ApplyMove, agrees with a from-scratch recomputation; on a mismatch
// the driver prints a "# ZOBRIST HASH FAILURE" line and keeps running,
// never a panic.
func VerifyHash(p *Position) bool {
	return p.Hash == computeHash(p)
}
