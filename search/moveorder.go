package search

import (
	"sort"

	"github.com/Ingo60/frech/board"
)

type orderedMove struct {
	move board.Move
	key  int
}

// orderMoves sorts moves in place: the stored PV/hash move first,
// then captures by MVV-LVA and non-capturing promotions, then killer
// moves (by cutoff count), then the rest in generation order.
func orderMoves(p *board.Position, moves []board.Move, hashMove board.Move, killers Killers) {
	var scored = make([]orderedMove, len(moves))
	for i, m := range moves {
		scored[i] = orderedMove{m, moveKey(p, m, hashMove, killers)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].key > scored[j].key
	})
	for i := range moves {
		moves[i] = scored[i].move
	}
}

const (
	hashMoveScore = 1 << 20
	captureBase   = 1 << 16
	killerBase    = 1 << 8
)

func moveKey(p *board.Position, m, hashMove board.Move, killers Killers) int {
	if m == hashMove {
		return hashMoveScore
	}
	if victim := board.CapturedPiece(p, m); victim != board.None {
		return captureBase + mvvlva(victim, m.Piece)
	}
	if m.Promote != board.None {
		return captureBase + pieceOrder(m.Promote)
	}
	return killerBase * killers[m]
}

// mvvlva scores a capture by victim value minus a fraction of
// attacker value: most-valuable-victim, least-valuable-attacker.
func mvvlva(victim, attacker board.Piece) int {
	return 8*pieceOrder(victim) - pieceOrder(attacker)
}

func pieceOrder(p board.Piece) int {
	switch p {
	case board.Pawn:
		return 1
	case board.Knight:
		return 2
	case board.Bishop:
		return 3
	case board.Rook:
		return 4
	case board.Queen:
		return 5
	case board.King:
		return 6
	}
	return 0
}
