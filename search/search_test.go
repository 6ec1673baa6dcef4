package search

import (
	"testing"

	"github.com/Ingo60/frech/board"
)

func TestSearchFindsMateInOne(t *testing.T) {
	var p, err = board.Decode("7k/5Q2/6K1/8/8/8/8/8 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var s = NewSearcher(NewTranspositionTable(1))
	var v = s.Search(&p, nil)
	if len(v.Moves) == 0 {
		t.Fatal("expected a move")
	}
	var next, ok = board.ApplyMove(&p, v.Moves[0])
	if !ok {
		t.Fatalf("search returned an illegal move %v", v.Moves[0])
	}
	if len(board.GenerateLegalMoves(&next)) != 0 ||
		!next.IsAttacked(next.KingSquare(board.Black), board.White) {
		t.Errorf("move %v found by search is not actually mate", v.Moves[0])
	}
}

func TestSearchPrefersCapturingAHangingQueen(t *testing.T) {
	var p, err = board.Decode("4k3/8/8/3q4/8/8/8/3RK3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var s = NewSearcher(NewTranspositionTable(1))
	// Without a mate score Search runs to maxDepth, so raise the stop
	// hint once depth 3 has completed.
	BeginThinking()
	defer BeginThinking()
	var v = s.Search(&p, func(v Variation) {
		if v.Depth >= 3 {
			FinishThinking()
		}
	})
	if len(v.Moves) == 0 {
		t.Fatal("expected a move")
	}
	var m = v.Moves[0]
	if !(m.Piece == board.Rook && m.From == board.D1 && m.To == board.D5) {
		t.Errorf("search chose %v, want the rook to capture the hanging queen on d5", m)
	}
}

func TestTranspositionTableRoundTrip(t *testing.T) {
	var tt = NewTranspositionTable(1)
	var entry = Transposition{Depth: 4, Score: 123, Bound: BoundExact, PVMoves: []board.Move{{Piece: board.Pawn, From: board.E2, To: board.E4}}}
	tt.Update(42, entry)
	var got, ok = tt.Read(42)
	if !ok {
		t.Fatal("expected a hit")
	}
	if got.Depth != 4 || got.Score != 123 || got.Bound != BoundExact {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if _, ok := tt.Read(43); ok {
		t.Errorf("expected a miss for an unused key")
	}
}
