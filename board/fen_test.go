package board

import "testing"

func TestDecodeInitialPosition(t *testing.T) {
	var p, err = Decode(InitialPositionFEN)
	if err != nil {
		t.Fatal(err)
	}
	var initial = NewInitialPosition()
	if !p.Equals(&initial) {
		t.Errorf("decoded initial position does not equal NewInitialPosition()")
	}
	if p.SideToMove() != White {
		t.Errorf("side to move = %v, want White", p.SideToMove())
	}
	for _, cr := range []CastleRight{WhiteKingSide, WhiteQueenSide, BlackKingSide, BlackQueenSide} {
		if !p.HasCastleRight(cr) {
			t.Errorf("initial position should have castle right %v", cr)
		}
	}
	if p.EnPassantSquare() != NoSquare {
		t.Errorf("initial position should have no en-passant square")
	}
}

func TestFenRoundTrip(t *testing.T) {
	var fens = []string{
		InitialPositionFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1",
		"4k3/8/8/8/8/8/4P3/4K3 w - - 0 1",
		"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2",
	}
	for _, fen := range fens {
		var p, err = Decode(fen)
		if err != nil {
			t.Fatalf("Decode(%q) failed: %v", fen, err)
		}
		var got = Encode(&p)
		var p2, err2 = Decode(got)
		if err2 != nil {
			t.Fatalf("Decode(Encode(%q)) failed: %v", fen, err2)
		}
		if !p.Equals(&p2) {
			t.Errorf("fen round trip mismatch: %q -> %q -> different position", fen, got)
		}
	}
}

func TestDecodeRejectsBadFEN(t *testing.T) {
	var bad = []string{
		"",
		"not a fen",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBN w KQkq - 0 1",
		"8/8/8/8/8/8/8/8 w - - 0 1",
		"4k3/8/8/8/8/8/8/K3Q3 w - - 0 1",
	}
	for _, fen := range bad {
		if _, err := Decode(fen); err == nil {
			t.Errorf("Decode(%q) should have failed", fen)
		}
	}
}

func TestComputeHashMatchesIncremental(t *testing.T) {
	var p = NewInitialPosition()
	if computeHash(&p) != p.Hash {
		t.Errorf("initial position hash mismatch: incremental=%d computed=%d", p.Hash, computeHash(&p))
	}
	for _, alg := range []string{"e2e4", "e7e5", "g1f3", "b8c6"} {
		var from = ParseSquare(alg[0:2])
		var to = ParseSquare(alg[2:4])
		var moved = false
		for _, m := range GenerateLegalMoves(&p) {
			if m.From == from && m.To == to {
				var next, ok = ApplyMove(&p, m)
				if !ok {
					t.Fatalf("move %v unexpectedly illegal", m)
				}
				p = next
				moved = true
				break
			}
		}
		if !moved {
			t.Fatalf("move %q not found among legal moves", alg)
		}
		if computeHash(&p) != p.Hash {
			t.Errorf("after %q: hash mismatch: incremental=%d computed=%d", alg, p.Hash, computeHash(&p))
		}
	}
}
