package board

import "testing"

func TestInitialPositionHasTwentyLegalMoves(t *testing.T) {
	var p = NewInitialPosition()
	var moves = GenerateLegalMoves(&p)
	if len(moves) != 20 {
		t.Errorf("initial position has %d legal moves, want 20", len(moves))
	}
}

func TestCastlingIsLegalWhenClear(t *testing.T) {
	var p, err = Decode("8/8/8/8/8/3k4/8/R3K2R w KQ - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var found = false
	for _, m := range GenerateLegalMoves(&p) {
		if m.Piece == King && m.From == E1 && m.To == G1 {
			found = true
		}
	}
	if !found {
		t.Errorf("O-O (e1g1) should be among the legal moves")
	}
	var next, ok = ApplyMove(&p, Move{Player: White, Piece: King, From: E1, To: G1})
	if !ok {
		t.Fatalf("applying O-O should succeed")
	}
	if next.PieceAt(F1) != Rook || next.PieceAt(H1) != None || next.PieceAt(G1) != King {
		t.Errorf("O-O did not relocate the rook to f1: rook at f1=%v h1=%v king at g1=%v",
			next.PieceAt(F1), next.PieceAt(H1), next.PieceAt(G1))
	}
	if !next.HasCastled(White) {
		t.Errorf("position should record that White has castled")
	}
	if next.HasCastleRight(WhiteKingSide) || next.HasCastleRight(WhiteQueenSide) {
		t.Errorf("castling rights should be cleared after castling")
	}
}

func TestCastlingThroughCheckIsIllegal(t *testing.T) {
	// Black rook on f8 attacks f1, so O-O (passing through f1) is illegal.
	var p, err = Decode("5rk1/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range GenerateLegalMoves(&p) {
		if m.Piece == King && m.From == E1 && m.To == G1 {
			t.Errorf("O-O should be illegal: king would pass through an attacked square")
		}
	}
}

func TestPromotionGeneratesFourMoves(t *testing.T) {
	var p, err = Decode("k7/4P3/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var promos = map[Piece]bool{}
	for _, m := range GenerateLegalMoves(&p) {
		if m.Piece == Pawn && m.From == E7 && m.To == E8 {
			promos[m.Promote] = true
		}
	}
	for _, want := range []Piece{Queen, Rook, Bishop, Knight} {
		if !promos[want] {
			t.Errorf("missing promotion to %v", want)
		}
	}
}

func TestEnPassantCaptureIsGenerated(t *testing.T) {
	var p, err = Decode("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var found = false
	for _, m := range GenerateLegalMoves(&p) {
		if m.Piece == Pawn && m.From == E5 && m.To == D6 {
			found = true
			var next, ok = ApplyMove(&p, m)
			if !ok {
				t.Fatalf("en passant capture should be legal")
			}
			if next.PieceAt(D5) != None {
				t.Errorf("en passant capture should remove the captured pawn on d5")
			}
		}
	}
	if !found {
		t.Errorf("en passant capture e5xd6 not generated")
	}
}

func TestTwoSquarePawnPushSetsEnPassantSquare(t *testing.T) {
	var p = NewInitialPosition()
	var next, ok = ApplyMove(&p, Move{Player: White, Piece: Pawn, From: E2, To: E4})
	if !ok {
		t.Fatalf("e2e4 should be legal")
	}
	if next.EnPassantSquare() != E3 {
		t.Errorf("en-passant square after e2e4 = %v, want e3", next.EnPassantSquare())
	}
}

func TestMateInOne(t *testing.T) {
	var p, err = Decode("7k/5Q2/6K1/8/8/8/8/8 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var found = false
	for _, m := range GenerateLegalMoves(&p) {
		var next, ok = ApplyMove(&p, m)
		if !ok {
			continue
		}
		if next.IsAttacked(next.KingSquare(Black), White) && len(GenerateLegalMoves(&next)) == 0 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected at least one mating move from this position")
	}
}
