package board

import "testing"

// Perft results from the initial position; see
// https://www.chessprogramming.org/Perft_Results
func TestPerftInitialPosition(t *testing.T) {
	var tests = []struct {
		depth int
		nodes int
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}
	var p = NewInitialPosition()
	for _, test := range tests {
		var nodes = Perft(&p, test.depth)
		if nodes != test.nodes {
			t.Errorf("perft(%d) = %d, want %d", test.depth, nodes, test.nodes)
		}
	}
}

func TestPerftKiwipete(t *testing.T) {
	var p, err = Decode("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var tests = []struct {
		depth int
		nodes int
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
	}
	for _, test := range tests {
		var nodes = Perft(&p, test.depth)
		if nodes != test.nodes {
			t.Errorf("perft(%d) = %d, want %d", test.depth, nodes, test.nodes)
		}
	}
}

func TestEnPassantDiscoveredCheckIsIllegal(t *testing.T) {
	// White king a5, pawn d5, black pawn e5 just played e7-e5, black rook
	// g5: capturing en passant removes the blocker between king and rook
	// on rank 5, so dxe6 e.p. must not appear among the legal moves.
	var p, err = Decode("4k3/8/8/K2Pp1r1/8/8/8/8 w - e6 0 1")
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range GenerateLegalMoves(&p) {
		if m.Piece == Pawn && m.From == D5 && m.To == E6 {
			t.Errorf("en passant capture %v should be illegal (discovered check)", m)
		}
	}
}
