// Package board implements the bitboard position representation, the
// precomputed move database, move generation and the FEN codec.
package board

import "fmt"

// Piece identifies the kind of chessman on a square, independent of color.
type Piece int

const (
	None Piece = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (p Piece) String() string {
	switch p {
	case None:
		return "-"
	case Pawn:
		return "P"
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	panic(fmt.Sprintf("invalid piece %d", int(p)))
}

// Player is one of the two sides.
type Player int

const (
	White Player = iota
	Black
)

// Factor is +1 for White and -1 for Black; it makes the evaluator symmetric.
func (pl Player) Factor() int {
	if pl == White {
		return 1
	}
	return -1
}

func (pl Player) Other() Player {
	if pl == White {
		return Black
	}
	return White
}

func (pl Player) String() string {
	if pl == White {
		return "white"
	}
	return "black"
}

// Square is an index 0..63, A1=0 .. H8=63.
type Square int

const NoSquare Square = -1

func MakeSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

func (s Square) File() int { return int(s) & 7 }
func (s Square) Rank() int { return int(s) >> 3 }

var fileNames = "abcdefgh"

func (s Square) String() string {
	if s < 0 || s > 63 {
		return "-"
	}
	return fmt.Sprintf("%c%d", fileNames[s.File()], s.Rank()+1)
}

// ParseSquare parses algebraic square names such as "e4"; returns NoSquare
// for "-" or any malformed text.
func ParseSquare(s string) Square {
	if len(s) != 2 {
		return NoSquare
	}
	var file = int(s[0] - 'a')
	var rank = int(s[1] - '1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare
	}
	return MakeSquare(file, rank)
}

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// Move is the tuple {player, piece, from, to, promote}. Equality is structural.
type Move struct {
	Player  Player
	Piece   Piece
	From    Square
	To      Square
	Promote Piece
}

var NoMove = Move{}

func (m Move) IsEmpty() bool {
	return m == NoMove
}

// String renders the move in the <from><to>[promotion] algebraic form used
// by the protocol, e.g. "e2e4", "e7e8q".
func (m Move) String() string {
	var s = m.From.String() + m.To.String()
	switch m.Promote {
	case Queen:
		s += "q"
	case Rook:
		s += "r"
	case Bishop:
		s += "b"
	case Knight:
		s += "n"
	}
	return s
}

// promotionPieces lists the four legal under/over-promotion choices in the
// order moves are generated for them.
var promotionPieces = [...]Piece{Queen, Rook, Bishop, Knight}
