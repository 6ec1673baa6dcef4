package board

import "fmt"

// Position encodes a chess position in five field sets: Flags carries
// everything that is not piece placement (side to move, castling rights,
// en-passant target, "has castled" history), Whites says which occupied
// squares hold a white piece, and PawnBits/BishopBits/RookBits jointly
// decode the piece kind on every square:
//
//	pawn bishop rook | piece
//	  1     0     0   | Pawn
//	  1     1     0   | Knight
//	  0     1     0   | Bishop
//	  0     0     1   | Rook
//	  0     1     1   | Queen
//	  1     0     1   | King
//	  0     0     0   | empty
//	  1     1     1   | never
//
// The halfmove clock (plies since the last capture or pawn move) is kept
// as a separate counter rather than packed into Flags; either choice must
// round-trip through FEN and this one keeps decode() simpler.
type Position struct {
	Flags         FieldSet
	Whites        FieldSet
	PawnBits      FieldSet
	BishopBits    FieldSet
	RookBits      FieldSet
	HalfmoveClock int
	Hash          uint64
}

// Flag bit assignments: side to move on A1, each castling right on its
// king's target square (G1/C1/G8/C8), "has castled" on B1/B8, and the
// en-passant target on its own square of rank 3 or 6. Flags is a field
// set separate from the placement bits, so these never collide with a
// piece placed on the same square.
const (
	flagWhiteToMove  = A1
	flagWhiteOO      = G1
	flagWhiteOOO     = C1
	flagBlackOO      = G8
	flagBlackOOO     = C8
	flagWhiteCastled = B1
	flagBlackCastled = B8
)

var epFileSquares = [2][8]Square{
	{A3, B3, C3, D3, E3, F3, G3, H3},
	{A6, B6, C6, D6, E6, F6, G6, H6},
}

var epMask = func() FieldSet {
	var m FieldSet
	for _, rank := range epFileSquares {
		for _, s := range rank {
			m |= SquareSet(s)
		}
	}
	return m
}()

// emptyPosition returns the zero position: no pieces, Black to move (the
// white-to-move flag is clear), no rights.
func emptyPosition() Position {
	return Position{}
}

func (p *Position) Occupied() FieldSet { return p.PawnBits | p.BishopBits | p.RookBits }

func (p *Position) SideToMove() Player {
	if p.Flags.Has(flagWhiteToMove) {
		return White
	}
	return Black
}

func (p *Position) setSideToMove(side Player) {
	if side == White {
		p.Flags |= SquareSet(flagWhiteToMove)
	} else {
		p.Flags &^= SquareSet(flagWhiteToMove)
	}
}

// CastleRight identifies one of the four castling privileges.
type CastleRight int

const (
	WhiteKingSide CastleRight = iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide
)

var castleRightFlag = [4]Square{flagWhiteOO, flagWhiteOOO, flagBlackOO, flagBlackOOO}

func (p *Position) HasCastleRight(cr CastleRight) bool {
	return p.Flags.Has(castleRightFlag[cr])
}

func (p *Position) clearCastleRight(cr CastleRight) {
	p.Flags &^= SquareSet(castleRightFlag[cr])
}

func (p *Position) HasCastled(side Player) bool {
	if side == White {
		return p.Flags.Has(flagWhiteCastled)
	}
	return p.Flags.Has(flagBlackCastled)
}

func (p *Position) setCastled(side Player) {
	if side == White {
		p.Flags |= SquareSet(flagWhiteCastled)
	} else {
		p.Flags |= SquareSet(flagBlackCastled)
	}
}

// EnPassantSquare returns the current en-passant target, or NoSquare.
func (p *Position) EnPassantSquare() Square {
	var bit = p.Flags & epMask
	if bit == 0 {
		return NoSquare
	}
	return bit.Lowest()
}

func (p *Position) setEnPassantSquare(sq Square) {
	p.Flags &^= epMask
	if sq != NoSquare {
		p.Flags |= SquareSet(sq)
	}
}

// PieceAt decodes the piece on sq from the three piece-bit sets.
func (p *Position) PieceAt(sq Square) Piece {
	var pawnBit = p.PawnBits.Has(sq)
	var bishopBit = p.BishopBits.Has(sq)
	var rookBit = p.RookBits.Has(sq)
	switch {
	case !pawnBit && !bishopBit && !rookBit:
		return None
	case pawnBit && !bishopBit && !rookBit:
		return Pawn
	case pawnBit && bishopBit && !rookBit:
		return Knight
	case !pawnBit && bishopBit && !rookBit:
		return Bishop
	case !pawnBit && !bishopBit && rookBit:
		return Rook
	case !pawnBit && bishopBit && rookBit:
		return Queen
	case pawnBit && !bishopBit && rookBit:
		return King
	default:
		panic(fmt.Sprintf("impossible piece encoding on %s", sq))
	}
}

// ColorAt reports the color of an occupied square; undefined for an empty one.
func (p *Position) ColorAt(sq Square) Player {
	if p.Whites.Has(sq) {
		return White
	}
	return Black
}

func pieceBits(piece Piece) (pawnBit, bishopBit, rookBit bool) {
	switch piece {
	case Pawn:
		return true, false, false
	case Knight:
		return true, true, false
	case Bishop:
		return false, true, false
	case Rook:
		return false, false, true
	case Queen:
		return false, true, true
	case King:
		return true, false, true
	default:
		panic(fmt.Sprintf("cannot place piece %v", piece))
	}
}

// Place puts piece/side on sq, which must currently be empty, and updates
// the incremental hash.
func (p *Position) Place(sq Square, piece Piece, side Player) {
	var pawnBit, bishopBit, rookBit = pieceBits(piece)
	var b = SquareSet(sq)
	if pawnBit {
		p.PawnBits |= b
	}
	if bishopBit {
		p.BishopBits |= b
	}
	if rookBit {
		p.RookBits |= b
	}
	if side == White {
		p.Whites |= b
	}
	p.Hash ^= pieceKey(side, piece, sq)
}

// Remove clears whatever piece sits on sq and updates the incremental hash.
func (p *Position) Remove(sq Square) {
	var piece = p.PieceAt(sq)
	if piece == None {
		return
	}
	var side = p.ColorAt(sq)
	var b = ^SquareSet(sq)
	p.PawnBits &= b
	p.BishopBits &= b
	p.RookBits &= b
	p.Whites &= b
	p.Hash ^= pieceKey(side, piece, sq)
}

// Equals compares the five field sets, per the invariant that position
// identity does not depend on the halfmove clock.
func (p *Position) Equals(other *Position) bool {
	return p.Flags == other.Flags &&
		p.Whites == other.Whites &&
		p.PawnBits == other.PawnBits &&
		p.BishopBits == other.BishopBits &&
		p.RookBits == other.RookBits
}

// KingSquare returns the square of side's king.
func (p *Position) KingSquare(side Player) Square {
	var kings = p.PawnBits.Diff(p.BishopBits).Intersect(p.RookBits)
	if side == White {
		kings = kings.Intersect(p.Whites)
	} else {
		kings = kings.Diff(p.Whites)
	}
	return kings.Lowest()
}

// PiecesByColor returns the occupied squares holding side's pieces.
func (p *Position) PiecesByColor(side Player) FieldSet {
	if side == White {
		return p.Occupied().Intersect(p.Whites)
	}
	return p.Occupied().Diff(p.Whites)
}

// IsAttacked reports whether sq is attacked by `by`.
func (p *Position) IsAttacked(sq Square, by Player) bool {
	var theirs = p.PiecesByColor(by)
	var occ = p.Occupied()
	var pawns = p.PawnBits &^ p.BishopBits &^ p.RookBits & theirs
	if PawnAttackers(sq, by)&pawns != 0 {
		return true
	}
	var knights = p.PawnBits & p.BishopBits &^ p.RookBits & theirs
	if KnightTargets(sq)&knights != 0 {
		return true
	}
	var kings = p.PawnBits &^ p.BishopBits & p.RookBits & theirs
	if KingTargets(sq)&kings != 0 {
		return true
	}
	var bishopsQueens = p.BishopBits &^ p.PawnBits & theirs
	for x := bishopsQueens; x != 0; x = x.ClearLowest() {
		var from = x.Lowest()
		if CanBishop(from, sq) != AllOnes && CanBishop(from, sq)&occ == 0 && BishopTargets(from).Has(sq) {
			return true
		}
	}
	var rooksQueens = p.RookBits &^ p.PawnBits & theirs
	for x := rooksQueens; x != 0; x = x.ClearLowest() {
		var from = x.Lowest()
		if CanRook(from, sq) != AllOnes && CanRook(from, sq)&occ == 0 && RookTargets(from).Has(sq) {
			return true
		}
	}
	return false
}
