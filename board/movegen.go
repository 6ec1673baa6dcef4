package board

// castleClearMask[sq] is the set of castling-right flag bits that must be
// cleared whenever a move touches sq, either because the king left home or
// because a rook left or was captured on its home square.
var castleClearMask [64]FieldSet

func init() {
	castleClearMask[A1] = SquareSet(flagWhiteOOO)
	castleClearMask[E1] = SquareSet(flagWhiteOOO) | SquareSet(flagWhiteOO)
	castleClearMask[H1] = SquareSet(flagWhiteOO)
	castleClearMask[A8] = SquareSet(flagBlackOOO)
	castleClearMask[E8] = SquareSet(flagBlackOOO) | SquareSet(flagBlackOO)
	castleClearMask[H8] = SquareSet(flagBlackOO)
}

func lastRank(side Player) int {
	if side == White {
		return 7
	}
	return 0
}

// CapturedPiece reports what m captures on p, accounting for en passant.
func CapturedPiece(p *Position, m Move) Piece {
	var sq = capturedSquare(p, m)
	return p.PieceAt(sq)
}

func capturedSquare(p *Position, m Move) Square {
	if m.Piece == Pawn && m.To == p.EnPassantSquare() && p.PieceAt(m.To) == None {
		if m.Player == White {
			return m.To - 8
		}
		return m.To + 8
	}
	return m.To
}

// GeneratePseudoLegalMoves enumerates every move for the side to move
// without checking whether it leaves the mover's own king in check.
func GeneratePseudoLegalMoves(p *Position) []Move {
	var side = p.SideToMove()
	var own = p.PiecesByColor(side)
	var opp = p.PiecesByColor(side.Other())
	var occ = p.Occupied()
	var moves = make([]Move, 0, 48)

	var pawns = p.PawnBits.Diff(p.BishopBits).Diff(p.RookBits).Intersect(own)
	for x := pawns; x != 0; x = x.ClearLowest() {
		var from = x.Lowest()
		for toSet := PawnTargets(from, side); toSet != 0; toSet = toSet.ClearLowest() {
			var to = toSet.Lowest()
			var mask = CanPawn(from, to, side)
			var ok bool
			if mask == 0 {
				ok = opp.Has(to) || to == p.EnPassantSquare()
			} else if mask != AllOnes {
				ok = mask&occ == 0
			}
			if !ok {
				continue
			}
			if to.Rank() == lastRank(side) {
				for _, promo := range promotionPieces {
					moves = append(moves, Move{Player: side, Piece: Pawn, From: from, To: to, Promote: promo})
				}
			} else {
				moves = append(moves, Move{Player: side, Piece: Pawn, From: from, To: to})
			}
		}
	}

	var knights = p.PawnBits.Intersect(p.BishopBits).Diff(p.RookBits).Intersect(own)
	for x := knights; x != 0; x = x.ClearLowest() {
		var from = x.Lowest()
		for toSet := KnightTargets(from).Diff(own); toSet != 0; toSet = toSet.ClearLowest() {
			moves = append(moves, Move{Player: side, Piece: Knight, From: from, To: toSet.Lowest()})
		}
	}

	var bishops = p.BishopBits.Diff(p.PawnBits).Diff(p.RookBits).Intersect(own)
	for x := bishops; x != 0; x = x.ClearLowest() {
		var from = x.Lowest()
		for toSet := BishopTargets(from).Diff(own); toSet != 0; toSet = toSet.ClearLowest() {
			var to = toSet.Lowest()
			if m := CanBishop(from, to); m != AllOnes && m&occ == 0 {
				moves = append(moves, Move{Player: side, Piece: Bishop, From: from, To: to})
			}
		}
	}

	var rooks = p.RookBits.Diff(p.PawnBits).Diff(p.BishopBits).Intersect(own)
	for x := rooks; x != 0; x = x.ClearLowest() {
		var from = x.Lowest()
		for toSet := RookTargets(from).Diff(own); toSet != 0; toSet = toSet.ClearLowest() {
			var to = toSet.Lowest()
			if m := CanRook(from, to); m != AllOnes && m&occ == 0 {
				moves = append(moves, Move{Player: side, Piece: Rook, From: from, To: to})
			}
		}
	}

	var queens = p.BishopBits.Intersect(p.RookBits).Diff(p.PawnBits).Intersect(own)
	for x := queens; x != 0; x = x.ClearLowest() {
		var from = x.Lowest()
		for toSet := BishopTargets(from).Diff(own); toSet != 0; toSet = toSet.ClearLowest() {
			var to = toSet.Lowest()
			if m := CanBishop(from, to); m != AllOnes && m&occ == 0 {
				moves = append(moves, Move{Player: side, Piece: Queen, From: from, To: to})
			}
		}
		for toSet := RookTargets(from).Diff(own); toSet != 0; toSet = toSet.ClearLowest() {
			var to = toSet.Lowest()
			if m := CanRook(from, to); m != AllOnes && m&occ == 0 {
				moves = append(moves, Move{Player: side, Piece: Queen, From: from, To: to})
			}
		}
	}

	var kingFrom = p.KingSquare(side)
	for toSet := KingTargets(kingFrom).Diff(own); toSet != 0; toSet = toSet.ClearLowest() {
		moves = append(moves, Move{Player: side, Piece: King, From: kingFrom, To: toSet.Lowest()})
	}

	moves = append(moves, generateCastling(p, side, occ)...)

	return moves
}

func generateCastling(p *Position, side Player, occ FieldSet) []Move {
	var moves []Move
	var opp = side.Other()
	if side == White {
		if p.HasCastleRight(WhiteKingSide) &&
			occ&(SquareSet(F1)|SquareSet(G1)) == 0 &&
			!p.IsAttacked(E1, opp) && !p.IsAttacked(F1, opp) && !p.IsAttacked(G1, opp) {
			moves = append(moves, Move{Player: White, Piece: King, From: E1, To: G1})
		}
		if p.HasCastleRight(WhiteQueenSide) &&
			occ&(SquareSet(B1)|SquareSet(C1)|SquareSet(D1)) == 0 &&
			!p.IsAttacked(E1, opp) && !p.IsAttacked(D1, opp) && !p.IsAttacked(C1, opp) {
			moves = append(moves, Move{Player: White, Piece: King, From: E1, To: C1})
		}
	} else {
		if p.HasCastleRight(BlackKingSide) &&
			occ&(SquareSet(F8)|SquareSet(G8)) == 0 &&
			!p.IsAttacked(E8, opp) && !p.IsAttacked(F8, opp) && !p.IsAttacked(G8, opp) {
			moves = append(moves, Move{Player: Black, Piece: King, From: E8, To: G8})
		}
		if p.HasCastleRight(BlackQueenSide) &&
			occ&(SquareSet(B8)|SquareSet(C8)|SquareSet(D8)) == 0 &&
			!p.IsAttacked(E8, opp) && !p.IsAttacked(D8, opp) && !p.IsAttacked(C8, opp) {
			moves = append(moves, Move{Player: Black, Piece: King, From: E8, To: C8})
		}
	}
	return moves
}

// GenerateLegalMoves filters the pseudo-legal moves down to those that do
// not leave the mover's own king in check.
func GenerateLegalMoves(p *Position) []Move {
	var pseudo = GeneratePseudoLegalMoves(p)
	var legal = make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		if _, ok := ApplyMove(p, m); ok {
			legal = append(legal, m)
		}
	}
	return legal
}

// ApplyMove returns the position resulting from playing m on src, and
// whether the move is legal (the mover's king is not left in check). The
// hash is updated incrementally: piece placement changes go through
// Place/Remove, and every Flags bit that changed is toggled once.
func ApplyMove(src *Position, m Move) (Position, bool) {
	var p = *src
	var side = m.Player
	var opp = side.Other()

	var capSq = capturedSquare(src, m)
	var captured = p.PieceAt(capSq)
	if captured != None {
		p.Remove(capSq)
	}

	p.Remove(m.From)
	var placed = m.Piece
	if m.Promote != None {
		placed = m.Promote
	}
	p.Place(m.To, placed, side)

	if m.Piece == King {
		switch {
		case side == White && m.From == E1 && m.To == G1:
			p.Remove(H1)
			p.Place(F1, Rook, White)
			p.setCastled(White)
		case side == White && m.From == E1 && m.To == C1:
			p.Remove(A1)
			p.Place(D1, Rook, White)
			p.setCastled(White)
		case side == Black && m.From == E8 && m.To == G8:
			p.Remove(H8)
			p.Place(F8, Rook, Black)
			p.setCastled(Black)
		case side == Black && m.From == E8 && m.To == C8:
			p.Remove(A8)
			p.Place(D8, Rook, Black)
			p.setCastled(Black)
		}
	}

	if m.Piece == Pawn || captured != None {
		p.HalfmoveClock = 0
	} else {
		p.HalfmoveClock = src.HalfmoveClock + 1
	}

	p.setSideToMove(opp)
	p.Flags &^= castleClearMask[m.From] | castleClearMask[m.To]

	var newEp = NoSquare
	if m.Piece == Pawn {
		if side == White && int(m.To)-int(m.From) == 16 {
			newEp = m.From + 8
		} else if side == Black && int(m.From)-int(m.To) == 16 {
			newEp = m.From - 8
		}
	}
	p.setEnPassantSquare(newEp)

	for diff := src.Flags ^ p.Flags; diff != 0; diff = diff.ClearLowest() {
		p.Hash ^= flagKey(int(diff.Lowest()))
	}

	if p.IsAttacked(p.KingSquare(side), opp) {
		return p, false
	}
	return p, true
}
