// Package eval implements the static position evaluator: a centipawn
// score, positive in White's favor, built by summing independent
// components over the board package's queries.
package eval

import "github.com/Ingo60/frech/board"

// Mate sentinels, returned instead of a normal centipawn value.
const (
	BlackMated = 0x8000
	WhiteMated = -0x8000
)

var pieceValue = [...]int{
	board.None:   0,
	board.Pawn:   100,
	board.Knight: 300,
	board.Bishop: 305,
	board.Rook:   550,
	board.Queen:  875,
	board.King:   1000,
}

// castleBonus and castleRightPenalty parameterize the white castling
// term (25/75); black uses twice these values. This asymmetry is
// left in place rather than corrected, and kept as package variables
// so a test can override either policy.
var (
	castleBonus        = 25
	castleRightPenalty = 25
)

var blockedBishopPawnSquares = [2][4]board.Square{
	{board.B2, board.D2, board.E2, board.G2},
	{board.B7, board.D7, board.E7, board.G7},
}

var lazyOfficerSquares = [2][4]board.Square{
	{board.B1, board.C1, board.F1, board.G1},
	{board.B8, board.C8, board.F8, board.G8},
}

// Evaluate scores p in centipawns from White's point of view. It
// returns one of the mate sentinels when the side to move is
// checkmated, and 0 for stalemate or a halfmove clock of 100 or more.
func Evaluate(p *board.Position) int {
	if p.HalfmoveClock >= 100 {
		return 0
	}
	var legal = board.GenerateLegalMoves(p)
	if len(legal) == 0 {
		if inCheck(p, p.SideToMove()) {
			if p.SideToMove() == board.White {
				return WhiteMated
			}
			return BlackMated
		}
		return 0
	}

	var score = 0
	score += material(p)
	score += hangingPieces(p)
	score += mobility(p, legal)
	score += checkBonus(p)
	score += castling(p)
	score += blockedBishopPawns(p)
	score += trappedBishops(p)
	score += lazyOfficers(p)
	score += kingCover(p)
	return score
}

func inCheck(p *board.Position, side board.Player) bool {
	return p.IsAttacked(p.KingSquare(side), side.Other())
}

// sideMaterial sums piece values plus the advanced-pawn bonus
// (20 * max(0, rank-4) ranks counted 1..8) for one side.
func sideMaterial(p *board.Position, side board.Player) int {
	var total = 0
	var own = p.PiecesByColor(side)
	for x := own; x != 0; x = x.ClearLowest() {
		var sq = x.Lowest()
		var piece = p.PieceAt(sq)
		total += pieceValue[piece]
		if piece == board.Pawn {
			var rank = sq.Rank() + 1
			if side == board.Black {
				rank = 8 - sq.Rank()
			}
			if rank > 4 {
				total += 20 * (rank - 4)
			}
		}
	}
	return total
}

// material returns the white/black material difference, scaled up by
// the ratio of the larger total to the smaller one: simplifying while
// ahead in material becomes more attractive as the ratio grows.
func material(p *board.Position) int {
	var white = sideMaterial(p, board.White)
	var black = sideMaterial(p, board.Black)
	var delta = white - black
	var lo, hi = white, black
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == 0 {
		return delta
	}
	return delta * hi / lo
}

// weakestAttacker returns the value of the weakest piece of `by` that
// attacks sq, and whether any such piece exists.
func weakestAttacker(p *board.Position, sq board.Square, by board.Player) (int, bool) {
	var best = 0
	var found = false
	var theirs = p.PiecesByColor(by)
	for x := theirs; x != 0; x = x.ClearLowest() {
		var from = x.Lowest()
		if !attacks(p, from, sq) {
			continue
		}
		var v = pieceValue[p.PieceAt(from)]
		if !found || v < best {
			best = v
			found = true
		}
	}
	return best, found
}

// attacks reports whether the piece on `from` attacks `sq` on the
// current occupancy of p; it is the single-piece analogue of
// Position.IsAttacked, used to find a specific attacker/defender.
func attacks(p *board.Position, from, sq board.Square) bool {
	var piece = p.PieceAt(from)
	var side = p.ColorAt(from)
	switch piece {
	case board.Pawn:
		return board.PawnAttackers(sq, side).Has(from)
	case board.Knight:
		return board.KnightTargets(from).Has(sq)
	case board.King:
		return board.KingTargets(from).Has(sq)
	case board.Bishop:
		return attacksAsBishop(p, from, sq)
	case board.Rook:
		return attacksAsRook(p, from, sq)
	case board.Queen:
		return attacksAsBishop(p, from, sq) || attacksAsRook(p, from, sq)
	}
	return false
}

func attacksAsBishop(p *board.Position, from, sq board.Square) bool {
	return board.CanBishop(from, sq) != board.AllOnes &&
		board.CanBishop(from, sq)&p.Occupied() == 0 && board.BishopTargets(from).Has(sq)
}

func attacksAsRook(p *board.Position, from, sq board.Square) bool {
	return board.CanRook(from, sq) != board.AllOnes &&
		board.CanRook(from, sq)&p.Occupied() == 0 && board.RookTargets(from).Has(sq)
}

// hangingPieces penalizes each side's worst undefended (or
// under-defended) piece: 70% of the threatened exchange, inflated 10%
// for each further hanging piece of that side.
func hangingPieces(p *board.Position) int {
	return sideHanging(p, board.Black) - sideHanging(p, board.White)
}

// sideHanging returns the centipawn penalty applied against `side`
// for its worst hanging piece (returned as a positive number).
func sideHanging(p *board.Position, side board.Player) int {
	var opp = side.Other()
	var worst = 0
	var count = 0
	for x := p.PiecesByColor(side); x != 0; x = x.ClearLowest() {
		var sq = x.Lowest()
		var piece = p.PieceAt(sq)
		var attackerValue, attacked = weakestAttacker(p, sq, opp)
		if !attacked {
			continue
		}
		var defenderValue, defended = weakestAttacker(p, sq, side)
		var exchange int
		switch {
		case !defended:
			exchange = pieceValue[piece]
		case attackerValue < defenderValue:
			exchange = pieceValue[piece] - attackerValue
		default:
			continue
		}
		if exchange <= 0 {
			continue
		}
		count++
		var penalty = exchange * 70 / 100
		if penalty > worst {
			worst = penalty
		}
	}
	if count == 0 {
		return 0
	}
	return worst + worst*10*(count-1)/100
}

// mobility is scored only in the endgame (fewer than 11 total pieces
// or fewer than 5 pawns on the board): +4 per legal move of the side
// to move, -4 per legal move of the opponent.
func mobility(p *board.Position, ownLegal []board.Move) int {
	if !isEndgame(p) {
		return 0
	}
	var side = p.SideToMove()
	var flipped = *p
	flipped.Flags ^= board.SquareSet(board.A1)
	var oppLegal = board.GenerateLegalMoves(&flipped)
	var mine = len(ownLegal) * 4
	var theirs = len(oppLegal) * 4
	if side == board.White {
		return mine - theirs
	}
	return theirs - mine
}

func isEndgame(p *board.Position) bool {
	var totalPieces = p.Occupied().Count()
	var pawns = (p.PawnBits.Diff(p.BishopBits).Diff(p.RookBits)).Count()
	return totalPieces < 11 || pawns < 5
}

// checkBonus rewards the side that just moved if its opponent (the
// current side to move) is now in check.
func checkBonus(p *board.Position) int {
	var stm = p.SideToMove()
	if !inCheck(p, stm) {
		return 0
	}
	if stm == board.Black {
		return 25
	}
	return -25
}

func countCastleRights(p *board.Position, side board.Player) int {
	var n = 0
	if side == board.White {
		if p.HasCastleRight(board.WhiteKingSide) {
			n++
		}
		if p.HasCastleRight(board.WhiteQueenSide) {
			n++
		}
	} else {
		if p.HasCastleRight(board.BlackKingSide) {
			n++
		}
		if p.HasCastleRight(board.BlackQueenSide) {
			n++
		}
	}
	return n
}

func castling(p *board.Position) int {
	var white int
	if p.HasCastled(board.White) {
		white = castleBonus
	} else {
		white = countCastleRights(p, board.White)*castleRightPenalty - 3*castleRightPenalty
	}
	var black int
	if p.HasCastled(board.Black) {
		black = 2 * castleBonus
	} else {
		black = countCastleRights(p, board.Black)*(2*castleRightPenalty) - 3*(2*castleRightPenalty)
	}
	return white - black
}

func blockedBishopPawns(p *board.Position) int {
	return sideBlockedBishopPawns(p, board.White) - sideBlockedBishopPawns(p, board.Black)
}

func sideBlockedBishopPawns(p *board.Position, side board.Player) int {
	var penalty = 0
	var squares = blockedBishopPawnSquares[0]
	if side == board.Black {
		squares = blockedBishopPawnSquares[1]
	}
	var forward = 8
	if side == board.Black {
		forward = -8
	}
	for _, sq := range squares {
		if p.PieceAt(sq) != board.Pawn || p.ColorAt(sq) != side {
			continue
		}
		var ahead = sq + board.Square(forward)
		if ahead < 0 || ahead > 63 {
			continue
		}
		if p.PieceAt(ahead) != board.None {
			penalty += 21
		}
	}
	return penalty
}

func trappedBishops(p *board.Position) int {
	return sideTrappedBishops(p, board.White) - sideTrappedBishops(p, board.Black)
}

func sideTrappedBishops(p *board.Position, side board.Player) int {
	var penalty = 0
	var own = p.PiecesByColor(side)
	var king = p.KingSquare(side)
	var neighborhood = board.KingTargets(king)
	for x := p.BishopBits.Diff(p.PawnBits).Diff(p.RookBits).Intersect(own); x != 0; x = x.ClearLowest() {
		var sq = x.Lowest()
		var escape = board.BishopTargets(sq).Intersect(neighborhood)
		if escape != 0 && escape.Diff(own) == 0 {
			penalty += 43
		}
	}
	return penalty
}

func lazyOfficers(p *board.Position) int {
	if !isOpening(p) {
		return 0
	}
	return sideLazyOfficers(p, board.White) - sideLazyOfficers(p, board.Black)
}

func isOpening(p *board.Position) bool {
	var pawns = p.PawnBits.Diff(p.BishopBits).Diff(p.RookBits).Count()
	var whiteHasRights = p.HasCastleRight(board.WhiteKingSide) || p.HasCastleRight(board.WhiteQueenSide)
	var blackHasRights = p.HasCastleRight(board.BlackKingSide) || p.HasCastleRight(board.BlackQueenSide)
	return pawns >= 12 && whiteHasRights && blackHasRights
}

func sideLazyOfficers(p *board.Position, side board.Player) int {
	var penalty = 0
	var squares = lazyOfficerSquares[0]
	if side == board.Black {
		squares = lazyOfficerSquares[1]
	}
	for _, sq := range squares {
		if p.ColorAt(sq) != side {
			continue
		}
		var piece = p.PieceAt(sq)
		if piece == board.Bishop || piece == board.Knight {
			penalty += 15
		}
	}
	return penalty
}

func kingCover(p *board.Position) int {
	return sideKingCover(p, board.White) - sideKingCover(p, board.Black)
}

func sideKingCover(p *board.Position, side board.Player) int {
	var neighborhood = board.KingTargets(p.KingSquare(side))
	var own = neighborhood.Intersect(p.PiecesByColor(side)).Count()
	var enemy = neighborhood.Intersect(p.PiecesByColor(side.Other())).Count()
	return 5*enemy + 6*own
}
