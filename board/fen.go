package board

import (
	"fmt"
	"strconv"
	"strings"
)

const InitialPositionFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var pieceLetters = "PNBRQK"

func pieceChar(piece Piece, side Player) byte {
	var c = pieceLetters[piece-1]
	if side == Black {
		c += 'a' - 'A'
	}
	return c
}

func parsePieceChar(ch rune) (Piece, Player) {
	var side = White
	var letter = ch
	if ch >= 'a' && ch <= 'z' {
		side = Black
		letter = ch - ('a' - 'A')
	}
	switch letter {
	case 'P':
		return Pawn, side
	case 'N':
		return Knight, side
	case 'B':
		return Bishop, side
	case 'R':
		return Rook, side
	case 'Q':
		return Queen, side
	case 'K':
		return King, side
	}
	return None, side
}

// Decode parses a FEN record into a Position.
func Decode(fen string) (Position, error) {
	var fields = strings.Fields(fen)
	if len(fields) < 4 {
		return Position{}, fmt.Errorf("fen: need at least 4 fields, got %d", len(fields))
	}

	var p = emptyPosition()

	var ranks = strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return Position{}, fmt.Errorf("fen: expected 8 ranks, got %d", len(ranks))
	}
	for i, rankText := range ranks {
		var rank = 7 - i
		var file = 0
		for _, ch := range rankText {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			var piece, side = parsePieceChar(ch)
			if piece == None {
				return Position{}, fmt.Errorf("fen: bad piece character %q", ch)
			}
			if file > 7 {
				return Position{}, fmt.Errorf("fen: rank %q overflows the board", rankText)
			}
			p.Place(MakeSquare(file, rank), piece, side)
			file++
		}
		if file != 8 {
			return Position{}, fmt.Errorf("fen: rank %q does not cover 8 files", rankText)
		}
	}

	switch fields[1] {
	case "w":
		p.setSideToMove(White)
	case "b":
		p.setSideToMove(Black)
	default:
		return Position{}, fmt.Errorf("fen: bad active color %q", fields[1])
	}

	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				p.Flags |= SquareSet(flagWhiteOO)
			case 'Q':
				p.Flags |= SquareSet(flagWhiteOOO)
			case 'k':
				p.Flags |= SquareSet(flagBlackOO)
			case 'q':
				p.Flags |= SquareSet(flagBlackOOO)
			default:
				return Position{}, fmt.Errorf("fen: bad castling character %q", ch)
			}
		}
	}

	if fields[3] != "-" {
		var ep = ParseSquare(fields[3])
		if ep == NoSquare {
			return Position{}, fmt.Errorf("fen: bad en-passant square %q", fields[3])
		}
		p.setEnPassantSquare(ep)
	}

	if len(fields) > 4 {
		var n, err = strconv.Atoi(fields[4])
		if err != nil {
			return Position{}, fmt.Errorf("fen: bad halfmove clock %q", fields[4])
		}
		p.HalfmoveClock = n
	}

	p.Hash = computeHash(&p)

	if !isWellFormed(&p) {
		return Position{}, fmt.Errorf("fen: position is not well-formed: %v", fen)
	}

	return p, nil
}

// isWellFormed checks the invariants a decoded position must satisfy:
// exactly one king per side, and the side not to move is not in check.
func isWellFormed(p *Position) bool {
	var whiteKings = p.PawnBits.Diff(p.BishopBits).Intersect(p.RookBits).Intersect(p.Whites)
	var blackKings = p.PawnBits.Diff(p.BishopBits).Intersect(p.RookBits).Diff(p.Whites)
	if !whiteKings.IsSingleton() || !blackKings.IsSingleton() {
		return false
	}
	var sideNotToMove = p.SideToMove().Other()
	return !p.IsAttacked(p.KingSquare(sideNotToMove), p.SideToMove())
}

// Encode renders a Position as a FEN record. The fullmove number is not
// tracked by Position and is always emitted as "1".
func Encode(p *Position) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		var emptyRun = 0
		for file := 0; file < 8; file++ {
			var sq = MakeSquare(file, rank)
			var piece = p.PieceAt(sq)
			if piece == None {
				emptyRun++
				continue
			}
			if emptyRun > 0 {
				sb.WriteString(strconv.Itoa(emptyRun))
				emptyRun = 0
			}
			sb.WriteByte(pieceChar(piece, p.ColorAt(sq)))
		}
		if emptyRun > 0 {
			sb.WriteString(strconv.Itoa(emptyRun))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.SideToMove() == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	var castling = ""
	if p.HasCastleRight(WhiteKingSide) {
		castling += "K"
	}
	if p.HasCastleRight(WhiteQueenSide) {
		castling += "Q"
	}
	if p.HasCastleRight(BlackKingSide) {
		castling += "k"
	}
	if p.HasCastleRight(BlackQueenSide) {
		castling += "q"
	}
	if castling == "" {
		castling = "-"
	}
	sb.WriteString(castling)

	sb.WriteByte(' ')
	if ep := p.EnPassantSquare(); ep == NoSquare {
		sb.WriteByte('-')
	} else {
		sb.WriteString(ep.String())
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfmoveClock))
	sb.WriteString(" 1")

	return sb.String()
}

// NewInitialPosition returns the standard chess starting position.
func NewInitialPosition() Position {
	var p, err = Decode(InitialPositionFEN)
	if err != nil {
		panic(err)
	}
	return p
}
