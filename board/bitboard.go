package board

import "math/bits"

// FieldSet is a set of squares, one bit per square (bit k == square k).
// All operations are pure.
type FieldSet uint64

const Empty FieldSet = 0
const AllOnes FieldSet = ^FieldSet(0)

func SquareSet(s Square) FieldSet { return FieldSet(1) << uint(s) }

func (f FieldSet) Union(g FieldSet) FieldSet     { return f | g }
func (f FieldSet) Intersect(g FieldSet) FieldSet { return f & g }
func (f FieldSet) Diff(g FieldSet) FieldSet      { return f &^ g }
func (f FieldSet) Count() int                    { return bits.OnesCount64(uint64(f)) }
func (f FieldSet) Has(s Square) bool             { return f&SquareSet(s) != 0 }
func (f FieldSet) IsEmpty() bool                 { return f == 0 }
func (f FieldSet) IsSingleton() bool             { return f != 0 && f&(f-1) == 0 }

// Lowest returns the square of the lowest set bit; f must be nonempty.
func (f FieldSet) Lowest() Square {
	return Square(bits.TrailingZeros64(uint64(f)))
}

// ClearLowest returns f with its lowest set bit removed.
func (f FieldSet) ClearLowest() FieldSet {
	return f & (f - 1)
}

func (f FieldSet) String() string {
	var s = "("
	var first = true
	for x := f; x != 0; x = x.ClearLowest() {
		if !first {
			s += ","
		}
		first = false
		s += x.Lowest().String()
	}
	return s + ")"
}

// step directions, named as in the geometry this table is built from.
const (
	east = 1
	west = -1
	north = 8
	south = -8
	ne = north + east
	se = south + east
	sw = south + west
	nw = north + west
)

// canGo reports whether a single step in the given direction from sq stays
// on the board.
func canGo(sq Square, dir int) bool {
	var file, rank = sq.File(), sq.Rank()
	switch dir {
	case east:
		return file < 7
	case west:
		return file > 0
	case north:
		return rank < 7
	case south:
		return rank > 0
	case ne:
		return file < 7 && rank < 7
	case se:
		return file < 7 && rank > 0
	case sw:
		return file > 0 && rank > 0
	case nw:
		return file > 0 && rank < 7
	}
	return false
}

func goTowards(sq Square, dir int) Square { return sq + Square(dir) }

// Move database: precomputed target and in-between tables, built once at
// process start and never mutated afterwards.
var (
	knightTo [64]FieldSet
	kingTo   [64]FieldSet

	bishopTo     [64]FieldSet
	rookTo       [64]FieldSet
	bishopFromTo [64 * 64]FieldSet
	rookFromTo   [64 * 64]FieldSet

	whitePawnTo, blackPawnTo         [64]FieldSet
	whitePawnFromTo, blackPawnFromTo [64 * 64]FieldSet
	whitePawnFrom, blackPawnFrom     [64]FieldSet
)

func fromTo(from, to Square) int { return int(from)<<6 + int(to) }

func genSliding(targets, fromToTable []FieldSet, directions []int) {
	for i := range fromToTable {
		fromToTable[i] = AllOnes
	}
	for from := Square(0); from < 64; from++ {
		for _, d := range directions {
			var mask FieldSet
			var at = from
			for canGo(at, d) {
				at = goTowards(at, d)
				targets[from] |= SquareSet(at)
				fromToTable[fromTo(from, at)] = mask
				mask |= SquareSet(at)
			}
		}
	}
}

func genBishop() {
	genSliding(bishopTo[:], bishopFromTo[:], []int{ne, se, sw, nw})
}

func genRook() {
	genSliding(rookTo[:], rookFromTo[:], []int{north, south, east, west})
}

func genKnight() {
	var directions = [4]int{north, south, east, west}
	var diag1 = [4]int{ne, se, ne, nw}
	var diag2 = [4]int{nw, sw, se, sw}
	for from := Square(0); from < 64; from++ {
		for i := 0; i < 4; i++ {
			var d1 = directions[i]
			if !canGo(from, d1) {
				continue
			}
			var to1 = goTowards(from, d1)
			if canGo(to1, diag1[i]) {
				knightTo[from] |= SquareSet(goTowards(to1, diag1[i]))
			}
			if canGo(to1, diag2[i]) {
				knightTo[from] |= SquareSet(goTowards(to1, diag2[i]))
			}
		}
	}
}

func genKing() {
	var directions = [8]int{north, ne, east, se, south, sw, west, nw}
	for from := Square(0); from < 64; from++ {
		for _, d := range directions {
			if canGo(from, d) {
				kingTo[from] |= SquareSet(goTowards(from, d))
			}
		}
	}
}

func genPawns() {
	for i := range whitePawnFromTo {
		whitePawnFromTo[i] = AllOnes
		blackPawnFromTo[i] = AllOnes
	}
	for from := Square(0); from < 64; from++ {
		var rank = from.Rank()

		if rank > 0 && rank < 7 {
			var one = from + north
			whitePawnTo[from] |= SquareSet(one)
			whitePawnFromTo[fromTo(from, one)] = SquareSet(one)
			if rank == 1 {
				var two = from + 2*north
				whitePawnTo[from] |= SquareSet(two)
				whitePawnFromTo[fromTo(from, two)] = SquareSet(one) | SquareSet(two)
			}
			if canGo(from, nw) {
				var to = goTowards(from, nw)
				whitePawnTo[from] |= SquareSet(to)
				whitePawnFromTo[fromTo(from, to)] = 0
				whitePawnFrom[to] |= SquareSet(from)
			}
			if canGo(from, ne) {
				var to = goTowards(from, ne)
				whitePawnTo[from] |= SquareSet(to)
				whitePawnFromTo[fromTo(from, to)] = 0
				whitePawnFrom[to] |= SquareSet(from)
			}
		}

		if rank > 0 && rank < 7 {
			var one = from + south
			blackPawnTo[from] |= SquareSet(one)
			blackPawnFromTo[fromTo(from, one)] = SquareSet(one)
			if rank == 6 {
				var two = from + 2*south
				blackPawnTo[from] |= SquareSet(two)
				blackPawnFromTo[fromTo(from, two)] = SquareSet(one) | SquareSet(two)
			}
			if canGo(from, sw) {
				var to = goTowards(from, sw)
				blackPawnTo[from] |= SquareSet(to)
				blackPawnFromTo[fromTo(from, to)] = 0
				blackPawnFrom[to] |= SquareSet(from)
			}
			if canGo(from, se) {
				var to = goTowards(from, se)
				blackPawnTo[from] |= SquareSet(to)
				blackPawnFromTo[fromTo(from, to)] = 0
				blackPawnFrom[to] |= SquareSet(from)
			}
		}
	}
}

func init() {
	genBishop()
	genRook()
	genKnight()
	genKing()
	genPawns()
}

// CanBishop returns the set of squares that must be empty for a bishop move
// from..to to be legal, or AllOnes if the move is never legal.
func CanBishop(from, to Square) FieldSet { return bishopFromTo[fromTo(from, to)] }

// CanRook returns the equivalent mask for a rook move.
func CanRook(from, to Square) FieldSet { return rookFromTo[fromTo(from, to)] }

func BishopTargets(from Square) FieldSet { return bishopTo[from] }
func RookTargets(from Square) FieldSet   { return rookTo[from] }
func QueenTargets(from Square) FieldSet  { return bishopTo[from] | rookTo[from] }
func KnightTargets(from Square) FieldSet { return knightTo[from] }
func KingTargets(from Square) FieldSet   { return kingTo[from] }

func PawnTargets(from Square, side Player) FieldSet {
	if side == White {
		return whitePawnTo[from]
	}
	return blackPawnTo[from]
}

// CanPawn returns the emptiness mask for the pawn move from..to: the squares
// that must be empty (forward moves), 0 (diagonal moves, legality decided by
// occupancy elsewhere) or AllOnes (impossible pair).
func CanPawn(from, to Square, side Player) FieldSet {
	if side == White {
		return whitePawnFromTo[fromTo(from, to)]
	}
	return blackPawnFromTo[fromTo(from, to)]
}

// PawnAttackers returns the squares from which a pawn of the given side
// could capture onto `to`.
func PawnAttackers(to Square, side Player) FieldSet {
	if side == White {
		return whitePawnFrom[to]
	}
	return blackPawnFrom[to]
}
