// Package search implements alpha-beta negamax over the board
// package's move generator, with a transposition table, move
// ordering, killer moves and iterative deepening.
package search

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/Ingo60/frech/board"
	"github.com/Ingo60/frech/eval"
)

const (
	valueInfinity = 1 << 20
	valueMate     = 1 << 19
	maxDepth      = 64
)

// stopThinking is a process-wide stop hint read by deep recursion;
// it is a read-only optimization, never the sole source of
// correctness. Correctness of cancellation comes from the
// command-channel rendezvous in the protocol package, not from this
// flag.
var stopThinking atomic.Bool

// BeginThinking clears the stop hint at the start of a new epoch.
func BeginThinking() { stopThinking.Store(false) }

// FinishThinking raises the stop hint, asking any in-flight search to
// wind down at its next check.
func FinishThinking() { stopThinking.Store(true) }

// Killers counts, per move, how often it caused a beta cutoff; moves
// with a higher count are tried earlier in sibling searches at any
// depth. Keyed by move alone, not by move and depth.
type Killers map[board.Move]int

// Variation is a principal variation: the move sequence, its score,
// search statistics, and the transposition table it was produced
// with. TranspositionTable is the same table the Searcher keeps
// across iterative-deepening depths, shared rather than snapshotted
// so later depths keep reusing entries earlier depths populated.
type Variation struct {
	Moves              []board.Move
	Score              int
	NodesSearched      int
	Depth              int
	TranspositionTable *TranspositionTable
}

// Searcher runs iterative deepening from a fixed starting position,
// publishing an improving Variation after each completed depth.
type Searcher struct {
	TT         *TranspositionTable
	Killers    Killers
	CoreLimit  int
	nodes      int64
}

func NewSearcher(tt *TranspositionTable) *Searcher {
	return &Searcher{TT: tt, Killers: Killers{}, CoreLimit: 1}
}

// Search runs iterative deepening up to maxDepth plies, calling
// progress after every improving iteration, and returns the final
// Variation. It stops early once stopThinking is observed.
func (s *Searcher) Search(root *board.Position, progress func(Variation)) Variation {
	var legal = board.GenerateLegalMoves(root)
	if len(legal) == 0 {
		return Variation{}
	}
	var best = Variation{Moves: []board.Move{legal[0]}, TranspositionTable: s.TT}
	if len(legal) == 1 {
		return best
	}

	for depth := 1; depth <= maxDepth; depth++ {
		if stopThinking.Load() {
			break
		}
		var v, ok = s.searchRoot(root, legal, depth)
		if !ok {
			break
		}
		best = v
		if progress != nil {
			progress(best)
		}
		if best.Score >= eval.BlackMated || best.Score <= eval.WhiteMated {
			break
		}
	}
	return best
}

// searchRoot evaluates every root move at the given depth, fanning
// the work out over at most CoreLimit goroutines through an
// errgroup.Group — the "cores" protocol command bounds this limit.
func (s *Searcher) searchRoot(root *board.Position, legal []board.Move, depth int) (Variation, bool) {
	var g = new(errgroup.Group)
	g.SetLimit(maxInt(1, s.CoreLimit))

	var mu sync.Mutex
	var alpha = -valueInfinity
	var bestLine []board.Move
	var aborted atomic.Bool

	for _, move := range legal {
		var move = move
		g.Go(func() error {
			if stopThinking.Load() {
				aborted.Store(true)
				return nil
			}
			var child, ok = board.ApplyMove(root, move)
			if !ok {
				return nil
			}
			mu.Lock()
			var localAlpha = alpha
			mu.Unlock()
			var score = -s.alphaBeta(&child, -valueInfinity, -localAlpha, depth-1, 1)

			mu.Lock()
			defer mu.Unlock()
			if score > alpha {
				alpha = score
				bestLine = append([]board.Move{move}, s.pvFrom(&child, depth-1, 1)...)
			}
			return nil
		})
	}
	_ = g.Wait()

	if aborted.Load() && bestLine == nil {
		return Variation{}, false
	}
	return Variation{
		Moves:              bestLine,
		Score:              alpha,
		NodesSearched:      int(atomic.LoadInt64(&s.nodes)),
		Depth:              depth,
		TranspositionTable: s.TT,
	}, true
}

// pvFrom reconstructs the principal variation below a node by reading
// the stored PV move at each ply from the transposition table.
func (s *Searcher) pvFrom(p *board.Position, depth, height int) []board.Move {
	if depth <= 0 || height > maxDepth {
		return nil
	}
	var t, ok = s.TT.Read(p.Hash)
	if !ok || len(t.PVMoves) == 0 {
		return nil
	}
	var move = t.PVMoves[0]
	var child, applied = board.ApplyMove(p, move)
	if !applied {
		return nil
	}
	return append([]board.Move{move}, s.pvFrom(&child, depth-1, height+1)...)
}

// alphaBeta is the negamax search: returns a score from the side to
// move's perspective at p.
func (s *Searcher) alphaBeta(p *board.Position, alpha, beta, depth, height int) int {
	atomic.AddInt64(&s.nodes, 1)

	if depth <= 0 {
		return s.quiescence(p, alpha, beta, 0)
	}
	if atomic.LoadInt64(&s.nodes)%1024 == 0 && stopThinking.Load() {
		return eval.Evaluate(p)
	}

	var hash = p.Hash
	var hashMove = board.NoMove
	if t, ok := s.TT.Read(hash); ok {
		hashMove = firstOrEmpty(t.PVMoves)
		if t.Depth >= depth {
			switch t.Bound {
			case BoundExact:
				return t.Score
			case BoundLower:
				if t.Score >= beta {
					return t.Score
				}
			case BoundUpper:
				if t.Score <= alpha {
					return t.Score
				}
			}
		}
	}

	var legal = board.GenerateLegalMoves(p)
	if len(legal) == 0 {
		if p.IsAttacked(p.KingSquare(p.SideToMove()), p.SideToMove().Other()) {
			return -valueMate + height
		}
		return 0
	}

	orderMoves(p, legal, hashMove, s.Killers)

	var bestScore = -valueInfinity
	var bestMove = board.NoMove
	var originalAlpha = alpha

	for _, move := range legal {
		var child, ok = board.ApplyMove(p, move)
		if !ok {
			continue
		}
		var score = -s.alphaBeta(&child, -beta, -alpha, depth-1, height+1)
		if score > bestScore {
			bestScore = score
			bestMove = move
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			if !isCapture(p, move) {
				s.Killers[move]++
			}
			break
		}
	}

	var bound = BoundExact
	switch {
	case bestScore <= originalAlpha:
		bound = BoundUpper
	case bestScore >= beta:
		bound = BoundLower
	}
	var pv []board.Move
	if bestMove != board.NoMove {
		pv = []board.Move{bestMove}
	}
	s.TT.Update(hash, Transposition{Depth: depth, Score: bestScore, Bound: bound, PVMoves: pv})

	return bestScore
}

// quiescence extends the search with captures only, until the
// position is quiet, bounding search explosion at leaf nodes.
func (s *Searcher) quiescence(p *board.Position, alpha, beta, height int) int {
	atomic.AddInt64(&s.nodes, 1)
	var standPat = evaluateRelative(p)
	if standPat > alpha {
		alpha = standPat
	}
	if standPat >= beta {
		return beta
	}
	if height > 16 {
		return alpha
	}

	for _, move := range board.GenerateLegalMoves(p) {
		if !isCapture(p, move) {
			continue
		}
		var child, ok = board.ApplyMove(p, move)
		if !ok {
			continue
		}
		var score = -s.quiescence(&child, -beta, -alpha, height+1)
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return alpha
}

// evaluateRelative converts eval.Evaluate's White-relative centipawn
// score into the side-to-move-relative score negamax needs.
func evaluateRelative(p *board.Position) int {
	return eval.Evaluate(p) * p.SideToMove().Factor()
}

func isCapture(p *board.Position, m board.Move) bool {
	return board.CapturedPiece(p, m) != board.None
}

func firstOrEmpty(moves []board.Move) board.Move {
	if len(moves) == 0 {
		return board.NoMove
	}
	return moves[0]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
