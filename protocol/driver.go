package protocol

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/Ingo60/frech/board"
	"github.com/Ingo60/frech/search"
)

// Driver runs the three cooperating tasks described in the design:
// a reader goroutine, at most one search worker goroutine, and this
// single-threaded event loop, rendezvousing only through messages
// and one-slot command channels.
type Driver struct {
	messages chan Input
	reader   chan bool
	state    *GameState
	tt       *search.TranspositionTable
	book     *openingBook
	out      io.Writer
	strategy string
}

// Strategy names accepted by NewDriver's strategy argument.
const (
	StrategyBest   = "best"
	StrategyFirst  = "first"
	StrategyResign = "resign"
)

// NewDriver constructs a driver ready to Run against stdin/stdout.
// strategy selects how the engine picks its move: "best" runs the
// full searcher, "first" always plays the first generated legal
// move, "resign" always resigns instead of moving.
func NewDriver(strategy string) *Driver {
	return &Driver{
		messages: make(chan Input),
		reader:   make(chan bool),
		state:    newGameState(),
		tt:       search.NewTranspositionTable(64),
		book:     newOpeningBook("data"),
		out:      os.Stdout,
		strategy: strategy,
	}
}

// Run starts the reader goroutine and processes messages until quit
// or EOF, returning the process exit code.
func (d *Driver) Run() int {
	go d.readLoop()
	for {
		var timeoutCh <-chan time.Time
		if d.state.State == Thinking && len(d.state.Best.Moves) > 0 {
			var remaining = d.state.Budget - time.Since(d.state.ThinkStart)
			if remaining < 0 {
				remaining = 0
			}
			timeoutCh = time.After(remaining)
		}
		select {
		case msg, ok := <-d.messages:
			if !ok {
				return 0
			}
			if !d.dispatch(msg) {
				return 0
			}
		case <-timeoutCh:
			d.commitBest()
		}
	}
}

// readLoop is the Reader task: it blocks on stdin, publishes Line or
// EOF, and after every Line waits for the driver's continue/stop
// token before reading the next one.
func (d *Driver) readLoop() {
	var scanner = bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		d.messages <- Line{Text: scanner.Text()}
		if !<-d.reader {
			return
		}
	}
	d.messages <- EOF{}
}

func (d *Driver) dispatch(msg Input) bool {
	switch m := msg.(type) {
	case Line:
		var cont = d.handleLine(m.Text)
		d.reader <- cont
		return cont
	case EOF:
		return false
	case MV:
		d.handleMV(m)
		return true
	case NoMore:
		d.handleNoMore(m)
		return true
	case Forget:
		if m.Sid == d.state.Sid {
			d.state.Best = search.Variation{}
		}
		return true
	case Remove:
		return true
	}
	return true
}

// startThinking spawns a worker over a snapshot of the current
// position; only one worker is ever active, identified by Sid.
func (d *Driver) startThinking() {
	d.state.State = Thinking
	d.state.Sid++
	d.state.Best = search.Variation{}
	d.state.ThinkStart = time.Now()
	d.state.Budget = computeTimePerMove(d.state.MyTimeMs, d.state.OppTimeMs)

	switch d.strategy {
	case StrategyResign:
		d.commitBest()
		return
	case StrategyFirst:
		if legal := board.GenerateLegalMoves(d.state.Current()); len(legal) > 0 {
			d.state.Best = search.Variation{Moves: []board.Move{legal[0]}}
		}
		d.commitBest()
		return
	}

	var sid = d.state.Sid
	var root = *d.state.Current()
	var coreLimit = d.state.CoreLimit
	if coreLimit < 1 {
		coreLimit = 1
	}
	search.BeginThinking()
	go d.runWorker(sid, root, coreLimit)
}

// runWorker is the Worker task. It publishes an MV after every
// improving depth and rendezvouses on the reply channel before
// publishing again; once it is told to stop it publishes nothing
// further, per the handshake rule.
func (d *Driver) runWorker(sid int, root board.Position, coreLimit int) {
	var stopped bool
	defer func() {
		// WorkerException: a panicking worker still reports end-of-search,
		// so the driver is never stuck waiting on a dead epoch.
		if recover() != nil && !stopped {
			d.messages <- NoMore{Sid: sid}
		}
	}()
	var s = search.NewSearcher(d.tt)
	s.CoreLimit = coreLimit
	var reply = make(chan bool)
	s.Search(&root, func(v search.Variation) {
		if stopped {
			return
		}
		d.messages <- MV{Sid: sid, Variation: v, Reply: reply}
		if !<-reply {
			stopped = true
		}
	})
	if !stopped {
		d.messages <- NoMore{Sid: sid}
	}
}

// cancelThinking silently cancels any active worker: it raises the
// process-wide stop hint so deep recursion winds down promptly, and
// bumps Sid so that any message the orphaned worker still manages to
// publish is discarded by the epoch filter in dispatch/handleMV.
func (d *Driver) cancelThinking() {
	if d.state.State != Thinking {
		return
	}
	search.FinishThinking()
	d.state.Sid++
}

func (d *Driver) forceCommit() {
	if d.state.State != Thinking || len(d.state.Best.Moves) == 0 {
		return
	}
	search.FinishThinking()
	d.commitBest()
}

// handleMV applies the PV tie-break rule and the 0.9*timePerMove
// lateness rule from the design, then replies on the worker's
// one-slot channel exactly once.
func (d *Driver) handleMV(m MV) {
	if m.Sid != d.state.Sid || d.state.State != Thinking {
		m.Reply <- false
		return
	}
	var elapsed = time.Since(d.state.ThinkStart)
	var lateness = time.Duration(float64(d.state.Budget) * 0.9)
	if elapsed >= lateness {
		m.Reply <- false
		search.FinishThinking()
		d.commitBest()
		return
	}
	if acceptPV(d.state.Best, m.Variation, d.state.EngineColor) {
		d.state.Best = m.Variation
	}
	m.Reply <- true
}

func (d *Driver) handleNoMore(m NoMore) {
	if m.Sid != d.state.Sid || d.state.State != Thinking {
		return
	}
	d.commitBest()
}

// acceptPV implements the PV selection tie-break: replace on a
// matching first move; otherwise flip a coin within 5 centipawns;
// otherwise prefer the higher score. Variation scores here are
// side-to-move relative (negamax convention), under which "higher
// for white, lower for black" collapses to simply "higher", since a
// relative score is already "good for the mover" regardless of color.
func acceptPV(best, incoming search.Variation, engineColor board.Player) bool {
	if len(best.Moves) == 0 {
		return true
	}
	if len(incoming.Moves) > 0 && incoming.Moves[0] == best.Moves[0] {
		return true
	}
	var delta = incoming.Score - best.Score
	if delta < 0 {
		delta = -delta
	}
	if delta <= 5 {
		return rand.Intn(2) == 0
	}
	return incoming.Score > best.Score
}

// commitBest applies state.Best's first move, announces it, and
// checks for a terminal result. It is the single landing point for
// every way a worker's epoch can end: lateness, NoMore, "?", or the
// queue timeout firing while THINKING.
func (d *Driver) commitBest() {
	d.state.Sid++
	if len(d.state.Best.Moves) == 0 {
		fmt.Fprintln(d.out, "resign")
		d.state.State = Forced
		return
	}
	var move = d.state.Best.Moves[0]
	var next, ok = board.ApplyMove(d.state.Current(), move)
	if !ok {
		fmt.Fprintln(d.out, "resign")
		d.state.State = Forced
		return
	}
	if !board.VerifyHash(&next) {
		fmt.Fprintln(d.out, "# ZOBRIST HASH FAILURE")
	}
	fmt.Fprintf(d.out, "move %s\n", move)
	d.pushHistory(next)
	d.state.State = Playing
	d.announceTerminal()
}

func (d *Driver) pushHistory(p board.Position) {
	d.state.History = append([]board.Position{p}, d.state.History...)
}

// computeTimePerMove follows the design's formula:
// clamp((myTime-oppTime)/3, -500, 3000) + max(1000, myTime/25).
func computeTimePerMove(myTimeMs, oppTimeMs int) time.Duration {
	var diff = clampInt((myTimeMs-oppTimeMs)/3, -500, 3000)
	var floor = myTimeMs / 25
	if floor < 1000 {
		floor = 1000
	}
	return time.Duration(diff+floor) * time.Millisecond
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
