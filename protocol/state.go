// Package protocol implements the CECP ("xboard") text-line driver:
// a single-threaded event loop that owns game state and stdout,
// cooperating with a stdin reader and at most one search worker
// through message passing, never shared mutable state.
package protocol

import (
	"time"

	"github.com/Ingo60/frech/board"
	"github.com/Ingo60/frech/search"
)

// State is one of the driver's four phases.
type State int

const (
	Forced State = iota
	Playing
	Thinking
	Terminated
)

func (s State) String() string {
	switch s {
	case Forced:
		return "forced"
	case Playing:
		return "playing"
	case Thinking:
		return "thinking"
	case Terminated:
		return "terminated"
	}
	return "invalid"
}

// Input is the closed set of messages the driver's event loop
// consumes from its single shared queue. Every variant carries
// whatever sid (epoch id) it originated from, except Line and EOF
// which come from the reader and are never stale.
type Input interface{ input() }

// Line is one command line read from stdin.
type Line struct{ Text string }

func (Line) input() {}

// EOF reports that stdin has closed.
type EOF struct{}

func (EOF) input() {}

// MV is an improved principal variation reported by a worker. Reply
// is the one-slot command channel: the driver must send exactly one
// bool on it, true to let the worker continue, false to stop it.
type MV struct {
	Sid       int
	Variation search.Variation
	Reply     chan bool
}

func (MV) input() {}

// NoMore reports that a worker's search has ended, voluntarily or
// because it observed the stop signal.
type NoMore struct{ Sid int }

func (NoMore) input() {}

// Forget reports that a worker abandoned every variation it had
// previously reported because its search tree was invalidated.
type Forget struct{ Sid int }

func (Forget) input() {}

// Remove reports that a worker invalidated one specific previously
// reported variation (distinguished from Forget, which invalidates
// everything).
type Remove struct {
	Sid       int
	Variation search.Variation
}

func (Remove) input() {}

// GameState is the driver's mutable state; nothing outside the
// driver goroutine ever touches it. History is held most-recent-first
// so "undo" and "remove" are head-drops.
type GameState struct {
	History     []board.Position
	State       State
	EngineColor board.Player
	Sid         int
	MyTimeMs    int
	OppTimeMs   int
	CoreLimit   int
	Best        search.Variation
	ThinkStart  time.Time
	Budget      time.Duration
}

func newGameState() *GameState {
	return &GameState{
		History:     []board.Position{board.NewInitialPosition()},
		State:       Forced,
		EngineColor: board.Black,
		CoreLimit:   1,
	}
}

// Current returns the position at the head of history.
func (g *GameState) Current() *board.Position { return &g.History[0] }
