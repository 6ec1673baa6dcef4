package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Ingo60/frech/board"
)

// handleLine dispatches one stdin line. It returns false only for
// "quit", which ends the whole Run loop.
func (d *Driver) handleLine(raw string) bool {
	var text = strings.TrimSpace(raw)
	if text == "" {
		return true
	}
	var fields = strings.Fields(text)
	var name = fields[0]
	var args = fields[1:]

	if d.state.State == Thinking {
		switch name {
		case "?":
			d.forceCommit()
			return true
		case "new", "force", "setboard", "undo", "remove", "quit":
			d.cancelThinking()
		case "usermove", "go", "playother":
			fmt.Fprintf(d.out, "Error (command not legal now): %s\n", text)
			return true
		}
	}

	switch name {
	case "xboard", "random", "hard", "easy", "post", "computer", "accepted", "rejected":
		// acknowledged, no state change
	case "protover":
		d.emitFeatures()
	case "new":
		d.cmdNew()
	case "quit":
		return false
	case "force":
		d.state.State = Forced
	case "playother":
		d.state.EngineColor = d.state.Current().SideToMove().Other()
		d.state.State = Playing
	case "go":
		d.state.EngineColor = d.state.Current().SideToMove()
		d.startThinking()
	case "setboard":
		d.cmdSetBoard(strings.Join(args, " "))
	case "usermove":
		d.cmdUserMove(firstOrEmptyString(args))
	case "result":
		d.state.State = Forced
	case "undo":
		d.cmdUndo()
	case "remove":
		d.cmdRemove()
	case "time":
		d.state.MyTimeMs = parseCentisecondsToMs(args)
	case "otim":
		d.state.OppTimeMs = parseCentisecondsToMs(args)
	case "cores":
		d.cmdCores(args)
	case "level", "st", "sd", "nps":
		// acknowledged
	case "?":
		// nothing to commit when not thinking
	default:
		fmt.Fprintf(d.out, "Error (unknown command): %s\n", text)
	}
	return true
}

func (d *Driver) emitFeatures() {
	fmt.Fprintln(d.out, `feature myname="frech" ping=0 setboard=1 playother=1 usermove=1 draw=0 sigint=0 analyze=1 variants="normal" colors=0 nps=0 debug=1 memory=0 smp=1 done=1`)
}

func (d *Driver) cmdNew() {
	d.state.History = []board.Position{board.NewInitialPosition()}
	d.state.EngineColor = board.Black
	d.state.State = Playing
}

func (d *Driver) cmdSetBoard(fen string) {
	var p, err = board.Decode(fen)
	if err != nil {
		fmt.Fprintf(d.out, "Error (%s)\n", err)
		d.state.State = Forced
		return
	}
	d.state.History = []board.Position{p}
	d.state.State = Forced
}

func (d *Driver) cmdUserMove(alg string) {
	var m, ok = board.ParseMove(d.state.Current(), alg)
	if !ok {
		fmt.Fprintf(d.out, "Illegal move: '%s'\n", alg)
		return
	}
	var before = *d.state.Current()
	var next, applied = board.ApplyMove(&before, m)
	if !applied {
		fmt.Fprintf(d.out, "Illegal move: '%s'\n", alg)
		return
	}
	if !board.VerifyHash(&next) {
		fmt.Fprintln(d.out, "# ZOBRIST HASH FAILURE")
	}
	d.book.record(m.String(), &before)
	d.pushHistory(next)
	if d.state.State == Playing && d.state.EngineColor == next.SideToMove() {
		d.startThinking()
	}
}

func (d *Driver) cmdUndo() {
	if len(d.state.History) <= 1 {
		return
	}
	d.state.History = d.state.History[1:]
	d.state.State = Forced
}

func (d *Driver) cmdRemove() {
	if len(d.state.History) <= 2 {
		return
	}
	d.state.History = d.state.History[2:]
	d.state.State = Forced
}

func (d *Driver) cmdCores(args []string) {
	var n, err = strconv.Atoi(firstOrEmptyString(args))
	if err != nil || n < 1 {
		return
	}
	d.state.CoreLimit = n
}

// announceTerminal checks the position reached after a committed
// move for mate, stalemate, the 50-move rule, or a repeated position,
// and emits the matching result line.
func (d *Driver) announceTerminal() {
	var cur = d.state.Current()
	var legal = board.GenerateLegalMoves(cur)
	var inCheck = cur.IsAttacked(cur.KingSquare(cur.SideToMove()), cur.SideToMove().Other())

	switch {
	case len(legal) == 0 && inCheck:
		if cur.SideToMove() == board.Black {
			fmt.Fprintln(d.out, "1-0 {White mates}")
		} else {
			fmt.Fprintln(d.out, "0-1 {Black mates}")
		}
		d.state.State = Forced
	case len(legal) == 0:
		fmt.Fprintln(d.out, "1/2-1/2 {Stalemate}")
		d.state.State = Forced
	case cur.HalfmoveClock >= 100:
		fmt.Fprintln(d.out, "1/2-1/2 {50 moves}")
		d.state.State = Forced
	case d.isRepetition():
		fmt.Fprintln(d.out, "1/2-1/2 {repetition}")
		d.state.State = Forced
	}
}

func (d *Driver) isRepetition() bool {
	var cur = d.state.Current()
	var count = 0
	for i := range d.state.History {
		if cur.Equals(&d.state.History[i]) {
			count++
			if count > 1 {
				return true
			}
		}
	}
	return false
}

func firstOrEmptyString(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// parseCentisecondsToMs converts the protocol's "time"/"otim" argument
// (centiseconds, per the CECP source convention) into milliseconds.
func parseCentisecondsToMs(args []string) int {
	var n, err = strconv.Atoi(firstOrEmptyString(args))
	if err != nil {
		return 0
	}
	return n * 10
}
