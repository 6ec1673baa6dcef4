package protocol

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Ingo60/frech/board"
)

// openingBook appends "<algebraic> <FEN>\n" lines for every user move
// not already recorded, split by the mover's color into
// data/opening-white and data/opening-black. This stays a flat
// append-only text file on purpose: the whole record is a training
// log for the opening repertoire, never queried by key, so a keyed
// store (a KV engine, a cache) would buy nothing here beyond what
// os.OpenFile already does.
type openingBook struct {
	dir  string
	seen map[string]bool
}

func newOpeningBook(dir string) *openingBook {
	var b = &openingBook{dir: dir, seen: map[string]bool{}}
	b.load(whiteBookPath(dir))
	b.load(blackBookPath(dir))
	return b
}

func whiteBookPath(dir string) string { return filepath.Join(dir, "opening-white") }
func blackBookPath(dir string) string { return filepath.Join(dir, "opening-black") }

func (b *openingBook) load(path string) {
	var f, err = os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	var scanner = bufio.NewScanner(f)
	for scanner.Scan() {
		b.seen[scanner.Text()] = true
	}
}

// record appends alg played from before, the position before the
// move was applied, keyed by the mover's color, unless that exact
// line was already recorded.
func (b *openingBook) record(alg string, before *board.Position) {
	var line = alg + " " + board.Encode(before)
	if b.seen[line] {
		return
	}
	var path = whiteBookPath(b.dir)
	if before.SideToMove() == board.Black {
		path = blackBookPath(b.dir)
	}
	var f, err = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintln(f, line)
	b.seen[line] = true
}
