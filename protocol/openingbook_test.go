package protocol

import (
	"os"
	"testing"

	"github.com/Ingo60/frech/board"
)

func TestOpeningBookRecordsToTheRightFileByColor(t *testing.T) {
	var dir = t.TempDir()
	var b = newOpeningBook(dir)

	var white = board.NewInitialPosition()
	b.record("e2e4", &white)

	var black, err = board.Decode("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	b.record("e7e5", &black)

	if _, err := os.Stat(whiteBookPath(dir)); err != nil {
		t.Errorf("expected a white book file: %v", err)
	}
	if _, err := os.Stat(blackBookPath(dir)); err != nil {
		t.Errorf("expected a black book file: %v", err)
	}
}

func TestOpeningBookSkipsAnAlreadyRecordedLine(t *testing.T) {
	var dir = t.TempDir()
	var b = newOpeningBook(dir)
	var white = board.NewInitialPosition()

	b.record("e2e4", &white)
	b.record("e2e4", &white)

	var data, err = os.ReadFile(whiteBookPath(dir))
	if err != nil {
		t.Fatal(err)
	}
	var lines = countLines(string(data))
	if lines != 1 {
		t.Errorf("expected exactly one recorded line, got %d", lines)
	}
}

func TestOpeningBookLoadsPreviouslyRecordedLines(t *testing.T) {
	var dir = t.TempDir()
	var white = board.NewInitialPosition()

	var first = newOpeningBook(dir)
	first.record("e2e4", &white)

	var second = newOpeningBook(dir)
	second.record("e2e4", &white)

	var data, err = os.ReadFile(whiteBookPath(dir))
	if err != nil {
		t.Fatal(err)
	}
	if countLines(string(data)) != 1 {
		t.Error("a fresh openingBook should see the line the previous one wrote and not duplicate it")
	}
}

func countLines(s string) int {
	var n = 0
	for _, c := range s {
		if c == '\n' {
			n++
		}
	}
	return n
}
