package protocol

import (
	"bytes"
	"testing"
)

func TestHandleLineProtoverEmitsFeatureLine(t *testing.T) {
	var d, buf = newTestDriver(t)
	d.handleLine("protover 2")
	if !bytes.Contains(buf.Bytes(), []byte(`feature myname="frech"`)) {
		t.Errorf("expected a feature line, got %q", buf.String())
	}
}

func TestHandleLineQuitStopsTheLoop(t *testing.T) {
	var d, _ = newTestDriver(t)
	if d.handleLine("quit") {
		t.Error("handleLine(\"quit\") should return false")
	}
}

func TestHandleLineUnknownCommandEmitsProtocolSyntaxError(t *testing.T) {
	var d, buf = newTestDriver(t)
	d.handleLine("frobnicate")
	if !bytes.Contains(buf.Bytes(), []byte("Error (unknown command): frobnicate")) {
		t.Errorf("got %q", buf.String())
	}
}

func TestHandleLineTimeAndOtimConvertCentisecondsToMilliseconds(t *testing.T) {
	var d, _ = newTestDriver(t)
	d.handleLine("time 600")
	d.handleLine("otim 300")
	if d.state.MyTimeMs != 6000 {
		t.Errorf("MyTimeMs = %d, want 6000", d.state.MyTimeMs)
	}
	if d.state.OppTimeMs != 3000 {
		t.Errorf("OppTimeMs = %d, want 3000", d.state.OppTimeMs)
	}
}

func TestHandleLineCoresSetsCoreLimit(t *testing.T) {
	var d, _ = newTestDriver(t)
	d.handleLine("cores 4")
	if d.state.CoreLimit != 4 {
		t.Errorf("CoreLimit = %d, want 4", d.state.CoreLimit)
	}
	d.handleLine("cores 0")
	if d.state.CoreLimit != 4 {
		t.Error("cores 0 should be ignored, not applied")
	}
}

func TestHandleLineNewResetsToInitialPosition(t *testing.T) {
	var d, _ = newTestDriver(t)
	d.cmdUserMove("e2e4") // mutate history first
	d.handleLine("new")
	if len(d.state.History) != 1 {
		t.Errorf("history length = %d, want 1 after new", len(d.state.History))
	}
	if d.state.State != Playing {
		t.Errorf("state = %v, want Playing after new", d.state.State)
	}
}

func TestHandleLineUndoRefusesAtRoot(t *testing.T) {
	var d, _ = newTestDriver(t)
	d.handleLine("undo")
	if len(d.state.History) != 1 {
		t.Error("undo at the root position must be a no-op")
	}
}

func TestHandleLineUndoAndRemove(t *testing.T) {
	var d, _ = newTestDriver(t)
	d.state.State = Forced
	d.cmdUserMove("e2e4")
	d.cmdUserMove("e7e5")
	if len(d.state.History) != 3 {
		t.Fatalf("history length = %d, want 3", len(d.state.History))
	}
	d.handleLine("undo")
	if len(d.state.History) != 2 {
		t.Errorf("history length = %d, want 2 after undo", len(d.state.History))
	}
	d.cmdUserMove("e7e5")
	d.handleLine("remove")
	if len(d.state.History) != 1 {
		t.Errorf("history length = %d, want 1 after remove", len(d.state.History))
	}
}
