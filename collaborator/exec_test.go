package collaborator

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestExecScriptLines(t *testing.T) {
	e := &Exec{Command: "printf", BaseArgs: nil, Timeout: time.Second}
	lines, err := e.ScriptLines(context.Background(), "a\nb\nc\n")
	if err != nil {
		t.Fatalf("ScriptLines: %v", err)
	}
	want := []string{"a", "b", "c"}
	if len(lines) != len(want) {
		t.Fatalf("got %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("got %v, want %v", lines, want)
		}
	}
}

func TestExecScriptReturnsStdoutVerbatim(t *testing.T) {
	e := &Exec{Command: "printf", Timeout: time.Second}
	out, err := e.Script(context.Background(), "hello\n")
	if err != nil {
		t.Fatalf("Script: %v", err)
	}
	if string(out) != "hello\n" {
		t.Fatalf("got %q, want %q", out, "hello\n")
	}
}

func TestExecTimeout(t *testing.T) {
	e := &Exec{Command: "sleep", Timeout: 10 * time.Millisecond}
	_, err := e.Script(context.Background(), "1")
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("got error %v, want a timeout error", err)
	}
}

func TestExecNonZeroExit(t *testing.T) {
	e := &Exec{Command: "false", Timeout: time.Second}
	_, err := e.Script(context.Background())
	if err == nil {
		t.Fatalf("expected error from non-zero exit")
	}
}
