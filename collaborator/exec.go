package collaborator

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/bootlin/elixir/internal/dcontext"
)

// DefaultBlobTimeout bounds how long any single collaborator invocation may
// run before it's killed. 60s matches the default the updater's worker
// pool uses for per-blob extraction calls.
const DefaultBlobTimeout = 60 * time.Second

// Exec runs the collaborator as a subprocess, following the teacher's
// os/exec-wrapping conventions elsewhere in the registry CLI tooling.
type Exec struct {
	// Command is the collaborator executable path or name.
	Command string
	// BaseArgs is prepended to every invocation (e.g. a project-root
	// flag), before the subcommand-specific args.
	BaseArgs []string
	// Timeout bounds each invocation; zero means DefaultBlobTimeout.
	Timeout time.Duration
}

func (e *Exec) timeout() time.Duration {
	if e.Timeout > 0 {
		return e.Timeout
	}
	return DefaultBlobTimeout
}

func (e *Exec) run(ctx context.Context, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout())
	defer cancel()

	allArgs := append(append([]string{}, e.BaseArgs...), args...)
	cmd := exec.CommandContext(ctx, e.Command, allArgs...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	dcontext.GetLogger(ctx).Debugf("collaborator: %s %s", e.Command, strings.Join(allArgs, " "))

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("collaborator %s %s: timed out after %s", e.Command, strings.Join(allArgs, " "), e.timeout())
		}
		return nil, fmt.Errorf("collaborator %s %s: %w: %s", e.Command, strings.Join(allArgs, " "), err, stderr.String())
	}
	return stdout.Bytes(), nil
}

// Script implements Collaborator.
func (e *Exec) Script(ctx context.Context, args ...string) ([]byte, error) {
	out, err := e.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ScriptLines implements Collaborator.
func (e *Exec) ScriptLines(ctx context.Context, args ...string) ([]string, error) {
	out, err := e.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimRight(string(out), "\n")
	if trimmed == "" {
		return nil, nil
	}
	return strings.Split(trimmed, "\n"), nil
}

var _ Collaborator = (*Exec)(nil)
