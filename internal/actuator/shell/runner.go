package shell

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Runner executes one external command and returns its combined output.
// It exists so actuator tests can substitute a fake that scripts outcomes
// without spawning processes.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// ExecRunner runs commands via os/exec with a per-call timeout.
type ExecRunner struct {
	Timeout time.Duration
}

// NewExecRunner creates an ExecRunner. A zero timeout defaults to 10s.
func NewExecRunner(timeout time.Duration) *ExecRunner {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ExecRunner{Timeout: timeout}
}

// Run executes the command and returns trimmed combined output.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	output := strings.TrimSpace(string(out))
	if err != nil {
		if output != "" {
			return output, fmt.Errorf("%s: %w: %s", name, err, output)
		}
		return output, fmt.Errorf("%s: %w", name, err)
	}
	return output, nil
}

// run resolves a command template to (name, args) and executes it, appending
// any extra arguments to the template's argv.
func run(ctx context.Context, runner Runner, argv []string, extra ...string) (string, error) {
	if len(argv) == 0 {
		return "", fmt.Errorf("empty command template")
	}
	args := append(append([]string{}, argv[1:]...), extra...)
	return runner.Run(ctx, argv[0], args...)
}
