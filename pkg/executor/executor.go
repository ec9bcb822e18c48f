package executor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

type implExecutor struct{}

// New creates a new Executor instance
func New() Executor {
	return &implExecutor{}
}

// Execute runs an external command with the given arguments
func (e *implExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	stdout, _, err := run(ctx, name, args...)
	return stdout, err
}

// ExecuteStrict runs an external command and treats any stderr output as a
// failure, regardless of exit code.
func (e *implExecutor) ExecuteStrict(ctx context.Context, name string, args ...string) (string, error) {
	stdout, stderr, err := run(ctx, name, args...)
	if err != nil {
		return "", err
	}
	if stderr != "" {
		return "", fmt.Errorf("command '%s' wrote to stderr: %s", name, stderr)
	}
	return stdout, nil
}

func run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	stderrStr := strings.TrimSpace(stderr.String())

	if err != nil {
		if ctx.Err() != nil {
			return "", "", ctx.Err()
		}
		if stderrStr != "" {
			return "", "", fmt.Errorf("command '%s' failed: %w\nstderr: %s", name, err, stderrStr)
		}
		return "", "", fmt.Errorf("command '%s' failed: %w", name, err)
	}

	return stdout.String(), stderrStr, nil
}
