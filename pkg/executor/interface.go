package executor

import "context"

// Executor defines the interface for executing external commands
type Executor interface {
	// Execute runs a command and returns its stdout. A non-zero exit is an
	// error, with captured stderr folded into the message.
	Execute(ctx context.Context, name string, args ...string) (string, error)

	// ExecuteStrict is Execute with a harder success criterion: any output
	// on stderr fails the call even when the process exits zero. Some tools
	// (LibreOffice in particular) report real conversion problems on stderr
	// while still exiting cleanly.
	ExecuteStrict(ctx context.Context, name string, args ...string) (string, error)
}
