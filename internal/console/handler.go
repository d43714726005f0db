package console

import "context"

// CommandHandler defines the interface for executing console commands
type CommandHandler interface {
	// Execute runs the command and returns output or error
	Execute(ctx context.Context, args []string) (string, error)

	// Usage returns the argument synopsis shown by help
	Usage() string
}
