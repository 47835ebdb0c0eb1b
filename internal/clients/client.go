// Package clients provides the WebGrep client: it runs the grep pipeline
// over the configured sources and prints the matches and a summary.
package clients

import "context"

// Client is the interface of a runnable client.
type Client interface {
	// Start runs the client until it is done or ctx is cancelled. Every
	// message received on statsCh triggers a progress report. The returned
	// value is the exit status.
	Start(ctx context.Context, statsCh <-chan string) int
}
