// Package signal turns OS signals into client actions.
package signal

import (
	"context"
	"os"
	gosignal "os/signal"
	"syscall"
	"time"

	"github.com/mimecast/webgrep/internal/config"
)

// InterruptChWithCancel returns a channel for "please print stats" signalling.
// The first Ctrl+C sends a hint on the channel. A second Ctrl+C within the
// interrupt timeout, or any termination signal, calls cancel.
func InterruptChWithCancel(ctx context.Context, cancel context.CancelFunc) <-chan string {
	sigIntCh := make(chan os.Signal, 10)
	gosignal.Notify(sigIntCh, os.Interrupt)
	sigOtherCh := make(chan os.Signal, 10)
	gosignal.Notify(sigOtherCh, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
	statsCh := make(chan string)

	go func() {
		defer gosignal.Stop(sigIntCh)
		defer gosignal.Stop(sigOtherCh)
		for {
			select {
			case <-sigIntCh:
				select {
				case statsCh <- "Hint: Hit Ctrl+C again to exit":
					select {
					case <-sigIntCh:
						cancel()
					case <-time.After(time.Second * time.Duration(config.InterruptTimeoutS)):
					}
				default:
					// Stats already printed.
				}
			case <-sigOtherCh:
				cancel()
			case <-ctx.Done():
				return
			}
		}
	}()
	return statsCh
}

// NoCh doesn't listen on a signal.
func NoCh(ctx context.Context) <-chan string {
	return make(chan string)
}
