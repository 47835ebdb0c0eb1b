package signal

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"
)

func TestTerminationSignalCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	InterruptChWithCancel(ctx, cancel)
	if err := syscall.Kill(os.Getpid(), syscall.SIGHUP); err != nil {
		t.Fatalf("unable to send signal: %v", err)
	}

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatalf("context not cancelled after SIGHUP")
	}
}

func TestNoCh(t *testing.T) {
	select {
	case <-NoCh(context.Background()):
		t.Fatalf("NoCh must never deliver")
	default:
	}
}
