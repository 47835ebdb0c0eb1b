// Package main provides the WebGrep command-line tool. WebGrep fetches a set
// of text sources concurrently (web pages, local files or remote files via
// SSH) and prints every line containing the search pattern, followed by the
// number of matched lines.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"sync"
	"time"

	"github.com/mimecast/webgrep/internal/clients"
	"github.com/mimecast/webgrep/internal/config"
	"github.com/mimecast/webgrep/internal/constants"
	"github.com/mimecast/webgrep/internal/io/dlog"
	"github.com/mimecast/webgrep/internal/io/signal"
	"github.com/mimecast/webgrep/internal/profiling"
	"github.com/mimecast/webgrep/internal/version"
)

// main parses the flags, sets up the configuration and logging, runs the
// grep client and exits with its status.
func main() {
	var args config.Args
	var displayVersion bool
	var pprofAddr string
	var profileFlags profiling.Flags

	fs := flag.CommandLine
	config.AddFlags(fs, &args)
	profiling.AddFlags(fs, &profileFlags)
	fs.BoolVar(&displayVersion, "version", false, "Display version")
	fs.StringVar(&pprofAddr, "pprof", "", "Start PProf server this address")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] [source ...]\n", os.Args[0])
		fs.PrintDefaults()
	}
	flag.Parse()

	if err := config.Setup(&args, fs, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(constants.StatusConfigError)
	}
	if displayVersion {
		version.PrintAndExit()
	}

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	dlog.Start(ctx, &wg, "webgrep")

	profiler := profiling.NewProfiler(profileFlags.ToConfig("webgrep"))
	profiler.LogMetrics("start")

	if pprofAddr != "" {
		go http.ListenAndServe(pprofAddr, nil)
		dlog.Client.Info("Started PProf", pprofAddr)
	}
	dlog.Client.Debug("Arguments", args.String())

	status := run(ctx, cancel)

	profiler.LogMetrics("end")
	profiler.Stop()
	cancel()
	waitForLogger(&wg)
	os.Exit(status)
}

func run(ctx context.Context, cancel context.CancelFunc) int {
	client, err := clients.NewGrepClient(config.Client, os.Stdout)
	if err != nil {
		dlog.Client.Error("Unable to create client", err)
		return constants.StatusConfigError
	}
	return client.Start(ctx, signal.InterruptChWithCancel(ctx, cancel))
}

func waitForLogger(wg *sync.WaitGroup) {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(constants.LoggerFlushTimeout):
	}
}
