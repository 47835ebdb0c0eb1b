package clients

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mimecast/webgrep/internal/config"
	"github.com/mimecast/webgrep/internal/constants"
	"github.com/mimecast/webgrep/internal/errors"
	"github.com/mimecast/webgrep/internal/testutil"
)

func clientConfig(sources ...string) *config.ClientConfig {
	return &config.ClientConfig{
		Pattern:       "6.005",
		Sources:       sources,
		Consumers:     2,
		Timeout:       constants.DefaultSourceTimeout,
		MaxLineLength: constants.DefaultMaxLineLength,
		Sorted:        true,
	}
}

func coursePages(t *testing.T) *testutil.LineServer {
	return testutil.NewLineServer(t, map[string]string{
		"/ps0/": "Problem Set 0\n6.005 Spring 2014\n",
		"/ps1/": "6.005 and 6.005 again\nnothing\n",
		"/ps2/": "nothing at all\n",
	})
}

func runClient(t *testing.T, cfg *config.ClientConfig) (string, int) {
	t.Helper()

	var out bytes.Buffer
	c, err := NewGrepClient(cfg, &out)
	testutil.AssertNoError(t, err)
	status := c.Start(context.Background(), make(chan string))
	return out.String(), status
}

func TestGrepClientOutput(t *testing.T) {
	server := coursePages(t)
	cfg := clientConfig(server.URL("/ps0/"), server.URL("/ps1/"), server.URL("/ps2/"))

	out, status := runClient(t, cfg)
	testutil.AssertEqual(t, constants.StatusOK, status)

	expected := strings.Join([]string{
		server.URL("/ps0/") + ":1:6.005 Spring 2014",
		server.URL("/ps1/") + ":0:6.005 and 6.005 again",
		"2 lines matched",
		"",
	}, "\n")
	testutil.AssertEqual(t, expected, out)
}

func TestGrepClientPlain(t *testing.T) {
	server := coursePages(t)
	cfg := clientConfig(server.URL("/ps0/"))
	cfg.Plain = true
	cfg.TermColorsEnable = true

	out, status := runClient(t, cfg)
	testutil.AssertEqual(t, constants.StatusOK, status)
	testutil.AssertEqual(t, server.URL("/ps0/")+":1:6.005 Spring 2014\n1 lines matched\n", out)
}

func TestGrepClientColors(t *testing.T) {
	server := coursePages(t)
	cfg := clientConfig(server.URL("/ps1/"))
	defaults := config.NewDefaultClientConfig()
	cfg.TermColorsEnable = true
	cfg.TermColors = defaults.TermColors

	out, status := runClient(t, cfg)
	testutil.AssertEqual(t, constants.StatusOK, status)
	testutil.AssertContains(t, out, "\x1b[")
	testutil.AssertEqual(t, 2, strings.Count(out, "\x1b[1;37;41m6.005\x1b[0m"))
	testutil.AssertContains(t, out, "1 lines matched")
}

func TestGrepClientFailedSource(t *testing.T) {
	server := coursePages(t)
	server.AddBroken("/broken/", "6.005 before failure\nsecond\n")
	cfg := clientConfig(server.URL("/ps0/"), server.URL("/broken/"), server.URL("/gone/"))

	out, status := runClient(t, cfg)
	testutil.AssertEqual(t, constants.StatusSourceFailed, status)
	testutil.AssertContains(t, out, server.URL("/broken/")+":0:6.005 before failure")
	testutil.AssertContains(t, out, "2 lines matched")
}

func TestGrepClientNoReadableSource(t *testing.T) {
	cfg := clientConfig("gopher://old.school/")
	out, status := runClient(t, cfg)
	testutil.AssertEqual(t, constants.StatusSourceFailed, status)
	testutil.AssertEqual(t, "0 lines matched\n", out)
}

func TestGrepClientInvalidConfig(t *testing.T) {
	cfg := clientConfig("http://localhost/")
	cfg.Consumers = 0
	_, err := NewGrepClient(cfg, &bytes.Buffer{})
	if !errors.Is(err, errors.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestGrepClientStatsOnInterrupt(t *testing.T) {
	server := coursePages(t)
	cfg := clientConfig(server.URL("/ps0/"))
	c, err := NewGrepClient(cfg, &bytes.Buffer{})
	testutil.AssertNoError(t, err)

	line := c.stats.statsLine(c.pipeline.Progress())
	testutil.AssertContains(t, line, "state=Starting")
	testutil.AssertContains(t, line, "sources=1")
	testutil.AssertContains(t, line, "readersDone%=0")

	statsCh := make(chan string, 1)
	statsCh <- "Hint: Hit Ctrl+C again to exit"
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	testutil.AssertEqual(t, constants.StatusOK, c.Start(ctx, statsCh))
}

func TestPercentOf(t *testing.T) {
	testutil.AssertEqual(t, 100.0, percentOf(0, 0))
	testutil.AssertEqual(t, 100.0, percentOf(4, 4))
	testutil.AssertEqual(t, 50.0, percentOf(4, 2))
}
