package config

import (
	"flag"
	"path/filepath"
	"testing"
	"time"

	"github.com/mimecast/webgrep/internal/constants"
	"github.com/mimecast/webgrep/internal/errors"
	"github.com/mimecast/webgrep/internal/testutil"
)

func TestConstants(t *testing.T) {
	testutil.AssertEqual(t, 22, DefaultSSHPort)
	testutil.AssertEqual(t, 2, DefaultConsumers)
	testutil.AssertEqual(t, "warn", DefaultLogLevel)
	testutil.AssertEqual(t, "stderr", DefaultClientLogger)
	testutil.AssertEqual(t, "6.005", DefaultPattern)
	testutil.AssertEqual(t, 3, len(DefaultSources))
}

// restoreGlobals resets the global configs after a test.
func restoreGlobals(t *testing.T) {
	origClient := Client
	origCommon := Common
	t.Cleanup(func() {
		Client = origClient
		Common = origCommon
	})
}

func parseFlags(t *testing.T, args *Args, argv ...string) *flag.FlagSet {
	t.Helper()
	fs := flag.NewFlagSet("webgrep", flag.ContinueOnError)
	AddFlags(fs, args)
	if err := fs.Parse(argv); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
	return fs
}

func TestSetup(t *testing.T) {
	restoreGlobals(t)

	t.Run("setup with defaults", func(t *testing.T) {
		Client = nil
		Common = nil

		args := &Args{ConfigFile: "none"}
		testutil.AssertNoError(t, Setup(args, nil, nil))

		if Client == nil || Common == nil {
			t.Fatal("Expected configs to be initialized")
		}
		testutil.AssertEqual(t, DefaultPattern, Client.Pattern)
		testutil.AssertEqual(t, DefaultConsumers, Client.Consumers)
		testutil.AssertEqual(t, constants.DefaultSourceTimeout, Client.Timeout)
		testutil.AssertEqual(t, len(DefaultSources), len(Client.Sources))
		testutil.AssertEqual(t, DefaultLogLevel, Common.LogLevel)
		testutil.AssertEqual(t, DefaultClientLogger, Common.Logger)
	})

	t.Run("flags and positional sources", func(t *testing.T) {
		args := &Args{}
		fs := parseFlags(t, args, "-consumers", "7", "-sources", "a, b", "-timeout", "5s",
			"-grep", "needle", "c")

		testutil.AssertNoError(t, Setup(args, fs, fs.Args()))
		testutil.AssertEqual(t, 7, Client.Consumers)
		testutil.AssertEqual(t, 5*time.Second, Client.Timeout)
		testutil.AssertEqual(t, "needle", Client.Pattern)
		testutil.AssertEqual(t, 3, len(Client.Sources))
		testutil.AssertEqual(t, "a", Client.Sources[0])
		testutil.AssertEqual(t, "b", Client.Sources[1])
		testutil.AssertEqual(t, "c", Client.Sources[2])
	})

	t.Run("plain disables colors", func(t *testing.T) {
		args := &Args{}
		fs := parseFlags(t, args, "-plain")
		testutil.AssertNoError(t, Setup(args, fs, nil))
		testutil.AssertEqual(t, true, Client.Plain)
		testutil.AssertEqual(t, false, Client.TermColorsEnable)
	})
}

func TestSetupPrecedence(t *testing.T) {
	restoreGlobals(t)

	dir := testutil.TempDir(t)
	cfgFile := filepath.Join(dir, "webgrep.json")
	testutil.CreateFileTree(t, dir, map[string]string{
		"webgrep.json": `{"pattern": "from-file", "consumers": 3, "logLevel": "debug",
			"sources": ["http://one", "http://two"]}`,
	})

	t.Run("config file", func(t *testing.T) {
		args := &Args{ConfigFile: cfgFile}
		testutil.AssertNoError(t, Setup(args, nil, nil))
		testutil.AssertEqual(t, "from-file", Client.Pattern)
		testutil.AssertEqual(t, 3, Client.Consumers)
		testutil.AssertEqual(t, "debug", Common.LogLevel)
		testutil.AssertEqual(t, 2, len(Client.Sources))
	})

	t.Run("environment beats config file", func(t *testing.T) {
		t.Setenv("WEBGREP_CONSUMERS", "5")
		args := &Args{ConfigFile: cfgFile}
		testutil.AssertNoError(t, Setup(args, nil, nil))
		testutil.AssertEqual(t, 5, Client.Consumers)
		testutil.AssertEqual(t, "from-file", Client.Pattern)
	})

	t.Run("flags beat environment", func(t *testing.T) {
		t.Setenv("WEBGREP_CONSUMERS", "5")
		args := &Args{ConfigFile: cfgFile}
		fs := parseFlags(t, args, "-consumers", "9")
		testutil.AssertNoError(t, Setup(args, fs, nil))
		testutil.AssertEqual(t, 9, Client.Consumers)
	})

	t.Run("missing config file", func(t *testing.T) {
		args := &Args{ConfigFile: filepath.Join(dir, "nope.json")}
		err := Setup(args, nil, nil)
		if !errors.Is(err, errors.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestSetupSourcesFile(t *testing.T) {
	restoreGlobals(t)

	path := testutil.TempFile(t, "# course pages\nhttp://a\n\n  http://b  \n#http://c\n")
	args := &Args{}
	fs := parseFlags(t, args, "-sourcesFile", path, "-sources", "http://z")

	testutil.AssertNoError(t, Setup(args, fs, nil))
	testutil.AssertEqual(t, 3, len(Client.Sources))
	testutil.AssertEqual(t, "http://z", Client.Sources[0])
	testutil.AssertEqual(t, "http://a", Client.Sources[1])
	testutil.AssertEqual(t, "http://b", Client.Sources[2])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *ClientConfig)
		valid  bool
	}{
		{"defaults", func(c *ClientConfig) {}, true},
		{"empty pattern", func(c *ClientConfig) { c.Pattern = "" }, false},
		{"zero consumers", func(c *ClientConfig) { c.Consumers = 0 }, false},
		{"too many consumers", func(c *ClientConfig) { c.Consumers = constants.MaxConsumers + 1 }, false},
		{"negative timeout", func(c *ClientConfig) { c.Timeout = -time.Second }, false},
		{"no timeout", func(c *ClientConfig) { c.Timeout = 0 }, true},
		{"zero line length", func(c *ClientConfig) { c.MaxLineLength = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewDefaultClientConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.valid {
				testutil.AssertNoError(t, err)
				return
			}
			if !errors.Is(err, errors.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSetupRejectsZeroConsumers(t *testing.T) {
	restoreGlobals(t)
	Client = nil

	args := &Args{}
	fs := parseFlags(t, args, "-consumers", "0")
	if err := Setup(args, fs, nil); !errors.Is(err, errors.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if Client != nil {
		t.Error("expected no config to be published on validation failure")
	}
}
