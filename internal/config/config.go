// Package config provides configuration management for WebGrep. It merges
// values from multiple sources with proper precedence and exposes the result
// through package level variables.
//
// Configuration precedence (highest to lowest):
// 1. Command-line arguments (only flags explicitly set)
// 2. Environment variables (WEBGREP_ prefix)
// 3. Configuration file (any format viper understands)
// 4. Default values
package config

import (
	"bufio"
	"flag"
	"os"
	"strings"

	"github.com/mimecast/webgrep/internal/constants"
	"github.com/mimecast/webgrep/internal/errors"

	"github.com/spf13/viper"
	"golang.org/x/term"
)

const (
	// EnvPrefix is the prefix of all environment variables read by WebGrep.
	EnvPrefix string = "WEBGREP"
	// InterruptTimeoutS specifies the Ctrl+C log pause interval.
	InterruptTimeoutS int = constants.InterruptTimeoutSeconds
	// DefaultConsumers is the default line matcher pool size.
	DefaultConsumers int = constants.DefaultConsumers
	// DefaultSSHPort is the port used by ssh:// sources without explicit port.
	DefaultSSHPort int = constants.DefaultSSHPort
	// DefaultLogLevel specifies the default log level.
	DefaultLogLevel string = "warn"
	// DefaultClientLogger specifies the default logger for the client command.
	DefaultClientLogger string = "stderr"
	// DefaultPattern is the substring searched for when none is given.
	DefaultPattern string = "6.005"
)

// DefaultSources are searched when no source was configured.
var DefaultSources = []string{
	"http://web.mit.edu/6.005/www/sp14/psets/ps0/",
	"http://web.mit.edu/6.005/www/sp14/psets/ps1/",
	"http://web.mit.edu/6.005/www/sp14/psets/ps2/",
}

// Client holds the WebGrep client configuration.
// This global variable provides access to client-specific settings
// after configuration initialization.
var Client *ClientConfig

// Common holds settings shared by all components, such as logging.
var Common *CommonConfig

// Setup initializes the configuration from defaults, the optional config
// file, the environment and the explicitly set flags of fs. additionalArgs
// (usually flag.Args()) are appended to the source list.
func Setup(args *Args, fs *flag.FlagSet, additionalArgs []string) error {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if args.ConfigFile != "" && args.ConfigFile != "none" {
		v.SetConfigFile(args.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(errors.ErrInvalidConfig, "reading config file %s: %v",
				args.ConfigFile, err)
		}
	}

	if fs != nil {
		fs.Visit(func(f *flag.Flag) {
			if key, ok := flagKeys[f.Name]; ok {
				v.Set(key, f.Value.String())
			}
		})
	}

	client, common, err := fromViper(v, additionalArgs)
	if err != nil {
		return err
	}
	if err := client.Validate(); err != nil {
		return err
	}

	// Make config accessible globally
	Client = client
	Common = common
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyPattern, DefaultPattern)
	v.SetDefault(keyConsumers, DefaultConsumers)
	v.SetDefault(keyTimeout, constants.DefaultSourceTimeout)
	v.SetDefault(keyMaxLineLength, constants.DefaultMaxLineLength)
	v.SetDefault(keyLogger, DefaultClientLogger)
	v.SetDefault(keyLogLevel, DefaultLogLevel)
	v.SetDefault(keyLogDir, "log")
	v.SetDefault(keySSHUser, os.Getenv("USER"))
}

func fromViper(v *viper.Viper, additionalArgs []string) (*ClientConfig, *CommonConfig, error) {
	client := NewDefaultClientConfig()
	client.Pattern = v.GetString(keyPattern)
	client.Consumers = v.GetInt(keyConsumers)
	client.Timeout = v.GetDuration(keyTimeout)
	client.MaxLineLength = v.GetInt(keyMaxLineLength)
	client.RegexMode = v.GetBool(keyRegex)
	client.RegexInvert = v.GetBool(keyInvert)
	client.Sorted = v.GetBool(keySorted)
	client.Sentinel = v.GetBool(keySentinel)
	client.Plain = v.GetBool(keyPlain)
	client.Quiet = v.GetBool(keyQuiet)
	client.SSHUser = v.GetString(keySSHUser)
	client.SSHPrivateKeyFilePath = v.GetString(keySSHKey)
	client.SSHKnownHostsFile = v.GetString(keySSHKnownHosts)
	client.TrustAllHosts = v.GetBool(keyTrustAllHosts)

	noColor := v.GetBool(keyNoColor)
	client.TermColorsEnable = !noColor && !client.Plain && term.IsTerminal(int(os.Stdout.Fd()))

	sources := splitSources(v.GetStringSlice(keySources))
	if file := v.GetString(keySourcesFile); file != "" {
		fileSources, err := readSourcesFile(file)
		if err != nil {
			return nil, nil, err
		}
		sources = append(sources, fileSources...)
	}
	sources = append(sources, splitSources(additionalArgs)...)
	if len(sources) == 0 {
		sources = append(sources, DefaultSources...)
	}
	client.Sources = sources

	common := &CommonConfig{
		Logger:   v.GetString(keyLogger),
		LogLevel: v.GetString(keyLogLevel),
		LogDir:   v.GetString(keyLogDir),
	}
	return client, common, nil
}

// splitSources flattens comma separated entries and drops empty ones.
func splitSources(entries []string) (sources []string) {
	for _, entry := range entries {
		for _, src := range strings.Split(entry, ",") {
			if src = strings.TrimSpace(src); src != "" {
				sources = append(sources, src)
			}
		}
	}
	return
}

// readSourcesFile reads one source per line, ignoring blank lines and
// lines starting with '#'.
func readSourcesFile(path string) (sources []string, err error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "opening sources file: %v", err)
	}
	defer fd.Close()

	scanner := bufio.NewScanner(fd)
	for scanner.Scan() {
		src := strings.TrimSpace(scanner.Text())
		if src == "" || strings.HasPrefix(src, "#") {
			continue
		}
		sources = append(sources, src)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "reading sources file: %v", err)
	}
	return sources, nil
}
