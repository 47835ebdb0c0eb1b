package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/mimecast/webgrep/internal/constants"
)

// Args is a helper struct to summarize common client arguments.
type Args struct {
	ConfigFile            string
	Pattern               string
	SourcesStr            string
	SourcesFile           string
	Consumers             int
	Timeout               time.Duration
	MaxLineLength         int
	RegexMode             bool
	RegexInvert           bool
	Sorted                bool
	Sentinel              bool
	Plain                 bool
	NoColor               bool
	Quiet                 bool
	Logger                string
	LogLevel              string
	LogDir                string
	UserName              string
	SSHPrivateKeyFilePath string
	SSHKnownHostsFile     string
	TrustAllHosts         bool
}

// AddFlags registers all configuration flags on fs. Only flags explicitly set
// on the command line take precedence over the environment and config file.
func AddFlags(fs *flag.FlagSet, args *Args) {
	fs.StringVar(&args.ConfigFile, "cfg", "", "Config file path")
	fs.StringVar(&args.Pattern, "pattern", DefaultPattern, "Substring to search for")
	fs.StringVar(&args.Pattern, "grep", DefaultPattern, "Alias for -pattern")
	fs.StringVar(&args.SourcesStr, "sources", "", "Comma separated list of sources")
	fs.StringVar(&args.SourcesFile, "sourcesFile", "", "File with one source per line")
	fs.IntVar(&args.Consumers, "consumers", DefaultConsumers, "Number of line matchers")
	fs.DurationVar(&args.Timeout, "timeout", constants.DefaultSourceTimeout,
		"Per source timeout, 0 disables it")
	fs.IntVar(&args.MaxLineLength, "maxLineLength", constants.DefaultMaxLineLength,
		"Split lines longer than this many bytes")
	fs.BoolVar(&args.RegexMode, "regex", false, "Interpret pattern as a regular expression")
	fs.BoolVar(&args.RegexInvert, "invert", false, "Select non-matching lines")
	fs.BoolVar(&args.Sorted, "sorted", false, "Print matches sorted by source and line number")
	fs.BoolVar(&args.Sentinel, "sentinel", false,
		"Stop matchers with counted end-of-work sentinels instead of closing the queue")
	fs.BoolVar(&args.Plain, "plain", false, "Plain output mode")
	fs.BoolVar(&args.NoColor, "noColor", false, "Disable ANSII terminal colors")
	fs.BoolVar(&args.Quiet, "quiet", false, "Quiet output mode")
	fs.StringVar(&args.Logger, "logger", DefaultClientLogger, "Logger name (stderr, stdout, file, fout, none)")
	fs.StringVar(&args.LogLevel, "logLevel", DefaultLogLevel, "Log level")
	fs.StringVar(&args.LogDir, "logDir", "log", "Log dir")
	fs.StringVar(&args.UserName, "user", "", "Default user for ssh:// sources")
	fs.StringVar(&args.SSHPrivateKeyFilePath, "key", "", "Path to private key for ssh:// sources")
	fs.StringVar(&args.SSHKnownHostsFile, "knownHosts", "", "Known hosts file for ssh:// sources")
	fs.BoolVar(&args.TrustAllHosts, "trustAllHosts", false, "Trust all unknown host keys")
}

func (a Args) String() string {
	return fmt.Sprintf("Args(ConfigFile:%s,Pattern:%s,SourcesStr:%s,SourcesFile:%s,"+
		"Consumers:%d,Timeout:%v,RegexMode:%t,RegexInvert:%t,Sorted:%t,Sentinel:%t,"+
		"Plain:%t,NoColor:%t,Quiet:%t,Logger:%s,LogLevel:%s,UserName:%s,TrustAllHosts:%t)",
		a.ConfigFile, a.Pattern, a.SourcesStr, a.SourcesFile, a.Consumers, a.Timeout,
		a.RegexMode, a.RegexInvert, a.Sorted, a.Sentinel, a.Plain, a.NoColor, a.Quiet,
		a.Logger, a.LogLevel, a.UserName, a.TrustAllHosts)
}
