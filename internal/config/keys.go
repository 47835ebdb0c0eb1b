package config

// Configuration keys as used in config files. Environment variables are the
// upper case keys with the WEBGREP_ prefix, e.g. WEBGREP_CONSUMERS.
const (
	keyPattern       = "pattern"
	keySources       = "sources"
	keySourcesFile   = "sourcesFile"
	keyConsumers     = "consumers"
	keyTimeout       = "timeout"
	keyMaxLineLength = "maxLineLength"
	keyRegex         = "regex"
	keyInvert        = "invert"
	keySorted        = "sorted"
	keySentinel      = "sentinel"
	keyPlain         = "plain"
	keyNoColor       = "noColor"
	keyQuiet         = "quiet"
	keyLogger        = "logger"
	keyLogLevel      = "logLevel"
	keyLogDir        = "logDir"
	keySSHUser       = "sshUser"
	keySSHKey        = "sshKey"
	keySSHKnownHosts = "sshKnownHosts"
	keyTrustAllHosts = "trustAllHosts"
)

// flagKeys maps command line flag names to configuration keys.
var flagKeys = map[string]string{
	"pattern":       keyPattern,
	"grep":          keyPattern,
	"sources":       keySources,
	"sourcesFile":   keySourcesFile,
	"consumers":     keyConsumers,
	"timeout":       keyTimeout,
	"maxLineLength": keyMaxLineLength,
	"regex":         keyRegex,
	"invert":        keyInvert,
	"sorted":        keySorted,
	"sentinel":      keySentinel,
	"plain":         keyPlain,
	"noColor":       keyNoColor,
	"quiet":         keyQuiet,
	"logger":        keyLogger,
	"logLevel":      keyLogLevel,
	"logDir":        keyLogDir,
	"user":          keySSHUser,
	"key":           keySSHKey,
	"knownHosts":    keySSHKnownHosts,
	"trustAllHosts": keyTrustAllHosts,
}
