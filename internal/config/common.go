package config

// CommonConfig stores configuration shared by all components.
type CommonConfig struct {
	// The logging backend: stderr, stdout, file, fout or none
	Logger string
	// The log level
	LogLevel string
	// The log directory used by the file based loggers
	LogDir string
}
