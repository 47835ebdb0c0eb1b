package constants

// Buffer size constants in bytes
const (
	// ReadBufferSize is the size of the chunk buffer used to read sources (64KB)
	ReadBufferSize = 64 * 1024

	// LineBufferInitialCapacity is the initial capacity for pooled line buffers (4KB)
	LineBufferInitialCapacity = 4096

	// LoggerBufferChannelMultiplier sizes the async logger channel.
	// Calculated as runtime.NumCPU() * LoggerBufferChannelMultiplier at runtime
	LoggerBufferChannelMultiplier = 100
)
