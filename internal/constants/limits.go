package constants

// Numeric limits and configuration values
const (
	// DefaultConsumers is the default size of the line matcher pool
	DefaultConsumers = 2

	// MaxConsumers caps the line matcher pool
	MaxConsumers = 1024

	// DefaultSSHPort is the port used for ssh:// sources without an explicit port
	DefaultSSHPort = 22

	// InterruptTimeoutSeconds is the window for a second Ctrl+C to cancel the run
	InterruptTimeoutSeconds = 3

	// DefaultMaxLineLength is the maximum line length before a line gets split (1MB)
	DefaultMaxLineLength = 1024 * 1024

	// PercentageMultiplier converts ratios into percentages
	PercentageMultiplier = 100.0

	// StatusOK is the exit status when every source was read
	StatusOK = 0

	// StatusSourceFailed is the exit status when at least one source failed
	StatusSourceFailed = 1

	// StatusConfigError is the exit status for invalid configuration
	StatusConfigError = 2
)
