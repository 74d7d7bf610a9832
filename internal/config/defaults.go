package config

const (
	defaultStateDir         = "~/.local/share/dronesort"
	defaultCopyBufferKiB    = 1024
	defaultHistoryListLimit = 20
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	envSourceDir            = "DRONESORT_SOURCE_DIR"
	envDestDir              = "DRONESORT_DEST_DIR"
	maxCopyBufferKiB        = 64 * 1024
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Copy: Copy{
			BufferKiB:         defaultCopyBufferKiB,
			OverwriteExisting: true,
			PreserveTimes:     true,
		},
		History: History{
			Enabled:   true,
			ListLimit: defaultHistoryListLimit,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
