package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// History constants
const (
	// HistoryLimit is the maximum number of records kept in the launch history
	HistoryLimit = 10
	// HistoryKey names the persisted collection holding the ordered history
	HistoryKey = "history"
)

// Launch constants
const (
	// DefaultSteamClientInstallPath is where Proton looks for the Steam runtime
	DefaultSteamClientInstallPath = "~/.steam/root"
	// DefaultDLLOverrides lets patch DLLs placed next to the game load first
	DefaultDLLOverrides = "dinput8,dsound,winmm,version,dxgi=n,b"
	// DefaultGamescopeBinary is the compositor executable used when gamescope is enabled
	DefaultGamescopeBinary = "gamescope"
	// DefaultForceCloseGrace is how long terminated games get before SIGKILL
	DefaultForceCloseGrace = 2 * time.Second
)

// Storage backends
const (
	StorageBackendJSON   = "json"
	StorageBackendSQLite = "sqlite"
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
	// LogTimestampFormat prefixes session log lines
	LogTimestampFormat = "15:04:05"
)

// UnknownGameName is used when no name can be derived from the executable path.
const UnknownGameName = "Unknown"
