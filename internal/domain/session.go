package domain

import "time"

// SessionLogEntry is one human-readable event shown to the user.
type SessionLogEntry struct {
	Timestamp time.Time
	Message   string
}

// String renders the entry the way the log panel shows it.
func (e SessionLogEntry) String() string {
	return "[" + e.Timestamp.Format(LogTimestampFormat) + "] " + e.Message
}

// LaunchState tracks a single launch cycle.
type LaunchState string

const (
	LaunchStateIdle      LaunchState = "idle"
	LaunchStateLaunching LaunchState = "launching"
)

// PathTarget names the configuration field a picked path is written to.
type PathTarget string

const (
	PathTargetRuntime    PathTarget = "proton"
	PathTargetSandbox    PathTarget = "prefix"
	PathTargetExecutable PathTarget = "game"
)

// DirectoryMode reports whether the target expects a directory.
func (t PathTarget) DirectoryMode() bool {
	return t == PathTargetSandbox
}

// Valid reports whether t is a known target.
func (t PathTarget) Valid() bool {
	switch t {
	case PathTargetRuntime, PathTargetSandbox, PathTargetExecutable:
		return true
	}
	return false
}
