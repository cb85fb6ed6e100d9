// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The launch session, history service and doctor depend only on these
// contracts. Concrete adapters live under internal/infrastructure:
//   - KeyValueStore: JSON file, SQLite and in-memory stores
//   - Launcher: the Proton process backend
//   - PathPicker: the terminal file picker
//   - ConfigurationStore / ConfigProvider: files under ~/.easyproton
package ports

import (
	"context"

	"github.com/doeshing/easy-proton/internal/domain"
)

// ConfigProvider loads the application settings.
// Implementations typically read from ~/.easyproton/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// ConfigurationStore remembers the last launch configuration so the next
// launch can start from it. Load returns nil when nothing was saved yet.
type ConfigurationStore interface {
	Load(ctx context.Context) (*domain.LaunchConfiguration, error)
	Save(ctx context.Context, cfg domain.LaunchConfiguration) error
}

// KeyValueStore is the persistence backend for the history collection.
// Set may buffer; Flush makes every pending Set durable. Callers always
// pair Set with Flush.
type KeyValueStore interface {
	// Get decodes the value stored under key into dst. It reports false
	// when the key does not exist.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Flush(ctx context.Context) error
	Close() error
}

// Launcher starts games and stops the ones it started. Both operations
// return a human-readable status line or a backend-specific error.
type Launcher interface {
	Launch(ctx context.Context, cfg domain.LaunchConfiguration) (string, error)
	ForceCloseAll(ctx context.Context) (string, error)
}

// PathPicker lets the user choose a file or directory. ok is false when the
// user cancelled.
type PathPicker interface {
	Pick(ctx context.Context, directory bool) (path string, ok bool, err error)
}

// ConfirmationPrompter asks the user to confirm destructive actions.
type ConfirmationPrompter interface {
	Confirm(question string) (bool, error)
	Enabled() bool
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
