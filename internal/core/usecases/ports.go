// Package usecases defines the ports the CLI wires into the TOON codec:
// logging, progress/report output, configuration, path resolution, file
// watching, output encoding, and text validation. The codec itself
// (internal/toon/codec) depends on none of these — spec.md §5 requires
// it to be pure and single-threaded per call — so every port here
// belongs to the ambient stack around it, not the codec.
package usecases

import (
	"context"
	"time"

	"github.com/madstone-tech/toon/internal/core/entities"
)

// FileWatcher defines the interface for monitoring file system changes.
//
// Implementations MUST use efficient file system APIs (e.g., fsnotify on Linux/macOS)
// and debounce rapid successive events before re-running a conversion.
type FileWatcher interface {
	// Watch starts monitoring a path for changes.
	// Sends change events to the returned channel; the channel closes on Stop.
	Watch(ctx context.Context, targetPath string) (<-chan FileChangeEvent, error)

	// Stop halts file watching and closes all channels.
	Stop() error
}

// FileChangeEvent describes a change detected by the file watcher.
type FileChangeEvent struct {
	// Path is the absolute path of the changed file.
	Path string
	// Op is one of: create, write, remove, rename, chmod.
	Op string
}

// Logger defines the interface for structured logging.
//
// Implementations MUST emit JSON logs to stderr so stdout stays reserved
// for encode/decode output.
type Logger interface {
	// Debug logs a debug-level message.
	Debug(msg string, keysAndValues ...any)

	// Info logs an info-level message.
	Info(msg string, keysAndValues ...any)

	// Warn logs a warning-level message.
	Warn(msg string, keysAndValues ...any)

	// Error logs an error-level message.
	Error(msg string, err error, keysAndValues ...any)

	// WithContext returns a logger that includes the given context (for request/operation tracking).
	WithContext(ctx context.Context) Logger

	// WithFields returns a logger with additional structured fields.
	WithFields(keysAndValues ...any) Logger
}

// ProgressReporter defines the interface for communicating progress to the user.
//
// Implementations MAY use terminal formatting (via lipgloss) for CLI output.
// Progress events include task completion percentage, current step, and status messages.
type ProgressReporter interface {
	// ReportProgress sends a progress update.
	ReportProgress(step string, current int, total int, message string)

	// ReportError sends an error status (typically with red/bold formatting).
	ReportError(err error)

	// ReportSuccess sends a success status (typically with green formatting).
	ReportSuccess(message string)

	// ReportInfo sends an informational message.
	ReportInfo(message string)
}

// OutputEncoder defines the interface for serializing Go values to and
// from JSON and TOON text (spec.md §6).
type OutputEncoder interface {
	// EncodeJSON serializes a value to JSON bytes.
	EncodeJSON(value any) ([]byte, error)

	// EncodeTOON serializes a value to TOON text.
	EncodeTOON(value any) ([]byte, error)

	// DecodeJSON deserializes JSON bytes into value.
	DecodeJSON(data []byte, value any) error

	// DecodeTOON deserializes TOON text into value.
	DecodeTOON(data []byte, value any) error
}

// ConfigLoader defines the interface for loading and parsing .toonrc.toml
// configuration files.
//
// Implementations MUST support a hierarchical config (project-level
// overrides global XDG defaults).
type ConfigLoader interface {
	// LoadConfig reads the project's .toonrc.toml layered over the global
	// config and built-in defaults.
	LoadConfig(ctx context.Context, projectRoot string) (*entities.ToonConfig, error)

	// SaveConfig persists configuration to a project's .toonrc.toml.
	SaveConfig(ctx context.Context, projectRoot string, config *entities.ToonConfig) error

	// LoadGlobalConfig reads the global config file.
	LoadGlobalConfig(ctx context.Context) (*entities.ToonConfig, error)

	// SaveGlobalConfig persists the global config file.
	SaveGlobalConfig(ctx context.Context, config *entities.ToonConfig) error
}

// Validator defines the interface for checking TOON text for structural
// and lexical errors without fully decoding it into a caller's value
// (spec.md §7).
type Validator interface {
	// ValidateText runs try_decode over text and reports every
	// diagnostic collected, tagged with the source path for display.
	ValidateText(ctx context.Context, path string, text string) ([]ValidationError, error)
}

// ValidationError represents a single validation issue, carrying the
// codec's error kind, the line/column it occurred at, and the source
// path (spec.md §7: diagnostics include line, column, and cause).
type ValidationError struct {
	// Code is the codec error kind (e.g. "LexicalError", "IndentError").
	Code string
	// Message is the human-readable cause.
	Message string
	// Path is the file the diagnostic belongs to.
	Path string
	// Line is the 1-based source line (0 if not applicable).
	Line int
	// Column is the 1-based source column (0 if not applicable).
	Column int
}

// PathResolver resolves XDG-compliant paths for application data.
//
// Implementations MUST support the XDG Base Directory Specification with
// env var overrides (TOON_CONFIG_HOME, XDG_CONFIG_HOME, XDG_DATA_HOME,
// XDG_CACHE_HOME).
type PathResolver interface {
	// ConfigDir returns the configuration directory path.
	ConfigDir() string

	// DataDir returns the data directory path.
	DataDir() string

	// CacheDir returns the cache directory path.
	CacheDir() string

	// ConfigFile returns the path to the global config file.
	ConfigFile() string
}

// ReportFormatter defines the interface for formatting reports for human display.
//
// Implementations MAY use terminal formatting (via lipgloss) for CLI output
// and plain text for non-TTY environments.
type ReportFormatter interface {
	// PrintValidationReport formats and displays validation diagnostics.
	PrintValidationReport(errors []ValidationError)

	// PrintConversionReport formats and displays batch conversion statistics.
	PrintConversionReport(stats ConversionStats)
}

// ConversionStats holds statistics from a batch encode/decode run
// (e.g. `toon convert` over a directory) for reporting.
type ConversionStats struct {
	// FilesConverted is the count of files successfully converted.
	FilesConverted int
	// FilesFailed is the count of files that failed to convert.
	FilesFailed int
	// BytesWritten is the total size of the generated output.
	BytesWritten int64
	// Duration is the total conversion time.
	Duration time.Duration
	// Format is the target format used ("toon" or "json").
	Format string
}
