package types

import (
	"fmt"
	"strings"
)

// ExitError represents an error with an associated exit code for CLI commands.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ConfigurationError is returned when required options are missing or invalid. It is
// raised before any filesystem access happens.
type ConfigurationError struct {
	Problems []string
}

func (e *ConfigurationError) Error() string {
	if len(e.Problems) == 0 {
		return "configuration error"
	}
	if len(e.Problems) == 1 {
		return "configuration error: " + e.Problems[0]
	}
	msg := "configuration errors:"
	for _, p := range e.Problems {
		msg += "\n  - " + p
	}
	return msg
}

// DataLoadError represents a data source that could not be read or parsed.
type DataLoadError struct {
	Source string
	Err    error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("unable to load data source %s: %v", e.Source, e.Err)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

// NoMatchError is returned when a source pattern does not match any file.
type NoMatchError struct {
	Pattern string
}

func (e *NoMatchError) Error() string {
	return "no input files found for source path " + e.Pattern
}

// FileAccessError wraps a stat/read/write/mkdir failure for a specific path.
type FileAccessError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return strings.TrimSpace(e.Op+" "+e.Path) + ": " + e.Err.Error()
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// DedentError is returned by util.Dedent when a line lacks the common prefix.
type DedentError struct {
	Line   string
	Prefix string
}

func (e *DedentError) Error() string {
	return "cannot dedent line: \"" + e.Line + "\" with prefix: \"" + e.Prefix + "\""
}
