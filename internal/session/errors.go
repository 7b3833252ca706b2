package session

import "errors"

var (
	// ErrUnknownRecord indicates a record id that was never imported.
	ErrUnknownRecord = errors.New("unknown record")
	// ErrNoFilesSelected indicates an import with no paths.
	ErrNoFilesSelected = errors.New("no files selected")
	// ErrUnknownCommand indicates a command line or value the session does not understand.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUsage indicates a known command with malformed arguments.
	ErrUsage = errors.New("usage")
)
