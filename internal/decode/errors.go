package decode

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFileType indicates a file whose extension is neither .csv nor .xlsx.
	ErrUnsupportedFileType = errors.New("unsupported file type")
	// ErrFileRead indicates the file could not be read.
	ErrFileRead = errors.New("file could not be read")
	// ErrDecode indicates malformed CSV or XLSX content.
	ErrDecode = errors.New("malformed file content")
)

// FileError ties a decode failure to the file that caused it.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }

func (e *FileError) Unwrap() error { return e.Err }
