package converter

import "fmt"

// NotFoundError reports a missing file or directory.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.Path)
}

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(path string) *NotFoundError {
	return &NotFoundError{Path: path}
}

// InvalidDocumentError reports content that is not well-formed XML or a file
// outside the extension allow-list.
type InvalidDocumentError struct {
	Path    string
	Message string
	Cause   error
}

func (e *InvalidDocumentError) Error() string {
	where := e.Path
	if where == "" {
		where = "input"
	}
	if e.Cause != nil {
		return fmt.Sprintf("invalid document %s: %s (%v)", where, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid document %s: %s", where, e.Message)
}

func (e *InvalidDocumentError) Unwrap() error {
	return e.Cause
}

// NewInvalidDocumentError creates an InvalidDocumentError.
func NewInvalidDocumentError(path, message string, cause error) *InvalidDocumentError {
	return &InvalidDocumentError{Path: path, Message: message, Cause: cause}
}

// DecodeError reports that no candidate text encoding produced a non-empty
// decode of the source.
type DecodeError struct {
	Path  string
	Cause error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cannot decode %s: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("cannot decode %s", e.Path)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// NewDecodeError creates a DecodeError.
func NewDecodeError(path string, cause error) *DecodeError {
	return &DecodeError{Path: path, Cause: cause}
}

// WriteError reports that the output sink could not be created or written.
type WriteError struct {
	Path  string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("cannot write %s: %v", e.Path, e.Cause)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}

// NewWriteError creates a WriteError.
func NewWriteError(path string, cause error) *WriteError {
	return &WriteError{Path: path, Cause: cause}
}
