// Package errors provides structured error handling for the darkroom editor.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// Kind identifies the category of an error.
type Kind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown Kind = iota
	// KindDocument indicates an adjustments-document load or save failure.
	KindDocument
	// KindBackend indicates a preview or overlay render failure.
	KindBackend
	// KindSegmentation indicates a segmentation collaborator failure.
	KindSegmentation
	// KindDecode indicates a source image decode failure.
	KindDecode
	// KindConfig indicates a configuration error.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindBackend:
		return "backend"
	case KindSegmentation:
		return "segmentation"
	case KindDecode:
		return "decode"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Error represents a structured error in the editor.
type Error struct {
	// Op is the operation that failed (e.g., "document.Load").
	Op string
	// Kind categorizes the error.
	Kind Kind
	// Err is the underlying error.
	Err error
	// Path is the file involved, if applicable.
	Path string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s [%s] path=%s: %v", e.Op, e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E constructs a structured error with the current timestamp.
func E(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err, Timestamp: time.Now()}
}

// WithPath attaches the file path involved in the failure.
func (e *Error) WithPath(path string) *Error {
	e.Path = path
	return e
}

// KindOf returns the kind of err if it is (or wraps) a structured Error,
// KindUnknown otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "editor.HandlePointer").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Handler receives errors reported through the package-level Report
// functions.
type Handler interface {
	// HandleError is called when an error is reported.
	HandleError(err *Error)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
