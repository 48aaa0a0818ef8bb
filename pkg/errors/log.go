package errors

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// LogHandler is a Handler that logs errors to stderr.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

// HandleError logs an Error to stderr.
func (h *LogHandler) HandleError(err *Error) {
	if err == nil {
		return
	}
	if h.Verbose {
		fmt.Fprintf(os.Stderr, "[darkroom error] %s [%s]", err.Op, err.Kind)
		if err.Path != "" {
			fmt.Fprintf(os.Stderr, " path=%s", err.Path)
		}
		fmt.Fprintf(os.Stderr, ": %v\n", err.Err)
	} else {
		fmt.Fprintf(os.Stderr, "[darkroom error] %s: %v\n", err.Op, err.Err)
	}
}

// HandlePanic logs a PanicError to stderr.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Op != "" {
		fmt.Fprintf(os.Stderr, "[darkroom panic] %s: %v\n", err.Op, err.Value)
	} else {
		fmt.Fprintf(os.Stderr, "[darkroom panic] %v\n", err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", err.StackTrace)
	}
}

// ZapHandler is a Handler that routes reported errors through a structured
// logger. The application installs it at startup so library code can report
// without holding a logger.
type ZapHandler struct {
	Log *zap.Logger
}

// HandleError logs an Error through the structured logger.
func (h *ZapHandler) HandleError(err *Error) {
	if err == nil || h.Log == nil {
		return
	}
	h.Log.Error("operation failed",
		zap.String("op", err.Op),
		zap.Stringer("kind", err.Kind),
		zap.String("path", err.Path),
		zap.Error(err.Err))
}

// HandlePanic logs a PanicError through the structured logger.
func (h *ZapHandler) HandlePanic(err *PanicError) {
	if err == nil || h.Log == nil {
		return
	}
	h.Log.Error("recovered panic",
		zap.String("op", err.Op),
		zap.Any("value", err.Value),
		zap.String("stack", err.StackTrace))
}
