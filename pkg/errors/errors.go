// Package errors provides structured error reporting for carbon.
//
// Nothing in the rendering core returns a recoverable error value. Conditions
// that a caller should know about (an unhandled supplementary kind, a render
// requested without a factory, a dequeue against an unregistered identifier)
// are reported to the global [ErrorHandler] and rendering continues.
// Misconfiguration with no safe fallback goes through [Fatal], which reports
// and then panics.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindPlatform indicates a misuse of the recycling pool of a surface.
	KindPlatform
	// KindRegistry indicates a reuse registry inconsistency.
	KindRegistry
	// KindUnhandledKind indicates a supplementary element kind with no node.
	KindUnhandledKind
	// KindMisuse indicates a caller error that was skipped.
	KindMisuse
	// KindConfiguration indicates an adapter configured without a required strategy.
	KindConfiguration
)

func (k ErrorKind) String() string {
	switch k {
	case KindPlatform:
		return "platform"
	case KindRegistry:
		return "registry"
	case KindUnhandledKind:
		return "unhandled-kind"
	case KindMisuse:
		return "misuse"
	case KindConfiguration:
		return "configuration"
	default:
		return "unknown"
	}
}

// Sentinel causes wrapped by reported errors.
var (
	// ErrNotRegistered is the cause when a pool is asked for an identifier it never saw.
	ErrNotRegistered = errors.New("reuse identifier not registered")
	// ErrUnsupportedKind is the cause when no node exists for a supplementary kind.
	ErrUnsupportedKind = errors.New("unsupported supplementary element kind")
	// ErrNoFactory is the cause when a factory render is requested without a factory.
	ErrNoFactory = errors.New("no components factory configured")
	// ErrMissingResolver is the cause when dynamic cell registration has no resolver.
	ErrMissingResolver = errors.New("dynamic cell registration requires a resolver")
)

// CarbonError represents a structured error in carbon.
type CarbonError struct {
	// Op is the operation that failed (e.g., "adapter.SupplementaryView").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Surface is the id of the surface involved, if any.
	Surface uint64
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *CarbonError) Error() string {
	if e.Surface != 0 {
		return fmt.Sprintf("%s [%s] surface=%d: %v", e.Op, e.Kind, e.Surface, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *CarbonError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "termsurface.Model.Update").
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

// ErrorHandler receives errors reported by carbon.
type ErrorHandler interface {
	// HandleError is called when an error is reported.
	HandleError(err *CarbonError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
