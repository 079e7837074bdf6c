package testing

import (
	"sync"

	"github.com/go-drift/carbon/pkg/errors"
)

// TB is the subset of *testing.T used by the helpers in this package.
type TB interface {
	Helper()
	Cleanup(func())
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// CaptureHandler collects everything reported through pkg/errors.
// All methods are safe for concurrent use.
type CaptureHandler struct {
	mu     sync.Mutex
	errs   []*errors.CarbonError
	panics []*errors.PanicError
}

// HandleError implements errors.ErrorHandler.
func (h *CaptureHandler) HandleError(err *errors.CarbonError) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errs = append(h.errs, err)
}

// HandlePanic implements errors.ErrorHandler.
func (h *CaptureHandler) HandlePanic(err *errors.PanicError) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.panics = append(h.panics, err)
}

// Errors returns the reported errors in order.
func (h *CaptureHandler) Errors() []*errors.CarbonError {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*errors.CarbonError(nil), h.errs...)
}

// Panics returns the reported panics in order.
func (h *CaptureHandler) Panics() []*errors.PanicError {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*errors.PanicError(nil), h.panics...)
}

// OfKind returns the reported errors of kind.
func (h *CaptureHandler) OfKind(kind errors.ErrorKind) []*errors.CarbonError {
	var out []*errors.CarbonError
	for _, err := range h.Errors() {
		if err.Kind == kind {
			out = append(out, err)
		}
	}
	return out
}

// CaptureErrors installs a CaptureHandler until the test ends. Tests using
// it must not run in parallel with other tests that report errors.
func CaptureErrors(t TB) *CaptureHandler {
	t.Helper()
	h := &CaptureHandler{}
	errors.SetHandler(h)
	t.Cleanup(func() { errors.SetHandler(nil) })
	return h
}
