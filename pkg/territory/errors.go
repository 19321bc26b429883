package territory

import "fmt"

// LoadError represents a failure to load the boundary set. It is fatal for
// the caller: without boundaries no classification is possible and no
// retention decision may be made.
type LoadError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("boundary load error [path=%s]: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// NewLoadError creates a new LoadError.
func NewLoadError(path string, cause error) *LoadError {
	return &LoadError{Path: path, Cause: cause}
}
