package api

import "fmt"

// StatusError reports a completed HTTP exchange that ended in a non-2xx
// status. The body, if any, has already been drained and discarded.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api: %s %s returned status %d", e.Method, e.Path, e.Code)
}

// TransportError reports a request that never produced an HTTP response:
// connection refused, DNS failure, timeout, or a cancelled context.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("api: %s %s failed: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
