package client

import (
	"errors"
	"fmt"
)

// Kind classifies why a call to the analysis service failed.
type Kind int

const (
	// KindTransport covers everything that prevented a response:
	// connection refused, DNS failure, timeout.
	KindTransport Kind = iota
	// KindServer means the service answered with a non-success status.
	KindServer
	// KindSchema means a response arrived but did not match the
	// expected result shape.
	KindSchema
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindServer:
		return "server"
	case KindSchema:
		return "schema"
	default:
		return "unknown"
	}
}

// APIError is the single failure signal the client resolves to. Status
// is set only for KindServer.
type APIError struct {
	Kind   Kind
	Op     string
	Status int
	Err    error
}

func (e *APIError) Error() string {
	if e.Kind == KindServer {
		return fmt.Sprintf("%s: %s error: HTTP %d", e.Op, e.Kind, e.Status)
	}
	return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an *APIError of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}
