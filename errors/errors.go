package errors

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Kind closes the taxonomy of failures that can occur while processing a
// request: a parse failure aborts before any tokens are fully consumed, a
// validation failure is accumulated against a parsed document, an execution
// failure occurs while coercing variables/arguments or resolving/completing
// a value, and a type-system failure occurs only during schema construction
// and never reaches a client.
type Kind string

const (
	KindParse      Kind = "PARSE"
	KindValidation Kind = "VALIDATION"
	KindExecution  Kind = "EXECUTION"
	KindTypeSystem Kind = "TYPE_SYSTEM"
)

type QueryError struct {
	Message       string                 `json:"message"`
	Locations     []Location             `json:"locations,omitempty"`
	Path          []interface{}          `json:"path,omitempty"`
	Rule          string                 `json:"-"`
	Kind          Kind                   `json:"-"`
	ResolverError error                  `json:"-"`
	Extensions    map[string]interface{} `json:"extensions,omitempty"`
}

type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (a Location) Before(b Location) bool {
	return a.Line < b.Line || (a.Line == b.Line && a.Column < b.Column)
}

func Errorf(format string, a ...interface{}) *QueryError {
	return &QueryError{
		Message: fmt.Sprintf(format, a...),
	}
}

// WrapResolverError turns a resolver's returned error into an execution
// QueryError, keeping a Cause() chain back to the original error so a host
// can still inspect it via ResolverError.
func WrapResolverError(err error, path []interface{}) *QueryError {
	if err == nil {
		return nil
	}
	wrapped := pkgerrors.Wrap(err, "resolver error")
	return &QueryError{
		Message:       err.Error(),
		Path:          path,
		Kind:          KindExecution,
		ResolverError: wrapped,
	}
}

func (err *QueryError) Error() string {
	if err == nil {
		return "<nil>"
	}
	str := fmt.Sprintf("graphql: %s", err.Message)
	for _, loc := range err.Locations {
		str += fmt.Sprintf(" (line %d, column %d)", loc.Line, loc.Column)
	}
	return str
}

var _ error = &QueryError{}

// SubscriptionError describes a value that can report a terminal
// subscription error. This package only declares the interface: there is
// no subscription stream, a subscription operation is executed once like a
// query, and the executor never calls SubscriptionError.
type SubscriptionError interface {
	// SubscriptionError returns nil while the subscription is healthy and a
	// non-nil error once it has failed for good.
	SubscriptionError() error
}
