package apperrors

import (
	"errors"
	"fmt"
)

// GatewayFailure classifies how a call to the KlicStudio service failed
// before a usable response was obtained.
type GatewayFailure string

const (
	// GatewayTimeout means the call exceeded its time budget.
	GatewayTimeout GatewayFailure = "timeout"
	// GatewayUnreachable means the connection could not be established.
	GatewayUnreachable GatewayFailure = "unreachable"
	// GatewayRemoteRejected means the service answered with a non-2xx status.
	GatewayRemoteRejected GatewayFailure = "remote_rejected"
)

// ErrInvalidArgument represents a malformed tool argument detected locally,
// before any network traffic.
type ErrInvalidArgument struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ErrInvalidArgument) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid argument %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid argument: %s", e.Reason)
}

// Is allows for error checking with errors.Is().
func (e *ErrInvalidArgument) Is(target error) bool {
	_, ok := target.(*ErrInvalidArgument)
	return ok
}

// NewInvalidArgumentError creates a new ErrInvalidArgument.
func NewInvalidArgumentError(field, reason string) *ErrInvalidArgument {
	return &ErrInvalidArgument{
		Field:  field,
		Reason: reason,
	}
}

// ErrInvalidConfig represents a rejected connector configuration value,
// such as a malformed base URL.
type ErrInvalidConfig struct {
	Value  string
	Reason string
}

// Error implements the error interface.
func (e *ErrInvalidConfig) Error() string {
	return fmt.Sprintf("invalid configuration value %q: %s", e.Value, e.Reason)
}

// Is allows for error checking with errors.Is().
func (e *ErrInvalidConfig) Is(target error) bool {
	_, ok := target.(*ErrInvalidConfig)
	return ok
}

// NewInvalidConfigError creates a new ErrInvalidConfig.
func NewInvalidConfigError(value, reason string) *ErrInvalidConfig {
	return &ErrInvalidConfig{
		Value:  value,
		Reason: reason,
	}
}

// ErrFileNotFound represents a local file that does not exist or is not
// readable at upload time.
type ErrFileNotFound struct {
	Path string
}

// Error implements the error interface.
func (e *ErrFileNotFound) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// Is allows for error checking with errors.Is().
func (e *ErrFileNotFound) Is(target error) bool {
	_, ok := target.(*ErrFileNotFound)
	return ok
}

// NewFileNotFoundError creates a new ErrFileNotFound.
func NewFileNotFoundError(path string) *ErrFileNotFound {
	return &ErrFileNotFound{Path: path}
}

// ErrGateway represents a failed exchange with the KlicStudio service.
// Status and Body are populated only for GatewayRemoteRejected.
type ErrGateway struct {
	Kind     GatewayFailure
	Endpoint string
	Status   int
	Body     string
	Err      error
}

// Error implements the error interface.
func (e *ErrGateway) Error() string {
	switch e.Kind {
	case GatewayTimeout:
		return fmt.Sprintf("request to %s timed out", e.Endpoint)
	case GatewayUnreachable:
		if e.Err != nil {
			return fmt.Sprintf("service unreachable at %s: %v", e.Endpoint, e.Err)
		}
		return fmt.Sprintf("service unreachable at %s", e.Endpoint)
	default:
		return fmt.Sprintf("request to %s rejected with status %d", e.Endpoint, e.Status)
	}
}

// Is allows for error checking with errors.Is().
func (e *ErrGateway) Is(target error) bool {
	t, ok := target.(*ErrGateway)
	if !ok {
		return false
	}
	// A zero-valued target matches any gateway error; a target with a Kind
	// matches only that failure class.
	return t.Kind == "" || t.Kind == e.Kind
}

// Unwrap exposes the underlying transport error.
func (e *ErrGateway) Unwrap() error {
	return e.Err
}

// NewTimeoutError creates an ErrGateway for an exhausted time budget.
func NewTimeoutError(endpoint string, err error) *ErrGateway {
	return &ErrGateway{Kind: GatewayTimeout, Endpoint: endpoint, Err: err}
}

// NewUnreachableError creates an ErrGateway for a connection failure.
func NewUnreachableError(endpoint string, err error) *ErrGateway {
	return &ErrGateway{Kind: GatewayUnreachable, Endpoint: endpoint, Err: err}
}

// NewRemoteRejectedError creates an ErrGateway for a non-2xx response.
func NewRemoteRejectedError(endpoint string, status int, body string) *ErrGateway {
	return &ErrGateway{Kind: GatewayRemoteRejected, Endpoint: endpoint, Status: status, Body: body}
}

// ErrNotFound represents an error when a requested resource is not found.
type ErrNotFound struct {
	Resource string
	ID       interface{}
}

// Error implements the error interface.
func (e *ErrNotFound) Error() string {
	if e.ID != nil {
		return fmt.Sprintf("%s with ID %v not found", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is allows for error checking with errors.Is().
func (e *ErrNotFound) Is(target error) bool {
	_, ok := target.(*ErrNotFound)
	return ok
}

// NewNotFoundError creates a new ErrNotFound.
func NewNotFoundError(resource string, id interface{}) *ErrNotFound {
	return &ErrNotFound{
		Resource: resource,
		ID:       id,
	}
}

// NewTaskNotFoundError creates a specific error for when a task ID is unknown
// to the service.
func NewTaskNotFoundError(taskID string) *ErrNotFound {
	return &ErrNotFound{
		Resource: "task",
		ID:       taskID,
	}
}

// ErrRemote represents a request the service accepted but answered with a
// domain-level failure in its response envelope.
type ErrRemote struct {
	Msg  string
	Code int
}

// Error implements the error interface.
func (e *ErrRemote) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("service reported an error: %s", e.Msg)
	}
	return fmt.Sprintf("service reported error code %d", e.Code)
}

// Is allows for error checking with errors.Is().
func (e *ErrRemote) Is(target error) bool {
	_, ok := target.(*ErrRemote)
	return ok
}

// NewRemoteError creates a new ErrRemote.
func NewRemoteError(msg string, code int) *ErrRemote {
	return &ErrRemote{
		Msg:  msg,
		Code: code,
	}
}

// Kind returns a stable machine-readable label for an error, suitable for
// metric labels and structured tool results. Unknown errors are labeled
// "internal".
func Kind(err error) string {
	var gw *ErrGateway
	if errors.As(err, &gw) {
		switch gw.Kind {
		case GatewayTimeout:
			return "gateway_timeout"
		case GatewayUnreachable:
			return "gateway_unreachable"
		default:
			return "remote_rejected"
		}
	}

	switch {
	case errors.Is(err, &ErrInvalidArgument{}):
		return "invalid_argument"
	case errors.Is(err, &ErrInvalidConfig{}):
		return "invalid_config"
	case errors.Is(err, &ErrFileNotFound{}):
		return "file_not_found"
	case errors.Is(err, &ErrNotFound{}):
		return "not_found"
	case errors.Is(err, &ErrRemote{}):
		return "remote_error"
	default:
		return "internal"
	}
}
