// Package apperrors tests verify the custom error types (ErrInvalidArgument,
// ErrInvalidConfig, ErrFileNotFound, ErrGateway, ErrNotFound, ErrRemote),
// their Error() messages, Is() matching semantics, constructor helpers, the
// Kind() classification, and compatibility with errors.Is() including through
// fmt.Errorf wrapping.
package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

// ---------------------------------------------------------------------------
// ErrInvalidArgument
// ---------------------------------------------------------------------------

func TestErrInvalidArgument_Error(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      *ErrInvalidArgument
		expected string
	}{
		{
			name:     "with field",
			err:      &ErrInvalidArgument{Field: "language", Reason: "unsupported code"},
			expected: `invalid argument "language": unsupported code`,
		},
		{
			name:     "without field",
			err:      &ErrInvalidArgument{Reason: "no fields provided"},
			expected: "invalid argument: no fields provided",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrInvalidArgument_Is(t *testing.T) {
	t.Parallel()
	err := NewInvalidArgumentError("replace", "missing separator")

	t.Run("matches another ErrInvalidArgument", func(t *testing.T) {
		if !errors.Is(err, &ErrInvalidArgument{}) {
			t.Error("expected errors.Is to match *ErrInvalidArgument")
		}
	})

	t.Run("matches regardless of field values", func(t *testing.T) {
		target := &ErrInvalidArgument{Field: "other", Reason: "other"}
		if !errors.Is(err, target) {
			t.Error("expected errors.Is to match *ErrInvalidArgument regardless of field values")
		}
	})

	t.Run("does not match ErrInvalidConfig", func(t *testing.T) {
		if errors.Is(err, &ErrInvalidConfig{}) {
			t.Error("expected errors.Is not to match *ErrInvalidConfig")
		}
	})

	t.Run("does not match plain error", func(t *testing.T) {
		if errors.Is(err, errors.New("some error")) {
			t.Error("expected errors.Is not to match a plain error")
		}
	})

	t.Run("matches through fmt.Errorf wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("validation failed: %w", err)
		if !errors.Is(wrapped, &ErrInvalidArgument{}) {
			t.Error("expected errors.Is to match *ErrInvalidArgument through wrapping")
		}
	})
}

// ---------------------------------------------------------------------------
// ErrInvalidConfig
// ---------------------------------------------------------------------------

func TestErrInvalidConfig_Error(t *testing.T) {
	t.Parallel()
	err := NewInvalidConfigError("ftp://host", "scheme must be http or https")
	expected := `invalid configuration value "ftp://host": scheme must be http or https`
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestErrInvalidConfig_Is(t *testing.T) {
	t.Parallel()
	err := NewInvalidConfigError("not-a-url", "missing scheme")

	t.Run("matches another ErrInvalidConfig", func(t *testing.T) {
		if !errors.Is(err, &ErrInvalidConfig{}) {
			t.Error("expected errors.Is to match *ErrInvalidConfig")
		}
	})

	t.Run("does not match ErrInvalidArgument", func(t *testing.T) {
		if errors.Is(err, &ErrInvalidArgument{}) {
			t.Error("expected errors.Is not to match *ErrInvalidArgument")
		}
	})

	t.Run("matches through fmt.Errorf wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("outer: %w", err)
		if !errors.Is(wrapped, &ErrInvalidConfig{}) {
			t.Error("expected errors.Is to match *ErrInvalidConfig through wrapping")
		}
	})
}

// ---------------------------------------------------------------------------
// ErrFileNotFound
// ---------------------------------------------------------------------------

func TestErrFileNotFound_Error(t *testing.T) {
	t.Parallel()
	err := NewFileNotFoundError("/tmp/missing.mp4")
	expected := "file not found: /tmp/missing.mp4"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestErrFileNotFound_Is(t *testing.T) {
	t.Parallel()
	err := NewFileNotFoundError("/tmp/missing.mp4")

	t.Run("matches another ErrFileNotFound", func(t *testing.T) {
		if !errors.Is(err, &ErrFileNotFound{}) {
			t.Error("expected errors.Is to match *ErrFileNotFound")
		}
	})

	t.Run("does not match ErrNotFound", func(t *testing.T) {
		if errors.Is(err, &ErrNotFound{}) {
			t.Error("expected errors.Is not to match *ErrNotFound")
		}
	})
}

// ---------------------------------------------------------------------------
// ErrGateway
// ---------------------------------------------------------------------------

func TestErrGateway_Error(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      *ErrGateway
		expected string
	}{
		{
			name:     "timeout",
			err:      NewTimeoutError("GET /api/config", nil),
			expected: "request to GET /api/config timed out",
		},
		{
			name:     "unreachable with cause",
			err:      NewUnreachableError("POST /api/file", errors.New("connection refused")),
			expected: "service unreachable at POST /api/file: connection refused",
		},
		{
			name:     "unreachable without cause",
			err:      &ErrGateway{Kind: GatewayUnreachable, Endpoint: "GET /api/config"},
			expected: "service unreachable at GET /api/config",
		},
		{
			name:     "remote rejected",
			err:      NewRemoteRejectedError("GET /api/capability/subtitleTask", 500, "boom"),
			expected: "request to GET /api/capability/subtitleTask rejected with status 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrGateway_Is(t *testing.T) {
	t.Parallel()
	timeoutErr := NewTimeoutError("GET /api/config", nil)

	t.Run("zero-valued target matches any kind", func(t *testing.T) {
		if !errors.Is(timeoutErr, &ErrGateway{}) {
			t.Error("expected errors.Is to match a zero-valued *ErrGateway")
		}
	})

	t.Run("matching kind", func(t *testing.T) {
		if !errors.Is(timeoutErr, &ErrGateway{Kind: GatewayTimeout}) {
			t.Error("expected errors.Is to match same failure kind")
		}
	})

	t.Run("different kind does not match", func(t *testing.T) {
		if errors.Is(timeoutErr, &ErrGateway{Kind: GatewayUnreachable}) {
			t.Error("expected errors.Is not to match a different failure kind")
		}
	})

	t.Run("does not match ErrRemote", func(t *testing.T) {
		if errors.Is(timeoutErr, &ErrRemote{}) {
			t.Error("expected errors.Is not to match *ErrRemote")
		}
	})

	t.Run("matches through fmt.Errorf wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("request failed: %w", timeoutErr)
		if !errors.Is(wrapped, &ErrGateway{Kind: GatewayTimeout}) {
			t.Error("expected errors.Is to match *ErrGateway through wrapping")
		}
	})
}

func TestErrGateway_Unwrap(t *testing.T) {
	t.Parallel()
	cause := errors.New("dial tcp: connection refused")
	err := NewUnreachableError("GET /api/config", cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the wrapped transport error")
	}
}

// ---------------------------------------------------------------------------
// ErrNotFound
// ---------------------------------------------------------------------------

func TestErrNotFound_Error(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      *ErrNotFound
		expected string
	}{
		{
			name:     "with string ID",
			err:      &ErrNotFound{Resource: "task", ID: "abc123"},
			expected: "task with ID abc123 not found",
		},
		{
			name:     "with nil ID",
			err:      &ErrNotFound{Resource: "task", ID: nil},
			expected: "task not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNewTaskNotFoundError(t *testing.T) {
	t.Parallel()
	err := NewTaskNotFoundError("xyz789")

	if err.Resource != "task" {
		t.Errorf("Resource = %q, want %q", err.Resource, "task")
	}
	if err.ID != "xyz789" {
		t.Errorf("ID = %v, want %v", err.ID, "xyz789")
	}
	if !errors.Is(err, &ErrNotFound{}) {
		t.Error("expected errors.Is to match *ErrNotFound")
	}
}

// ---------------------------------------------------------------------------
// ErrRemote
// ---------------------------------------------------------------------------

func TestErrRemote_Error(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      *ErrRemote
		expected string
	}{
		{
			name:     "with message",
			err:      NewRemoteError("invalid media url", 1),
			expected: "service reported an error: invalid media url",
		},
		{
			name:     "code only",
			err:      &ErrRemote{Code: 3},
			expected: "service reported error code 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrRemote_Is(t *testing.T) {
	t.Parallel()
	err := NewRemoteError("task creation failed", 1)

	t.Run("matches another ErrRemote", func(t *testing.T) {
		if !errors.Is(err, &ErrRemote{}) {
			t.Error("expected errors.Is to match *ErrRemote")
		}
	})

	t.Run("does not match ErrGateway", func(t *testing.T) {
		if errors.Is(err, &ErrGateway{}) {
			t.Error("expected errors.Is not to match *ErrGateway")
		}
	})

	t.Run("matches through double wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", err))
		if !errors.Is(wrapped, &ErrRemote{}) {
			t.Error("expected errors.Is to match *ErrRemote through double wrapping")
		}
	})
}

// ---------------------------------------------------------------------------
// Kind classification
// ---------------------------------------------------------------------------

func TestKind(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"invalid argument", NewInvalidArgumentError("language", "bad"), "invalid_argument"},
		{"invalid config", NewInvalidConfigError("x", "bad"), "invalid_config"},
		{"file not found", NewFileNotFoundError("/x"), "file_not_found"},
		{"gateway timeout", NewTimeoutError("GET /api/config", nil), "gateway_timeout"},
		{"gateway unreachable", NewUnreachableError("GET /api/config", errors.New("refused")), "gateway_unreachable"},
		{"remote rejected", NewRemoteRejectedError("GET /api/config", 502, ""), "remote_rejected"},
		{"not found", NewTaskNotFoundError("t1"), "not_found"},
		{"remote error", NewRemoteError("bad", 1), "remote_error"},
		{"plain error", errors.New("boom"), "internal"},
		{"wrapped gateway error", fmt.Errorf("outer: %w", NewTimeoutError("GET /api/config", nil)), "gateway_timeout"},
		{"wrapped remote error", fmt.Errorf("outer: %w", NewRemoteError("bad", 1)), "remote_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Kind(tt.err)
			if got != tt.expected {
				t.Errorf("Kind() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Cross-type isolation: no error type matches any other type
// ---------------------------------------------------------------------------

func TestErrorTypes_CrossTypeIsolation(t *testing.T) {
	t.Parallel()
	errs := []error{
		&ErrInvalidArgument{Field: "x", Reason: "y"},
		&ErrInvalidConfig{Value: "x", Reason: "y"},
		&ErrFileNotFound{Path: "/x"},
		&ErrGateway{Kind: GatewayTimeout, Endpoint: "GET /x"},
		&ErrNotFound{Resource: "x", ID: 1},
		&ErrRemote{Msg: "x", Code: 1},
	}

	for i, a := range errs {
		for j, b := range errs {
			if i == j {
				continue
			}
			if errors.Is(a, b) {
				t.Errorf("expected errors.Is(%T, %T) to be false", a, b)
			}
		}
	}
}

// ---------------------------------------------------------------------------
// All types satisfy the error interface
// ---------------------------------------------------------------------------

func TestErrorTypes_ImplementErrorInterface(t *testing.T) {
	t.Parallel()
	var _ error = &ErrInvalidArgument{}
	var _ error = &ErrInvalidConfig{}
	var _ error = &ErrFileNotFound{}
	var _ error = &ErrGateway{}
	var _ error = &ErrNotFound{}
	var _ error = &ErrRemote{}
}
