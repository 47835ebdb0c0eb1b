package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		msg      string
		expected string
	}{
		{
			name:     "wrap with message",
			err:      ErrSourceUnavailable,
			msg:      "opening http://example.org",
			expected: "opening http://example.org: source unavailable",
		},
		{
			name:     "wrap nil error",
			err:      nil,
			msg:      "should return nil",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Wrap(tt.err, tt.msg)
			if tt.err == nil && result != nil {
				t.Errorf("expected nil, got %v", result)
			}
			if tt.err != nil && result.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result.Error())
			}
		})
	}
}

func TestWrapf(t *testing.T) {
	err := Wrapf(ErrUnsupportedScheme, "opening %s", "gopher://host/x")
	expected := "opening gopher://host/x: unsupported source scheme"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestIs(t *testing.T) {
	wrapped := Wrap(ErrQueueClosed, "put line")

	if !Is(wrapped, ErrQueueClosed) {
		t.Error("expected Is to return true for wrapped error")
	}

	if Is(wrapped, ErrTimeout) {
		t.Error("expected Is to return false for different error")
	}
}

func TestMultiError(t *testing.T) {
	multi := NewMultiError()

	if multi.HasErrors() {
		t.Error("new MultiError should not have errors")
	}
	if multi.ErrorOrNil() != nil {
		t.Error("ErrorOrNil should return nil for empty MultiError")
	}

	multi.Add(Wrap(ErrSourceUnavailable, "http://a"))
	multi.Add(nil) // Should be ignored
	multi.Add(ErrTimeout)

	if !multi.HasErrors() {
		t.Error("MultiError should have errors after adding")
	}
	if len(multi.Errors()) != 2 {
		t.Errorf("expected 2 errors, got %d", len(multi.Errors()))
	}
	if !strings.Contains(multi.Error(), "multiple errors occurred") {
		t.Errorf("unexpected error message: %s", multi.Error())
	}

	// Collected errors stay reachable through the standard library.
	if !errors.Is(multi, ErrSourceUnavailable) || !errors.Is(multi, ErrTimeout) {
		t.Error("expected errors.Is to see through MultiError")
	}

	single := NewMultiError()
	single.Add(ErrInvalidArgument)
	if single.Error() != "invalid argument" {
		t.Errorf("single error message incorrect: %s", single.Error())
	}
}

func TestErrorUnwrapping(t *testing.T) {
	base := errors.New("base error")
	wrapped := Wrap(base, "context")

	if Unwrap(wrapped) != base {
		t.Error("Unwrap did not return base error")
	}
}
