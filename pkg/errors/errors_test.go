package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidSpec, "floors out of range: %d", 99)

	if err.Code != ErrCodeInvalidSpec {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidSpec)
	}
	if err.Message != "floors out of range: 99" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("Cause should be nil, got %v", err.Cause)
	}

	want := "INVALID_SPEC: floors out of range: 99"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "failed to reach %s", "assist")

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}

	want := "NETWORK_ERROR: failed to reach assist: connection refused"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeTimeout, "assist did not answer")

	if !Is(err, ErrCodeTimeout) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeNetwork) {
		t.Error("Is should not match a different code")
	}

	// Works through wrapping with fmt.Errorf.
	wrapped := fmt.Errorf("layout attempt: %w", err)
	if !Is(wrapped, ErrCodeTimeout) {
		t.Error("Is should unwrap fmt.Errorf chains")
	}

	if Is(stderrors.New("plain"), ErrCodeTimeout) {
		t.Error("Is should be false for non-structured errors")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInternal, "boom")); got != ErrCodeInternal {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeInternal)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode for plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidSpec, "bedrooms must be between 1 and 5")
	if got := UserMessage(err); got != "bedrooms must be between 1 and 5" {
		t.Errorf("UserMessage = %q", got)
	}

	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage for plain error = %q", got)
	}
}
