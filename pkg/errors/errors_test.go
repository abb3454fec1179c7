package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidSnapshot, "test message: %s", "value")

	if err.Code != ErrCodeInvalidSnapshot {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidSnapshot)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_SNAPSHOT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeStore, cause, "failed to load")

	if err.Code != ErrCodeStore {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeStore)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidClass, "test"),
			code:     ErrCodeInvalidClass,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidClass, "test"),
			code:     ErrCodeStore,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeStore, New(ErrCodeInvalidClass, "inner"), "outer"),
			code:     ErrCodeStore,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidClass,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidClass,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeProjectNotFound, "x")); got != ErrCodeProjectNotFound {
		t.Errorf("GetCode = %v, want %v", got, ErrCodeProjectNotFound)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeRender, "render failed")); got != "render failed" {
		t.Errorf("UserMessage = %q, want %q", got, "render failed")
	}
	if got := UserMessage(errors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestValidateProjectID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "valid", id: "demo-project"},
		{name: "empty", id: "", wantErr: true},
		{name: "slash", id: "a/b", wantErr: true},
		{name: "traversal", id: "..", wantErr: true},
		{name: "control", id: "a\x01b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProjectID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateProjectID(%q) = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestValidateClassURI(t *testing.T) {
	if err := ValidateClassURI("https://example.org/ns#Finding"); err != nil {
		t.Errorf("valid URI rejected: %v", err)
	}
	if err := ValidateClassURI(""); err == nil {
		t.Error("empty URI accepted")
	}
	if err := ValidateClassURI("a\x00b"); err == nil {
		t.Error("URI with null byte accepted")
	}
}
