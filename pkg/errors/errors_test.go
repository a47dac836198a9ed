package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeStyleNotFound, "style %q not found", "bg")

	if err.Code != ErrCodeStyleNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeStyleNotFound)
	}

	if err.Message != `style "bg" not found` {
		t.Errorf("Message = %v, want %v", err.Message, `style "bg" not found`)
	}

	expected := `STYLE_NOT_FOUND: style "bg" not found`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("no such file")
	err := Wrap(ErrCodeImageSize, cause, "probe %s", "./logo.png")

	if err.Code != ErrCodeImageSize {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeImageSize)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "IMAGE_SIZE: probe ./logo.png: no such file"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
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
			err:      New(ErrCodeMissingAttribute, "test"),
			code:     ErrCodeMissingAttribute,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeMissingAttribute, "test"),
			code:     ErrCodeNetwork,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeImageSize, New(ErrCodeNetwork, "inner"), "outer"),
			code:     ErrCodeImageSize,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidConfig,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidConfig,
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
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeUnimplemented, "test"), ErrCodeUnimplemented},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCodeOr(t *testing.T) {
	if got := GetCodeOr(New(ErrCodeUnimplemented, "x"), ErrCodeInternal); got != ErrCodeUnimplemented {
		t.Errorf("GetCodeOr(coded) = %v, want %v", got, ErrCodeUnimplemented)
	}
	if got := GetCodeOr(errors.New("plain"), ErrCodeInternal); got != ErrCodeInternal {
		t.Errorf("GetCodeOr(plain) = %v, want %v", got, ErrCodeInternal)
	}
}

func TestIsConfig(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{New(ErrCodeStyleNotFound, "x"), true},
		{New(ErrCodeMissingAttribute, "x"), true},
		{New(ErrCodeInvalidConfig, "x"), true},
		{New(ErrCodeInvalidFormat, "x"), true},
		{New(ErrCodeUnimplemented, "x"), false},
		{New(ErrCodeImageSize, "x"), false},
		{errors.New("plain"), false},
	}

	for _, tt := range tests {
		if got := IsConfig(tt.err); got != tt.want {
			t.Errorf("IsConfig(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidConfig, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "Error with cause",
			err:      Wrap(ErrCodeImageSize, errors.New("unknown format"), "probe logo.svg"),
			expected: "probe logo.svg: unknown format",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}
