package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidLayer, "layer %d: bad thickness", 3)

	if err.Code != ErrCodeInvalidLayer {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidLayer)
	}
	if err.Message != "layer 3: bad thickness" {
		t.Errorf("Message = %q", err.Message)
	}
	if !strings.Contains(err.Error(), "INVALID_LAYER") {
		t.Errorf("Error() = %q, should contain code", err.Error())
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("exit status 1")
	err := Wrap(ErrCodeEngineFailed, cause, "gmsh run failed")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	if !strings.Contains(err.Error(), "exit status 1") {
		t.Errorf("Error() = %q, should contain cause", err.Error())
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidStack, "no layers")

	if !Is(err, ErrCodeInvalidStack) {
		t.Error("Is() should match the error's own code")
	}
	if Is(err, ErrCodeEngineFailed) {
		t.Error("Is() should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeInvalidStack) {
		t.Error("Is() should not match a plain error")
	}
}

func TestIsWrappedChain(t *testing.T) {
	inner := New(ErrCodeInvalidConfig, "missing ml")
	outer := fmt.Errorf("loading parameters: %w", inner)

	if !Is(outer, ErrCodeInvalidConfig) {
		t.Error("Is() should find the code through a fmt.Errorf chain")
	}
	if GetCode(outer) != ErrCodeInvalidConfig {
		t.Errorf("GetCode() = %q, want %q", GetCode(outer), ErrCodeInvalidConfig)
	}
}

func TestGetCodePlainError(t *testing.T) {
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidInput, "radius must be positive")
	if got := UserMessage(err); got != "radius must be positive" {
		t.Errorf("UserMessage() = %q", got)
	}

	plain := stderrors.New("something broke")
	if got := UserMessage(plain); got != "something broke" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
