package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	l, err := New("debug")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !l.Core().Enabled(zapcore.DebugLevel) {
		t.Error("expected debug level to be enabled")
	}

	l, err = New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if l.Core().Enabled(zapcore.DebugLevel) || !l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("expected info default level")
	}

	if _, err := New("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNamedNil(t *testing.T) {
	if Named(nil, "x") == nil {
		t.Fatal("expected nop logger")
	}
}
