package logger

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestSetOutput_RedirectsLogs(t *testing.T) {
	defer UseTestMode()

	var buf bytes.Buffer
	Configure(Options{Level: "info", Out: &buf})
	SetOutput(&buf)

	if Out() != io.Writer(&buf) {
		t.Fatal("Out() should return the writer passed to SetOutput")
	}

	Info("enumeration finished: %d plugins matched", 7)
	if !strings.Contains(buf.String(), "enumeration finished: 7 plugins matched") {
		t.Errorf("log output not redirected, got %q", buf.String())
	}
}

func TestSetOutput_NilFallsBackToStdout(t *testing.T) {
	defer UseTestMode()

	SetOutput(nil)
	if Out() == nil {
		t.Fatal("Out() must never be nil")
	}
}

func TestDebug_SuppressedAtInfoLevel(t *testing.T) {
	defer UseTestMode()

	var buf bytes.Buffer
	Configure(Options{Level: "info", Out: &buf})

	Debug("should not appear")
	if buf.Len() != 0 {
		t.Errorf("debug leaked at info level: %q", buf.String())
	}
}
