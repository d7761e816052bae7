package logging

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{in: "", want: zapcore.InfoLevel},
		{in: "debug", want: zapcore.DebugLevel},
		{in: " WARN ", want: zapcore.WarnLevel},
		{in: "error", want: zapcore.ErrorLevel},
		{in: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewWithWriter_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter("warn", &buf)
	if err != nil {
		t.Fatalf("NewWithWriter() error = %v", err)
	}

	logger.Info("hidden message")
	logger.Warn("visible message", zap.String("camera", "cam1"))
	_ = logger.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Errorf("info entry written at warn level:\n%s", out)
	}
	if !strings.Contains(out, "visible message") || !strings.Contains(out, `"camera": "cam1"`) {
		t.Errorf("warn entry missing or without fields:\n%s", out)
	}
	if !strings.Contains(out, "WARN") {
		t.Errorf("level not encoded in capitals:\n%s", out)
	}
}

func TestNewWithWriter_InvalidLevel(t *testing.T) {
	if _, err := NewWithWriter("loud", &bytes.Buffer{}); err == nil {
		t.Error("NewWithWriter() error = nil, want error")
	}
}
