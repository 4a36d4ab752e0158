package common

import (
	"bytes"
	"github.com/lni/dragonboat/v4/logger"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    logger.LogLevel
		wantErr bool
	}{
		{"debug", logger.DEBUG, false},
		{"INFO", logger.INFO, false},
		{"warn", logger.WARNING, false},
		{"warning", logger.WARNING, false},
		{"error", logger.ERROR, false},
		{"verbose", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLogLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newPineLogger("memory", &buf)
	l.SetLevel(logger.INFO)

	l.Debugf("hidden %d", 1)
	l.Infof("shown %d", 2)
	l.Errorf("shown %d", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message written at info level: %q", out)
	}
	if got := strings.Count(out, "shown"); got != 2 {
		t.Errorf("wrote %d messages, want 2: %q", got, out)
	}
	if !strings.Contains(out, "INFO  | memory ") {
		t.Errorf("missing level tag or name: %q", out)
	}
}

func TestLoggerPanicf(t *testing.T) {
	var buf bytes.Buffer
	l := newPineLogger("rpc", &buf)
	l.SetLevel(logger.ERROR)

	defer func() {
		if r := recover(); r != "boom 7" {
			t.Errorf("recovered %v, want \"boom 7\"", r)
		}
		if !strings.Contains(buf.String(), "PANIC") {
			t.Errorf("panic not logged: %q", buf.String())
		}
	}()
	l.Panicf("boom %d", 7)
}
