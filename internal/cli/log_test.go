package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		level   log.Level
		debug   bool
		info    bool
		warning bool
	}{
		{log.DebugLevel, true, true, true},
		{log.InfoLevel, false, true, true},
		{log.WarnLevel, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			logger.Debug("debug line")
			logger.Info("info line")
			logger.Warn("warn line")

			out := buf.String()
			for msg, want := range map[string]bool{"debug line": tt.debug, "info line": tt.info, "warn line": tt.warning} {
				if strings.Contains(out, msg) != want {
					t.Errorf("%q logged = %v, want %v", msg, !want, want)
				}
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(newLogger(&buf, log.InfoLevel))
	p.done("Fetched crawl graph", "job", "job-42", "nodes", 7)

	out := buf.String()
	for _, want := range []string{"Fetched crawl graph", "job=job-42", "nodes=7", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("progress output missing %q: %s", want, out)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("empty context should yield log.Default()")
	}

	custom := newLogger(&bytes.Buffer{}, log.InfoLevel)
	if loggerFromContext(withLogger(context.Background(), custom)) != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
}
