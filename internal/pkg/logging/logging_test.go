package logging_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/devNatanFrei/e-commerce/internal/pkg/logging"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name     string
		appEnv   string
		logLevel string
		logFunc  func(msg string, args ...any)
		msg      string
		wantJSON bool
		wantLog  bool
	}{
		{"Development logs text", "development", "INFO", slog.Info, "server started", false, true},
		{"Production logs JSON", "production", "INFO", slog.Info, "server started", true, true},
		{"Level filters debug records", "development", "ERROR", slog.Debug, "noisy detail", false, false},
		{"Warning level accepted", "development", "WARNING", slog.Warn, "low stock", false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logging.SetupLogger(tc.appEnv, tc.logLevel, &buf)

			tc.logFunc(tc.msg)

			out := buf.String()
			if !tc.wantLog {
				if out != "" {
					t.Errorf("buf.String() = %q, want: empty", out)
				}
				return
			}

			if !strings.Contains(out, tc.msg) {
				t.Errorf("buf.String() = %q, want it to contain %q", out, tc.msg)
			}

			isJSON := strings.HasPrefix(out, "{")
			if isJSON != tc.wantJSON {
				t.Errorf("json output = %v, want: %v", isJSON, tc.wantJSON)
			}
		})
	}
}
