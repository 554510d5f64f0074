package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_WritesJSONRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelWarn)

	logger.Warn("modes stuck", "error", "EBADF")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("log output is not JSON: %v (%q)", err, buf.String())
	}
	if record["msg"] != "modes stuck" {
		t.Errorf("msg = %v, want \"modes stuck\"", record["msg"])
	}
	if record["error"] != "EBADF" {
		t.Errorf("error attribute = %v, want \"EBADF\"", record["error"])
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelWarn)

	logger.Info("routine detail")
	if buf.Len() != 0 {
		t.Errorf("INFO record written at WARN level: %q", buf.String())
	}

	logger.Error("real problem")
	if !strings.Contains(buf.String(), "real problem") {
		t.Error("ERROR record missing at WARN level")
	}
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "loud")

	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("DEBUG record written at fallback level: %q", buf.String())
	}
	logger.Info("shown")
	if buf.Len() == 0 {
		t.Error("INFO record missing at fallback level")
	}
}

func TestNop_DiscardsEverything(t *testing.T) {
	logger := Nop()
	logger.Error("into the void")
}
