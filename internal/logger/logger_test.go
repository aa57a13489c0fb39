package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewWithWriterEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)
	log.Info().Str("table", "fact_revenue").Msg("rebuild started")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not one JSON line: %v\n%s", err, buf.String())
	}
	if entry["message"] != "rebuild started" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry["table"] != "fact_revenue" {
		t.Errorf("table = %v", entry["table"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("entry has no timestamp")
	}
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	ctx := WithContext(context.Background(), log)
	ctxLog := FromContext(ctx)
	ctxLog.Info().Msg("from context")

	if !strings.Contains(buf.String(), "from context") {
		t.Errorf("context logger did not write to the original sink: %s", buf.String())
	}
}

func TestFromContextWithoutLogger(t *testing.T) {
	// Must not panic and must return a usable logger.
	log := FromContext(context.Background())
	log.Debug().Msg("default logger")
}

func TestWithStage(t *testing.T) {
	var buf bytes.Buffer
	log := WithStage(NewWithWriter(&buf), "revenue")
	log.Info().Msg("classifying")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatal(err)
	}
	if entry["stage"] != "revenue" {
		t.Errorf("stage = %v", entry["stage"])
	}
}
