package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	log.Info().Str("institution", "NUBANK").Msg("statement import finished")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["institution"] != "NUBANK" {
		t.Errorf("institution = %v; want NUBANK", entry["institution"])
	}
	if entry["message"] != "statement import finished" {
		t.Errorf("message = %v; want the logged message", entry["message"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("log entry is missing a timestamp")
	}
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	ctx := WithContext(context.Background(), log)
	fromCtx := FromContext(ctx)
	fromCtx.Info().Msg("from context")

	if buf.Len() == 0 {
		t.Error("logger from context did not write to the original writer")
	}
}
