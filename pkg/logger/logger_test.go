package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelInfo, "motorbikes", func(context.Context) string { return "abc123" })
	log.Info(context.Background(), "session created", "id", "s1")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if entry["msg"] != "session created" || entry["service"] != "motorbikes" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry["trace_id"] != "abc123" || entry["id"] != "s1" {
		t.Fatalf("missing fields: %v", entry)
	}
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelWarn, "motorbikes", nil)
	log.Info(context.Background(), "dropped")
	if buf.Len() != 0 {
		t.Fatalf("info written at warn level: %s", buf.String())
	}
	log.Error(context.Background(), "kept")
	if buf.Len() == 0 {
		t.Fatal("error not written")
	}
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("DEBUG")
	if err != nil || l != LevelDebug {
		t.Fatalf("parse: %v %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error")
	}
}
