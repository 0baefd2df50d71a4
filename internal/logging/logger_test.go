package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestNewDefaultsToInfoJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "bogus", Output: &buf})

	logger.Debug().Msg("hidden")
	logger.Info().Msg("shown")

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected a single JSON line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "shown" {
		t.Fatalf("unexpected message: %v", entry["message"])
	}
}

func TestFromContextAddsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	SetGlobalLogger(New(Config{Level: "debug", Output: &buf}))

	ctx := WithUID(WithRequestID(context.Background(), "req-1"), "user-9")
	FromContext(ctx).Info().Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["request_id"] != "req-1" || entry["uid"] != "user-9" {
		t.Fatalf("missing context fields: %v", entry)
	}
	if got := RequestID(ctx); got != "req-1" {
		t.Fatalf("RequestID = %q", got)
	}
}

func TestTimeLogsFailure(t *testing.T) {
	var buf bytes.Buffer
	SetGlobalLogger(New(Config{Level: "debug", Output: &buf}))

	err := errors.New("boom")
	Time(context.Background(), "op.test")(&err)

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["level"] != "warn" || entry["op"] != "op.test" || entry["error"] != "boom" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}
