package mqttsink

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/quillsql/quill/internal/events"
)

// TestTopicFor verifies topic derivation from the configured prefix.
func TestTopicFor(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{"quill", "quill/query-executed"},
		{"tenant/app", "tenant/app/query-executed"},
		{"", "quill/query-executed"},
	}

	for _, tt := range tests {
		if got := topicFor(tt.prefix); got != tt.want {
			t.Errorf("topicFor(%q) = %q, want %q", tt.prefix, got, tt.want)
		}
	}
}

// TestTopicLeafDerivation verifies the topic leaf tracks the event
// channel name.
func TestTopicLeafDerivation(t *testing.T) {
	want := strings.ReplaceAll(events.QueryExecutedChannel, " ", "-")
	if topicLeaf != want {
		t.Errorf("topicLeaf = %q, want %q (from channel %q)", topicLeaf, want, events.QueryExecutedChannel)
	}
}

// TestEventPayload verifies events marshal into the published JSON shape.
func TestEventPayload(t *testing.T) {
	event := events.QueryExecuted{
		ID:         uuid.New(),
		Connection: "main",
		Query:      "SELECT * FROM users WHERE id = ?",
		Bindings:   []any{int64(1)},
		TimeMS:     "0.42",
		At:         time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshalling event: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshalling payload: %v", err)
	}

	if decoded["query"] != event.Query {
		t.Errorf("payload query = %v, want %q", decoded["query"], event.Query)
	}
	if decoded["time_ms"] != "0.42" {
		t.Errorf("payload time_ms = %v, want 0.42", decoded["time_ms"])
	}
	if decoded["connection"] != "main" {
		t.Errorf("payload connection = %v, want main", decoded["connection"])
	}
}
