package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestSlogAdapterLogsAccessEvent(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	slogger := slog.New(handler)

	adapter := NewSlogAdapter(slogger)

	adapter.Log(Event{
		Timestamp:    time.Now(),
		ConnectionID: "conn-123",
		Direction:    DirectionOut,
		Layer:        LayerTransport,
		Category:     CategoryAccess,
		Access: &AccessEvent{
			Address: 0x6040,
			Write:   true,
			Data:    []byte{0x00, 0x06},
		},
	})

	output := buf.String()
	if output == "" {
		t.Fatal("no output produced")
	}

	// Parse JSON log entry
	var logEntry map[string]any
	if err := json.Unmarshal([]byte(output), &logEntry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}

	// Verify key fields
	if logEntry["conn_id"] != "conn-123" {
		t.Errorf("conn_id: got %v, want %q", logEntry["conn_id"], "conn-123")
	}
	if logEntry["direction"] != "OUT" {
		t.Errorf("direction: got %v, want %q", logEntry["direction"], "OUT")
	}
	if logEntry["layer"] != "TRANSPORT" {
		t.Errorf("layer: got %v, want %q", logEntry["layer"], "TRANSPORT")
	}
	if logEntry["address"] != float64(0x6040) {
		t.Errorf("address: got %v, want %v", logEntry["address"], 0x6040)
	}
	if logEntry["write"] != true {
		t.Errorf("write: got %v, want true", logEntry["write"])
	}
}

func TestSlogAdapterLogsStatusEvent(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	slogger := slog.New(handler)

	adapter := NewSlogAdapter(slogger)

	adapter.Log(Event{
		Timestamp:    time.Now(),
		ConnectionID: "conn-456",
		Direction:    DirectionIn,
		Layer:        LayerRegister,
		Category:     CategoryStatus,
		NodeID:       2,
		Status:       &StatusEvent{Word: 0x0637},
	})

	output := buf.String()
	if output == "" {
		t.Fatal("no output produced")
	}

	// Parse JSON log entry
	var logEntry map[string]any
	if err := json.Unmarshal([]byte(output), &logEntry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}

	if logEntry["status_word"] != float64(0x0637) {
		t.Errorf("status_word: got %v, want %v", logEntry["status_word"], 0x0637)
	}
	if logEntry["node"] != float64(2) {
		t.Errorf("node: got %v, want 2", logEntry["node"])
	}
	if logEntry["category"] != "STATUS" {
		t.Errorf("category: got %v, want %q", logEntry["category"], "STATUS")
	}
}

func TestSlogAdapterIncludesConnectionID(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	slogger := slog.New(handler)

	adapter := NewSlogAdapter(slogger)

	adapter.Log(Event{
		Timestamp:    time.Now(),
		ConnectionID: "abc12345-def6-7890",
		Direction:    DirectionIn,
		Layer:        LayerServo,
		Category:     CategoryState,
		State: &StateChangeEvent{
			NewState: "operation enabled",
		},
	})

	output := buf.String()
	if !strings.Contains(output, "abc12345-def6-7890") {
		t.Error("output does not contain connection ID")
	}
}
