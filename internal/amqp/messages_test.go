package amqp

import (
	"testing"
)

func TestDatasetRefreshMessageRoundTrip(t *testing.T) {
	msg := NewDatasetRefreshMessage("data/base_dashboard_irpf.csv", 1234)

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	got, err := DatasetRefreshMessageFromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if got.Source != msg.Source {
		t.Errorf("source = %q, want %q", got.Source, msg.Source)
	}
	if got.Rows != 1234 {
		t.Errorf("rows = %d, want 1234", got.Rows)
	}
	if got.Timestamp.IsZero() {
		t.Error("timestamp should be set")
	}
}

func TestDatasetRefreshMessageFromJSONInvalid(t *testing.T) {
	if _, err := DatasetRefreshMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
