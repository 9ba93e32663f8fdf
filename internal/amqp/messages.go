package amqp

import (
	"encoding/json"
	"time"
)

// DatasetRefreshMessage tells servers that the stored dataset changed.
// It carries no data: consumers reload from their configured source.
type DatasetRefreshMessage struct {
	Source    string    `json:"source"`
	Rows      int       `json:"rows"`
	Timestamp time.Time `json:"timestamp"`
}

func NewDatasetRefreshMessage(source string, rows int) *DatasetRefreshMessage {
	return &DatasetRefreshMessage{
		Source:    source,
		Rows:      rows,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *DatasetRefreshMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// DatasetRefreshMessageFromJSON creates a message from JSON bytes.
func DatasetRefreshMessageFromJSON(data []byte) (*DatasetRefreshMessage, error) {
	var msg DatasetRefreshMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
