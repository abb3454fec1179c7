package layout

import (
	"encoding/json"
	"fmt"
	"os"
)

// =============================================================================
// Record Serialization API
// =============================================================================

// MarshalRecord serializes a Record to pretty-printed JSON bytes.
// Records serialize deterministically: node and edge order is layout order.
func MarshalRecord(r Record) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// UnmarshalRecord deserializes JSON bytes into a Record.
func UnmarshalRecord(data []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("unmarshal layout record: %w", err)
	}
	return r, nil
}

// WriteRecordFile writes a Record to a JSON file.
func WriteRecordFile(r Record, path string) error {
	data, err := MarshalRecord(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadRecordFile reads a Record from a JSON file.
func ReadRecordFile(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalRecord(data)
}
