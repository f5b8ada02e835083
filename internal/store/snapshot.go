package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	core "urlcheck/internal/core"
	"urlcheck/internal/fsx"
)

const snapshotVersion = 1

type snapshotFile struct {
	Version int           `json:"version"`
	Records []core.Record `json:"records"`
}

// SaveSnapshot writes records to path atomically.
func SaveSnapshot(path string, records []core.Record) error {
	if records == nil {
		records = []core.Record{}
	}
	data, err := json.MarshalIndent(&snapshotFile{Version: snapshotVersion, Records: records}, "", "  ")
	if err != nil {
		return err
	}
	return fsx.AtomicWrite(path, append(data, '\n'), fs.FileMode(0o644))
}

// LoadSnapshot reads a snapshot file. A bare JSON array of records, as
// served by the HTTP endpoint, is accepted too.
func LoadSnapshot(path string) ([]core.Record, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeRecords(b)
}

// DecodeRecords parses either a snapshot envelope or a bare record array.
func DecodeRecords(b []byte) ([]core.Record, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty record list")
	}
	if trimmed[0] == '[' {
		var records []core.Record
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("decode records: %w", err)
		}
		return records, nil
	}
	var f snapshotFile
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if f.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version: %d", f.Version)
	}
	return f.Records, nil
}
