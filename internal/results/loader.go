// Package results parses the JSON artifacts produced by the multi-method
// BPM detection stage. The detection stage is an external collaborator;
// its combined results file is the sole input boundary of the analysis
// core.
package results

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/paulkarayan/skronk-and-skreigh/internal/tempo"
)

// metadataKeys are the non-method fields the detection stage writes
// alongside the per-method BPM values.
var metadataKeys = map[string]struct{}{
	"file":     {},
	"filename": {},
	"duration": {},
	"offset":   {},
}

// Load reads and parses a combined results file.
func Load(path string) ([]tempo.Estimate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read results file: %w", err)
	}

	estimates, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid results file %s: %w", path, err)
	}
	return estimates, nil
}

// Parse decodes combined results JSON: an array with one object per audio
// file, carrying file metadata plus one entry per method. A null method
// value records a detection failure and becomes an absent estimate, never
// a zero.
func Parse(data []byte) ([]tempo.Estimate, error) {
	var rows []map[string]json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode results JSON: %w", err)
	}

	var estimates []tempo.Estimate
	for i, row := range rows {
		fileID, err := rowFileID(row)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}

		// Method keys sorted so ingestion order is reproducible
		methods := make([]string, 0, len(row))
		for key := range row {
			if _, meta := metadataKeys[key]; !meta {
				methods = append(methods, key)
			}
		}
		sort.Strings(methods)

		for _, method := range methods {
			var bpm *float64
			if err := json.Unmarshal(row[method], &bpm); err != nil {
				return nil, fmt.Errorf("entry %d (%s): method %s: %w", i, fileID, method, err)
			}
			if bpm == nil {
				estimates = append(estimates, tempo.NewMissingEstimate(fileID, method))
			} else {
				estimates = append(estimates, tempo.NewEstimate(fileID, method, *bpm))
			}
		}
	}

	return estimates, nil
}

// rowFileID extracts the file identifier: the filename when present, the
// full path otherwise.
func rowFileID(row map[string]json.RawMessage) (string, error) {
	for _, key := range []string{"filename", "file"} {
		raw, ok := row[key]
		if !ok {
			continue
		}
		var id string
		if err := json.Unmarshal(raw, &id); err != nil {
			return "", fmt.Errorf("field %s: %w", key, err)
		}
		if id != "" {
			return id, nil
		}
	}
	return "", fmt.Errorf("missing file identifier (no filename or file field)")
}
