package analysis

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/paulkarayan/skronk-and-skreigh/internal/tempo"
)

// DefaultVarianceThreshold is the spread above which a file is flagged as
// high variance.
const DefaultVarianceThreshold = 20.0

// spreadForFile computes the cross-method spread for one file over present
// readings only. Files with fewer than two present values have no
// meaningful spread and yield nil rather than a zero-spread record.
func spreadForFile(fileID string, readings map[string]tempo.Reading) *VarianceRecord {
	byMethod := make(map[string]float64)
	values := make([]float64, 0, len(readings))
	for method, reading := range readings {
		if reading.Detected {
			byMethod[method] = reading.BPM
			values = append(values, reading.BPM)
		}
	}

	if len(values) < 2 {
		return nil
	}

	return &VarianceRecord{
		FileID:      fileID,
		BPMByMethod: byMethod,
		Spread:      floats.Max(values) - floats.Min(values),
	}
}

// sortFlagged orders variance records by spread descending, ties broken by
// file id ascending, so the report is deterministic.
func sortFlagged(flagged []VarianceRecord) {
	sort.Slice(flagged, func(i, j int) bool {
		if flagged[i].Spread != flagged[j].Spread {
			return flagged[i].Spread > flagged[j].Spread
		}
		return flagged[i].FileID < flagged[j].FileID
	})
}

// FlagHighVariance returns the files whose cross-method spread exceeds the
// threshold, ordered by spread descending.
func FlagHighVariance(store *tempo.Store, threshold float64) ([]VarianceRecord, error) {
	var flagged []VarianceRecord
	for _, fileID := range store.Files() {
		readings, err := store.EstimatesForFile(fileID)
		if err != nil {
			return nil, err
		}
		if rec := spreadForFile(fileID, readings); rec != nil && rec.Spread > threshold {
			flagged = append(flagged, *rec)
		}
	}
	sortFlagged(flagged)
	return flagged, nil
}
