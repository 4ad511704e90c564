package analysis

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/paulkarayan/skronk-and-skreigh/internal/tempo"
)

// ComputeMethodStats calculates per-method descriptive statistics over
// present values only. Absent readings never contribute to mean/min/max
// but their files still count in the coverage denominator.
func ComputeMethodStats(store *tempo.Store) ([]MethodStats, error) {
	totalFiles := store.FileCount()
	methods := store.Methods()

	out := make([]MethodStats, 0, len(methods))
	for _, method := range methods {
		readings, err := store.EstimatesForMethod(method)
		if err != nil {
			return nil, err
		}

		var values []float64
		for _, reading := range readings {
			if reading.Detected {
				values = append(values, reading.BPM)
			}
		}

		ms := MethodStats{
			Method:     method,
			Count:      len(values),
			TotalFiles: totalFiles,
		}
		if len(values) > 0 {
			mean := stat.Mean(values, nil)
			min := floats.Min(values)
			max := floats.Max(values)
			ms.MeanBPM = &mean
			ms.MinBPM = &min
			ms.MaxBPM = &max
		}
		out = append(out, ms)
	}

	return out, nil
}
