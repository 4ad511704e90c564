package analysis

import (
	"testing"

	"github.com/paulkarayan/skronk-and-skreigh/internal/tempo"
)

// TestComputeMethodStats checks mean/min/max over present values and the
// coverage denominator over the whole corpus.
func TestComputeMethodStats(t *testing.T) {
	store := mustStore(t,
		tempo.NewEstimate("a.mp3", "essentia", 100),
		tempo.NewEstimate("b.mp3", "essentia", 120),
		tempo.NewEstimate("c.mp3", "essentia", 140),
		tempo.NewMissingEstimate("d.mp3", "essentia"),
	)

	stats, err := ComputeMethodStats(store)
	if err != nil {
		t.Fatalf("ComputeMethodStats: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("want stats for 1 method, got %d", len(stats))
	}

	ms := stats[0]
	if ms.Count != 3 || ms.TotalFiles != 4 {
		t.Errorf("coverage: want 3/4, got %d/%d", ms.Count, ms.TotalFiles)
	}
	if ms.MeanBPM == nil || *ms.MeanBPM != 120 {
		t.Errorf("MeanBPM: want 120, got %v", ms.MeanBPM)
	}
	if ms.MinBPM == nil || *ms.MinBPM != 100 {
		t.Errorf("MinBPM: want 100, got %v", ms.MinBPM)
	}
	if ms.MaxBPM == nil || *ms.MaxBPM != 140 {
		t.Errorf("MaxBPM: want 140, got %v", ms.MaxBPM)
	}
}

// TestAbsentDoesNotShiftStats checks that adding an absent record for a
// new file leaves mean/min/max untouched but grows the denominator.
func TestAbsentDoesNotShiftStats(t *testing.T) {
	base := []tempo.Estimate{
		tempo.NewEstimate("a.mp3", "essentia", 100),
		tempo.NewEstimate("b.mp3", "essentia", 140),
	}

	before, err := ComputeMethodStats(mustStore(t, base...))
	if err != nil {
		t.Fatalf("ComputeMethodStats: %v", err)
	}

	after, err := ComputeMethodStats(mustStore(t,
		append(base, tempo.NewMissingEstimate("z.mp3", "essentia"))...))
	if err != nil {
		t.Fatalf("ComputeMethodStats: %v", err)
	}

	if *before[0].MeanBPM != *after[0].MeanBPM ||
		*before[0].MinBPM != *after[0].MinBPM ||
		*before[0].MaxBPM != *after[0].MaxBPM {
		t.Errorf("stats shifted by absent record: before %+v, after %+v", before[0], after[0])
	}
	if after[0].TotalFiles != before[0].TotalFiles+1 {
		t.Errorf("TotalFiles: want %d, got %d", before[0].TotalFiles+1, after[0].TotalFiles)
	}
	if after[0].Count != before[0].Count {
		t.Errorf("Count changed by absent record: before %d, after %d", before[0].Count, after[0].Count)
	}
}

// TestZeroCoverageMethod checks that a method with no present values
// reports undefined statistics rather than zeros.
func TestZeroCoverageMethod(t *testing.T) {
	store := mustStore(t,
		tempo.NewEstimate("a.mp3", "essentia", 100),
		tempo.NewMissingEstimate("a.mp3", "aubio"),
		tempo.NewMissingEstimate("b.mp3", "aubio"),
		tempo.NewEstimate("b.mp3", "essentia", 120),
	)

	stats, err := ComputeMethodStats(store)
	if err != nil {
		t.Fatalf("ComputeMethodStats: %v", err)
	}

	for _, ms := range stats {
		if ms.Method != "aubio" {
			continue
		}
		if ms.Count != 0 {
			t.Errorf("aubio Count: want 0, got %d", ms.Count)
		}
		if ms.MeanBPM != nil || ms.MinBPM != nil || ms.MaxBPM != nil {
			t.Errorf("aubio stats: want all nil, got %+v", ms)
		}
		if ms.TotalFiles != 2 {
			t.Errorf("aubio TotalFiles: want 2, got %d", ms.TotalFiles)
		}
	}
}
