package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/paulkarayan/skronk-and-skreigh/internal/tempo"
)

// mustStore builds a frozen store from estimate records.
func mustStore(t *testing.T, estimates ...tempo.Estimate) *tempo.Store {
	t.Helper()
	store := tempo.NewStore()
	for _, est := range estimates {
		if err := store.Ingest(est); err != nil {
			t.Fatalf("ingest %s/%s: %v", est.FileID, est.Method, err)
		}
	}
	if err := store.Freeze(); err != nil {
		t.Fatalf("freeze: %v", err)
	}
	return store
}

// TestAnalyzerScenario runs the two-file, two-method scenario: file A
// agrees within tolerance with a small spread, file B is a double-time
// detection with a large spread. Only B is flagged, yet the pair agrees
// on both files.
func TestAnalyzerScenario(t *testing.T) {
	store := mustStore(t,
		tempo.NewEstimate("a.mp3", "method1", 100),
		tempo.NewEstimate("a.mp3", "method2", 102),
		tempo.NewEstimate("b.mp3", "method1", 70),
		tempo.NewEstimate("b.mp3", "method2", 140),
	)

	analyzer := NewAnalyzer(store, &Config{Tolerance: 5, VarianceThreshold: 20})
	summary, err := analyzer.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.TotalFiles != 2 {
		t.Errorf("TotalFiles: want 2, got %d", summary.TotalFiles)
	}

	if len(summary.HighVariance) != 1 {
		t.Fatalf("HighVariance: want 1 record, got %d", len(summary.HighVariance))
	}
	if rec := summary.HighVariance[0]; rec.FileID != "b.mp3" || rec.Spread != 70 {
		t.Errorf("HighVariance[0]: want b.mp3 spread 70, got %s spread %v", rec.FileID, rec.Spread)
	}

	if len(summary.Agreement) != 1 {
		t.Fatalf("Agreement: want 1 pair, got %d", len(summary.Agreement))
	}
	pair := summary.Agreement[0]
	if pair.Compared != 2 || pair.Agreed != 2 {
		t.Errorf("Agreement: want 2/2, got %d/%d", pair.Agreed, pair.Compared)
	}
	if pair.Percent == nil || *pair.Percent != 100 {
		t.Errorf("Agreement percent: want 100, got %v", pair.Percent)
	}
}

// TestAnalyzerAbsentExclusion checks that an absent reading shrinks the
// pair's denominator without touching the other method's statistics.
func TestAnalyzerAbsentExclusion(t *testing.T) {
	store := mustStore(t,
		tempo.NewEstimate("a.mp3", "method1", 100),
		tempo.NewEstimate("a.mp3", "method2", 102),
		tempo.NewEstimate("b.mp3", "method1", 120),
		tempo.NewEstimate("b.mp3", "method2", 118),
		tempo.NewMissingEstimate("c.mp3", "method1"),
		tempo.NewEstimate("c.mp3", "method2", 90),
	)

	analyzer := NewAnalyzer(store, &Config{})
	summary, err := analyzer.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, ms := range summary.MethodStats {
		if ms.TotalFiles != 3 {
			t.Errorf("%s TotalFiles: want 3, got %d", ms.Method, ms.TotalFiles)
		}
		switch ms.Method {
		case "method1":
			if ms.Count != 2 {
				t.Errorf("method1 Count: want 2, got %d", ms.Count)
			}
			if ms.MeanBPM == nil || *ms.MeanBPM != 110 {
				t.Errorf("method1 MeanBPM: want 110, got %v", ms.MeanBPM)
			}
		case "method2":
			if ms.Count != 3 {
				t.Errorf("method2 Count: want 3, got %d", ms.Count)
			}
		}
	}

	pair := summary.Agreement[0]
	if pair.Compared != 2 {
		t.Errorf("Compared: want 2 (c.mp3 excluded), got %d", pair.Compared)
	}
}

func TestAnalyzerUnfrozenStore(t *testing.T) {
	store := tempo.NewStore()
	if err := store.Ingest(tempo.NewEstimate("a.mp3", "method1", 100)); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	analyzer := NewAnalyzer(store, &Config{})
	_, err := analyzer.Run(context.Background())

	var verr *tempo.ValidationError
	if !errors.As(err, &verr) || verr.Code != tempo.ErrCodeNotFrozen {
		t.Errorf("Run on unfrozen store: want %s, got %v", tempo.ErrCodeNotFrozen, err)
	}
}

// TestAnalyzerDeterminism re-runs the full pipeline over one frozen
// corpus and requires byte-identical reports, regardless of worker count.
func TestAnalyzerDeterminism(t *testing.T) {
	store := mustStore(t,
		tempo.NewEstimate("a.mp3", "essentia", 100),
		tempo.NewEstimate("a.mp3", "librosa_onset", 102),
		tempo.NewEstimate("a.mp3", "librosa_standard", 175),
		tempo.NewEstimate("b.mp3", "essentia", 70),
		tempo.NewEstimate("b.mp3", "librosa_onset", 140),
		tempo.NewMissingEstimate("b.mp3", "librosa_standard"),
		tempo.NewEstimate("c.mp3", "essentia", 118),
		tempo.NewMissingEstimate("c.mp3", "librosa_onset"),
		tempo.NewEstimate("c.mp3", "librosa_standard", 90),
	)

	var reports []string
	for _, workers := range []int{1, 4, 16} {
		analyzer := NewAnalyzer(store, &Config{MaxConcurrentFiles: workers})
		summary, err := analyzer.Run(context.Background())
		if err != nil {
			t.Fatalf("Run with %d workers: %v", workers, err)
		}
		reports = append(reports, RenderReport(summary))
	}

	for i := 1; i < len(reports); i++ {
		if reports[i] != reports[0] {
			t.Errorf("report %d differs from report 0:\n%s\n---\n%s", i, reports[i], reports[0])
		}
	}
}
