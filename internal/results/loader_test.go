package results

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulkarayan/skronk-and-skreigh/internal/tempo"
)

var sampleResults = `[
  {
    "file": "/music/reels/drowsy_maggie.mp3",
    "filename": "drowsy_maggie.mp3",
    "duration": 30,
    "offset": 45.5,
    "essentia": 198.61,
    "librosa_standard": 99.38,
    "librosa_onset": null
  },
  {
    "file": "/music/jigs/morrison.mp3",
    "filename": "morrison.mp3",
    "duration": null,
    "offset": null,
    "essentia": 127.5
  }
]`

func TestParse(t *testing.T) {
	estimates, err := Parse([]byte(sampleResults))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := []tempo.Estimate{
		tempo.NewEstimate("drowsy_maggie.mp3", "essentia", 198.61),
		tempo.NewMissingEstimate("drowsy_maggie.mp3", "librosa_onset"),
		tempo.NewEstimate("drowsy_maggie.mp3", "librosa_standard", 99.38),
		tempo.NewEstimate("morrison.mp3", "essentia", 127.5),
	}

	if len(estimates) != len(want) {
		t.Fatalf("want %d estimates, got %d: %+v", len(want), len(estimates), estimates)
	}
	for i, est := range estimates {
		if est != want[i] {
			t.Errorf("estimates[%d]: want %+v, got %+v", i, want[i], est)
		}
	}
}

func TestParseFileFallback(t *testing.T) {
	estimates, err := Parse([]byte(`[{"file": "/music/airs/aisling.mp3", "essentia": 60.2}]`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(estimates) != 1 || estimates[0].FileID != "/music/airs/aisling.mp3" {
		t.Errorf("want file field fallback, got %+v", estimates)
	}
}

func TestParseErrors(t *testing.T) {
	type test struct {
		name string
		data string
	}

	tests := []test{
		{"not an array", `{"filename": "x.mp3"}`},
		{"missing identifier", `[{"essentia": 100}]`},
		{"non-numeric bpm", `[{"filename": "x.mp3", "essentia": "fast"}]`},
	}

	for _, tt := range tests {
		if _, err := Parse([]byte(tt.data)); err == nil {
			t.Errorf("%s: want error, got nil", tt.name)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results_all_methods.json")
	if err := os.WriteFile(path, []byte(sampleResults), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	estimates, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(estimates) != 4 {
		t.Errorf("want 4 estimates, got %d", len(estimates))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Load(missing file): want error, got nil")
	}
}
