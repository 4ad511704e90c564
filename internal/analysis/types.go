package analysis

// MethodStats represents descriptive statistics for one detection method
// over the corpus. Mean/Min/Max are nil for a method with zero coverage;
// the report renders that as "no data", never as a numeric artifact.
type MethodStats struct {
	Method     string   `json:"method"`
	Count      int      `json:"count"`
	TotalFiles int      `json:"total_files"`
	MeanBPM    *float64 `json:"mean_bpm,omitempty"`
	MinBPM     *float64 `json:"min_bpm,omitempty"`
	MaxBPM     *float64 `json:"max_bpm,omitempty"`
}

// VarianceRecord represents the cross-method spread for one file,
// restricted to methods that produced a value.
type VarianceRecord struct {
	FileID      string             `json:"file_id"`
	BPMByMethod map[string]float64 `json:"bpm_by_method"`
	Spread      float64            `json:"spread"`
}

// PairAgreement represents one unordered method pair's agreement over the
// files both methods produced a value for. Percent is nil when the pair
// has no overlapping files.
type PairAgreement struct {
	MethodA  string   `json:"method_a"`
	MethodB  string   `json:"method_b"`
	Agreed   int      `json:"agreed"`
	Compared int      `json:"compared"`
	Percent  *float64 `json:"percent,omitempty"`
}

// Summary is the full derived output for one analysis run: a pure
// function of the frozen corpus and the configured thresholds.
type Summary struct {
	TotalFiles        int              `json:"total_files"`
	Methods           []string         `json:"methods"`
	MethodStats       []MethodStats    `json:"method_stats"`
	HighVariance      []VarianceRecord `json:"high_variance"`
	Agreement         []PairAgreement  `json:"agreement"`
	Tolerance         float64          `json:"tolerance"`
	VarianceThreshold float64          `json:"variance_threshold"`
}
