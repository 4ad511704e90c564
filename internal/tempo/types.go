package tempo

// Estimate is one detection method's tempo reading for one audio file.
// Detected is false when the method ran but failed to produce a usable
// tempo; BPM is meaningless in that case and never enters statistics.
type Estimate struct {
	FileID   string  `json:"file_id"`
	Method   string  `json:"method"`
	BPM      float64 `json:"bpm,omitempty"`
	Detected bool    `json:"detected"`
}

// Reading is the value side of an estimate as returned by store queries:
// a BPM with an explicit present/absent flag. A failed detection is a
// Reading with Detected false, never a zero BPM.
type Reading struct {
	BPM      float64 `json:"bpm,omitempty"`
	Detected bool    `json:"detected"`
}

// NewEstimate creates a successful detection result
func NewEstimate(fileID, method string, bpm float64) Estimate {
	return Estimate{
		FileID:   fileID,
		Method:   method,
		BPM:      bpm,
		Detected: true,
	}
}

// NewMissingEstimate records that a method produced no result for a file.
// The record still counts toward coverage denominators.
func NewMissingEstimate(fileID, method string) Estimate {
	return Estimate{
		FileID: fileID,
		Method: method,
	}
}

// Reading returns the value portion of the estimate
func (e Estimate) Reading() Reading {
	return Reading{BPM: e.BPM, Detected: e.Detected}
}
