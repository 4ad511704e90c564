package tempo

import (
	"fmt"
	"math"
	"sort"
	"sync"
)

// Store is the in-memory table of raw per-file, per-method tempo estimates
// for one analysis run. It is append-only until Freeze, then read-only.
// Every method takes the internal mutex, so ingestion and queries may run
// from multiple goroutines in any interleaving; Freeze is the barrier
// after which the contents never change.
type Store struct {
	mu       sync.Mutex
	frozen   bool
	byFile   map[string]map[string]Reading
	byMethod map[string]map[string]Reading
}

// NewStore creates an empty estimate store
func NewStore() *Store {
	return &Store{
		byFile:   make(map[string]map[string]Reading),
		byMethod: make(map[string]map[string]Reading),
	}
}

// Ingest appends one estimate record. Duplicate (file, method) pairs,
// non-positive or non-finite BPM values on detected estimates, and any
// ingestion after Freeze are fatal validation errors.
func (s *Store) Ingest(est Estimate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return NewValidationError(est.FileID, est.Method, ErrCodeStoreFrozen,
			fmt.Sprintf("cannot ingest estimate for %s/%s: store is frozen", est.FileID, est.Method), nil)
	}

	if est.Detected && (est.BPM <= 0 || math.IsNaN(est.BPM) || math.IsInf(est.BPM, 0)) {
		return NewValidationError(est.FileID, est.Method, ErrCodeInvalidBPM,
			fmt.Sprintf("invalid BPM %v for %s/%s: must be a positive finite number", est.BPM, est.FileID, est.Method), nil)
	}

	if _, exists := s.byFile[est.FileID][est.Method]; exists {
		return NewValidationError(est.FileID, est.Method, ErrCodeDuplicate,
			fmt.Sprintf("duplicate estimate for %s/%s", est.FileID, est.Method), nil)
	}

	if s.byFile[est.FileID] == nil {
		s.byFile[est.FileID] = make(map[string]Reading)
	}
	if s.byMethod[est.Method] == nil {
		s.byMethod[est.Method] = make(map[string]Reading)
	}

	reading := est.Reading()
	s.byFile[est.FileID][est.Method] = reading
	s.byMethod[est.Method][est.FileID] = reading

	return nil
}

// Freeze transitions the store to read-only. An empty corpus at freeze
// time is a validation error. Freezing an already frozen store is a no-op.
func (s *Store) Freeze() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return nil
	}

	if len(s.byFile) == 0 {
		return NewValidationError("", "", ErrCodeEmptyCorpus,
			"cannot freeze an empty corpus: no estimates ingested", nil)
	}

	s.frozen = true
	return nil
}

// Frozen reports whether the store has been frozen
func (s *Store) Frozen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frozen
}

// EstimatesForFile returns the method→reading mapping for one file. The
// returned map is a copy; mutating it does not affect the store.
func (s *Store) EstimatesForFile(fileID string) (map[string]Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	readings, exists := s.byFile[fileID]
	if !exists {
		return nil, NewValidationError(fileID, "", ErrCodeUnknownFile,
			fmt.Sprintf("unknown file %q", fileID), nil)
	}

	out := make(map[string]Reading, len(readings))
	for method, reading := range readings {
		out[method] = reading
	}
	return out, nil
}

// EstimatesForMethod returns the file→reading mapping for one method. The
// returned map is a copy; mutating it does not affect the store.
func (s *Store) EstimatesForMethod(method string) (map[string]Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	readings, exists := s.byMethod[method]
	if !exists {
		return nil, NewValidationError("", method, ErrCodeUnknownMethod,
			fmt.Sprintf("unknown method %q", method), nil)
	}

	out := make(map[string]Reading, len(readings))
	for fileID, reading := range readings {
		out[fileID] = reading
	}
	return out, nil
}

// Methods returns all method names seen during ingestion, sorted
func (s *Store) Methods() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	methods := make([]string, 0, len(s.byMethod))
	for method := range s.byMethod {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return methods
}

// Files returns all file ids seen during ingestion, sorted
func (s *Store) Files() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	files := make([]string, 0, len(s.byFile))
	for fileID := range s.byFile {
		files = append(files, fileID)
	}
	sort.Strings(files)
	return files
}

// FileCount returns the corpus size used by coverage denominators
func (s *Store) FileCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byFile)
}
