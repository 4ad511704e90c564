package analysis

import (
	"context"
	"fmt"

	"github.com/RyanBlaney/latency-benchmark-common/logging"
	"golang.org/x/sync/errgroup"

	"github.com/paulkarayan/skronk-and-skreigh/internal/tempo"
)

// Config contains configuration for an analysis run
type Config struct {
	// Tolerance is the comparator's agreement window in BPM
	Tolerance float64

	// VarianceThreshold is the spread above which a file is flagged
	VarianceThreshold float64

	// MaxConcurrentFiles bounds the per-file fan-out
	MaxConcurrentFiles int

	Logger logging.Logger
}

// Analyzer derives the summary statistics from a frozen estimate store.
// All derived structures are pure functions of the corpus: running twice
// over the same store yields identical summaries.
type Analyzer struct {
	store      *tempo.Store
	comparator *tempo.Comparator
	threshold  float64
	maxWorkers int
	logger     logging.Logger
}

// NewAnalyzer creates a new analyzer over the given store
func NewAnalyzer(store *tempo.Store, config *Config) *Analyzer {
	logger := config.Logger
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	threshold := config.VarianceThreshold
	if threshold <= 0 {
		threshold = DefaultVarianceThreshold
	}

	maxWorkers := config.MaxConcurrentFiles
	if maxWorkers <= 0 {
		maxWorkers = 4
	}

	return &Analyzer{
		store:      store,
		comparator: tempo.NewComparator(config.Tolerance),
		threshold:  threshold,
		maxWorkers: maxWorkers,
		logger:     logger,
	}
}

// Run computes per-method statistics, the high-variance listing, and the
// pairwise agreement matrix. The three computations only read the frozen
// store, so they run concurrently.
func (a *Analyzer) Run(ctx context.Context) (*Summary, error) {
	if !a.store.Frozen() {
		return nil, tempo.NewValidationError("", "", tempo.ErrCodeNotFrozen,
			"analysis requires a frozen estimate store", nil)
	}

	a.logger.Debug("Starting tempo analysis", logging.Fields{
		"files":              a.store.FileCount(),
		"methods":            len(a.store.Methods()),
		"tolerance":          a.comparator.Tolerance(),
		"variance_threshold": a.threshold,
	})

	var (
		stats   []MethodStats
		flagged []VarianceRecord
		pairs   []PairAgreement
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = ComputeMethodStats(a.store)
		return err
	})
	g.Go(func() error {
		var err error
		flagged, err = a.flagHighVariance(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		pairs, err = ComputeAgreement(a.store, a.comparator)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	summary := &Summary{
		TotalFiles:        a.store.FileCount(),
		Methods:           a.store.Methods(),
		MethodStats:       stats,
		HighVariance:      flagged,
		Agreement:         pairs,
		Tolerance:         a.comparator.Tolerance(),
		VarianceThreshold: a.threshold,
	}

	a.logger.Debug("Tempo analysis completed", logging.Fields{
		"high_variance_files": len(flagged),
		"method_pairs":        len(pairs),
	})

	return summary, nil
}

// flagHighVariance fans the per-file spread computation out across
// workers. Each worker writes only its own slot; ordering comes from the
// final sort, so worker scheduling cannot affect the output.
func (a *Analyzer) flagHighVariance(ctx context.Context) ([]VarianceRecord, error) {
	files := a.store.Files()
	records := make([]*VarianceRecord, len(files))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(a.maxWorkers)
	for i, fileID := range files {
		g.Go(func() error {
			readings, err := a.store.EstimatesForFile(fileID)
			if err != nil {
				return err
			}
			records[i] = spreadForFile(fileID, readings)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var flagged []VarianceRecord
	for _, rec := range records {
		if rec != nil && rec.Spread > a.threshold {
			flagged = append(flagged, *rec)
		}
	}
	sortFlagged(flagged)
	return flagged, nil
}
