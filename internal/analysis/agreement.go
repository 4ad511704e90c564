package analysis

import (
	"sort"

	"github.com/paulkarayan/skronk-and-skreigh/internal/tempo"
)

// ComputeAgreement calculates the pairwise agreement matrix: for every
// unordered pair of methods, the fraction of files where both produced a
// value and the comparator classifies the two readings as the same tempo.
// Files where either side is absent are excluded from the denominator.
func ComputeAgreement(store *tempo.Store, cmp *tempo.Comparator) ([]PairAgreement, error) {
	methods := store.Methods()
	files := store.Files()

	var pairs []PairAgreement
	for i := 0; i < len(methods); i++ {
		readingsA, err := store.EstimatesForMethod(methods[i])
		if err != nil {
			return nil, err
		}
		for j := i + 1; j < len(methods); j++ {
			readingsB, err := store.EstimatesForMethod(methods[j])
			if err != nil {
				return nil, err
			}

			pair := PairAgreement{MethodA: methods[i], MethodB: methods[j]}
			for _, fileID := range files {
				a, okA := readingsA[fileID]
				b, okB := readingsB[fileID]
				if !okA || !okB || !a.Detected || !b.Detected {
					continue
				}
				pair.Compared++
				if cmp.Agree(a.BPM, b.BPM) {
					pair.Agreed++
				}
			}
			if pair.Compared > 0 {
				pct := float64(pair.Agreed) / float64(pair.Compared) * 100
				pair.Percent = &pct
			}
			pairs = append(pairs, pair)
		}
	}

	sortPairs(pairs)
	return pairs, nil
}

// sortPairs orders pairs by agreement percentage descending, ties broken
// lexicographically. Zero-overlap pairs have no percentage and sort after
// every defined pair.
func sortPairs(pairs []PairAgreement) {
	sort.Slice(pairs, func(i, j int) bool {
		pi, pj := pairs[i].Percent, pairs[j].Percent
		switch {
		case pi != nil && pj == nil:
			return true
		case pi == nil && pj != nil:
			return false
		case pi != nil && pj != nil && *pi != *pj:
			return *pi > *pj
		}
		if pairs[i].MethodA != pairs[j].MethodA {
			return pairs[i].MethodA < pairs[j].MethodA
		}
		return pairs[i].MethodB < pairs[j].MethodB
	})
}
