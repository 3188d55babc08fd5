package analytics

import (
	"sort"
)

// compareMetric orders two possibly-null numeric values. A null sorts below
// every present value; two nulls compare equal.
func compareMetric(av float64, aok bool, bv float64, bok bool) int {
	if !aok && !bok {
		return 0
	}
	if !aok {
		return -1
	}
	if !bok {
		return 1
	}
	if av < bv {
		return -1
	}
	if av > bv {
		return 1
	}
	return 0
}

// TopN returns the top n tracks by a numeric column. The sort is stable, so
// ties keep their input order and repeated runs produce identical results.
// Null values sort after present values regardless of direction.
func TopN(tracks []Track, sortField string, n int, descending bool) ([]Track, error) {
	accessor, ok := numericFields[sortField]
	if !ok {
		return nil, &InvalidFieldError{Field: sortField}
	}
	if n <= 0 {
		return []Track{}, nil
	}

	sorted := make([]Track, len(tracks))
	copy(sorted, tracks)

	sort.SliceStable(sorted, func(i, j int) bool {
		vi, oki := accessor(sorted[i])
		vj, okj := accessor(sorted[j])
		cmp := compareMetric(vi, oki, vj, okj)
		if descending {
			return cmp > 0
		}
		// Ascending still pushes nulls to the end.
		if oki != okj {
			return oki
		}
		return cmp < 0
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n], nil
}

// RankWithinGroup computes the dense rank of a numeric column, descending,
// within each group and returns the rows with rank <= topK. Equal metric
// values share a rank and do not consume additional rank slots, so the ranks
// observed in a group always form a contiguous sequence starting at 1.
// Groups appear in first-occurrence order; rows within a group are ordered
// by rank with ties in input order. A non-positive topK returns every row
// ranked.
func RankWithinGroup(tracks []Track, groupKey, metric string, topK int) ([]RankedTrack, error) {
	accessor, ok := numericFields[metric]
	if !ok {
		return nil, &InvalidFieldError{Field: metric}
	}
	groups, err := groupTracks(tracks, groupKey)
	if err != nil {
		return nil, err
	}

	result := make([]RankedTrack, 0)
	for _, g := range groups {
		sorted := make([]Track, len(g.rows))
		copy(sorted, g.rows)
		sort.SliceStable(sorted, func(i, j int) bool {
			vi, oki := accessor(sorted[i])
			vj, okj := accessor(sorted[j])
			return compareMetric(vi, oki, vj, okj) > 0
		})

		rank := int64(1)
		for i, t := range sorted {
			if i > 0 {
				vi, oki := accessor(sorted[i-1])
				vj, okj := accessor(t)
				if compareMetric(vi, oki, vj, okj) != 0 {
					rank++
				}
			}
			if topK > 0 && rank > int64(topK) {
				break
			}
			result = append(result, RankedTrack{Track: t, Rank: rank})
		}
	}

	return result, nil
}

// CumulativeAggregate sorts the distinct tracks ascending by orderField and
// annotates each with the running sum of aggField over all rows ordered at
// or before it. Rows tied on orderField share the cumulative value through
// the end of the tie run, matching window-function semantics over a
// non-unique order key. Null aggField values contribute zero.
func CumulativeAggregate(tracks []Track, orderField, aggField string) ([]CumulativeTrack, error) {
	orderAccessor, ok := numericFields[orderField]
	if !ok {
		return nil, &InvalidFieldError{Field: orderField}
	}
	aggAccessor, ok := numericFields[aggField]
	if !ok {
		return nil, &InvalidFieldError{Field: aggField}
	}

	sorted := distinctTracks(tracks)
	sort.SliceStable(sorted, func(i, j int) bool {
		vi, oki := orderAccessor(sorted[i])
		vj, okj := orderAccessor(sorted[j])
		return compareMetric(vi, oki, vj, okj) < 0
	})

	result := make([]CumulativeTrack, 0, len(sorted))
	running := 0.0
	for start := 0; start < len(sorted); {
		// Find the end of the run of rows tied on the order key.
		end := start + 1
		sv, sok := orderAccessor(sorted[start])
		for end < len(sorted) {
			ev, eok := orderAccessor(sorted[end])
			if compareMetric(sv, sok, ev, eok) != 0 {
				break
			}
			end++
		}

		for i := start; i < end; i++ {
			if v, present := aggAccessor(sorted[i]); present {
				running += v
			}
		}
		for i := start; i < end; i++ {
			result = append(result, CumulativeTrack{Track: sorted[i], Cumulative: running})
		}

		start = end
	}

	return result, nil
}
