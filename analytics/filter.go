package analytics

import (
	"math"
	"sort"
)

// epsilon-scaled equality, so large stream counts compare sanely.
func numbersEqual(left, right float64) bool {
	const epsilon = 1e-9
	diff := math.Abs(left - right)
	maxAbs := math.Max(math.Abs(left), math.Abs(right))
	return diff < epsilon*math.Max(1.0, maxAbs)
}

// apply evaluates `left cmp right` for numeric values.
func (c Comparator) apply(left, right float64) bool {
	switch c {
	case CmpEqual:
		return numbersEqual(left, right)
	case CmpNotEqual:
		return !numbersEqual(left, right)
	case CmpLess:
		return left < right
	case CmpGreater:
		return left > right
	case CmpLessEqual:
		return left <= right
	case CmpGreaterEqual:
		return left >= right
	default:
		return false
	}
}

// MatchThreshold reports whether a single track satisfies `field cmp value`.
// A null field never matches.
func MatchThreshold(t Track, field string, cmp Comparator, value float64) (bool, error) {
	v, present, err := NumericValue(t, field)
	if err != nil {
		return false, err
	}
	if !present {
		return false, nil
	}
	return cmp.apply(v, value), nil
}

// FilterByThreshold returns the tracks whose numeric column satisfies
// `field cmp value`. Rows where the column is null are excluded, matching
// SQL comparison semantics. Fails with *InvalidFieldError if the field is
// not a recognized numeric column.
func FilterByThreshold(tracks []Track, field string, cmp Comparator, value float64) ([]Track, error) {
	accessor, ok := numericFields[field]
	if !ok {
		return nil, &InvalidFieldError{Field: field}
	}

	filtered := make([]Track, 0)
	for _, t := range tracks {
		v, present := accessor(t)
		if !present {
			continue
		}
		if cmp.apply(v, value) {
			filtered = append(filtered, t)
		}
	}

	return filtered, nil
}

// DistinctPairs returns the unique (fieldA, fieldB) text tuples across all
// tracks, deduplicated by first occurrence so the output is deterministic
// for identical input order.
func DistinctPairs(tracks []Track, fieldA, fieldB string) ([]Pair, error) {
	accessorA, ok := textFields[fieldA]
	if !ok {
		return nil, &InvalidFieldError{Field: fieldA}
	}
	accessorB, ok := textFields[fieldB]
	if !ok {
		return nil, &InvalidFieldError{Field: fieldB}
	}

	seen := make(map[Pair]bool)
	pairs := make([]Pair, 0)
	for _, t := range tracks {
		p := Pair{A: accessorA(t), B: accessorB(t)}
		if !seen[p] {
			seen[p] = true
			pairs = append(pairs, p)
		}
	}

	return pairs, nil
}

// ConditionalSum sums a numeric column over the tracks matching the
// predicate. Null values contribute zero.
func ConditionalSum(tracks []Track, field string, pred func(Track) bool) (float64, error) {
	accessor, ok := numericFields[field]
	if !ok {
		return 0, &InvalidFieldError{Field: field}
	}

	sum := 0.0
	for _, t := range tracks {
		if pred != nil && !pred(t) {
			continue
		}
		v, present := accessor(t)
		if !present {
			continue
		}
		sum += v
	}

	return sum, nil
}

// AboveAverage returns the tracks whose column is strictly greater than the
// arithmetic mean of that column over the entire input. The mean is computed
// once, before filtering; null values are excluded from its denominator.
// An empty or all-null input yields an empty result.
func AboveAverage(tracks []Track, field string) ([]Track, error) {
	accessor, ok := numericFields[field]
	if !ok {
		return nil, &InvalidFieldError{Field: field}
	}

	sum := 0.0
	count := 0
	for _, t := range tracks {
		v, present := accessor(t)
		if !present {
			continue
		}
		sum += v
		count++
	}
	if count == 0 {
		return []Track{}, nil
	}
	mean := sum / float64(count)

	above := make([]Track, 0)
	for _, t := range tracks {
		v, present := accessor(t)
		if present && v > mean {
			above = append(above, t)
		}
	}

	return above, nil
}

// RatioFilter returns the distinct tracks where the denominator column is
// positive and numerator/denominator exceeds minRatio, each annotated with
// the computed ratio, sorted ascending by ratio. Rows with a zero or
// negative denominator are silently excluded, never an error.
func RatioFilter(tracks []Track, numField, denField string, minRatio float64) ([]RatioTrack, error) {
	numAccessor, ok := numericFields[numField]
	if !ok {
		return nil, &InvalidFieldError{Field: numField}
	}
	denAccessor, ok := numericFields[denField]
	if !ok {
		return nil, &InvalidFieldError{Field: denField}
	}

	result := make([]RatioTrack, 0)
	for _, t := range distinctTracks(tracks) {
		den, present := denAccessor(t)
		if !present || den <= 0 {
			continue
		}
		num, _ := numAccessor(t) // null numerator contributes zero
		ratio := num / den
		if ratio > minRatio {
			result = append(result, RatioTrack{Track: t, Ratio: ratio})
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Ratio < result[j].Ratio
	})

	return result, nil
}

// distinctTracks removes duplicate rows, keeping the first occurrence.
func distinctTracks(tracks []Track) []Track {
	seen := make(map[string]bool)
	distinct := make([]Track, 0, len(tracks))
	for _, t := range tracks {
		k := t.key()
		if !seen[k] {
			seen[k] = true
			distinct = append(distinct, t)
		}
	}
	return distinct
}
