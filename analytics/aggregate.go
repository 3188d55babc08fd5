package analytics

import (
	"sort"
	"strings"
)

// trackGroup collects the rows sharing one group key, in input order.
type trackGroup struct {
	key  string
	rows []Track
}

// groupTracks partitions tracks by a text column, preserving the first
// occurrence order of the keys and the input order of rows within a group.
func groupTracks(tracks []Track, groupKey string) ([]trackGroup, error) {
	accessor, ok := textFields[groupKey]
	if !ok {
		return nil, &InvalidFieldError{Field: groupKey}
	}

	index := make(map[string]int)
	groups := make([]trackGroup, 0)
	for _, t := range tracks {
		key := accessor(t)
		i, exists := index[key]
		if !exists {
			i = len(groups)
			index[key] = i
			groups = append(groups, trackGroup{key: key})
		}
		groups[i].rows = append(groups[i].rows, t)
	}

	return groups, nil
}

// GroupCount groups by a text column and counts the non-null occurrences of
// countField per group, sorted descending by count with ties broken by group
// key ascending.
func GroupCount(tracks []Track, groupKey, countField string) ([]GroupCountRow, error) {
	groups, err := groupTracks(tracks, groupKey)
	if err != nil {
		return nil, err
	}
	// Validate the counted field up front so an unknown column fails even
	// on empty input.
	if _, err := fieldPresent(Track{}, countField); err != nil {
		return nil, err
	}

	result := make([]GroupCountRow, 0, len(groups))
	for _, g := range groups {
		count := int64(0)
		for _, t := range g.rows {
			present, err := fieldPresent(t, countField)
			if err != nil {
				return nil, err
			}
			if present {
				count++
			}
		}
		result = append(result, GroupCountRow{Key: g.key, Count: count})
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Key < result[j].Key
	})

	return result, nil
}

// GroupAggregate groups by a text column and applies an aggregate function
// to a numeric column, returning one row per group sorted by key ascending.
// AVG excludes null values from its denominator; SUM treats them as zero.
// Groups with no non-null values are omitted for avg/max/min and reported
// as zero for sum.
func GroupAggregate(tracks []Track, groupKey, aggField string, fn AggFn) ([]GroupValueRow, error) {
	accessor, ok := numericFields[aggField]
	if !ok {
		return nil, &InvalidFieldError{Field: aggField}
	}
	groups, err := groupTracks(tracks, groupKey)
	if err != nil {
		return nil, err
	}

	result := make([]GroupValueRow, 0, len(groups))
	for _, g := range groups {
		value, hasValues := aggregate(g.rows, accessor, fn)
		if !hasValues && fn != AggSum {
			continue
		}
		result = append(result, GroupValueRow{Key: g.key, Value: value})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Key < result[j].Key
	})

	return result, nil
}

// aggregate evaluates one aggregate function over a group's rows. The second
// return reports whether any non-null value was seen.
func aggregate(rows []Track, accessor func(Track) (float64, bool), fn AggFn) (float64, bool) {
	sum := 0.0
	count := 0
	var min, max float64

	for _, t := range rows {
		v, present := accessor(t)
		if !present {
			continue
		}
		if count == 0 {
			min, max = v, v
		} else {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		sum += v
		count++
	}

	if count == 0 {
		return 0, false
	}

	switch fn {
	case AggAvg:
		return sum / float64(count), true
	case AggSum:
		return sum, true
	case AggMax:
		return max, true
	case AggMin:
		return min, true
	default:
		return 0, false
	}
}

// GroupRange groups by a text column and returns max(field)-min(field) per
// group, sorted descending by that difference with ties broken by key
// ascending. Groups with no non-null values are omitted.
func GroupRange(tracks []Track, groupKey, field string) ([]GroupRangeRow, error) {
	accessor, ok := numericFields[field]
	if !ok {
		return nil, &InvalidFieldError{Field: field}
	}
	groups, err := groupTracks(tracks, groupKey)
	if err != nil {
		return nil, err
	}

	result := make([]GroupRangeRow, 0, len(groups))
	for _, g := range groups {
		max, hasMax := aggregate(g.rows, accessor, AggMax)
		if !hasMax {
			continue
		}
		min, _ := aggregate(g.rows, accessor, AggMin)
		result = append(result, GroupRangeRow{Key: g.key, Diff: max - min})
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Diff != result[j].Diff {
			return result[i].Diff > result[j].Diff
		}
		return result[i].Key < result[j].Key
	})

	return result, nil
}

// ComparativePlatformStreams groups by track name and computes conditional
// stream sums per platform from most_played_on (matched case-insensitively),
// keeping tracks streamed more on Spotify than on YouTube. Tracks with no
// YouTube streams at all are excluded so a missing platform never counts as
// Spotify-dominant. Output keeps the first-occurrence order of track names.
func ComparativePlatformStreams(tracks []Track) []PlatformStreamsRow {
	groups, _ := groupTracks(tracks, "track")

	result := make([]PlatformStreamsRow, 0)
	for _, g := range groups {
		var spotify, youtube int64
		for _, t := range g.rows {
			switch {
			case strings.EqualFold(t.MostPlayedOn, PlatformSpotify):
				spotify += t.Stream
			case strings.EqualFold(t.MostPlayedOn, PlatformYoutube):
				youtube += t.Stream
			}
		}
		if spotify > youtube && youtube != 0 {
			result = append(result, PlatformStreamsRow{
				Track:             g.key,
				StreamedOnSpotify: spotify,
				StreamedOnYoutube: youtube,
			})
		}
	}

	return result
}
