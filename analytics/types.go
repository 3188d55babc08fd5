package analytics

import (
	"fmt"
	"sort"
	"strings"
)

// Platform values recognized in the most_played_on column.
const (
	PlatformSpotify = "Spotify"
	PlatformYoutube = "Youtube"
)

// Track is one row of the source dataset: a song's identifiers, audio
// features, and per-platform engagement metrics.
//
// Views, Likes, and Comments are pointers because the source data may omit
// them. Aggregations treat a nil value as zero under summation and exclude
// it from average denominators.
type Track struct {
	Artist    string `parquet:"artist"`
	Track     string `parquet:"track"`
	Album     string `parquet:"album"`
	AlbumType string `parquet:"album_type"`
	URI       string `parquet:"uri,optional"`

	Danceability     float64 `parquet:"danceability"`
	Energy           float64 `parquet:"energy"`
	Loudness         float64 `parquet:"loudness"`
	Speechiness      float64 `parquet:"speechiness"`
	Acousticness     float64 `parquet:"acousticness"`
	Instrumentalness float64 `parquet:"instrumentalness"`
	Liveness         float64 `parquet:"liveness"`
	Valence          float64 `parquet:"valence"`
	Tempo            float64 `parquet:"tempo"`
	DurationMin      float64 `parquet:"duration_min"`

	Views    *float64 `parquet:"views,optional"`
	Likes    *int64   `parquet:"likes,optional"`
	Comments *int64   `parquet:"comments,optional"`

	Licensed      bool `parquet:"licensed"`
	OfficialVideo bool `parquet:"official_video"`

	Stream         int64   `parquet:"stream"`
	MostPlayedOn   string  `parquet:"most_played_on"`
	EnergyLiveness float64 `parquet:"energy_liveness"`
}

// InvalidFieldError reports a reference to a column the dataset does not
// have, or one of the wrong kind for the operation (numeric vs text).
type InvalidFieldError struct {
	Field string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Field)
}

// Comparator is a numeric comparison operator for threshold filters.
type Comparator int

const (
	CmpEqual Comparator = iota
	CmpNotEqual
	CmpLess
	CmpGreater
	CmpLessEqual
	CmpGreaterEqual
)

// ParseComparator parses a comparator from its symbolic or mnemonic form
// ("=", "eq", "!=", "ne", "<", "lt", ">", "gt", "<=", "le", ">=", "ge").
func ParseComparator(s string) (Comparator, error) {
	switch strings.ToLower(s) {
	case "=", "==", "eq":
		return CmpEqual, nil
	case "!=", "<>", "ne":
		return CmpNotEqual, nil
	case "<", "lt":
		return CmpLess, nil
	case ">", "gt":
		return CmpGreater, nil
	case "<=", "le":
		return CmpLessEqual, nil
	case ">=", "ge":
		return CmpGreaterEqual, nil
	default:
		return 0, fmt.Errorf("unknown comparator %q", s)
	}
}

// AggFn is an aggregate function applied per group.
type AggFn int

const (
	AggAvg AggFn = iota
	AggSum
	AggMax
	AggMin
)

// ParseAggFn parses an aggregate function name (avg, sum, max, min).
func ParseAggFn(s string) (AggFn, error) {
	switch strings.ToLower(s) {
	case "avg":
		return AggAvg, nil
	case "sum":
		return AggSum, nil
	case "max":
		return AggMax, nil
	case "min":
		return AggMin, nil
	default:
		return 0, fmt.Errorf("unknown aggregate function %q", s)
	}
}

// Pair is a distinct (A, B) text tuple.
type Pair struct {
	A string
	B string
}

// GroupCountRow is one group with its non-null occurrence count.
type GroupCountRow struct {
	Key   string
	Count int64
}

// GroupValueRow is one group with an aggregated value.
type GroupValueRow struct {
	Key   string
	Value float64
}

// GroupRangeRow is one group with its max-min spread for a field.
type GroupRangeRow struct {
	Key  string
	Diff float64
}

// PlatformStreamsRow holds per-track conditional stream sums by platform.
type PlatformStreamsRow struct {
	Track             string
	StreamedOnSpotify int64
	StreamedOnYoutube int64
}

// RankedTrack is a track with its dense rank within its group.
type RankedTrack struct {
	Track
	Rank int64
}

// RatioTrack is a track with the computed numerator/denominator ratio.
type RatioTrack struct {
	Track
	Ratio float64
}

// CumulativeTrack is a track with the running sum of the aggregated field
// over all rows ordered at or before it.
type CumulativeTrack struct {
	Track
	Cumulative float64
}

// numericFields maps a column name to an accessor returning the value and
// whether it is present (non-null) on the row.
var numericFields = map[string]func(Track) (float64, bool){
	"danceability":     func(t Track) (float64, bool) { return t.Danceability, true },
	"energy":           func(t Track) (float64, bool) { return t.Energy, true },
	"loudness":         func(t Track) (float64, bool) { return t.Loudness, true },
	"speechiness":      func(t Track) (float64, bool) { return t.Speechiness, true },
	"acousticness":     func(t Track) (float64, bool) { return t.Acousticness, true },
	"instrumentalness": func(t Track) (float64, bool) { return t.Instrumentalness, true },
	"liveness":         func(t Track) (float64, bool) { return t.Liveness, true },
	"valence":          func(t Track) (float64, bool) { return t.Valence, true },
	"tempo":            func(t Track) (float64, bool) { return t.Tempo, true },
	"duration_min":     func(t Track) (float64, bool) { return t.DurationMin, true },
	"energy_liveness":  func(t Track) (float64, bool) { return t.EnergyLiveness, true },
	"stream":           func(t Track) (float64, bool) { return float64(t.Stream), true },
	"views": func(t Track) (float64, bool) {
		if t.Views == nil {
			return 0, false
		}
		return *t.Views, true
	},
	"likes": func(t Track) (float64, bool) {
		if t.Likes == nil {
			return 0, false
		}
		return float64(*t.Likes), true
	},
	"comments": func(t Track) (float64, bool) {
		if t.Comments == nil {
			return 0, false
		}
		return float64(*t.Comments), true
	},
}

// textFields maps a column name to its string accessor. The album_type and
// most_played_on columns are enumerations that match case-insensitively, so
// their accessors return case-folded values; grouping, distinct tuples, and
// counts over them inherit that fold.
var textFields = map[string]func(Track) string{
	"artist":         func(t Track) string { return t.Artist },
	"track":          func(t Track) string { return t.Track },
	"album":          func(t Track) string { return t.Album },
	"album_type":     func(t Track) string { return strings.ToLower(t.AlbumType) },
	"most_played_on": func(t Track) string { return strings.ToLower(t.MostPlayedOn) },
	"uri":            func(t Track) string { return t.URI },
}

// NumericValue returns the value of a numeric column on a track and whether
// it is present. Fails with *InvalidFieldError for unrecognized columns.
func NumericValue(t Track, field string) (float64, bool, error) {
	accessor, ok := numericFields[field]
	if !ok {
		return 0, false, &InvalidFieldError{Field: field}
	}
	value, present := accessor(t)
	return value, present, nil
}

// TextValue returns the value of a text column on a track; album_type and
// most_played_on come back case-folded. Fails with *InvalidFieldError for
// unrecognized columns.
func TextValue(t Track, field string) (string, error) {
	accessor, ok := textFields[field]
	if !ok {
		return "", &InvalidFieldError{Field: field}
	}
	return accessor(t), nil
}

// NumericFields returns the recognized numeric column names, sorted.
func NumericFields() []string {
	names := make([]string, 0, len(numericFields))
	for name := range numericFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TextFields returns the recognized text column names, sorted.
func TextFields() []string {
	names := make([]string, 0, len(textFields))
	for name := range textFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// fieldPresent reports whether a column holds a non-null value on the row.
// Text columns count as present when non-empty: the loaders map absent
// source values (a track with no matching video has no title or channel) to
// "", so an empty string stands in for null here even though SQL COUNT
// would count it.
func fieldPresent(t Track, field string) (bool, error) {
	if accessor, ok := numericFields[field]; ok {
		_, present := accessor(t)
		return present, nil
	}
	if accessor, ok := textFields[field]; ok {
		return accessor(t) != "", nil
	}
	return false, &InvalidFieldError{Field: field}
}

// Row converts a track to a generic row for the output formatters.
func (t Track) Row() map[string]interface{} {
	row := map[string]interface{}{
		"artist":           t.Artist,
		"track":            t.Track,
		"album":            t.Album,
		"album_type":       t.AlbumType,
		"uri":              t.URI,
		"danceability":     t.Danceability,
		"energy":           t.Energy,
		"loudness":         t.Loudness,
		"speechiness":      t.Speechiness,
		"acousticness":     t.Acousticness,
		"instrumentalness": t.Instrumentalness,
		"liveness":         t.Liveness,
		"valence":          t.Valence,
		"tempo":            t.Tempo,
		"duration_min":     t.DurationMin,
		"licensed":         t.Licensed,
		"official_video":   t.OfficialVideo,
		"stream":           t.Stream,
		"most_played_on":   t.MostPlayedOn,
		"energy_liveness":  t.EnergyLiveness,
	}
	if t.Views != nil {
		row["views"] = *t.Views
	} else {
		row["views"] = nil
	}
	if t.Likes != nil {
		row["likes"] = *t.Likes
	} else {
		row["likes"] = nil
	}
	if t.Comments != nil {
		row["comments"] = *t.Comments
	} else {
		row["comments"] = nil
	}
	return row
}

// key builds a deduplication key covering every column of the row.
func (t Track) key() string {
	var b strings.Builder
	for _, s := range []string{t.Artist, t.Track, t.Album, t.AlbumType, t.URI, t.MostPlayedOn} {
		b.WriteString(s)
		b.WriteString("\x00:\x00")
	}
	fmt.Fprintf(&b, "%v|%v|%v|%v|%v|%v|%v|%v|%v|%v|%v|%v|%v|%v",
		t.Danceability, t.Energy, t.Loudness, t.Speechiness, t.Acousticness,
		t.Instrumentalness, t.Liveness, t.Valence, t.Tempo, t.DurationMin,
		t.Licensed, t.OfficialVideo, t.Stream, t.EnergyLiveness)
	for _, p := range []interface{}{t.Views, t.Likes, t.Comments} {
		b.WriteString("\x00||\x00")
		switch v := p.(type) {
		case *float64:
			if v == nil {
				b.WriteString("<nil>")
			} else {
				fmt.Fprintf(&b, "%v", *v)
			}
		case *int64:
			if v == nil {
				b.WriteString("<nil>")
			} else {
				fmt.Fprintf(&b, "%v", *v)
			}
		}
	}
	return b.String()
}
