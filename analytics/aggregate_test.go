package analytics

import (
	"errors"
	"testing"
)

func TestGroupCount(t *testing.T) {
	tracks := []Track{
		{Artist: "Beta", Comments: i64ptr(1)},
		{Artist: "Alpha", Comments: i64ptr(2)},
		{Artist: "Beta", Comments: i64ptr(3)},
		{Artist: "Alpha", Comments: nil},
		{Artist: "Gamma", Comments: i64ptr(4)},
	}

	got, err := GroupCount(tracks, "artist", "comments")
	if err != nil {
		t.Fatalf("GroupCount() error = %v", err)
	}

	// Beta has two non-null comments; Alpha and Gamma have one each and tie,
	// broken by key ascending.
	expected := []GroupCountRow{
		{Key: "Beta", Count: 2},
		{Key: "Alpha", Count: 1},
		{Key: "Gamma", Count: 1},
	}
	if len(got) != len(expected) {
		t.Fatalf("got %d groups, want %d", len(got), len(expected))
	}
	for i, row := range got {
		if row != expected[i] {
			t.Errorf("group %d: got %+v, want %+v", i, row, expected[i])
		}
	}
}

func TestGroupCountAlbumTypeCaseInsensitive(t *testing.T) {
	// album_type is an enumeration matched case-insensitively: differently
	// cased spellings must land in one group.
	tracks := []Track{
		{Artist: "A", AlbumType: "Album"},
		{Artist: "B", AlbumType: "album"},
		{Artist: "C", AlbumType: "ALBUM"},
		{Artist: "D", AlbumType: "single"},
	}

	got, err := GroupCount(tracks, "album_type", "artist")
	if err != nil {
		t.Fatalf("GroupCount() error = %v", err)
	}

	expected := []GroupCountRow{
		{Key: "album", Count: 3},
		{Key: "single", Count: 1},
	}
	if len(got) != len(expected) {
		t.Fatalf("got %d groups, want %d: %v", len(got), len(expected), got)
	}
	for i, row := range got {
		if row != expected[i] {
			t.Errorf("group %d: got %+v, want %+v", i, row, expected[i])
		}
	}
}

func TestGroupCountEmptyTextIsNull(t *testing.T) {
	// The loaders map absent source values to "", so an empty text cell
	// does not count as an occurrence.
	tracks := []Track{
		{Artist: "A", Track: "titled"},
		{Artist: "A", Track: ""},
	}

	got, err := GroupCount(tracks, "artist", "track")
	if err != nil {
		t.Fatalf("GroupCount() error = %v", err)
	}
	if len(got) != 1 || got[0].Count != 1 {
		t.Fatalf("got %v, want one group counting only the titled row", got)
	}
}

func TestGroupCountUnknownFields(t *testing.T) {
	tracks := []Track{{Artist: "A"}}

	var fieldErr *InvalidFieldError
	if _, err := GroupCount(tracks, "nope", "comments"); !errors.As(err, &fieldErr) {
		t.Errorf("unknown group key: error = %v, want *InvalidFieldError", err)
	}
	if _, err := GroupCount(nil, "artist", "nope"); !errors.As(err, &fieldErr) {
		t.Errorf("unknown count field on empty input: error = %v, want *InvalidFieldError", err)
	}
}

func TestGroupAggregate(t *testing.T) {
	tracks := []Track{
		{AlbumType: "album", Energy: 0.4, Views: f64ptr(100)},
		{AlbumType: "album", Energy: 0.8, Views: nil},
		{AlbumType: "single", Energy: 0.6, Views: f64ptr(50)},
	}

	tests := []struct {
		name     string
		field    string
		fn       AggFn
		expected []GroupValueRow
	}{
		{
			name:  "avg energy per album type",
			field: "energy",
			fn:    AggAvg,
			expected: []GroupValueRow{
				{Key: "album", Value: 0.6000000000000001},
				{Key: "single", Value: 0.6},
			},
		},
		{
			name:  "avg views excludes nulls from the denominator",
			field: "views",
			fn:    AggAvg,
			expected: []GroupValueRow{
				{Key: "album", Value: 100},
				{Key: "single", Value: 50},
			},
		},
		{
			name:  "sum views treats nulls as zero",
			field: "views",
			fn:    AggSum,
			expected: []GroupValueRow{
				{Key: "album", Value: 100},
				{Key: "single", Value: 50},
			},
		},
		{
			name:  "max energy",
			field: "energy",
			fn:    AggMax,
			expected: []GroupValueRow{
				{Key: "album", Value: 0.8},
				{Key: "single", Value: 0.6},
			},
		},
		{
			name:  "min energy",
			field: "energy",
			fn:    AggMin,
			expected: []GroupValueRow{
				{Key: "album", Value: 0.4},
				{Key: "single", Value: 0.6},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GroupAggregate(tracks, "album_type", tt.field, tt.fn)
			if err != nil {
				t.Fatalf("GroupAggregate() error = %v", err)
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("got %d groups, want %d", len(got), len(tt.expected))
			}
			for i, row := range got {
				if row != tt.expected[i] {
					t.Errorf("group %d: got %+v, want %+v", i, row, tt.expected[i])
				}
			}
		})
	}
}

func TestGroupAggregateEmptyInput(t *testing.T) {
	got, err := GroupAggregate(nil, "artist", "views", AggAvg)
	if err != nil {
		t.Fatalf("GroupAggregate() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d groups, want 0", len(got))
	}
}

func TestGroupAggregateAllNullGroup(t *testing.T) {
	tracks := []Track{
		{Artist: "Silent", Views: nil},
		{Artist: "Loud", Views: f64ptr(9)},
	}

	avg, err := GroupAggregate(tracks, "artist", "views", AggAvg)
	if err != nil {
		t.Fatalf("GroupAggregate() error = %v", err)
	}
	if len(avg) != 1 || avg[0].Key != "Loud" {
		t.Errorf("avg: got %v, want only the Loud group", avg)
	}

	sum, err := GroupAggregate(tracks, "artist", "views", AggSum)
	if err != nil {
		t.Fatalf("GroupAggregate() error = %v", err)
	}
	if len(sum) != 2 {
		t.Fatalf("sum: got %d groups, want 2", len(sum))
	}
	if sum[1].Key != "Silent" || sum[1].Value != 0 {
		t.Errorf("sum: got %+v, want Silent with zero sum", sum[1])
	}
}

func TestGroupRange(t *testing.T) {
	tracks := []Track{
		{Album: "X", Energy: 0.2},
		{Album: "X", Energy: 0.9},
		{Album: "X", Energy: 0.5},
		{Album: "Y", Energy: 0.4},
		{Album: "Y", Energy: 0.5},
	}

	got, err := GroupRange(tracks, "album", "energy")
	if err != nil {
		t.Fatalf("GroupRange() error = %v", err)
	}

	expected := []GroupRangeRow{
		{Key: "X", Diff: 0.7},
		{Key: "Y", Diff: 0.1},
	}
	if len(got) != len(expected) {
		t.Fatalf("got %d groups, want %d", len(got), len(expected))
	}
	for i, row := range got {
		if row.Key != expected[i].Key {
			t.Errorf("group %d: got key %q, want %q", i, row.Key, expected[i].Key)
		}
		if diff := row.Diff - expected[i].Diff; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("group %d: got diff %v, want %v", i, row.Diff, expected[i].Diff)
		}
	}
}

func TestComparativePlatformStreams(t *testing.T) {
	tracks := []Track{
		// Spotify-dominant with a YouTube presence: kept.
		{Track: "kept", MostPlayedOn: "Spotify", Stream: 900},
		{Track: "kept", MostPlayedOn: "Youtube", Stream: 100},
		// No YouTube streams at all: must not count as Spotify-dominant.
		{Track: "spotify only", MostPlayedOn: "Spotify", Stream: 500},
		// YouTube-dominant: dropped.
		{Track: "youtube heavy", MostPlayedOn: "Spotify", Stream: 10},
		{Track: "youtube heavy", MostPlayedOn: "Youtube", Stream: 400},
	}

	got := ComparativePlatformStreams(tracks)

	if len(got) != 1 {
		t.Fatalf("got %d rows, want 1", len(got))
	}
	row := got[0]
	if row.Track != "kept" {
		t.Errorf("got track %q, want %q", row.Track, "kept")
	}
	if row.StreamedOnSpotify != 900 || row.StreamedOnYoutube != 100 {
		t.Errorf("got sums %d/%d, want 900/100", row.StreamedOnSpotify, row.StreamedOnYoutube)
	}
	if row.StreamedOnYoutube == 0 {
		t.Error("returned row has zero YouTube streams")
	}
}

func TestComparativePlatformStreamsCaseInsensitive(t *testing.T) {
	tracks := []Track{
		{Track: "t", MostPlayedOn: "spotify", Stream: 10},
		{Track: "t", MostPlayedOn: "YOUTUBE", Stream: 3},
	}

	got := ComparativePlatformStreams(tracks)
	if len(got) != 1 {
		t.Fatalf("got %d rows, want 1", len(got))
	}
	if got[0].StreamedOnSpotify != 10 || got[0].StreamedOnYoutube != 3 {
		t.Errorf("got sums %d/%d, want 10/3", got[0].StreamedOnSpotify, got[0].StreamedOnYoutube)
	}
}
