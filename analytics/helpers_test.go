package analytics

// Shared constructors for test fixtures.

func f64ptr(v float64) *float64 { return &v }

func i64ptr(v int64) *int64 { return &v }

// testTrack builds a minimal track with the identifiers and view count set.
func testTrack(artist, track, album string, views float64) Track {
	return Track{
		Artist: artist,
		Track:  track,
		Album:  album,
		Views:  f64ptr(views),
	}
}
