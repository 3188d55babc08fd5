package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/trackstats/analytics"
)

func writeTestParquet(t *testing.T, path string, tracks []analytics.Track) {
	t.Helper()

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}

	writer := parquet.NewGenericWriter[analytics.Track](file)
	if _, err := writer.Write(tracks); err != nil {
		t.Fatalf("failed to write rows: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("failed to close file: %v", err)
	}
}

func sampleTracks() []analytics.Track {
	views := 1000.0
	likes := int64(50)
	return []analytics.Track{
		{
			Artist:       "Gorillaz",
			Track:        "Feel Good Inc.",
			Album:        "Demon Days",
			AlbumType:    "album",
			Energy:       0.705,
			Liveness:     0.613,
			Views:        &views,
			Likes:        &likes,
			Licensed:     true,
			Stream:       1040234854,
			MostPlayedOn: "Spotify",
		},
		{
			Artist:       "Unknown",
			Track:        "Sparse Row",
			Album:        "Sparse",
			AlbumType:    "single",
			Energy:       0.5,
			Liveness:     0.2,
			Stream:       1000,
			MostPlayedOn: "Youtube",
		},
	}
}

func TestReaderRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracks.parquet")
	writeTestParquet(t, path, sampleTracks())

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	defer func() { _ = r.Close() }()

	tracks, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(tracks))
	}
	if tracks[0].Track != "Feel Good Inc." || tracks[0].Stream != 1040234854 {
		t.Errorf("first row mismatch: %+v", tracks[0])
	}
	if tracks[0].Views == nil || *tracks[0].Views != 1000 {
		t.Errorf("got views %v, want 1000", tracks[0].Views)
	}
	if tracks[1].Views != nil {
		t.Errorf("got views %v on sparse row, want nil", *tracks[1].Views)
	}
}

func TestNewReaderMissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "absent.parquet"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestNewReaderNotParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.parquet")
	if err := os.WriteFile(path, []byte("not a parquet file"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewReader(path); err == nil {
		t.Fatal("expected error for invalid parquet content")
	}
}

func TestReadTracksDispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "tracks.csv")
	csvData := "Artist,Track,Stream,Most_played_on\nA,T1,10,Spotify\n"
	if err := os.WriteFile(csvPath, []byte(csvData), 0o644); err != nil {
		t.Fatal(err)
	}

	fromCSV, err := ReadTracks(csvPath)
	if err != nil {
		t.Fatalf("ReadTracks(csv) error = %v", err)
	}
	if len(fromCSV) != 1 || fromCSV[0].Track != "T1" {
		t.Errorf("csv dispatch: got %v", fromCSV)
	}

	pqPath := filepath.Join(dir, "tracks.parquet")
	writeTestParquet(t, pqPath, sampleTracks())

	fromParquet, err := ReadTracks(pqPath)
	if err != nil {
		t.Fatalf("ReadTracks(parquet) error = %v", err)
	}
	if len(fromParquet) != 2 {
		t.Errorf("parquet dispatch: got %d tracks, want 2", len(fromParquet))
	}
}

func TestReadGlob(t *testing.T) {
	dir := t.TempDir()
	writeTestParquet(t, filepath.Join(dir, "a.parquet"), sampleTracks()[:1])
	writeTestParquet(t, filepath.Join(dir, "b.parquet"), sampleTracks()[1:])

	tracks, err := ReadGlob(filepath.Join(dir, "*.parquet"))
	if err != nil {
		t.Fatalf("ReadGlob() error = %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(tracks))
	}
	// Lexical file order: a.parquet rows precede b.parquet rows.
	if tracks[0].Track != "Feel Good Inc." || tracks[1].Track != "Sparse Row" {
		t.Errorf("unexpected order: %q, %q", tracks[0].Track, tracks[1].Track)
	}
}

func TestReadGlobNoMatches(t *testing.T) {
	if _, err := ReadGlob(filepath.Join(t.TempDir(), "*.parquet")); err == nil {
		t.Fatal("expected error when no files match")
	}
}
