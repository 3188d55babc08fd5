// Package output provides formatters for rendering analysis results.
//
// Currently supported formats:
//   - JSON Lines: One JSON object per line
//   - CSV: Comma-separated values with header row
//   - Table: Human-readable aligned table
//
// Example usage:
//
//	formatter := output.NewJSONFormatter(os.Stdout)
//	if err := formatter.Format(rows); err != nil {
//	    log.Fatal(err)
//	}
package output

import (
	"io"
	"sort"
)

// Formatter defines the interface for output formatters.
//
// Implementers must provide Format to convert rows to the target format
// and SetOutput to change the output destination.
type Formatter interface {
	// Format writes rows in the formatter's specific format
	Format(rows []map[string]interface{}) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// datasetColumns is the source schema order of the track dataset. Result
// columns computed by an operation (rank, ratio, counts) come after these.
var datasetColumns = []string{
	"artist", "track", "album", "album_type", "uri",
	"danceability", "energy", "loudness", "speechiness", "acousticness",
	"instrumentalness", "liveness", "valence", "tempo", "duration_min",
	"views", "likes", "comments", "licensed", "official_video",
	"stream", "most_played_on", "energy_liveness",
}

// columnOrder returns every column present in the rows: dataset columns in
// schema order first, then derived columns alphabetically. Deterministic for
// any row set, which keeps CSV and table output reproducible.
func columnOrder(rows []map[string]interface{}) []string {
	present := make(map[string]bool)
	for _, row := range rows {
		for col := range row {
			present[col] = true
		}
	}

	columns := make([]string, 0, len(present))
	for _, col := range datasetColumns {
		if present[col] {
			columns = append(columns, col)
			delete(present, col)
		}
	}

	extras := make([]string, 0, len(present))
	for col := range present {
		extras = append(extras, col)
	}
	sort.Strings(extras)

	return append(columns, extras...)
}
