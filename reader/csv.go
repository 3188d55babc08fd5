package reader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/vegasq/trackstats/analytics"
)

// ReadCSVFile loads a track dataset from a CSV file with a header row.
func ReadCSVFile(path string) ([]analytics.Track, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	tracks, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return tracks, nil
}

// ReadCSV parses CSV track data from a reader.
//
// Columns are matched by header name (case-insensitive, spaces treated as
// underscores); unrecognized columns are skipped. Empty cells in the views,
// likes, and comments columns become null; empty cells elsewhere become the
// zero value.
func ReadCSV(r io.Reader) ([]analytics.Track, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged exports are common, validate per cell instead

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i, h := range header {
		header[i] = normalizeHeader(h)
	}

	tracks := make([]analytics.Track, 0)
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		t, err := trackFromRecord(header, record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		tracks = append(tracks, t)
	}

	return tracks, nil
}

func normalizeHeader(h string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
}

func trackFromRecord(header, record []string) (analytics.Track, error) {
	var t analytics.Track

	for i, col := range header {
		if i >= len(record) {
			break
		}
		cell := strings.TrimSpace(record[i])

		var err error
		switch col {
		case "artist":
			t.Artist = cell
		case "track", "title":
			t.Track = cell
		case "album":
			t.Album = cell
		case "album_type":
			t.AlbumType = cell
		case "uri":
			t.URI = cell
		case "most_played_on":
			t.MostPlayedOn = cell
		case "danceability":
			t.Danceability, err = parseFloat(cell)
		case "energy":
			t.Energy, err = parseFloat(cell)
		case "loudness":
			t.Loudness, err = parseFloat(cell)
		case "speechiness":
			t.Speechiness, err = parseFloat(cell)
		case "acousticness":
			t.Acousticness, err = parseFloat(cell)
		case "instrumentalness":
			t.Instrumentalness, err = parseFloat(cell)
		case "liveness":
			t.Liveness, err = parseFloat(cell)
		case "valence":
			t.Valence, err = parseFloat(cell)
		case "tempo":
			t.Tempo, err = parseFloat(cell)
		case "duration_min":
			t.DurationMin, err = parseFloat(cell)
		case "energy_liveness":
			t.EnergyLiveness, err = parseFloat(cell)
		case "views":
			t.Views, err = parseNullableFloat(cell)
		case "likes":
			t.Likes, err = parseNullableInt(cell)
		case "comments":
			t.Comments, err = parseNullableInt(cell)
		case "licensed":
			t.Licensed, err = parseBool(cell)
		case "official_video":
			t.OfficialVideo, err = parseBool(cell)
		case "stream":
			t.Stream, err = parseInt(cell)
		}
		if err != nil {
			return analytics.Track{}, fmt.Errorf("column %q: %w", col, err)
		}
	}

	return t, nil
}

func parseFloat(cell string) (float64, error) {
	if cell == "" {
		return 0, nil
	}
	return strconv.ParseFloat(cell, 64)
}

func parseInt(cell string) (int64, error) {
	if cell == "" {
		return 0, nil
	}
	// Some exports write integer columns as "12345.0".
	if strings.Contains(cell, ".") {
		f, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return 0, err
		}
		return int64(f), nil
	}
	return strconv.ParseInt(cell, 10, 64)
}

func parseBool(cell string) (bool, error) {
	if cell == "" {
		return false, nil
	}
	return strconv.ParseBool(cell)
}

func parseNullableFloat(cell string) (*float64, error) {
	if cell == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseNullableInt(cell string) (*int64, error) {
	if cell == "" {
		return nil, nil
	}
	v, err := parseInt(cell)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
