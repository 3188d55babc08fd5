package reader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/trackstats/analytics"
)

// Reader reads a parquet track dataset.
//
// It maintains both an OS file handle and a parquet file handle to enable
// proper resource cleanup.
type Reader struct {
	file   *os.File
	pqFile *parquet.File
}

// NewReader creates a new parquet reader for the specified file path.
//
// The file is opened and validated as a parquet file. Returns an error if
// the file doesn't exist or is not a valid parquet file.
//
// Example:
//
//	reader, err := NewReader("spotify.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer reader.Close()
func NewReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	return &Reader{
		file:   file,
		pqFile: pqFile,
	}, nil
}

// ReadAll reads every row of the file into typed track records.
//
// The entire file is loaded into memory; the analytical operations are
// whole-dataset transforms, so there is nothing to gain from streaming.
func (r *Reader) ReadAll() ([]analytics.Track, error) {
	gr := parquet.NewGenericReader[analytics.Track](r.pqFile)
	defer func() { _ = gr.Close() }()

	tracks := make([]analytics.Track, 0, gr.NumRows())
	buf := make([]analytics.Track, 128)
	for {
		n, err := gr.Read(buf)
		tracks = append(tracks, buf[:n]...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read rows: %w", err)
		}
	}

	return tracks, nil
}

// Schema returns the parquet file schema.
func (r *Reader) Schema() *parquet.Schema {
	return r.pqFile.Schema()
}

// Close closes the parquet reader and releases associated resources.
//
// It is safe to call Close multiple times.
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// ReadTracks loads a track dataset, dispatching on the file extension:
// .csv files go through the CSV loader, everything else is read as parquet.
func ReadTracks(path string) ([]analytics.Track, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return ReadCSVFile(path)
	}

	r, err := NewReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	return r.ReadAll()
}

// ReadGlob loads and concatenates every dataset file matching a glob
// pattern, in lexical path order so repeated runs see the same row order.
//
// Examples:
//   - "data/*.parquet" - all parquet files in data directory
//   - "data/2023-*.csv" - CSV exports for one year
//
// Returns an error if no files match the pattern or if any file fails to
// read.
func ReadGlob(pattern string) ([]analytics.Track, error) {
	if !strings.ContainsAny(pattern, "*?[]{}") {
		return ReadTracks(pattern)
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match pattern %q", pattern)
	}
	sort.Strings(matches)

	tracks := make([]analytics.Track, 0)
	for _, path := range matches {
		fileTracks, err := ReadTracks(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		tracks = append(tracks, fileTracks...)
	}

	return tracks, nil
}
