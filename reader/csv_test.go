package reader

import (
	"strings"
	"testing"
)

const sampleCSV = `Artist,Track,Album,Album_type,Danceability,Energy,Liveness,Tempo,Duration_min,Views,Likes,Comments,Licensed,Official_video,Stream,Most_played_on,Energy_liveness
Gorillaz,Feel Good Inc.,Demon Days,album,0.818,0.705,0.613,138.559,3.7,693555221,6220896,169907,True,True,1040234854,Spotify,1.15
Gorillaz,New Gold,New Gold,single,0.695,0.923,0.115,108.014,3.6,8435055,282142,7399,True,True,64045097,Spotify,8.02
Unknown,Sparse Row,Sparse,single,0.5,0.5,0.2,120.0,3.0,,,,False,False,1000,Youtube,2.5
`

func TestReadCSV(t *testing.T) {
	tracks, err := ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}

	if len(tracks) != 3 {
		t.Fatalf("got %d tracks, want 3", len(tracks))
	}

	first := tracks[0]
	if first.Artist != "Gorillaz" || first.Track != "Feel Good Inc." {
		t.Errorf("got identifiers %q/%q, want Gorillaz/Feel Good Inc.", first.Artist, first.Track)
	}
	if first.Danceability != 0.818 {
		t.Errorf("got danceability %v, want 0.818", first.Danceability)
	}
	if first.Views == nil || *first.Views != 693555221 {
		t.Errorf("got views %v, want 693555221", first.Views)
	}
	if first.Likes == nil || *first.Likes != 6220896 {
		t.Errorf("got likes %v, want 6220896", first.Likes)
	}
	if !first.Licensed || !first.OfficialVideo {
		t.Error("expected licensed and official_video to parse as true")
	}
	if first.Stream != 1040234854 {
		t.Errorf("got stream %d, want 1040234854", first.Stream)
	}
	if first.MostPlayedOn != "Spotify" {
		t.Errorf("got most_played_on %q, want Spotify", first.MostPlayedOn)
	}
}

func TestReadCSVEmptyCellsAreNull(t *testing.T) {
	tracks, err := ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}

	sparse := tracks[2]
	if sparse.Views != nil {
		t.Errorf("got views %v, want nil", *sparse.Views)
	}
	if sparse.Likes != nil {
		t.Errorf("got likes %v, want nil", *sparse.Likes)
	}
	if sparse.Comments != nil {
		t.Errorf("got comments %v, want nil", *sparse.Comments)
	}
}

func TestReadCSVMalformedNumber(t *testing.T) {
	data := "Artist,Track,Views\nA,T,not-a-number\n"
	_, err := ReadCSV(strings.NewReader(data))
	if err == nil {
		t.Fatal("expected error for malformed numeric cell")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error %q does not name the failing line", err)
	}
}

func TestReadCSVFloatFormattedIntegers(t *testing.T) {
	// Pandas re-exports often render integer columns as floats.
	data := "Artist,Track,Likes,Stream\nA,T,123.0,456.0\n"
	tracks, err := ReadCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if tracks[0].Likes == nil || *tracks[0].Likes != 123 {
		t.Errorf("got likes %v, want 123", tracks[0].Likes)
	}
	if tracks[0].Stream != 456 {
		t.Errorf("got stream %d, want 456", tracks[0].Stream)
	}
}

func TestReadCSVMissingHeader(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	if err == nil {
		t.Fatal("expected error for empty input")
	}
}
