// Command trackgen writes a small synthetic track dataset for demos and
// manual testing of the trackstats CLI.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/trackstats/analytics"
	"github.com/vegasq/trackstats/output"
)

var outFlag = flag.String("o", "tracks.parquet", "Output file (.parquet or .csv)")

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }

func sampleTracks() []analytics.Track {
	tracks := []analytics.Track{
		{
			Artist: "Gorillaz", Track: "Feel Good Inc.", Album: "Demon Days", AlbumType: "album",
			Danceability: 0.818, Energy: 0.705, Loudness: -6.679, Speechiness: 0.177,
			Acousticness: 0.00836, Instrumentalness: 0.00233, Liveness: 0.613, Valence: 0.772,
			Tempo: 138.559, DurationMin: 3.7,
			Views: f64(693_555_221), Likes: i64(6_220_896), Comments: i64(169_907),
			Licensed: true, OfficialVideo: true,
			Stream: 1_040_234_854, MostPlayedOn: "Spotify",
		},
		{
			Artist: "Gorillaz", Track: "New Gold", Album: "New Gold", AlbumType: "single",
			Danceability: 0.695, Energy: 0.923, Loudness: -4.9, Speechiness: 0.0522,
			Acousticness: 0.0267, Instrumentalness: 0.0, Liveness: 0.115, Valence: 0.551,
			Tempo: 108.014, DurationMin: 3.6,
			Views: f64(8_435_055), Likes: i64(282_142), Comments: i64(7_399),
			Licensed: true, OfficialVideo: true,
			Stream: 64_045_097, MostPlayedOn: "Spotify",
		},
		{
			Artist: "Radiohead", Track: "Creep", Album: "Pablo Honey", AlbumType: "album",
			Danceability: 0.515, Energy: 0.43, Loudness: -9.935, Speechiness: 0.0369,
			Acousticness: 0.0102, Instrumentalness: 0.000141, Liveness: 0.129, Valence: 0.104,
			Tempo: 91.841, DurationMin: 3.9,
			Views: f64(1_169_123_151), Likes: i64(8_171_454), Comments: i64(284_684),
			Licensed: true, OfficialVideo: true,
			Stream: 1_361_629_949, MostPlayedOn: "Youtube",
		},
		{
			Artist: "Radiohead", Track: "No Surprises", Album: "OK Computer", AlbumType: "album",
			Danceability: 0.433, Energy: 0.395, Loudness: -11.065, Speechiness: 0.0275,
			Acousticness: 0.204, Instrumentalness: 0.00425, Liveness: 0.106, Valence: 0.118,
			Tempo: 76.402, DurationMin: 3.8,
			Views: f64(194_170_142), Likes: i64(1_537_125), Comments: i64(36_224),
			Licensed: true, OfficialVideo: true,
			Stream: 506_409_542, MostPlayedOn: "Spotify",
		},
		{
			// Sparse engagement metrics, the way rows scraped without a
			// matching video come through.
			Artist: "Field Recording Collective", Track: "Night Market", Album: "City Sounds", AlbumType: "compilation",
			Danceability: 0.31, Energy: 0.22, Loudness: -18.2, Speechiness: 0.041,
			Acousticness: 0.91, Instrumentalness: 0.86, Liveness: 0.0, Valence: 0.3,
			Tempo: 60.0, DurationMin: 5.2,
			Licensed: false, OfficialVideo: false,
			Stream: 120_554, MostPlayedOn: "Spotify",
		},
	}

	for i := range tracks {
		tracks[i].URI = "spotify:track:" + uuid.NewString()
		if tracks[i].Liveness > 0 {
			tracks[i].EnergyLiveness = tracks[i].Energy / tracks[i].Liveness
		}
	}

	return tracks
}

func main() {
	flag.Parse()

	tracks := sampleTracks()

	file, err := os.Create(*outFlag)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(*outFlag), ".csv") {
		rows := make([]map[string]interface{}, len(tracks))
		for i, t := range tracks {
			rows[i] = t.Row()
		}
		if err := output.NewCSVFormatter(file).Format(rows); err != nil {
			log.Fatal(err)
		}
		log.Printf("Generated %s with %d tracks", *outFlag, len(tracks))
		return
	}

	writer := parquet.NewGenericWriter[analytics.Track](file)
	if _, err := writer.Write(tracks); err != nil {
		log.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		log.Fatal(err)
	}

	log.Printf("Generated %s with %d tracks", *outFlag, len(tracks))
}
