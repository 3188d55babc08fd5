// Package analytics implements named analytical operations over an
// in-memory collection of track records.
//
// The operations mirror a fixed catalogue of analytical queries over a
// denormalized track dataset: threshold filters, distinct tuples,
// conditional and grouped aggregation, dense-rank windowing, running sums
// over a non-unique order key, and ratio-derived filters.
//
// Every operation is a pure function of its input: nothing is mutated, each
// call returns a freshly derived sequence, and output order is deterministic
// for identical input order. Referencing a column the dataset does not have
// fails with *InvalidFieldError.
//
// # Basic Usage
//
// Filter and rank tracks loaded by the reader package:
//
//	tracks, err := reader.ReadTracks("spotify.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	billion, err := analytics.FilterByThreshold(tracks, "stream", analytics.CmpGreater, 1_000_000_000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	top, err := analytics.RankWithinGroup(tracks, "artist", "views", 3)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Null handling
//
// The views, likes, and comments columns may be absent in the source data
// and are modeled as pointers. Sums treat a null as zero, averages exclude
// it from the denominator, and comparisons against a null are false. Text
// columns have no pointer form: the loaders map absent source values to "",
// and counting treats an empty string as null.
package analytics
