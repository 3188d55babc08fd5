// Package reader loads track datasets into typed records.
//
// Two on-disk formats are supported: Apache Parquet (via the
// parquet-go/parquet-go library) and header-mapped CSV. ReadTracks picks
// the loader from the file extension; ReadGlob concatenates every matching
// file in lexical order.
//
// The loaders perform all parsing and type coercion; the analytics package
// consumes an already-validated, typed sequence.
package reader
