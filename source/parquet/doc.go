// Package parquet provides a FileOpener for Parquet files, backed by parquet-go. Row counts
// are taken from the file footer, so opening a file does not scan its data pages.
package parquet
