// Package jsonl provides a row-oriented FileOpener for JSON lines files, optionally lz4
// compressed. Columns are extracted lazily from each row using their name, which should
// be a gjson path.
package jsonl
