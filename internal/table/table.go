// Package table loads a delimited text file into a column-oriented table.
package table

import (
	"errors"
	"fmt"
)

// Cell is one raw value; Valid is false for nulls.
type Cell struct {
	Text  string
	Valid bool
}

func Value(s string) Cell { return Cell{Text: s, Valid: true} }

func Null() Cell { return Cell{} }

type Column struct {
	Name   string
	Values []Cell
}

type Table struct {
	Source   string
	Encoding string
	Columns  []Column
}

// Rows is the length of the longest column.
func (t *Table) Rows() int {
	n := 0
	for _, c := range t.Columns {
		if len(c.Values) > n {
			n = len(c.Values)
		}
	}
	return n
}

// FromColumns builds an in-memory table, mostly for callers that already
// hold their data.
func FromColumns(cols ...Column) *Table {
	return &Table{Source: "memory", Encoding: "utf-8", Columns: cols}
}

type EncodingDetectionError struct {
	Path string
	Err  error
}

func (e *EncodingDetectionError) Error() string {
	return fmt.Sprintf("detect encoding of %s: %v", e.Path, e.Err)
}

func (e *EncodingDetectionError) Unwrap() error { return e.Err }

var (
	ErrUnknownEncoding   = errors.New("encoding could not be determined")
	ErrUnsupportedSource = errors.New("unsupported source")
)

// MalformedTableError reports a table that cannot be scanned at all.
type MalformedTableError struct {
	Source string
	Reason string
}

func (e *MalformedTableError) Error() string {
	if e.Source == "" {
		return "malformed table: " + e.Reason
	}
	return fmt.Sprintf("malformed table %s: %s", e.Source, e.Reason)
}
