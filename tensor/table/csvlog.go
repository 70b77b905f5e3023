// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package table provides the append-only delimited text logs that
// monitoring output is written to: a header line naming the columns,
// followed by one line of values per record.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// CSVLog is an append-only comma-separated-values (CSV) log
// (where comma = any delimiter). Every row is flushed to the underlying
// writer as soon as it is written, so it survives a later failure of
// the process.
type CSVLog struct {

	// Header has the column names, written as the first line of a new log.
	Header []string

	// Delim is the delimiter between values.
	Delim Delims

	// Precision is the number of significant digits used to format
	// values; -1 uses the smallest number of digits that round-trips.
	Precision int

	cw     *csv.Writer
	closer io.Closer
}

// NewCSVLog returns a new log writing to w. If writeHeader is true
// the header line is written (and flushed) immediately.
func NewCSVLog(w io.Writer, delim Delims, header []string, writeHeader bool) (*CSVLog, error) {
	lg := &CSVLog{Header: header, Delim: delim, Precision: -1}
	lg.cw = csv.NewWriter(w)
	lg.cw.Comma = delim.Rune()
	if writeHeader && len(header) > 0 {
		if err := lg.cw.Write(header); err != nil {
			return nil, err
		}
		if err := lg.Flush(); err != nil {
			return nil, err
		}
	}
	return lg, nil
}

// OpenCSVLog opens the given file for appending, creating it if needed.
// The header is written only if the file is empty, so that a restarted
// run continues an existing log. The file is owned by the log and
// closed by [CSVLog.Close].
func OpenCSVLog(filename string, delim Delims, header []string) (*CSVLog, error) {
	fp, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o666)
	if err != nil {
		return nil, err
	}
	st, err := fp.Stat()
	if err != nil {
		fp.Close()
		return nil, err
	}
	lg, err := NewCSVLog(fp, delim, header, st.Size() == 0)
	if err != nil {
		fp.Close()
		return nil, err
	}
	lg.closer = fp
	return lg, nil
}

// WriteRow writes one row of values and flushes it.
// If there is a header, the number of values must match it.
func (lg *CSVLog) WriteRow(vals ...float64) error {
	if nh := len(lg.Header); nh > 0 && nh != len(vals) {
		return fmt.Errorf("table.CSVLog: %d values for %d columns", len(vals), nh)
	}
	rec := make([]string, len(vals))
	for i, v := range vals {
		rec[i] = FormatFloat(v, lg.Precision)
	}
	if err := lg.cw.Write(rec); err != nil {
		return err
	}
	return lg.Flush()
}

// FormatFloat formats a value as written to a log, using the given
// number of significant digits, or -1 for the shortest round-trip form.
// The shortest form always has a decimal point or an exponent, with
// plain decimals for exponents in [-4, 16): 1 is written as 1.0,
// 1e6 as 1000000.0 and 1e16 as 1e+16. Infinities and NaN are
// written as inf, -inf and nan.
func FormatFloat(v float64, prec int) string {
	if prec >= 0 {
		return strconv.FormatFloat(v, 'g', prec, 64)
	}
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(v, 'e', -1, 64)
	exp, _ := strconv.Atoi(s[strings.IndexByte(s, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return s
	}
	s = strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Flush writes any buffered data to the underlying writer.
func (lg *CSVLog) Flush() error {
	lg.cw.Flush()
	return lg.cw.Error()
}

// Close flushes the log and closes the file if it was opened by [OpenCSVLog].
func (lg *CSVLog) Close() error {
	err := lg.Flush()
	if lg.closer != nil {
		err = errors.Join(err, lg.closer.Close())
		lg.closer = nil
	}
	return err
}

// ReadCSVLog reads a log written by [CSVLog], returning the header
// and the values of each row.
func ReadCSVLog(r io.Reader, delim Delims) (header []string, rows [][]float64, err error) {
	cr := csv.NewReader(r)
	cr.Comma = delim.Rune()
	rec, err := cr.ReadAll()
	if err != nil || len(rec) == 0 {
		return nil, nil, err
	}
	header = rec[0]
	for ri, r := range rec[1:] {
		row := make([]float64, len(r))
		for ci, s := range r {
			row[ci], err = strconv.ParseFloat(s, 64)
			if err != nil {
				return header, rows, fmt.Errorf("table.ReadCSVLog: row %d column %d: %w", ri+1, ci, err)
			}
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}
