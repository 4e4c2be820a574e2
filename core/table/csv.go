package table

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	perrs "github.com/strogo/oneDAL/pkg/errors"
)

// CSVSource streams delimited numeric text into a table. Records are parsed
// row-wise and handed to the destination's AppendRow, so a destination with
// zero configured columns infers its width from the first record, the way a
// dictionary is built from context.
type CSVSource struct {
	path  string
	r     io.Reader
	comma rune
}

// CSVOption configures a CSVSource.
type CSVOption func(*CSVSource)

// WithComma sets the field delimiter. The default is ','.
func WithComma(comma rune) CSVOption {
	return func(s *CSVSource) { s.comma = comma }
}

// NewCSVSource creates a source reading from a file path.
func NewCSVSource(path string, opts ...CSVOption) *CSVSource {
	s := &CSVSource{path: path, comma: ','}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewCSVSourceFromReader creates a source reading from r. name is used in
// error messages in place of a file path.
func NewCSVSourceFromReader(r io.Reader, name string, opts ...CSVOption) *CSVSource {
	s := &CSVSource{path: name, r: r, comma: ','}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadAll parses every record into dst and returns the number of rows
// loaded. Open failures map to CannotOpenFileError; malformed records,
// width mismatches and non-numeric fields map to CannotReadCSVError with
// the 1-based row of the failure. The first failure aborts the load.
func (s *CSVSource) LoadAll(dst RowAppender) (int, error) {
	r := s.r
	if r == nil {
		f, err := os.Open(s.path)
		if err != nil {
			return 0, perrs.NewCannotOpenFileError(s.path, "")
		}
		defer f.Close()
		r = f
	}

	reader := csv.NewReader(r)
	reader.Comma = s.comma
	reader.TrimLeadingSpace = true
	// All records must have the same width; encoding/csv enforces this
	// against the first record.
	reader.FieldsPerRecord = 0

	rows := 0
	values := make([]float64, 0, 16)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row := rows + 1
		if err != nil {
			return rows, perrs.NewCannotReadCSVError(s.path, row, err.Error())
		}

		values = values[:0]
		for _, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return rows, perrs.NewCannotReadCSVError(s.path, row,
					"field "+strconv.Quote(field)+" is not numeric")
			}
			values = append(values, v)
		}

		if err := dst.AppendRow(values); err != nil {
			return rows, perrs.NewCannotReadCSVError(s.path, row, err.Error())
		}
		rows++
	}

	return rows, nil
}
