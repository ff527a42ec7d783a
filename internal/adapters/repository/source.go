package repository

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/internal/domain/roster"
	"github.com/okian/pitchside/pkg/metrics"
	"github.com/xuri/excelize/v2"
)

// Supported file extensions.
const (
	ExtCSV  = ".csv"
	ExtXLSX = ".xlsx"
)

// NewSource returns a CSV or XLSX source for path, chosen by extension.
func NewSource(path string, opts ...Option) (roster.Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtCSV:
		return NewCSVSource(path, opts...), nil
	case ExtXLSX:
		return NewXLSXSource(path, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func newConfig(path string, opts []Option) sourceConfig {
	c := sourceConfig{name: path}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// CSVSource reads a roster table from a comma separated file with a
// header row.
type CSVSource struct {
	path string
	cfg  sourceConfig
}

// NewCSVSource creates a CSV source for path.
func NewCSVSource(path string, opts ...Option) *CSVSource {
	return &CSVSource{path: path, cfg: newConfig(path, opts)}
}

// Name implements roster.Source.
func (s *CSVSource) Name() string { return s.cfg.name }

// Read implements roster.Source. The file is read in full on every call.
func (s *CSVSource) Read(ctx context.Context) ([]model.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		metrics.RecordSourceLoadError(s.cfg.name)
		return nil, fmt.Errorf("%w: %w", roster.ErrMissingSource, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		metrics.RecordSourceLoadError(s.cfg.name)
		return nil, fmt.Errorf("%w: %w", roster.ErrMalformedSource, err)
	}
	players, err := decodeRows(rows)
	if err != nil {
		metrics.RecordSourceLoadError(s.cfg.name)
		return nil, err
	}
	return players, nil
}

// XLSXSource reads a roster table from one worksheet of an Excel workbook.
type XLSXSource struct {
	path string
	cfg  sourceConfig
}

// NewXLSXSource creates an XLSX source for path.
func NewXLSXSource(path string, opts ...Option) *XLSXSource {
	return &XLSXSource{path: path, cfg: newConfig(path, opts)}
}

// Name implements roster.Source.
func (s *XLSXSource) Name() string { return s.cfg.name }

// Read implements roster.Source.
func (s *XLSXSource) Read(ctx context.Context) ([]model.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	players, err := s.read()
	if err != nil {
		metrics.RecordSourceLoadError(s.cfg.name)
		return nil, err
	}
	return players, nil
}

func (s *XLSXSource) read() ([]model.Player, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return nil, fmt.Errorf("%w: %w", roster.ErrMissingSource, err)
		}
		return nil, fmt.Errorf("%w: %w", roster.ErrMalformedSource, err)
	}
	defer f.Close()

	sheet := s.cfg.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", roster.ErrMalformedSource)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %w", roster.ErrMalformedSource, sheet, err)
	}
	return decodeRows(rows)
}

// memorySource decodes CSV held in memory. Used by the sample data
// package and tests.
type memorySource struct {
	name string
	data []byte
}

// NewMemorySource returns a source that decodes the CSV in data on every
// read.
func NewMemorySource(name string, data []byte) roster.Source {
	return &memorySource{name: name, data: data}
}

func (s *memorySource) Name() string { return s.name }

func (s *memorySource) Read(ctx context.Context) ([]model.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r := csv.NewReader(bytes.NewReader(s.data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", roster.ErrMalformedSource, err)
	}
	return decodeRows(rows)
}
