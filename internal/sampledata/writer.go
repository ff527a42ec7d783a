package sampledata

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/okian/pitchside/internal/adapters/repository"
	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/internal/domain/roster"
	"github.com/okian/pitchside/pkg/logger"
)

// File formats accepted by Write.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

const filePermission = 0o600

// Config controls where and how sample files are written.
type Config struct {
	Dir    string // Output directory, created if missing
	Format string // csv or xlsx
	Sheet  string // Worksheet name for xlsx output
}

// Paths are the files written by Write.
type Paths struct {
	Starting string
	Bench    string
}

// Write stores the sample lineup and bench as two files in cfg.Dir.
func Write(ctx context.Context, cfg Config) (Paths, error) {
	var ext string
	switch cfg.Format {
	case "", FormatCSV:
		ext = repository.ExtCSV
	case FormatXLSX:
		ext = repository.ExtXLSX
	default:
		return Paths{}, fmt.Errorf("%w: %s", repository.ErrUnsupportedFormat, cfg.Format)
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return Paths{}, fmt.Errorf("create %s: %w", cfg.Dir, err)
	}

	paths := Paths{
		Starting: filepath.Join(cfg.Dir, "starting"+ext),
		Bench:    filepath.Join(cfg.Dir, "bench"+ext),
	}
	for _, f := range []struct {
		path    string
		players []model.Player
	}{
		{paths.Starting, Starting()},
		{paths.Bench, Bench()},
	} {
		var buf bytes.Buffer
		if err := encode(&buf, ext, cfg.Sheet, f.players); err != nil {
			return Paths{}, err
		}
		if err := os.WriteFile(f.path, buf.Bytes(), filePermission); err != nil {
			return Paths{}, fmt.Errorf("write %s: %w", f.path, err)
		}
		logger.Get().Info(ctx, "sample roster written",
			logger.String("path", f.path),
			logger.Int("players", len(f.players)))
	}
	return paths, nil
}

func encode(w io.Writer, ext, sheet string, players []model.Player) error {
	if ext == repository.ExtXLSX {
		return repository.WriteXLSX(w, sheet, players)
	}
	return repository.WriteCSV(w, players)
}

// Sources returns in-memory starting and bench sources over the sample
// squad. Each call returns fresh sources.
func Sources() (starting, bench roster.Source, err error) {
	var s, b bytes.Buffer
	if err := repository.WriteCSV(&s, Starting()); err != nil {
		return nil, nil, err
	}
	if err := repository.WriteCSV(&b, Bench()); err != nil {
		return nil, nil, err
	}
	return repository.NewMemorySource("sample-starting", s.Bytes()),
		repository.NewMemorySource("sample-bench", b.Bytes()), nil
}
