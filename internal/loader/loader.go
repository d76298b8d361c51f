// Package loader reads the venue transaction logs and the bar inventory table.
package loader

import (
	"compress/gzip"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"BarInventory/internal/config"
	"BarInventory/internal/model"
	"BarInventory/internal/money"

	"github.com/sirupsen/logrus"
)

// ErrMalformedRow is returned for rows that cannot be mapped onto the expected columns.
var ErrMalformedRow = errors.New("malformed row")

// transactionColumns is the positional layout shared by every venue log.
var transactionColumns = []string{"transaction_id", "timestamp", "drink", "cost"}

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

type Loader struct {
	logger *logrus.Logger
}

func NewLoader(logger *logrus.Logger) *Loader {
	return &Loader{logger: logger}
}

// LoadTransactions reads every source in order. The result keeps one slice per source so the caller
// controls concatenation order. Any unreadable file or malformed row aborts the whole load.
func (l *Loader) LoadTransactions(ctx context.Context, sources []config.SourceConfig) ([][]model.RawTransaction, error) {
	out := make([][]model.RawTransaction, 0, len(sources))
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows, err := l.loadSource(src)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", src.DisplayName(), err)
		}
		l.logger.WithFields(logrus.Fields{
			"source": src.DisplayName(),
			"venue":  src.Venue,
			"rows":   len(rows),
		}).Info("transaction log loaded")
		out = append(out, rows)
	}
	return out, nil
}

func (l *Loader) loadSource(src config.SourceConfig) ([]model.RawTransaction, error) {
	venue, err := model.ParseVenue(src.Venue)
	if err != nil {
		return nil, err
	}
	comma, err := src.Rune()
	if err != nil {
		return nil, err
	}

	rc, err := openSource(src.Path, src.Gzip())
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rc.Close(); err != nil {
			l.logger.WithError(err).WithField("path", src.Path).Warn("close source failed")
		}
	}()

	r := csv.NewReader(rc)
	r.Comma = comma
	r.FieldsPerRecord = len(transactionColumns)
	r.LazyQuotes = comma == '\t'
	r.ReuseRecord = true

	var rows []model.RawTransaction
	line := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) && errors.Is(perr.Err, csv.ErrFieldCount) {
				return nil, fmt.Errorf("%w: line %d: want %d columns", ErrMalformedRow, perr.Line, len(transactionColumns))
			}
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		if line == 1 && src.Header {
			continue
		}
		row, err := parseTransaction(rec, venue)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseTransaction(rec []string, venue model.Venue) (model.RawTransaction, error) {
	ts, err := parseTimestamp(rec[1])
	if err != nil {
		return model.RawTransaction{}, fmt.Errorf("%w: %v", ErrMalformedRow, err)
	}
	cost, err := money.Normalize(rec[3])
	if err != nil {
		return model.RawTransaction{}, fmt.Errorf("%w: %v", ErrMalformedRow, err)
	}
	return model.RawTransaction{
		SourceID:  strings.TrimSpace(rec[0]),
		Timestamp: ts,
		Drink:     strings.TrimSpace(rec[2]),
		Cost:      cost,
		Venue:     venue,
	}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// openSource opens path, transparently decompressing gzip.
func openSource(path string, gz bool) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !gz {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("gzip %s: %w", filepath.Base(path), err)
	}
	return &gzipFile{Reader: zr, file: f}, nil
}

type gzipFile struct {
	*gzip.Reader
	file *os.File
}

func (g *gzipFile) Close() error {
	if err := g.Reader.Close(); err != nil {
		_ = g.file.Close()
		return err
	}
	return g.file.Close()
}
