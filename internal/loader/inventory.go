package loader

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"BarInventory/internal/model"

	"gorm.io/datatypes"
)

var leadingInt = regexp.MustCompile(`^\s*(\d+)`)

// InventoryResult is the parsed inventory plus the data-quality problems found while reading it.
type InventoryResult struct {
	Items        []*model.InventoryItem
	Remediations []model.Remediation
}

// LoadInventory reads the headered, comma-delimited inventory table. glass_type and bar (or
// location) are required; stock is optional; any other column is kept in Attributes.
func (l *Loader) LoadInventory(ctx context.Context, path string) (*InventoryResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rc, err := openSource(path, strings.EqualFold(filepath.Ext(path), ".gz"))
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}
	defer func() { _ = rc.Close() }()

	source := filepath.Base(path)
	r := csv.NewReader(rc)

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("load inventory %s: empty file", source)
		}
		return nil, fmt.Errorf("load inventory %s: %w", source, err)
	}
	cols, err := mapInventoryHeader(header)
	if err != nil {
		return nil, fmt.Errorf("load inventory %s: %w", source, err)
	}

	res := &InventoryResult{}
	line := 1
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) && errors.Is(perr.Err, csv.ErrFieldCount) {
				return nil, fmt.Errorf("load inventory %s: %w: line %d: want %d columns", source, ErrMalformedRow, perr.Line, len(header))
			}
			return nil, fmt.Errorf("load inventory %s: line %d: %w", source, line, err)
		}

		item := &model.InventoryItem{
			ID:        uint64(len(res.Items) + 1),
			Location:  strings.TrimSpace(rec[cols.location]),
			GlassType: strings.TrimSpace(rec[cols.glassType]),
		}
		if item.GlassType == "" {
			return nil, fmt.Errorf("load inventory %s: %w: line %d: empty glass_type", source, ErrMalformedRow, line)
		}
		if cols.stock >= 0 {
			stock, ok := parseStock(rec[cols.stock])
			item.Stock = stock
			if !ok {
				res.Remediations = append(res.Remediations, stockRemediation(source, line, item, rec[cols.stock]))
			}
		}
		if len(cols.extra) > 0 {
			attrs := make(map[string]string, len(cols.extra))
			for name, idx := range cols.extra {
				attrs[name] = rec[idx]
			}
			raw, err := json.Marshal(attrs)
			if err != nil {
				return nil, fmt.Errorf("load inventory %s: line %d: %w", source, line, err)
			}
			item.Attributes = datatypes.JSON(raw)
		}
		res.Items = append(res.Items, item)
	}

	l.logger.WithField("source", source).WithField("rows", len(res.Items)).Info("inventory loaded")
	return res, nil
}

type inventoryColumns struct {
	glassType int
	location  int
	stock     int
	extra     map[string]int
}

func mapInventoryHeader(header []string) (inventoryColumns, error) {
	cols := inventoryColumns{glassType: -1, location: -1, stock: -1, extra: map[string]int{}}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff") // spreadsheet exports prepend a BOM
		}
		name := strings.ToLower(strings.TrimSpace(h))
		switch name {
		case "glass_type":
			cols.glassType = i
		case "bar", "location":
			cols.location = i
		case "stock":
			cols.stock = i
		default:
			cols.extra[name] = i
		}
	}
	if cols.glassType < 0 {
		return cols, fmt.Errorf("%w: missing glass_type column", ErrMalformedRow)
	}
	if cols.location < 0 {
		return cols, fmt.Errorf("%w: missing bar/location column", ErrMalformedRow)
	}
	return cols, nil
}

// parseStock returns the integer stock and whether the text was a clean integer. Values such as
// "36 Glasses" keep their leading integer.
func parseStock(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil && n >= 0 {
		return n, true
	}
	if m := leadingInt.FindStringSubmatch(s); m != nil {
		if n, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			return n, false
		}
	}
	return 0, false
}

func stockRemediation(source string, line int, item *model.InventoryItem, raw string) model.Remediation {
	detail, _ := json.Marshal(map[string]any{
		"line":       line,
		"location":   item.Location,
		"glass_type": item.GlassType,
		"stored_as":  item.Stock,
	})
	return model.Remediation{
		Key:    raw,
		Cause:  model.CauseNonNumericStock,
		Source: source,
		Detail: datatypes.JSON(detail),
	}
}
