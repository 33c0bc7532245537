// Package importer loads variety catalogs from CSV exports.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"srebrnasad/internal/domain"
)

type VarietyWriter interface {
	Upsert(ctx context.Context, apple domain.Apple) (*domain.Apple, error)
}

// CSVImporter reads variety rows and inserts/updates the catalog, keyed by
// variety name.
type CSVImporter struct {
	reader     *csv.Reader
	appleRepo  VarietyWriter
	defaultMax int
}

func NewCSVImporter(r io.Reader, repo VarietyWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:     csvr,
		appleRepo:  repo,
		defaultMax: domain.DefaultMaxQuantityKg,
	}
}

type csvRow struct {
	Name      string
	Desc      string
	Cents     int64
	Available bool
	MaxKg     int
}

// Run parses CSV rows and upserts one variety per row.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		row, err := parseRow(record, index)
		if err != nil {
			return imported, err
		}
		if row == nil {
			continue
		}
		if err := i.save(ctx, row); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow) error {
	maxKg := row.MaxKg
	if maxKg == 0 {
		maxKg = i.defaultMax
	}
	_, err := i.appleRepo.Upsert(ctx, domain.Apple{
		Name:          row.Name,
		Description:   row.Desc,
		PriceCents:    row.Cents,
		Available:     row.Available,
		MaxQuantityKg: maxKg,
	})
	if err != nil {
		return fmt.Errorf("upsert variety %q: %w", row.Name, err)
	}
	return nil
}

func parseRow(record []string, index map[string]int) (*csvRow, error) {
	name := pick(record, index, "name")
	if name == "" {
		return nil, nil
	}

	centStr := pick(record, index, "price_cents")
	cents, err := strconv.ParseInt(centStr, 10, 64)
	if err != nil || cents <= 0 {
		return nil, fmt.Errorf("invalid price for variety %q: %s", name, centStr)
	}

	available := true
	if raw := pick(record, index, "available"); raw != "" {
		available, err = strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid availability for variety %q: %s", name, raw)
		}
	}

	maxKg := 0
	if raw := pick(record, index, "max_quantity_kg"); raw != "" {
		maxKg, err = strconv.Atoi(raw)
		if err != nil || maxKg < 0 {
			return nil, fmt.Errorf("invalid max quantity for variety %q: %s", name, raw)
		}
	}

	return &csvRow{
		Name:      name,
		Desc:      pick(record, index, "description"),
		Cents:     cents,
		Available: available,
		MaxKg:     maxKg,
	}, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
