// Package portfolio loads portfolio records from CSV files.
package portfolio

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"portfoliochat/internal/domain/entities"
)

// Column names matched case-insensitively and order-independently in the
// header row. The source data spells annual income without the double n.
const (
	colAddress     = "address"
	colType        = "type"
	colValue       = "value"
	colVacancy     = "vacancyrate"
	colIncome      = "anualincome"
	colIncomeAlt   = "annualincome"
	colEndLease    = "endlease"
	leaseInFormat  = "02-01-2006" // DD-MM-YYYY as shipped in the raw data
	leaseOutFormat = "2006-01-02" // ISO 8601
)

// CSVSource implements ports.PortfolioSource over a CSV file with a header
// row. Record identifiers are assigned from row position, so re-loading the
// same file yields the same identifiers.
type CSVSource struct {
	path string
}

// NewCSVSource creates a loader for the given CSV path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Path returns the source file path.
func (s *CSVSource) Path() string { return s.path }

// Load reads and parses the portfolio. Any structural problem (missing
// file, malformed CSV, missing required columns) is a LoadError and no
// records are returned. Missing cell values never reject a row; they are
// coerced to empty strings.
func (s *CSVSource) Load(ctx context.Context) ([]entities.PortfolioRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, &entities.LoadError{Path: s.path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, &entities.LoadError{Path: s.path, Err: err}
	}
	if len(rows) == 0 {
		return nil, &entities.LoadError{Path: s.path, Err: fmt.Errorf("empty file, header row required")}
	}

	cols, err := mapHeader(rows[0])
	if err != nil {
		return nil, &entities.LoadError{Path: s.path, Err: err}
	}

	records := make([]entities.PortfolioRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec := entities.PortfolioRecord{
			ID:           i,
			Address:      cols.get(row, colAddress),
			Type:         cols.get(row, colType),
			Value:        cols.get(row, colValue),
			AnnualIncome: cols.get(row, colIncome),
			EndLease:     NormalizeLeaseDate(cols.get(row, colEndLease)),
		}
		if raw := cols.get(row, colVacancy); raw != "" {
			rate, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, &entities.LoadError{
					Path: s.path,
					Err:  fmt.Errorf("row %d: vacancy rate %q is not numeric", i, raw),
				}
			}
			rec.VacancyRate = rate
		}
		records = append(records, rec)
	}
	return records, nil
}

// columnMap resolves logical column names to positions in a row.
type columnMap map[string]int

// get returns the trimmed cell for a logical column, or "" when the column
// or cell is absent.
func (c columnMap) get(row []string, name string) string {
	idx, ok := c[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func mapHeader(header []string) (columnMap, error) {
	cols := columnMap{}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if key == colIncomeAlt {
			key = colIncome
		}
		cols[key] = i
	}

	var missing []string
	for _, required := range []string{colAddress, colType, colValue, colVacancy, colIncome, colEndLease} {
		if _, ok := cols[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

// NormalizeLeaseDate converts a DD-MM-YYYY lease date to YYYY-MM-DD.
// Already-normalized input is returned unchanged, so the conversion is
// idempotent. Anything unparseable passes through as-is; rendering never
// rejects a row.
func NormalizeLeaseDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if _, err := time.Parse(leaseOutFormat, raw); err == nil {
		return raw
	}
	t, err := time.Parse(leaseInFormat, raw)
	if err != nil {
		return raw
	}
	return t.Format(leaseOutFormat)
}
