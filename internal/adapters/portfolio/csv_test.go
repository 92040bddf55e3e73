package portfolio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"portfoliochat/internal/domain/entities"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "portfolio.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCSVSource_Load(t *testing.T) {
	path := writeCSV(t, `Address,Type,Value,VacancyRate,AnualIncome,EndLease
Herengracht 12,kantoor,2500000,0.12,180000,2026-06-30
Damrak 1,winkel,900000,0,54000,31-12-2024
`)

	records, err := NewCSVSource(path).Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.ID != 0 || first.Address != "Herengracht 12" || first.VacancyRate != 0.12 {
		t.Errorf("unexpected first record: %+v", first)
	}
	if records[1].ID != 1 {
		t.Error("identifiers must follow row position")
	}
	if records[1].EndLease != "2024-12-31" {
		t.Errorf("lease date should be normalized, got %q", records[1].EndLease)
	}
}

func TestCSVSource_HeadersCaseInsensitive(t *testing.T) {
	path := writeCSV(t, `ENDLEASE,ADDRESS,TYPE,VALUE,VACANCYRATE,AnnualIncome
2025-01-01,Rokin 2,kantoor,100,0.5,10
`)

	records, err := NewCSVSource(path).Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if records[0].Address != "Rokin 2" || records[0].AnnualIncome != "10" {
		t.Errorf("column order and casing must not matter: %+v", records[0])
	}
}

func TestCSVSource_MissingValuesCoerced(t *testing.T) {
	path := writeCSV(t, `Address,Type,Value,VacancyRate,AnualIncome,EndLease
,,,,,
`)

	records, err := NewCSVSource(path).Load(context.Background())
	if err != nil {
		t.Fatalf("rows with missing values must not be rejected: %v", err)
	}
	r := records[0]
	if r.Address != "" || r.Value != "" || r.VacancyRate != 0 || r.EndLease != "" {
		t.Errorf("missing values should be empty: %+v", r)
	}
}

func TestCSVSource_MissingFile(t *testing.T) {
	_, err := NewCSVSource("/nonexistent/portfolio.csv").Load(context.Background())

	var loadErr *entities.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
}

func TestCSVSource_MissingColumns(t *testing.T) {
	path := writeCSV(t, `Address,Type
Damrak 1,winkel
`)

	_, err := NewCSVSource(path).Load(context.Background())

	var loadErr *entities.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
}

func TestCSVSource_BadVacancyRate(t *testing.T) {
	path := writeCSV(t, `Address,Type,Value,VacancyRate,AnualIncome,EndLease
Damrak 1,winkel,900,veel,54,2024-12-31
`)

	if _, err := NewCSVSource(path).Load(context.Background()); err == nil {
		t.Fatal("non-numeric vacancy rate must fail the load")
	}
}

func TestNormalizeLeaseDate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"31-12-2024", "2024-12-31"},
		{"2024-12-31", "2024-12-31"}, // idempotent
		{"01-02-2025", "2025-02-01"},
		{"", ""},
		{"niet een datum", "niet een datum"},
	}
	for _, tt := range tests {
		if got := NormalizeLeaseDate(tt.in); got != tt.want {
			t.Errorf("NormalizeLeaseDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeLeaseDate_RoundTrip(t *testing.T) {
	once := NormalizeLeaseDate("31-12-2024")
	twice := NormalizeLeaseDate(once)
	if once != twice {
		t.Errorf("normalization must be idempotent: %q vs %q", once, twice)
	}
}
