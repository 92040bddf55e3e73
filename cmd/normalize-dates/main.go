// Command normalize-dates rewrites the EndLease column of a portfolio CSV
// from DD-MM-YYYY to YYYY-MM-DD in place. Running it on an already
// normalized file is a no-op.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"portfoliochat/internal/adapters/portfolio"
)

func main() {
	var path string
	flag.StringVar(&path, "csv", "data/portfolio.csv", "Portfolio CSV path")
	flag.Parse()

	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("[ERROR] failed to open %s: %v", path, err)
	}
	rows, err := csv.NewReader(f).ReadAll()
	f.Close()
	if err != nil {
		log.Fatalf("[ERROR] failed to parse %s: %v", path, err)
	}
	if len(rows) == 0 {
		log.Fatalf("[ERROR] %s is empty", path)
	}

	col := -1
	for i, name := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(name), "endlease") {
			col = i
			break
		}
	}
	if col < 0 {
		log.Fatalf("[ERROR] no EndLease column in %s", path)
	}

	fmt.Println("Originele EndLease datums (eerste 5):")
	printSample(rows, col)

	for _, row := range rows[1:] {
		if col < len(row) {
			row[col] = portfolio.NormalizeLeaseDate(row[col])
		}
	}

	out, err := os.Create(path)
	if err != nil {
		log.Fatalf("[ERROR] failed to write %s: %v", path, err)
	}
	w := csv.NewWriter(out)
	if err := w.WriteAll(rows); err != nil {
		log.Fatalf("[ERROR] failed to write %s: %v", path, err)
	}
	w.Flush()
	if err := out.Close(); err != nil {
		log.Fatalf("[ERROR] failed to close %s: %v", path, err)
	}

	fmt.Println("\nNieuwe EndLease datums (eerste 5):")
	printSample(rows, col)
	fmt.Printf("\nDatumformaat aangepast in %s\n", path)
}

func printSample(rows [][]string, col int) {
	for i, row := range rows[1:] {
		if i == 5 {
			break
		}
		if col < len(row) {
			fmt.Printf("  %d: %s\n", i, row[col])
		}
	}
}
