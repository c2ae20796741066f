// Package csvfile reads and writes player stat tables as CSV, the
// alternative ingestion path for operators who bypass OCR entirely.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/youngbuffalo/scoreline/internal/extract"
)

// RequiredColumns is the canonical column set, in export order. Imports may
// present them in any order but every one must be present.
var RequiredColumns = []string{
	"player_name",
	"defeated",
	"assist",
	"defeated_2",
	"fun_coin",
	"damage",
	"tank",
	"heal",
	"siege_damage",
}

// Read parses a stat CSV into records. The header row is validated against
// RequiredColumns; extra columns are ignored.
func Read(r io.Reader) ([]extract.PlayerRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty CSV: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %v", missing)
	}

	var records []extract.PlayerRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV line %d: %w", line, err)
		}

		record, err := parseRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("CSV line %d: %w", line, err)
		}
		records = append(records, record)
	}

	return records, nil
}

func parseRow(row []string, index map[string]int) (extract.PlayerRecord, error) {
	field := func(col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	stat := func(col string) (int, error) {
		s := field(col)
		if s == "" {
			return 0, nil
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("column %s: %w", col, err)
		}
		if v < 0 {
			return 0, fmt.Errorf("column %s: negative value %d", col, v)
		}
		return v, nil
	}

	record := extract.PlayerRecord{PlayerName: field("player_name")}

	fields := []struct {
		col string
		dst *int
	}{
		{"defeated", &record.Defeated},
		{"assist", &record.Assist},
		{"defeated_2", &record.Defeated2},
		{"fun_coin", &record.FunCoin},
		{"damage", &record.Damage},
		{"tank", &record.Tank},
		{"heal", &record.Heal},
		{"siege_damage", &record.SiegeDamage},
	}
	for _, f := range fields {
		v, err := stat(f.col)
		if err != nil {
			return extract.PlayerRecord{}, err
		}
		*f.dst = v
	}

	return record, nil
}

// Write exports records as CSV with the canonical column order.
func Write(w io.Writer, records []extract.PlayerRecord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(RequiredColumns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.PlayerName,
			strconv.Itoa(rec.Defeated),
			strconv.Itoa(rec.Assist),
			strconv.Itoa(rec.Defeated2),
			strconv.Itoa(rec.FunCoin),
			strconv.Itoa(rec.Damage),
			strconv.Itoa(rec.Tank),
			strconv.Itoa(rec.Heal),
			strconv.Itoa(rec.SiegeDamage),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing CSV row for %s: %w", rec.PlayerName, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
