package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadCSV parses CSV data into a table. Columns named in textColumns are
// stored as text; every other column is numeric, with blank or non-parseable
// values stored as invalid cells rather than errors.
func ReadCSV(r io.Reader, textColumns []string) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	textSet := make(map[string]bool, len(textColumns))
	for _, c := range textColumns {
		textSet[c] = true
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Skip malformed rows rather than failing the whole snapshot.
			continue
		}
		rows = append(rows, row)
	}

	t := New(len(rows))
	for col, name := range headers {
		if name == "" {
			continue
		}
		if textSet[name] {
			values := make([]string, len(rows))
			for i, row := range rows {
				if col < len(row) {
					values[i] = strings.TrimSpace(row[col])
				}
			}
			t.track(name)
			t.text[name] = values
			continue
		}

		cells := make([]Cell, len(rows))
		for i, row := range rows {
			if col >= len(row) {
				continue
			}
			raw := strings.TrimSpace(row[col])
			if raw == "" {
				continue
			}
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				cells[i] = Num(v)
			}
		}
		t.track(name)
		t.numeric[name] = cells
	}

	return t, nil
}

// WriteCSV writes the table with the given column order. Invalid cells are
// written as empty fields. Columns absent from the table are skipped.
func (t *Table) WriteCSV(w io.Writer, columns []string) error {
	writer := csv.NewWriter(w)

	var present []string
	for _, name := range columns {
		if _, ok := t.numeric[name]; ok {
			present = append(present, name)
		} else if _, ok := t.text[name]; ok {
			present = append(present, name)
		}
	}

	if err := writer.Write(present); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	record := make([]string, len(present))
	for i := 0; i < t.rows; i++ {
		for j, name := range present {
			if col, ok := t.text[name]; ok {
				record[j] = col[i]
				continue
			}
			cell := t.numeric[name][i]
			if cell.Valid {
				record[j] = strconv.FormatFloat(cell.Float64, 'f', -1, 64)
			} else {
				record[j] = ""
			}
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
