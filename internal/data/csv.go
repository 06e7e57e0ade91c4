package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// readCSV reads a whole CSV file and returns its data rows plus a
// name-to-index map of the header.
func readCSV(path string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%s is empty", path)
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[strings.TrimSpace(name)] = i
	}
	return records[1:], cols, nil
}

func missingColumns(cols map[string]int, required []string) []string {
	var missing []string
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

func parseFloat(row []string, cols map[string]int, name string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(row[cols[name]]), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}
