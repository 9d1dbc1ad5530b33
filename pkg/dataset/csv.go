package dataset

import (
	"bytes"
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/mosaic/pkg/errors"
)

// CSVLoader parses flat datasets from comma-separated files with columns
//
//	label,value[,color]
//
// An optional header row is skipped when its value column is not numeric.
// CSV cannot express hierarchy; nested data belongs in JSON or TOML.
type CSVLoader struct{}

// Type returns the format name.
func (l *CSVLoader) Type() string { return "csv" }

// Supports reports whether the filename looks like CSV.
func (l *CSVLoader) Supports(name string) bool {
	return strings.HasSuffix(name, ".csv")
}

// Load reads and parses the file at path.
func (l *CSVLoader) Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	return ParseCSV(data)
}

// ParseCSV parses dataset CSV bytes. Exposed separately so remote datasets
// can be parsed without touching the filesystem.
func ParseCSV(data []byte) (*Dataset, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // color column is optional per row

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse dataset CSV")
	}

	var items []Item
	for i, record := range records {
		if len(record) < 2 {
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"row %d: need at least label and value columns", i+1)
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			if i == 0 {
				// Header row.
				continue
			}
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"row %d: value %q is not a number", i+1, record[1])
		}

		item := Item{Label: strings.TrimSpace(record[0]), Value: value}
		if len(record) > 2 {
			item.Color = strings.TrimSpace(record[2])
		}
		items = append(items, item)
	}

	return &Dataset{Items: items}, nil
}
