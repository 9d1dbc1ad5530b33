package dataset

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/matzehuels/mosaic/pkg/errors"
)

// JSONLoader parses dataset files of the form:
//
//	{
//	  "name": "disk usage",
//	  "items": [
//	    {"label": "videos", "value": 420, "color": "#4c78a8"},
//	    {"label": "photos", "value": 120, "children": [...]}
//	  ]
//	}
//
// A bare top-level array of items is accepted as shorthand.
type JSONLoader struct{}

// Type returns the format name.
func (l *JSONLoader) Type() string { return "json" }

// Supports reports whether the filename looks like JSON.
func (l *JSONLoader) Supports(name string) bool {
	return strings.HasSuffix(name, ".json")
}

// Load reads and parses the file at path.
func (l *JSONLoader) Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	return ParseJSON(data)
}

// ParseJSON parses dataset JSON bytes. Exposed separately so the HTTP API
// can parse request bodies without touching the filesystem.
func ParseJSON(data []byte) (*Dataset, error) {
	trimmed := strings.TrimLeftFunc(string(data), func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	// Shorthand: a bare array of items.
	if strings.HasPrefix(trimmed, "[") {
		var items []Item
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse dataset JSON")
		}
		return &Dataset{Items: items}, nil
	}

	var d Dataset
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse dataset JSON")
	}
	return &d, nil
}
