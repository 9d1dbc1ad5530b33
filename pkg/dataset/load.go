package dataset

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/mosaic/pkg/errors"
)

// Loader parses one on-disk dataset format.
type Loader interface {
	// Type is the format name (e.g., "json").
	Type() string
	// Supports reports whether the loader handles the given filename.
	Supports(name string) bool
	// Load reads and parses the file at path.
	Load(path string) (*Dataset, error)
}

// loaders is the registry of known formats, tried in order.
var loaders = []Loader{
	&JSONLoader{},
	&CSVLoader{},
	&TOMLLoader{},
}

// Formats returns the names of all registered formats.
func Formats() []string {
	names := make([]string, len(loaders))
	for i, l := range loaders {
		names[i] = l.Type()
	}
	return names
}

// Load reads a dataset from path, picking the loader from the file
// extension. The result is validated and sorted in descending value order,
// ready for layout.
func Load(path string) (*Dataset, error) {
	return load(path, "")
}

// LoadAs reads a dataset from path with an explicit format, overriding
// extension detection.
func LoadAs(path, format string) (*Dataset, error) {
	return load(path, format)
}

func load(path, format string) (*Dataset, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "no such file: %s", path)
	}

	loader, err := pick(path, format)
	if err != nil {
		return nil, err
	}

	d, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	if d.Name == "" {
		d.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	d.SortDescending()
	return d, nil
}

// Parse parses dataset bytes in the given format ("json", "csv", "toml").
// Like Load, the result is validated and sorted in descending value order.
func Parse(data []byte, format string) (*Dataset, error) {
	var (
		d   *Dataset
		err error
	)
	switch format {
	case "json":
		d, err = ParseJSON(data)
	case "csv":
		d, err = ParseCSV(data)
	case "toml":
		d, err = ParseTOML(data)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"unknown dataset format %q (supported: %s)", format, strings.Join(Formats(), ", "))
	}
	if err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	d.SortDescending()
	return d, nil
}

func pick(path, format string) (Loader, error) {
	if format != "" {
		for _, l := range loaders {
			if l.Type() == format {
				return l, nil
			}
		}
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"unknown dataset format %q (supported: %s)", format, strings.Join(Formats(), ", "))
	}

	name := filepath.Base(path)
	for _, l := range loaders {
		if l.Supports(name) {
			return l, nil
		}
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat,
		"cannot detect format of %s (supported: %s)", name, strings.Join(Formats(), ", "))
}
