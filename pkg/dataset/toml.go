package dataset

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mosaic/pkg/errors"
)

// TOMLLoader parses dataset files of the form:
//
//	name = "portfolio"
//
//	[[items]]
//	label = "equities"
//	value = 55.0
//
//	[[items.children]]
//	label = "tech"
//	value = 30.0
type TOMLLoader struct{}

// Type returns the format name.
func (l *TOMLLoader) Type() string { return "toml" }

// Supports reports whether the filename looks like TOML.
func (l *TOMLLoader) Supports(name string) bool {
	return strings.HasSuffix(name, ".toml")
}

// Load reads and parses the file at path.
func (l *TOMLLoader) Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	return ParseTOML(data)
}

// ParseTOML parses dataset TOML bytes.
func ParseTOML(data []byte) (*Dataset, error) {
	var d Dataset
	if err := toml.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse dataset TOML")
	}
	return &d, nil
}
