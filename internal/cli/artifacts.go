package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/mosaic/pkg/pipeline"
)

// artifactWriteParams bundles everything needed to write rendered artifacts
// to disk.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	cacheHit  bool
	itemCount int
	cellCount int
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that
// extension so multiple formats can share the base.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes each rendered format next to the input (or to the
// explicit output path for a single format) and prints a summary.
func writeArtifacts(p artifactWriteParams) error {
	single := len(p.formats) == 1 && p.output != ""

	var written []string
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}

		path := basePath(p.output, p.input) + "." + format
		if single {
			path = p.output
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return err
		}
		written = append(written, path)
	}

	printSuccess("Render complete")
	for _, path := range written {
		printFile(path)
	}
	printStats(p.itemCount, p.cellCount, p.cacheHit)
	return nil
}
