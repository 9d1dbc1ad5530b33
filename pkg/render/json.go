package render

import (
	"github.com/matzehuels/mosaic/pkg/mosaic"
)

// RenderJSON exports the layout as a pretty-printed JSON document. This is
// the primary data interchange format for Mosaic, enabling:
//
//   - Integration with external visualization tools
//   - Caching computed layouts for fast re-rendering
//   - Round-trip rendering (re-import and render identically)
func RenderJSON(l mosaic.Layout) ([]byte, error) {
	return mosaic.Marshal(l)
}
