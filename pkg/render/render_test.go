package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/mosaic/pkg/dataset"
	"github.com/matzehuels/mosaic/pkg/mosaic"
)

func testLayout() mosaic.Layout {
	return mosaic.Layout{
		VizType: mosaic.VizTypeTreemap,
		Name:    "usage",
		Width:   400,
		Height:  300,
		Cells: []mosaic.Cell{
			{Label: "videos", Value: 420, X: 0, Y: 0, Width: 250, Height: 300, Leaf: true},
			{Label: "photos", Value: 120, Color: "#54a24b", X: 250, Y: 0, Width: 150, Height: 260, Leaf: true},
			{Label: "docs", Value: 8, X: 250, Y: 260, Width: 150, Height: 40, Leaf: true},
		},
	}
}

func TestRenderSVGBasics(t *testing.T) {
	svg := string(RenderSVG(testLayout()))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 400 300"`) {
		t.Errorf("unexpected SVG header: %s", svg[:80])
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("SVG not closed")
	}
	if strings.Count(svg, "<rect") != 3 {
		t.Errorf("expected 3 rects, got %d", strings.Count(svg, "<rect"))
	}
	// Explicit color wins over the palette.
	if !strings.Contains(svg, `fill="#54a24b"`) {
		t.Error("explicit cell color not used")
	}
	// No labels unless requested.
	if strings.Contains(svg, "<text") {
		t.Error("labels rendered without WithLabels")
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	a := RenderSVG(testLayout(), WithLabels(), WithValues())
	b := RenderSVG(testLayout(), WithLabels(), WithValues())
	if !bytes.Equal(a, b) {
		t.Error("rendering should be deterministic")
	}
}

func TestRenderSVGLabels(t *testing.T) {
	svg := string(RenderSVG(testLayout(), WithLabels()))

	if !strings.Contains(svg, ">videos</text>") {
		t.Error("missing videos label")
	}
	// The docs cell is 150x40, big enough for a label.
	if !strings.Contains(svg, ">docs</text>") {
		t.Error("missing docs label")
	}
}

func TestRenderSVGSkipsTinyCellText(t *testing.T) {
	l := mosaic.Layout{
		VizType: mosaic.VizTypeTreemap,
		Width:   100, Height: 100,
		Cells: []mosaic.Cell{
			{Label: "big", Value: 99, Width: 90, Height: 100, Leaf: true},
			{Label: "sliver", Value: 1, X: 90, Width: 10, Height: 100, Leaf: true},
		},
	}
	svg := string(RenderSVG(l, WithLabels()))
	if strings.Contains(svg, "sliver") {
		t.Error("text should be skipped for cells narrower than the minimum")
	}
}

func TestRenderSVGSkipsZeroExtentCells(t *testing.T) {
	l := mosaic.Layout{
		VizType: mosaic.VizTypeTreemap,
		Width:   100, Height: 100,
		Cells: []mosaic.Cell{
			{Label: "a", Value: 10, Width: 100, Height: 100, Leaf: true},
			{Label: "empty", Value: 0, X: 100, Y: 100, Leaf: true},
		},
	}
	svg := string(RenderSVG(l))
	if strings.Count(svg, "<rect") != 1 {
		t.Errorf("zero-extent cells should not produce rects: %s", svg)
	}
}

func TestRenderSVGEscapesLabels(t *testing.T) {
	l := mosaic.Layout{
		VizType: mosaic.VizTypeTreemap,
		Width:   400, Height: 300,
		Cells: []mosaic.Cell{
			{Label: `a<b>&"c"`, Value: 1, Width: 400, Height: 300, Leaf: true},
		},
	}
	svg := string(RenderSVG(l, WithLabels()))
	if strings.Contains(svg, "<b>") {
		t.Error("label markup not escaped")
	}
	if !strings.Contains(svg, "a&lt;b&gt;&amp;&quot;c&quot;") {
		t.Errorf("unexpected escaping: %s", svg)
	}
}

func TestRenderSVGBackground(t *testing.T) {
	svg := string(RenderSVG(testLayout(), WithBackground("#111111")))
	if !strings.Contains(svg, `fill="#111111"`) {
		t.Error("missing background rect")
	}
}

func TestRenderJSONRoundTrip(t *testing.T) {
	data, err := RenderJSON(testLayout())
	if err != nil {
		t.Fatalf("RenderJSON error: %v", err)
	}

	back, err := mosaic.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if back.Name != "usage" || len(back.Cells) != 3 {
		t.Errorf("round trip lost data: %+v", back)
	}
}

func TestToDOT(t *testing.T) {
	d := &dataset.Dataset{
		Name: "portfolio",
		Items: []dataset.Item{
			{Label: "equities", Value: 55, Children: []dataset.Item{
				{Label: "tech", Value: 30},
			}},
			{Label: "bonds", Value: 45, Color: "#4c78a8"},
		},
	}

	dot := ToDOT(d, DOTOptions{})
	if !strings.HasPrefix(dot, "digraph G {") {
		t.Errorf("unexpected DOT header: %s", dot[:40])
	}
	for _, want := range []string{
		`"portfolio" -> "equities";`,
		`"equities" -> "tech";`,
		`"portfolio" -> "bonds";`,
		`fillcolor="#4c78a8"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	// Values only appear in detailed mode.
	if strings.Contains(dot, "55") {
		t.Error("values should not appear without Detailed")
	}

	detailed := ToDOT(d, DOTOptions{Detailed: true})
	if !strings.Contains(detailed, "55") {
		t.Error("Detailed should include values")
	}
}

func TestFormatValue(t *testing.T) {
	if got := formatValue(420); got != "420" {
		t.Errorf("formatValue(420) = %q", got)
	}
	if got := formatValue(0.5); got != "0.50" {
		t.Errorf("formatValue(0.5) = %q", got)
	}
}

func TestFitLabel(t *testing.T) {
	if got := fitLabel("videos", 100, labelFontSize); got != "videos" {
		t.Errorf("fitLabel short = %q, want unchanged", got)
	}

	got := fitLabel("a fairly long label", 60, labelFontSize)
	if !strings.HasSuffix(got, "…") {
		t.Errorf("fitLabel long = %q, want ellipsis suffix", got)
	}
	if textWidth(got, labelFontSize) > 60 {
		t.Errorf("fitLabel result %q wider than budget", got)
	}

	if got := fitLabel("wide", 5, labelFontSize); got != "" {
		t.Errorf("fitLabel tiny = %q, want empty", got)
	}
}

func TestRenderSVGTruncatesLongLabels(t *testing.T) {
	l := mosaic.Layout{
		VizType: mosaic.VizTypeTreemap,
		Width:   400, Height: 300,
		Cells: []mosaic.Cell{
			{Label: "an exceptionally verbose category name", Value: 1, Width: 100, Height: 300, Leaf: true},
		},
	}
	svg := string(RenderSVG(l, WithLabels()))
	if strings.Contains(svg, "verbose category name</text>") {
		t.Error("long label not truncated")
	}
	if !strings.Contains(svg, "…</text>") {
		t.Error("truncated label missing ellipsis")
	}
}
