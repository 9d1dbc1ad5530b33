package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/mosaic/pkg/cache"
	"github.com/matzehuels/mosaic/pkg/dataset"
	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/httputil"
	"github.com/matzehuels/mosaic/pkg/mosaic"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

const flatJSON = `{
	"name": "usage",
	"items": [
		{"label": "videos", "value": 420},
		{"label": "photos", "value": 120},
		{"label": "docs", "value": 8}
	]
}`

func TestExecuteTreemap(t *testing.T) {
	path := writeDataset(t, flatJSON)
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Path:    path,
		Formats: []string{FormatSVG, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if result.Stats.ItemCount != 3 {
		t.Errorf("ItemCount = %d", result.Stats.ItemCount)
	}
	if result.Stats.CellCount != 3 {
		t.Errorf("CellCount = %d", result.Stats.CellCount)
	}
	if result.DatasetHash == "" {
		t.Error("DatasetHash not set")
	}

	svg, ok := result.Artifacts[FormatSVG]
	if !ok || !strings.HasPrefix(string(svg), "<svg") {
		t.Errorf("missing or malformed SVG artifact")
	}
	if _, ok := result.Artifacts[FormatJSON]; !ok {
		t.Error("missing JSON artifact")
	}

	// Defaults applied.
	if result.Layout.Width != DefaultWidth || result.Layout.Height != DefaultHeight {
		t.Errorf("frame = %dx%d", result.Layout.Width, result.Layout.Height)
	}

	// Cells tile the frame: areas sum to at most the frame area and the
	// largest value gets the largest cell.
	var area int
	for _, c := range result.Layout.Cells {
		area += c.Width * c.Height
	}
	if area > DefaultWidth*DefaultHeight {
		t.Errorf("cell area %d exceeds frame", area)
	}
	if result.Layout.Cells[0].Label != "videos" {
		t.Errorf("first cell = %q, want videos", result.Layout.Cells[0].Label)
	}
}

func TestExecuteNodelink(t *testing.T) {
	path := writeDataset(t, flatJSON)
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Path:    path,
		VizType: mosaic.VizTypeNodelink,
		Formats: []string{FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !result.Layout.IsNodelink() {
		t.Errorf("VizType = %q", result.Layout.VizType)
	}
	if !strings.Contains(result.Layout.DOT, `"usage" -> "videos";`) {
		t.Errorf("DOT missing edges:\n%s", result.Layout.DOT)
	}
}

func TestExecuteInlineDataset(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	d := &dataset.Dataset{
		Name: "inline",
		Items: []dataset.Item{
			{Label: "a", Value: 1},
			{Label: "b", Value: 3},
		},
	}
	result, err := runner.Execute(context.Background(), Options{
		Dataset: d,
		Formats: []string{FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	// Inline datasets are sorted in place.
	if result.Layout.Cells[0].Label != "b" {
		t.Errorf("first cell = %q, want b", result.Layout.Cells[0].Label)
	}
}

func TestExecuteMissingFile(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{
		Path:    filepath.Join(t.TempDir(), "nope.json"),
		Formats: []string{FormatJSON},
	})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("expected FILE_NOT_FOUND, got %v", err)
	}
}

func TestExecuteRequiresInput(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{})
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("expected INVALID_CONFIG, got %v", err)
	}
}

func TestValidateVizType(t *testing.T) {
	if err := ValidateVizType("treemap"); err != nil {
		t.Errorf("treemap should be valid: %v", err)
	}
	if err := ValidateVizType("tower"); !errors.Is(err, errors.ErrCodeInvalidVizType) {
		t.Errorf("expected INVALID_VIZ_TYPE, got %v", err)
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png", "pdf", "json"}); err != nil {
		t.Errorf("all formats should be valid: %v", err)
	}
	if err := ValidateFormat("gif"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("expected INVALID_FORMAT, got %v", err)
	}
}

func TestLayoutCaching(t *testing.T) {
	path := writeDataset(t, flatJSON)

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	ctx := context.Background()
	opts := Options{Path: path, Formats: []string{FormatJSON}}

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit {
		t.Error("first run should miss the layout cache")
	}

	second, err := runner.Execute(ctx, Options{Path: path, Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.LoadHit {
		t.Error("second run should hit the dataset cache")
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run should hit the layout cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}
	if len(second.Layout.Cells) != len(first.Layout.Cells) {
		t.Error("cached layout differs from computed layout")
	}
}

func TestGenerateLayoutNested(t *testing.T) {
	d := &dataset.Dataset{
		Name: "nested",
		Items: []dataset.Item{
			{Label: "a", Value: 0, Children: []dataset.Item{
				{Label: "a1", Value: 30},
				{Label: "a2", Value: 30},
			}},
			{Label: "b", Value: 40},
		},
	}

	l, err := GenerateLayout(d, Options{Width: 100, Height: 100, Inset: 2})
	if err != nil {
		t.Fatalf("GenerateLayout error: %v", err)
	}
	if len(l.Cells) != 4 {
		t.Fatalf("cells = %d, want 4", len(l.Cells))
	}
	// Pre-order: parent before children.
	if l.Cells[0].Label != "a" || l.Cells[0].Leaf {
		t.Errorf("first cell = %+v, want non-leaf a", l.Cells[0])
	}
	if l.Cells[1].Depth != 1 {
		t.Errorf("child depth = %d", l.Cells[1].Depth)
	}
	// Effective value of the parent includes its children.
	if l.Cells[0].Value != 60 {
		t.Errorf("parent value = %v, want 60", l.Cells[0].Value)
	}
	if l.Inset != 2 {
		t.Errorf("Inset = %d", l.Inset)
	}
}

func TestGenerateLayoutRejectsDegenerateFrame(t *testing.T) {
	d := &dataset.Dataset{Items: []dataset.Item{{Label: "a", Value: 1}}}
	_, err := GenerateLayout(d, Options{Width: -1, Height: 100})
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("expected INVALID_CONFIG, got %v", err)
	}
}

func TestLoadRemoteDataset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(flatJSON))
	}))
	defer srv.Close()

	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	d, err := runner.Load(context.Background(), Options{Path: srv.URL + "/usage.json"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Name != "usage" {
		t.Errorf("name = %q, want usage", d.Name)
	}
	if len(d.Items) != 3 || d.Items[0].Label != "videos" {
		t.Errorf("unexpected items: %+v", d.Items)
	}
}

func TestLoadRemoteDatasetCSV(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("label,value\na,10\nb,30\n"))
	}))
	defer srv.Close()

	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	d, err := runner.Load(context.Background(), Options{Path: srv.URL + "/data.csv"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(d.Items) != 2 || d.Items[0].Label != "b" {
		t.Errorf("unexpected items: %+v", d.Items)
	}
}

func TestLoadRemoteDatasetUnreachable(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	runner.Fetcher = &httputil.Fetcher{
		Client:   &http.Client{Timeout: time.Second},
		Attempts: 1,
		Delay:    time.Millisecond,
	}
	defer runner.Close()

	_, err := runner.Load(context.Background(), Options{Path: "http://127.0.0.1:1/data.json"})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("expected FILE_NOT_FOUND, got %v", err)
	}
}

func TestRemoteFormat(t *testing.T) {
	if got := remoteFormat("https://example.com/d.csv", ""); got != "csv" {
		t.Errorf("remoteFormat csv = %q", got)
	}
	if got := remoteFormat("https://example.com/d.csv", "toml"); got != "toml" {
		t.Errorf("explicit format = %q", got)
	}
	if got := remoteFormat("https://example.com/api/data", ""); got != "json" {
		t.Errorf("default format = %q", got)
	}
}
