package render_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/mosaic/pkg/dataset"
	"github.com/matzehuels/mosaic/pkg/mosaic"
	"github.com/matzehuels/mosaic/pkg/render"
)

func ExampleRenderSVG() {
	l := mosaic.Layout{
		VizType: mosaic.VizTypeTreemap,
		Width:   200,
		Height:  100,
		Cells: []mosaic.Cell{
			{Label: "a", Value: 1, Width: 200, Height: 100, Leaf: true},
		},
	}

	svg := render.RenderSVG(l)
	fmt.Println(strings.SplitN(string(svg), "\n", 2)[0])
	// Output:
	// <svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 100" width="200" height="100">
}

func ExampleToDOT() {
	d := &dataset.Dataset{
		Name: "usage",
		Items: []dataset.Item{
			{Label: "videos", Value: 420},
		},
	}

	dot := render.ToDOT(d, render.DOTOptions{})
	fmt.Println(strings.Contains(dot, `"usage" -> "videos";`))
	// Output:
	// true
}
