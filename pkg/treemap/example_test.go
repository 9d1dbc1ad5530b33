package treemap_test

import (
	"fmt"

	"github.com/matzehuels/mosaic/pkg/treemap"
)

func ExampleNormalize() {
	target := treemap.NewExtent(40, 20)
	normalized, _ := treemap.Normalize([]float64{3, 1}, target)
	fmt.Println(normalized)
	// Output:
	// [600 200]
}

func ExampleSquarify() {
	target := treemap.NewExtent(40, 20)
	normalized, _ := treemap.Normalize([]float64{3, 1}, target)

	rects, _ := treemap.Squarify(normalized, treemap.NewPoint(0, 0), target)
	for _, r := range rects {
		fmt.Println(r)
	}
	// Output:
	// (0, 0) 30x20
	// (30, 0) 10x20
}

func ExamplePad() {
	r := treemap.NewRect(treemap.NewPoint(0, 0), treemap.NewExtent(30, 20))
	fmt.Println(treemap.Pad(r, 1))
	// Output:
	// (1, 1) 28x18
}
