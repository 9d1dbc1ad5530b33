package mosaic

import (
	"path/filepath"
	"reflect"
	"testing"
)

func sampleLayout() Layout {
	return Layout{
		VizType: VizTypeTreemap,
		Name:    "usage",
		Width:   400,
		Height:  300,
		Inset:   2,
		Cells: []Cell{
			{Label: "videos", Value: 420, X: 0, Y: 0, Width: 250, Height: 300, Leaf: true},
			{Label: "photos", Value: 120, Color: "#f58518", X: 250, Y: 0, Width: 150, Height: 300, Leaf: true},
		},
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	l := sampleLayout()

	data, err := Marshal(l)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(got, l) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, l)
	}
}

func TestUnmarshalDefaultsVizType(t *testing.T) {
	l, err := Unmarshal([]byte(`{"width": 100, "height": 100, "cells": [{"label": "a", "value": 1, "width": 100, "height": 100}]}`))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !l.IsTreemap() {
		t.Errorf("viz_type = %q, want treemap default", l.VizType)
	}
}

func TestUnmarshalRejectsIncomplete(t *testing.T) {
	// Treemap without cells.
	if _, err := Unmarshal([]byte(`{"viz_type": "treemap", "width": 100, "height": 100}`)); err == nil {
		t.Error("expected error for treemap without cells")
	}
	// Nodelink without DOT.
	if _, err := Unmarshal([]byte(`{"viz_type": "nodelink", "width": 100, "height": 100}`)); err == nil {
		t.Error("expected error for nodelink without dot")
	}
	// Malformed JSON.
	if _, err := Unmarshal([]byte(`{`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestUnmarshalNodelink(t *testing.T) {
	l, err := Unmarshal([]byte(`{"viz_type": "nodelink", "dot": "digraph G {}"}`))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !l.IsNodelink() || l.DOT != "digraph G {}" {
		t.Errorf("unexpected layout: %+v", l)
	}
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.layout.json")
	l := sampleLayout()

	if err := WriteFile(l, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !reflect.DeepEqual(got, l) {
		t.Error("file round trip mismatch")
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
