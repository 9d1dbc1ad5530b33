package treemap

import "testing"

func TestPointOps(t *testing.T) {
	p := NewPoint(3, 4)

	if got := p.Offset(2, -1); got != NewPoint(5, 3) {
		t.Errorf("Offset = %v, want (5, 3)", got)
	}
	if got := p.Add(NewPoint(1, 1)); got != NewPoint(4, 5) {
		t.Errorf("Add = %v, want (4, 5)", got)
	}
	// Offset returns a copy; the receiver is unchanged.
	if p != NewPoint(3, 4) {
		t.Errorf("receiver mutated: %v", p)
	}
	if p.String() != "(3, 4)" {
		t.Errorf("String = %q", p.String())
	}
}

func TestExtentOps(t *testing.T) {
	e := NewExtent(16, 9)

	if got := e.Area(); got != 144 {
		t.Errorf("Area = %d, want 144", got)
	}
	if got := e.Scale(2); got != NewExtent(32, 18) {
		t.Errorf("Scale(2) = %v, want 32x18", got)
	}
	if got := e.Scale(0.5); got != NewExtent(8, 4) {
		t.Errorf("Scale(0.5) = %v, want 8x4 (truncated)", got)
	}
	if !e.Positive() {
		t.Error("16x9 should be positive")
	}
	if NewExtent(0, 9).Positive() || NewExtent(16, -1).Positive() {
		t.Error("zero or negative dimension should not be positive")
	}
	if e.String() != "16x9" {
		t.Errorf("String = %q", e.String())
	}
}

func TestRectCorners(t *testing.T) {
	r := NewRect(NewPoint(5, 5), NewExtent(10, 20))

	if got := r.TopRight(); got != NewPoint(15, 5) {
		t.Errorf("TopRight = %v", got)
	}
	if got := r.BottomLeft(); got != NewPoint(5, 25) {
		t.Errorf("BottomLeft = %v", got)
	}
	if got := r.BottomRight(); got != NewPoint(15, 25) {
		t.Errorf("BottomRight = %v", got)
	}
	if r.Width() != 10 || r.Height() != 20 || r.Area() != 200 {
		t.Errorf("dimensions: %dx%d area %d", r.Width(), r.Height(), r.Area())
	}
}

func TestPad(t *testing.T) {
	r := NewRect(NewPoint(10, 10), NewExtent(20, 12))

	padded := Pad(r, 2)
	want := NewRect(NewPoint(12, 12), NewExtent(16, 8))
	if padded != want {
		t.Errorf("Pad = %v, want %v", padded, want)
	}

	// Too small to pad: unchanged.
	small := NewRect(NewPoint(0, 0), NewExtent(4, 3))
	if got := Pad(small, 2); got != small {
		t.Errorf("Pad(small) = %v, want unchanged %v", got, small)
	}

	// Zero or negative inset: unchanged.
	if got := Pad(r, 0); got != r {
		t.Errorf("Pad(r, 0) = %v, want unchanged", got)
	}
	if got := Pad(r, -1); got != r {
		t.Errorf("Pad(r, -1) = %v, want unchanged", got)
	}
}
