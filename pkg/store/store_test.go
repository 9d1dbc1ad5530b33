package store

import (
	"context"
	"testing"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/mosaic"
)

func testLayout(name string) mosaic.Layout {
	return mosaic.Layout{
		VizType: mosaic.VizTypeTreemap,
		Name:    name,
		Width:   800,
		Height:  600,
		Cells: []mosaic.Cell{
			{Label: "a", Value: 1, Width: 800, Height: 600},
		},
	}
}

func TestMemoryStorePutGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	stored, err := s.Put(ctx, testLayout("usage"))
	if err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if stored.ID == "" {
		t.Fatal("Put should assign an id")
	}
	if stored.CreatedAt.IsZero() {
		t.Error("Put should set CreatedAt")
	}

	got, err := s.Get(ctx, stored.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Layout.Name != "usage" {
		t.Errorf("Layout.Name = %q", got.Layout.Name)
	}
	if len(got.Layout.Cells) != 1 {
		t.Errorf("cells = %d", len(got.Layout.Cells))
	}
}

func TestMemoryStoreGetUnknown(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Get(context.Background(), "nope")
	if !errors.Is(err, errors.ErrCodeLayoutNotFound) {
		t.Errorf("expected LAYOUT_NOT_FOUND, got %v", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	stored, _ := s.Put(ctx, testLayout("usage"))
	if err := s.Delete(ctx, stored.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := s.Get(ctx, stored.ID); !errors.Is(err, errors.ErrCodeLayoutNotFound) {
		t.Errorf("expected LAYOUT_NOT_FOUND after delete, got %v", err)
	}
	if err := s.Delete(ctx, stored.ID); !errors.Is(err, errors.ErrCodeLayoutNotFound) {
		t.Errorf("double delete should report LAYOUT_NOT_FOUND, got %v", err)
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, name := range []string{"first", "second", "third"} {
		if _, err := s.Put(ctx, testLayout(name)); err != nil {
			t.Fatalf("Put error: %v", err)
		}
	}

	all, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List returned %d layouts", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].CreatedAt.After(all[i-1].CreatedAt) {
			t.Error("List should return newest first")
		}
	}

	limited, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("List(2) returned %d layouts", len(limited))
	}
}
