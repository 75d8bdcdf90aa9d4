package bucket

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalogOrder(t *testing.T) {
	want := []string{"16:9", "9:16", "1:1", "4:3", "3:4", "5:4", "4:5"}
	got := DefaultCatalog().Names()

	if len(got) != len(want) {
		t.Fatalf("expected %d buckets, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bucket %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestSelectPreservesCatalogOrder(t *testing.T) {
	subset, err := DefaultCatalog().Select("1:1", "16:9")
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	// Catalog order wins over argument order.
	if len(subset) != 2 || subset[0].Name != "16:9" || subset[1].Name != "1:1" {
		t.Fatalf("unexpected subset: %v", subset.Names())
	}
}

func TestSelectUnknownName(t *testing.T) {
	if _, err := DefaultCatalog().Select("21:9"); err == nil {
		t.Fatal("expected error for unknown bucket name")
	}
}

func TestNewPanicsOnBadDimensions(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for zero height")
		}
	}()
	New("bad", 16, 0)
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "buckets.yaml")
	data := `buckets:
  - name: "21:9"
    width: 21
    height: 9
  - name: "2:3"
    width: 2
    height: 3
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if len(catalog) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(catalog))
	}
	if catalog[0].Name != "21:9" || catalog[0].Width != 21 || catalog[0].Height != 9 {
		t.Errorf("unexpected first bucket: %+v", catalog[0])
	}
}

func TestLoadCatalogRejectsBadDimensions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "buckets.yaml")
	data := "buckets:\n  - name: broken\n    width: 0\n    height: 9\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	if _, err := LoadCatalog(path); err == nil {
		t.Fatal("expected error for non-positive width")
	}
}
