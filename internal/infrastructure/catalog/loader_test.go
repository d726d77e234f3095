package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shelfsync/backend/internal/domain"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing catalog fixture: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeCatalog(t, `
candidates:
  - id: milk-1
    code: "012345678905"
    name: Organic Whole Milk
    brand: DairyCo
    category: Dairy
    quantity: 1 gallon
    allergens:
      - milk
  - code: "4006381333931"
    name: Ballpoint Pen
`)

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Load returned %d candidates, want 2", len(got))
	}

	first := got[0]
	if first.ID != "milk-1" || first.Code != "012345678905" || first.Brand != "DairyCo" {
		t.Errorf("first candidate = %+v, want the milk entry intact", first)
	}
	if len(first.Allergens) != 1 || first.Allergens[0] != "milk" {
		t.Errorf("allergens = %v, want [milk]", first.Allergens)
	}

	// entries without an id get a generated one based on position
	if got[1].ID != "cat-1" {
		t.Errorf("second candidate ID = %q, want cat-1", got[1].ID)
	}
}

func TestLoad_SkipsUnmatchableEntries(t *testing.T) {
	path := writeCatalog(t, `
candidates:
  - brand: GhostBrand
    category: Unknown
  - name: Cheddar
`)

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Cheddar" {
		t.Errorf("Load = %+v, want only the Cheddar entry", got)
	}
}

func TestLoad_EmptyCatalog(t *testing.T) {
	path := writeCatalog(t, `
candidates:
  - brand: GhostBrand
`)

	_, err := Load(path)
	if !errors.Is(err, domain.ErrCatalogEmpty) {
		t.Errorf("Load error = %v, want ErrCatalogEmpty", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("Load succeeded on a missing file, want an error")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeCatalog(t, "candidates: [not: closed")

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load succeeded on malformed YAML, want an error")
	}
}
