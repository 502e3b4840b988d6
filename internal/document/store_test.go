package document

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveStoresUnderRandomName(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	name, err := store.Save("pan-card.PNG", strings.NewReader("fake image bytes"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if strings.Contains(name, "pan-card") {
		t.Fatalf("stored name %q leaks the original filename", name)
	}
	if !strings.HasSuffix(name, ".png") {
		t.Fatalf("stored name %q should keep a lowercased extension", name)
	}

	data, err := os.ReadFile(filepath.Join(store.Dir(), name))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "fake image bytes" {
		t.Fatalf("stored content = %q", data)
	}
}

func TestSaveRejectsUnknownExtension(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := store.Save("payload.exe", strings.NewReader("x")); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("err = %v, want ErrUnsupportedType", err)
	}
}

func TestTwoSavesGetDistinctNames(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	a, err := store.Save("front.jpg", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("save a: %v", err)
	}
	b, err := store.Save("front.jpg", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("save b: %v", err)
	}
	if a == b {
		t.Fatalf("same stored name %q for two uploads", a)
	}
}
