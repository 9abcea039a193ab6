package chart

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestSnapshotSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "pred")
	store := NewSnapshotStore(dir)

	payload := []byte("fake png bytes")
	path, err := store.Save("bitcoin", payload)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if filepath.Base(path) != "bitcoin_analysis.png" {
		t.Errorf("snapshot path = %s", path)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Error("snapshot content does not match payload")
	}
}

func TestSnapshotSaveOverwrites(t *testing.T) {
	store := NewSnapshotStore(t.TempDir())

	if _, err := store.Save("bitcoin", []byte("first")); err != nil {
		t.Fatalf("first Save() error = %v", err)
	}
	path, err := store.Save("bitcoin", []byte("second"))
	if err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "second" {
		t.Errorf("snapshot content = %q, want %q", got, "second")
	}
}

// Concurrent saves for the same asset must leave one complete payload behind,
// never an interleaving of two writers.
func TestSnapshotSaveConcurrent(t *testing.T) {
	store := NewSnapshotStore(t.TempDir())

	payloadA := bytes.Repeat([]byte{'a'}, 64*1024)
	payloadB := bytes.Repeat([]byte{'b'}, 64*1024)

	path, err := store.Save("bitcoin", payloadA)
	if err != nil {
		t.Fatalf("initial Save() error = %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.Save("bitcoin", payloadA)
		}()
		go func() {
			defer wg.Done()
			store.Save("bitcoin", payloadB)
		}()
	}
	wg.Wait()

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if !bytes.Equal(got, payloadA) && !bytes.Equal(got, payloadB) {
		t.Error("snapshot is neither writer's complete payload")
	}

	// No temp files may survive.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("listing snapshot dir: %v", err)
	}
	if len(entries) != 1 {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("snapshot dir holds %v, want only the published snapshot", names)
	}
}
