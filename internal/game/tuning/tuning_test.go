package tuning

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsZeroValue(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != (Tuning{}) {
		t.Fatalf("expected zero value, got %+v", got)
	}
}

func TestLoad_EmptyPathIsNoop(t *testing.T) {
	got, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != (Tuning{}) {
		t.Fatalf("expected zero value, got %+v", got)
	}
}

func TestLoad_ParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	content := []byte("dog_retirement_time_ms: 30000\ndefault_bag_capacity: 5\ndb_pool_size: 8\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.DogRetirementTimeMs != 30000 || got.DefaultBagCapacity != 5 || got.DBPoolSize != 8 {
		t.Fatalf("unexpected tuning: %+v", got)
	}
	if got.Retirement().Seconds() != 30 {
		t.Fatalf("expected 30s retirement, got %v", got.Retirement())
	}
}
