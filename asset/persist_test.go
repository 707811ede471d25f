package asset

import (
	"path/filepath"
	"testing"
)

func TestSaveLoadAssetRoundTrip(t *testing.T) {
	a := buildRoundTripAsset()
	path := filepath.Join(t.TempDir(), "gold.json")

	if err := SaveAsset(a, path); err != nil {
		t.Fatalf("SaveAsset: %v", err)
	}
	got, err := LoadAsset(path)
	if err != nil {
		t.Fatalf("LoadAsset: %v", err)
	}
	assertAssetsEqual(t, a, got)
}

func TestLoadAssetMissingFile(t *testing.T) {
	_, err := LoadAsset(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatalf("expected error loading a nonexistent file")
	}
}
