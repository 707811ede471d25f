package config

import "testing"

func TestLoadDefaultConfig(t *testing.T) {
	cfg, err := Load("", ".")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Network.ID != "uplink-mainnet" {
		t.Fatalf("network.id = %q, want uplink-mainnet", cfg.Network.ID)
	}
	if cfg.Network.Preallocated == "" {
		t.Fatalf("network.preallocated should not be empty")
	}
	if cfg.Storage.DBPath == "" {
		t.Fatalf("storage.db_path should not be empty")
	}
}
