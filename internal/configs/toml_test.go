package configs

import (
	"path/filepath"
	"testing"
)

type tomlFixture struct {
	Name  string `toml:"name"`
	Count int    `toml:"count"`
}

func TestSaveAndLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "fixture.toml")

	saved := tomlFixture{Name: "planning", Count: 3}
	if err := SaveTOML(path, saved); err != nil {
		t.Fatalf("SaveTOML() error = %v", err)
	}

	var loaded tomlFixture
	if err := LoadTOML(path, &loaded); err != nil {
		t.Fatalf("LoadTOML() error = %v", err)
	}

	if loaded != saved {
		t.Errorf("Round trip = %+v, want %+v", loaded, saved)
	}
}

func TestLoadTOMLMissingFile(t *testing.T) {
	var out tomlFixture
	err := LoadTOML(filepath.Join(t.TempDir(), "absent.toml"), &out)
	if err == nil {
		t.Error("LoadTOML() on a missing file should return an error")
	}
}
