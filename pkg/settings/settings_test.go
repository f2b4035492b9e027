package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	s := Defaults()

	if s.SNMPTimeoutSeconds != 5 {
		t.Errorf("SNMPTimeoutSeconds = %d, want 5", s.SNMPTimeoutSeconds)
	}
	if s.SNMPRetries != 3 {
		t.Errorf("SNMPRetries = %d, want 3", s.SNMPRetries)
	}
	if s.SNMPMaxRepetitions != 25 {
		t.Errorf("SNMPMaxRepetitions = %d, want 25", s.SNMPMaxRepetitions)
	}
	if s.EthFormat != "colon" {
		t.Errorf("EthFormat = %q, want colon", s.EthFormat)
	}
}

func TestNormalize_FillsZeroes(t *testing.T) {
	s := Settings{SNMPRetries: 1, IfaceHideSpeedAbove: 9500}
	s.Normalize()

	if s.SNMPRetries != 1 {
		t.Errorf("SNMPRetries = %d, want 1 (explicit value kept)", s.SNMPRetries)
	}
	if s.SNMPTimeoutSeconds != DefaultSNMPTimeoutSeconds {
		t.Errorf("SNMPTimeoutSeconds = %d, want default", s.SNMPTimeoutSeconds)
	}
	if s.IfaceHideSpeedAbove != 9500 {
		t.Errorf("IfaceHideSpeedAbove = %d, want 9500", s.IfaceHideSpeedAbove)
	}
}

func TestLoadFrom_Missing(t *testing.T) {
	s, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadFrom missing file: %v", err)
	}
	if s.SNMPTimeoutSeconds != DefaultSNMPTimeoutSeconds {
		t.Error("missing file should yield defaults")
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "settings.json")

	s := Defaults()
	s.IfaceHideRegexIfName = "^TenGig"
	s.AlwaysAllowPoeToggle = true

	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("settings file not written: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if loaded.IfaceHideRegexIfName != "^TenGig" {
		t.Errorf("IfaceHideRegexIfName = %q", loaded.IfaceHideRegexIfName)
	}
	if !loaded.AlwaysAllowPoeToggle {
		t.Error("AlwaysAllowPoeToggle not persisted")
	}
	if loaded.SNMPMaxRepetitions != DefaultMaxRepetitions {
		t.Errorf("SNMPMaxRepetitions = %d", loaded.SNMPMaxRepetitions)
	}
}
