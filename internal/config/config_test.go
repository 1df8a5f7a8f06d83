package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPassesValidate(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default() failed validation: %v", err)
	}
}

func TestLoadFillsDefaultsForOmittedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("sample_rate: 44100\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, want 44100", cfg.SampleRate)
	}
	if cfg.Channels != Default().Channels {
		t.Errorf("Channels = %d, want default %d", cfg.Channels, Default().Channels)
	}
	if cfg.CensorMode != "reverse" {
		t.Errorf("CensorMode = %q, want default reverse", cfg.CensorMode)
	}
}

func TestValidateRejectsImpossibleDelay(t *testing.T) {
	cfg := Default()
	cfg.TargetDelaySeconds = 1.0
	cfg.ChunkSeconds = 5.0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when target_delay < chunk_seconds")
	}
}

func TestValidateRejectsBadCensorMode(t *testing.T) {
	cfg := Default()
	cfg.CensorMode = "vaporize"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid censor_mode")
	}
}

func TestValidateRejectsHysteresisOutOfRange(t *testing.T) {
	cfg := Default()
	cfg.PauseHysteresisSeconds = cfg.TargetDelaySeconds
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when hysteresis >= target_delay")
	}
}

func TestModeFromString(t *testing.T) {
	if m, err := ModeFromString("mute"); err != nil || m.String() != "mute" {
		t.Errorf("ModeFromString(mute) = %v, %v", m, err)
	}
	if _, err := ModeFromString("bogus"); err == nil {
		t.Error("expected error for bogus mode")
	}
}
