// Package config loads and validates the YAML runtime configuration file
// described in spec §6.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/explicitlyaudio/streamcensor/internal/dsp"
)

// StatusConfig configures the optional HTTP observability surface.
type StatusConfig struct {
	Enabled     bool   `yaml:"enabled"`
	BindAddress string `yaml:"bind_address"`
	Port        int    `yaml:"port"`
}

// Config is the full runtime configuration, all fields optional with
// defaults filled in by Default().
type Config struct {
	SampleRate             int    `yaml:"sample_rate"`
	Channels               int    `yaml:"channels"`
	PeriodSize             int    `yaml:"period_size"`
	ChunkSeconds           float64 `yaml:"chunk_seconds"`
	TargetDelaySeconds     float64 `yaml:"target_delay_seconds"`
	PauseHysteresisSeconds float64 `yaml:"pause_hysteresis_seconds"`
	CensorMode             string  `yaml:"censor_mode"` // "mute" | "reverse"
	PadPreMs               float64 `yaml:"pad_pre_ms"`
	PadPostMs              float64 `yaml:"pad_post_ms"`
	FadeSamplesMax         int     `yaml:"fade_samples_max"`
	AsrSampleRate          int     `yaml:"asr_sample_rate"`
	VocalFilterEnabled     bool    `yaml:"vocal_filter_enabled"`
	RefinerEnabled         bool    `yaml:"refiner_enabled"`
	ReverseGain            float32 `yaml:"reverse_gain"`
	ModelPath              string  `yaml:"model_path"`
	LexiconPath            string  `yaml:"lexicon_path"`
	Status                 StatusConfig `yaml:"status"`
}

// Default returns the factory configuration described in spec §6.
func Default() Config {
	return Config{
		SampleRate:             48000,
		Channels:               2,
		PeriodSize:             512,
		ChunkSeconds:           5.0,
		TargetDelaySeconds:     10.0,
		PauseHysteresisSeconds: 2.0,
		CensorMode:             "reverse",
		PadPreMs:               400,
		PadPostMs:              100,
		FadeSamplesMax:         480,
		AsrSampleRate:          16000,
		VocalFilterEnabled:     true,
		RefinerEnabled:         true,
		ReverseGain:            0.5,
		ModelPath:              "~/.streamcensor/models/ggml-base.en.bin",
		LexiconPath:            "~/.streamcensor/lexicon.yaml",
		Status: StatusConfig{
			Enabled:     true,
			BindAddress: "0.0.0.0",
			Port:        8080,
		},
	}
}

// Load reads and parses path, keeping the default for any field the file
// omits, then validates the result. A field set explicitly to its zero
// value keeps that zero value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %q: %w", path, err)
	}
	// Unmarshal onto the defaults so an omitted field keeps its default
	// instead of zeroing out.
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration errors spec §7 classifies as
// Configuration errors: fatal at initialize.
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("config: sample_rate must be positive, got %d", c.SampleRate)
	}
	if c.Channels != 1 && c.Channels != 2 {
		return fmt.Errorf("config: channels must be 1 or 2, got %d", c.Channels)
	}
	if c.PeriodSize <= 0 {
		return fmt.Errorf("config: period_size must be positive, got %d", c.PeriodSize)
	}
	if c.ChunkSeconds <= 0 {
		return fmt.Errorf("config: chunk_seconds must be positive, got %v", c.ChunkSeconds)
	}
	if c.TargetDelaySeconds < c.ChunkSeconds {
		return fmt.Errorf("config: target_delay_seconds (%v) must be >= chunk_seconds (%v)", c.TargetDelaySeconds, c.ChunkSeconds)
	}
	if c.PauseHysteresisSeconds < 0 || c.PauseHysteresisSeconds >= c.TargetDelaySeconds {
		return fmt.Errorf("config: pause_hysteresis_seconds (%v) must be in [0, target_delay_seconds)", c.PauseHysteresisSeconds)
	}
	if _, err := ModeFromString(c.CensorMode); err != nil {
		return err
	}
	if c.AsrSampleRate <= 0 {
		return fmt.Errorf("config: asr_sample_rate must be positive, got %d", c.AsrSampleRate)
	}
	if c.FadeSamplesMax < 0 {
		return fmt.Errorf("config: fade_samples_max must be >= 0, got %d", c.FadeSamplesMax)
	}
	if c.ModelPath == "" {
		return fmt.Errorf("config: model_path is required")
	}
	if c.LexiconPath == "" {
		return fmt.Errorf("config: lexicon_path is required")
	}
	return nil
}

// ModeFromString parses the YAML censor_mode string into a dsp.Mode.
func ModeFromString(s string) (dsp.Mode, error) {
	switch s {
	case "mute":
		return dsp.Mute, nil
	case "reverse", "":
		return dsp.Reverse, nil
	default:
		return dsp.Mute, fmt.Errorf("config: censor_mode must be %q or %q, got %q", "mute", "reverse", s)
	}
}
