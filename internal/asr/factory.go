//go:build !whispercpp

package asr

import "errors"

// ErrWhisperNotBuilt is returned by NewConfiguredEngine when the binary was
// built without the whispercpp tag (no libwhisper.a available at build
// time).
var ErrWhisperNotBuilt = errors.New("asr: binary built without whispercpp tag — rebuild with -tags whispercpp")

// NewConfiguredEngine is the whispercpp-less stub; see whisper.go for the
// real implementation compiled in with -tags whispercpp.
func NewConfiguredEngine(modelPath string) (Engine, error) {
	return nil, ErrWhisperNotBuilt
}
