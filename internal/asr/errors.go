package asr

import "errors"

// ErrModelNotFound is returned when the configured whisper.cpp model file is
// missing on disk. Declared without a build tag so callers (e.g.
// internal/engine's auto-fetch step) can check for it with errors.Is
// regardless of whether the binary was built with -tags whispercpp.
var ErrModelNotFound = errors.New("asr: whisper model not found")
