package pipeline

// Snapshot is a plain, point-in-time copy of the scheduler's observability
// surface. External observers poll it; nothing on the real-time path ever
// calls into observer code, matching the "no inversion of control" design
// note.
type Snapshot struct {
	InputLevelRMS   float32 `json:"input_level_rms"`
	FillFraction    float32 `json:"fill_fraction"`
	LatencyMs       float32 `json:"latency_ms"`
	ProfanityCount  uint64  `json:"profanity_count"`
	Running         bool    `json:"running"`
	Paused          bool    `json:"paused"`
	PlaybackStarted bool    `json:"playback_started"`
}
