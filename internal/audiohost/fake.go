package audiohost

// FakeBackend drives the registered Callback manually from test code via
// Tick, instead of from a real device thread. It never returns
// ErrDeviceUnavailable; tests that need that path construct the error
// directly.
type FakeBackend struct {
	cb         Callback
	periodSize int
	channels   int
	started    bool
	closed     bool
}

// NewFakeBackend returns a Backend for tests.
func NewFakeBackend() *FakeBackend {
	return &FakeBackend{}
}

func (f *FakeBackend) Open(sampleRate float64, channels, periodSize int, cb Callback) error {
	f.cb = cb
	f.channels = channels
	f.periodSize = periodSize
	return nil
}

func (f *FakeBackend) Start() error { f.started = true; return nil }
func (f *FakeBackend) Stop() error  { f.started = false; return nil }
func (f *FakeBackend) Close() error { f.closed = true; return nil }

// Started reports whether Start has been called more recently than Stop.
func (f *FakeBackend) Started() bool { return f.started }

// Closed reports whether Close has been called.
func (f *FakeBackend) Closed() bool { return f.closed }

// Tick drives one callback period with the given interleaved input frame and
// returns the interleaved output the callback produced. len(in) must equal
// periodSize*channels; panics otherwise, matching a real host's fixed block
// contract.
func (f *FakeBackend) Tick(in []float32) []float32 {
	want := f.periodSize * f.channels
	if len(in) != want {
		panic("audiohost: FakeBackend.Tick: wrong frame size")
	}
	out := make([]float32, want)
	f.cb(in, out)
	return out
}
