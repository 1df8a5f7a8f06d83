package pipeline

import "testing"

func TestHandoffPublishTakeRelease(t *testing.T) {
	h := NewHandoff()
	c := &Chunk{Samples: []float32{1, 2, 3}, StartAbs: 10}

	if !h.TryPublish(c) {
		t.Fatal("TryPublish on empty slot should succeed")
	}
	if h.TryPublish(&Chunk{}) {
		t.Fatal("TryPublish on pending slot should fail (P4: at most one staged chunk)")
	}

	got := h.TryTake()
	if got != c {
		t.Fatalf("TryTake returned %v, want the published chunk", got)
	}
	if h.TryTake() != nil {
		t.Fatal("second TryTake before Release should return nil")
	}

	h.Release()
	if !h.TryPublish(&Chunk{StartAbs: 20}) {
		t.Fatal("TryPublish after Release should succeed")
	}
}

func TestHandoffNotifyFiresOncePerPublish(t *testing.T) {
	h := NewHandoff()
	h.TryPublish(&Chunk{})
	select {
	case <-h.Notify():
	default:
		t.Fatal("expected a notification after publish")
	}
	select {
	case <-h.Notify():
		t.Fatal("expected no second notification")
	default:
	}
}
