package notify

import (
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestHub_PublishReachesRoomOnly(t *testing.T) {
	hub := NewHub(zap.NewNop())

	var gotA, gotB [][]byte
	a := NewClientWithHook(func(p []byte) error { gotA = append(gotA, p); return nil })
	b := NewClientWithHook(func(p []byte) error { gotB = append(gotB, p); return nil })

	hub.Join("session-1", a)
	hub.Join("session-2", b)

	hub.Publish("session-1", []byte("update"))

	if len(gotA) != 1 || string(gotA[0]) != "update" {
		t.Errorf("session-1 observer got %v", gotA)
	}
	if len(gotB) != 0 {
		t.Errorf("session-2 observer should see nothing, got %v", gotB)
	}
}

func TestHub_LeaveStopsDelivery(t *testing.T) {
	hub := NewHub(zap.NewNop())

	var got int
	c := NewClientWithHook(func([]byte) error { got++; return nil })
	hub.Join("s", c)
	hub.Publish("s", []byte("one"))
	hub.Leave("s", c)
	hub.Publish("s", []byte("two"))

	if got != 1 {
		t.Errorf("deliveries %d, want 1", got)
	}
	if n := hub.Observers("s"); n != 0 {
		t.Errorf("observers %d, want 0", n)
	}
}

func TestHub_FailingClientIsEvicted(t *testing.T) {
	hub := NewHub(zap.NewNop())

	var healthy int
	bad := NewClientWithHook(func([]byte) error { return errors.New("broken pipe") })
	good := NewClientWithHook(func([]byte) error { healthy++; return nil })

	hub.Join("s", bad)
	hub.Join("s", good)

	hub.Publish("s", []byte("first"))
	if n := hub.Observers("s"); n != 1 {
		t.Errorf("observers after failure %d, want 1", n)
	}

	hub.Publish("s", []byte("second"))
	if healthy != 2 {
		t.Errorf("healthy deliveries %d, want 2", healthy)
	}
}

func TestHub_PublishToEmptyRoomIsHarmless(t *testing.T) {
	hub := NewHub(zap.NewNop())
	hub.Publish("nobody-home", []byte("hello"))
}
