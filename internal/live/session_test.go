package live

import (
	"testing"
	"time"
)

func TestManager_CreateAndGet(t *testing.T) {
	m := NewManager(time.Hour, time.Minute)

	s := m.Create()
	if s.ID == "" {
		t.Fatal("session has no id")
	}
	if got := m.Get(s.ID); got != s {
		t.Errorf("Get returned %v, want %v", got, s)
	}
	if got := m.Get("nope"); got != nil {
		t.Errorf("Get unknown returned %v", got)
	}
}

func TestManager_ExpiredSessionRemoved(t *testing.T) {
	m := NewManager(time.Hour, time.Minute)
	s := m.Create()
	s.CreatedAt = time.Now().Add(-2 * time.Hour)

	if got := m.Get(s.ID); got != nil {
		t.Error("expired session returned")
	}
	// A second lookup misses entirely.
	if got := m.Get(s.ID); got != nil {
		t.Error("expired session survived removal")
	}
}

func TestManager_IdleSessionRemoved(t *testing.T) {
	m := NewManager(time.Hour, time.Minute)
	s := m.Create()
	s.LastActiveAt = time.Now().Add(-5 * time.Minute)

	if got := m.Get(s.ID); got != nil {
		t.Error("idle session returned")
	}
}

func TestManager_Cleanup(t *testing.T) {
	m := NewManager(time.Hour, time.Minute)
	fresh := m.Create()
	stale := m.Create()
	stale.LastActiveAt = time.Now().Add(-10 * time.Minute)

	m.Cleanup()
	if m.Get(fresh.ID) == nil {
		t.Error("cleanup removed fresh session")
	}
	m.mu.RLock()
	_, ok := m.sessions[stale.ID]
	m.mu.RUnlock()
	if ok {
		t.Error("cleanup kept stale session")
	}
}

func TestSession_Touch(t *testing.T) {
	s := NewSession()
	before := s.LastActiveAt
	time.Sleep(time.Millisecond)
	s.Touch()
	if !s.LastActiveAt.After(before) {
		t.Error("Touch did not advance LastActiveAt")
	}
}
