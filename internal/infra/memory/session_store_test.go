package memory

import (
	"testing"

	"millionaire-quiz-service/internal/app"
)

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore()

	if _, ok := store.Get("student-1"); ok {
		t.Fatalf("expected empty store")
	}

	session := &app.Session{}
	store.Put("student-1", session)
	got, ok := store.Get("student-1")
	if !ok || got != session {
		t.Fatalf("expected stored session back")
	}

	store.Delete("student-1")
	if _, ok := store.Get("student-1"); ok {
		t.Fatalf("expected session removed")
	}
}
