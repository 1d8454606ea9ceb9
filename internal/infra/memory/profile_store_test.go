package memory

import (
	"context"
	"errors"
	"testing"

	"millionaire-quiz-service/internal/domain"
)

func TestProfileStoreCopiesOnLoad(t *testing.T) {
	store := NewProfileStore(map[string]domain.Profile{
		"student-1": {
			UserID: "student-1",
			Role:   domain.RoleStudent,
			Jokers: map[domain.JokerType]int{domain.JokerFiftyFifty: 2},
			Badges: []string{"won-1"},
		},
	})

	loaded, err := store.GetProfile(context.Background(), "student-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	loaded.Points = 999
	loaded.SpendJoker(domain.JokerFiftyFifty)
	loaded.AddBadge("no-joker")

	// Unsaved working-copy mutations must not leak into the store.
	reloaded, err := store.GetProfile(context.Background(), "student-1")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Points != 0 || reloaded.JokerCount(domain.JokerFiftyFifty) != 2 || len(reloaded.Badges) != 1 {
		t.Fatalf("store mutated through a working copy: %+v", reloaded)
	}

	if err := store.SaveProfile(context.Background(), loaded); err != nil {
		t.Fatalf("save: %v", err)
	}
	saved, err := store.GetProfile(context.Background(), "student-1")
	if err != nil {
		t.Fatalf("get saved: %v", err)
	}
	if saved.Points != 999 || saved.JokerCount(domain.JokerFiftyFifty) != 1 {
		t.Fatalf("expected saved mutations, got %+v", saved)
	}
}

func TestProfileStoreUnknownUser(t *testing.T) {
	store := NewProfileStore(nil)
	if _, err := store.GetProfile(context.Background(), "missing"); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("expected profile-not-found, got %v", err)
	}
}

func TestListPlayersFiltersStudents(t *testing.T) {
	store := NewProfileStore(map[string]domain.Profile{
		"b-student": {UserID: "b-student", Role: domain.RoleStudent},
		"a-student": {UserID: "a-student", Role: domain.RoleStudent},
		"teacher":   {UserID: "teacher", Role: domain.RoleTeacher},
	})

	players, err := store.ListPlayers(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(players) != 2 || players[0].UserID != "a-student" || players[1].UserID != "b-student" {
		t.Fatalf("expected sorted students only, got %+v", players)
	}
}
