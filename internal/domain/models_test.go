package domain

import "testing"

func TestSpendJokerNeverBelowZero(t *testing.T) {
	p := &Profile{Jokers: map[JokerType]int{JokerFiftyFifty: 1}}

	p.SpendJoker(JokerFiftyFifty)
	p.SpendJoker(JokerFiftyFifty)
	if p.JokerCount(JokerFiftyFifty) != 0 {
		t.Fatalf("expected floor at zero, got %d", p.JokerCount(JokerFiftyFifty))
	}

	p.SpendJoker(JokerTimerStop)
	if p.JokerCount(JokerTimerStop) != 0 {
		t.Fatalf("spending an unheld joker must be a no-op, got %d", p.JokerCount(JokerTimerStop))
	}
}

func TestGrantLevelUpJokers(t *testing.T) {
	p := &Profile{}
	p.GrantLevelUpJokers()
	for _, jt := range JokerTypes() {
		if p.JokerCount(jt) != 1 {
			t.Fatalf("expected one use of %s, got %d", jt, p.JokerCount(jt))
		}
	}
}

func TestBadgeAndTopicSetSemantics(t *testing.T) {
	p := &Profile{}

	p.AddBadges([]string{"won-1", "no-joker", "won-1"})
	if len(p.Badges) != 2 {
		t.Fatalf("expected badge set semantics, got %v", p.Badges)
	}
	if !p.HasBadge("no-joker") || p.HasBadge("won-5") {
		t.Fatalf("unexpected badge membership: %v", p.Badges)
	}

	p.AddCompletedTopic("topic-1")
	p.AddCompletedTopic("topic-1")
	if len(p.CompletedTopics) != 1 || !p.HasCompleted("topic-1") {
		t.Fatalf("expected completed-topic set semantics, got %v", p.CompletedTopics)
	}
}

func TestProfileName(t *testing.T) {
	p := &Profile{FirstName: "Alice", LastName: "Example"}
	if p.Name() != "Alice Example" {
		t.Fatalf("unexpected name %q", p.Name())
	}
}
