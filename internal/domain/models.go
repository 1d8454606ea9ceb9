package domain

// JokerType identifies a limited-use power-up in a player's inventory.
type JokerType string

const (
	// JokerFiftyFifty removes two wrong answers from the active question.
	JokerFiftyFifty JokerType = "fifty-fifty"
	// JokerTimerStop pauses the countdown for the rest of the active question.
	JokerTimerStop JokerType = "timer-stop"
)

// JokerTypes lists every joker type in a fixed order.
func JokerTypes() []JokerType {
	return []JokerType{JokerFiftyFifty, JokerTimerStop}
}

// Question is an authored quiz question: one correct answer, three wrong ones.
// Questions are immutable during play.
type Question struct {
	Text          string   `json:"text"`
	CorrectAnswer string   `json:"correctAnswer"`
	WrongAnswers  []string `json:"wrongAnswers"`
	ImageRef      string   `json:"imageRef,omitempty"`
}

// Quiz is the question bank belonging to exactly one topic.
type Quiz struct {
	ID        string     `json:"id"`
	TopicID   string     `json:"topicId"`
	Questions []Question `json:"questions"`
}

// Topic is a named, author-owned playable unit. Inactive topics are blocked
// from new sessions.
type Topic struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	CreatedBy     string `json:"createdBy"`
	CreatedByName string `json:"createdByName"`
	Active        bool   `json:"active"`
}

// Role distinguishes quiz authors from players.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// Profile is the persistent user state mutated by finished game sessions.
type Profile struct {
	UserID          string            `json:"userId"`
	FirstName       string            `json:"firstname"`
	LastName        string            `json:"lastname"`
	Email           string            `json:"email"`
	Role            Role              `json:"role"`
	Points          int               `json:"points"`
	Level           int               `json:"level"`
	GamesPlayed     int               `json:"gamesPlayedCount"`
	Jokers          map[JokerType]int `json:"jokers"`
	Badges          []string          `json:"badges"`
	CompletedTopics []string          `json:"completedQuizTopics"`
}

// Name returns the player's display name.
func (p *Profile) Name() string {
	return p.FirstName + " " + p.LastName
}

// JokerCount returns the remaining uses of the given joker type.
func (p *Profile) JokerCount(t JokerType) int {
	return p.Jokers[t]
}

// SpendJoker decrements the remaining count of the given joker type, never
// below zero.
func (p *Profile) SpendJoker(t JokerType) {
	if p.Jokers == nil {
		return
	}
	if p.Jokers[t] > 0 {
		p.Jokers[t]--
	}
}

// GrantLevelUpJokers adds one use of every joker type. This is how players
// earn more joker uses over time.
func (p *Profile) GrantLevelUpJokers() {
	if p.Jokers == nil {
		p.Jokers = make(map[JokerType]int)
	}
	for _, t := range JokerTypes() {
		p.Jokers[t]++
	}
}

// AddBadge records a badge id with set semantics.
func (p *Profile) AddBadge(id string) {
	for _, held := range p.Badges {
		if held == id {
			return
		}
	}
	p.Badges = append(p.Badges, id)
}

// AddBadges records a list of badge ids with set semantics.
func (p *Profile) AddBadges(ids []string) {
	for _, id := range ids {
		p.AddBadge(id)
	}
}

// AddCompletedTopic records a completed topic id with set semantics.
func (p *Profile) AddCompletedTopic(topicID string) {
	for _, id := range p.CompletedTopics {
		if id == topicID {
			return
		}
	}
	p.CompletedTopics = append(p.CompletedTopics, topicID)
}

// HasCompleted reports whether the player already finished the topic.
func (p *Profile) HasCompleted(topicID string) bool {
	for _, id := range p.CompletedTopics {
		if id == topicID {
			return true
		}
	}
	return false
}

// HasBadge reports whether the player already holds the badge.
func (p *Profile) HasBadge(id string) bool {
	for _, held := range p.Badges {
		if held == id {
			return true
		}
	}
	return false
}
