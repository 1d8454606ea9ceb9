package app

import (
	"context"
	"math/rand"
	"sort"
	"strings"
	"time"

	"millionaire-quiz-service/internal/domain"
)

// TopicRepository loads playable quiz topics.
type TopicRepository interface {
	GetTopic(ctx context.Context, topicID string) (domain.Topic, error)
	ListTopics(ctx context.Context) ([]domain.Topic, error)
}

// QuizRepository loads a topic's question bank (from cache/backing store).
type QuizRepository interface {
	GetQuiz(ctx context.Context, topicID string) (domain.Quiz, error)
}

// ProfileRepository loads and saves player profiles. Save failures must be
// surfaced, not swallowed.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	SaveProfile(ctx context.Context, profile *domain.Profile) error
	ListPlayers(ctx context.Context) ([]*domain.Profile, error)
}

// SessionRepository stores the single active session per player.
type SessionRepository interface {
	Put(userID string, session *Session)
	Get(userID string) (*Session, bool)
	Delete(userID string)
}

// GameService contains the game use cases: starting sessions, forwarding
// player actions into the session engine, and the read models around it.
type GameService struct {
	topics   TopicRepository
	quizzes  QuizRepository
	profiles ProfileRepository
	sessions SessionRepository
	seed     func() int64
}

func NewGameService(topics TopicRepository, quizzes QuizRepository, profiles ProfileRepository, sessions SessionRepository) *GameService {
	return &GameService{
		topics:   topics,
		quizzes:  quizzes,
		profiles: profiles,
		sessions: sessions,
		seed:     func() int64 { return time.Now().UnixNano() },
	}
}

// NewGameServiceWithSeed fixes the shuffle seed for deterministic tests.
func NewGameServiceWithSeed(topics TopicRepository, quizzes QuizRepository, profiles ProfileRepository, sessions SessionRepository, seed int64) *GameService {
	service := NewGameService(topics, quizzes, profiles, sessions)
	service.seed = func() int64 { return seed }
	return service
}

// StartSession materializes a new session from a topic's question bank.
// Inactive topics and topics the player already completed are rejected here,
// before any session state exists. A previous in-progress session for the
// same player is abandoned, not reconciled.
func (s *GameService) StartSession(ctx context.Context, userID, topicID string) (SessionView, error) {
	topic, err := s.topics.GetTopic(ctx, topicID)
	if err != nil {
		return SessionView{}, err
	}
	if !topic.Active {
		return SessionView{}, domain.ErrTopicInactive
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return SessionView{}, err
	}
	if profile.HasCompleted(topicID) {
		return SessionView{}, domain.ErrTopicCompleted
	}

	quiz, err := s.quizzes.GetQuiz(ctx, topicID)
	if err != nil {
		return SessionView{}, err
	}

	session, err := newSession(topicID, quiz.Questions, profile, s.profiles, rand.New(rand.NewSource(s.seed())))
	if err != nil {
		return SessionView{}, err
	}

	if old, ok := s.sessions.Get(userID); ok {
		old.Abandon()
	}
	s.sessions.Put(userID, session)
	return session.Snapshot(), nil
}

// Session returns the player's active session for drivers that own the
// tick/advance cadence directly.
func (s *GameService) Session(userID string) (*Session, error) {
	session, ok := s.sessions.Get(userID)
	if !ok {
		return nil, domain.ErrNoActiveSession
	}
	return session, nil
}

// SelectAnswer forwards an answer selection into the player's session.
func (s *GameService) SelectAnswer(userID string, answerIdx int) (Verdict, error) {
	session, err := s.Session(userID)
	if err != nil {
		return Verdict{}, err
	}
	return session.SelectAnswer(answerIdx)
}

// AdvanceQuestion applies the pending answer's transition.
func (s *GameService) AdvanceQuestion(ctx context.Context, userID string) error {
	session, err := s.Session(userID)
	if err != nil {
		return err
	}
	return session.Advance(ctx)
}

// ActivateJoker applies a joker against the player's active question.
func (s *GameService) ActivateJoker(userID string, joker domain.JokerType) error {
	session, err := s.Session(userID)
	if err != nil {
		return err
	}
	return session.UseJoker(joker)
}

// Tick advances the player's countdown by one second.
func (s *GameService) Tick(ctx context.Context, userID string) error {
	session, err := s.Session(userID)
	if err != nil {
		return err
	}
	session.Tick(ctx)
	return nil
}

// AbandonSession discards the player's in-progress session without awarding
// or persisting anything.
func (s *GameService) AbandonSession(userID string) {
	session, ok := s.sessions.Get(userID)
	if !ok {
		return
	}
	session.Abandon()
	s.sessions.Delete(userID)
}

// Snapshot returns the observable state of the player's session.
func (s *GameService) Snapshot(userID string) (SessionView, error) {
	session, err := s.Session(userID)
	if err != nil {
		return SessionView{}, err
	}
	return session.Snapshot(), nil
}

// TopicView is the play-screen projection of a quiz topic.
type TopicView struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	CreatedByName string `json:"createdByName"`
	Active        bool   `json:"active"`
}

// ListTopics returns all topics, optionally filtered by a case-insensitive
// name fragment.
func (s *GameService) ListTopics(ctx context.Context, nameFilter string) ([]TopicView, error) {
	topics, err := s.topics.ListTopics(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(nameFilter)
	views := make([]TopicView, 0, len(topics))
	for _, t := range topics {
		if needle != "" && !strings.Contains(strings.ToLower(t.Name), needle) {
			continue
		}
		views = append(views, TopicView{
			ID:            t.ID,
			Name:          t.Name,
			CreatedByName: t.CreatedByName,
			Active:        t.Active,
		})
	}
	return views, nil
}

// StandingsEntry is one row of the player standings.
type StandingsEntry struct {
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	Points      int    `json:"points"`
	Level       int    `json:"level"`
	GamesPlayed int    `json:"gamesPlayed"`
}

// Standings returns all players ordered by points (desc), level (desc) and
// games played (asc). This is a plain query, recomputed per request.
func (s *GameService) Standings(ctx context.Context) ([]StandingsEntry, error) {
	players, err := s.profiles.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]StandingsEntry, 0, len(players))
	for _, p := range players {
		entries = append(entries, StandingsEntry{
			UserID:      p.UserID,
			Name:        p.Name(),
			Points:      p.Points,
			Level:       p.Level,
			GamesPlayed: p.GamesPlayed,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		if entries[i].Level != entries[j].Level {
			return entries[i].Level > entries[j].Level
		}
		return entries[i].GamesPlayed < entries[j].GamesPlayed
	})
	return entries, nil
}

// Achievements summarizes a player's badges and completed topics.
type Achievements struct {
	Badges          []Badge     `json:"badges"`
	CompletedTopics []TopicView `json:"completedTopics"`
	Points          int         `json:"points"`
	Level           int         `json:"level"`
	NextLevel       int         `json:"nextLevelPoints"`
	LevelProgress   float64     `json:"levelProgress"`
}

// PlayerAchievements resolves a player's badge and completed-topic sets for
// display.
func (s *GameService) PlayerAchievements(ctx context.Context, userID string) (Achievements, error) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return Achievements{}, err
	}
	result := Achievements{
		Badges:        ResolveBadges(profile.Badges),
		Points:        profile.Points,
		Level:         profile.Level,
		NextLevel:     PointsToReachLevel(profile.Level),
		LevelProgress: LevelProgress(profile.Points),
	}
	for _, topicID := range profile.CompletedTopics {
		topic, err := s.topics.GetTopic(ctx, topicID)
		if err != nil {
			// Deleted topics stay listed by id so progress is never hidden.
			result.CompletedTopics = append(result.CompletedTopics, TopicView{ID: topicID, Name: topicID})
			continue
		}
		result.CompletedTopics = append(result.CompletedTopics, TopicView{
			ID:            topic.ID,
			Name:          topic.Name,
			CreatedByName: topic.CreatedByName,
			Active:        topic.Active,
		})
	}
	return result, nil
}
