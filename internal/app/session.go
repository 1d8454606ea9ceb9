package app

import (
	"context"
	"math"
	"math/rand"
	"sync"

	"millionaire-quiz-service/internal/domain"
)

type sessionState int

const (
	sessionInProgress sessionState = iota
	sessionGameOver
)

// ActiveAnswer is one answer of the active question, in session-randomized
// order. Correctness is never exposed through snapshots.
type ActiveAnswer struct {
	Text    string
	Correct bool
}

// ActiveQuestion binds an authored question to its position in the shuffled
// ladder for one session.
type ActiveQuestion struct {
	Level    int
	Points   int
	Secure   bool
	Done     bool
	Active   bool
	Text     string
	ImageRef string
	Answers  []ActiveAnswer
}

// JokerState is the session-scoped view of one joker type.
type JokerState struct {
	Type             domain.JokerType
	Count            int
	UsedThisQuestion bool
}

// Verdict reports whether a selected answer was correct, before the
// transition is applied by Advance.
type Verdict struct {
	Correct bool
}

// Session drives a single player's run through one shuffled quiz ladder.
// All methods serialize through an internal mutex so the countdown tick and
// player actions never interleave against the done/active flags.
type Session struct {
	mu sync.Mutex

	state     sessionState
	topicID   string
	questions []*ActiveQuestion
	idx       int

	secondsRemaining int
	secondsElapsed   int
	// suspended pauses the countdown: set when an answer is selected (so the
	// presentation delay consumes no time) and by the timer-stop joker.
	suspended bool
	pending   *ActiveAnswer

	jokers    []*JokerState
	jokerUsed bool

	checkpoint int
	hasWon     bool

	profile *domain.Profile
	saver   ProfileSaver
	rnd     *rand.Rand
	outcome *Outcome

	onChange func()
}

func newSession(topicID string, bank []domain.Question, profile *domain.Profile, saver ProfileSaver, rnd *rand.Rand) (*Session, error) {
	if len(bank) == 0 {
		return nil, domain.ErrEmptyQuestionBank
	}
	if len(bank) > MaxQuestions {
		return nil, domain.ErrTooManyQuestions
	}

	order := make([]domain.Question, len(bank))
	copy(order, bank)
	rnd.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	questions := make([]*ActiveQuestion, 0, len(order))
	for i, q := range order {
		level := i + 1
		answers := make([]ActiveAnswer, 0, 4)
		answers = append(answers, ActiveAnswer{Text: q.CorrectAnswer, Correct: true})
		for _, wrong := range q.WrongAnswers {
			answers = append(answers, ActiveAnswer{Text: wrong})
		}
		rnd.Shuffle(len(answers), func(i, j int) {
			answers[i], answers[j] = answers[j], answers[i]
		})
		questions = append(questions, &ActiveQuestion{
			Level:    level,
			Points:   PointsForLevel(level),
			Secure:   level%SecureEvery == 0,
			Active:   i == 0,
			Text:     q.Text,
			ImageRef: q.ImageRef,
			Answers:  answers,
		})
	}

	jokers := make([]*JokerState, 0, len(domain.JokerTypes()))
	for _, t := range domain.JokerTypes() {
		jokers = append(jokers, &JokerState{Type: t, Count: profile.JokerCount(t)})
	}

	return &Session{
		topicID:          topicID,
		questions:        questions,
		secondsRemaining: SecondsPerQuestion,
		jokers:           jokers,
		profile:          profile,
		saver:            saver,
		rnd:              rnd,
	}, nil
}

// SetOnChange installs a hook invoked after every state-changing transition.
// The driver decides when and what to re-render; the hook carries no payload.
func (s *Session) SetOnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *Session) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}

// Tick advances the countdown by one second. When the countdown has run out,
// the next tick ends the game like a wrong answer. Ticks are ignored while
// the countdown is suspended or the game is over.
func (s *Session) Tick(ctx context.Context) {
	s.mu.Lock()
	if s.state != sessionInProgress || s.suspended {
		s.mu.Unlock()
		return
	}
	if s.secondsRemaining > 0 {
		s.secondsRemaining--
		s.secondsElapsed++
		s.mu.Unlock()
		s.notify()
		return
	}
	s.endLocked(ctx)
	s.mu.Unlock()
	s.notify()
}

// SelectAnswer validates an answer of the active question, suspends the
// countdown and records the answer as pending. The transition itself is
// applied by Advance, so the driver can hold a presentation delay in between
// without consuming countdown time.
func (s *Session) SelectAnswer(idx int) (Verdict, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != sessionInProgress {
		return Verdict{}, domain.ErrSessionOver
	}
	if s.pending != nil {
		return Verdict{}, domain.ErrAnswerPending
	}
	q := s.questions[s.idx]
	if idx < 0 || idx >= len(q.Answers) {
		return Verdict{}, domain.ErrAnswerOutOfRange
	}

	s.pending = &q.Answers[idx]
	s.suspended = true
	return Verdict{Correct: s.pending.Correct}, nil
}

// Advance applies the transition for the pending answer: a correct answer on
// a secure or final level banks its points; the final level wins the game;
// any other correct answer moves to the next question; a wrong answer ends
// the game with the last checkpoint intact.
func (s *Session) Advance(ctx context.Context) error {
	s.mu.Lock()

	if s.state != sessionInProgress {
		s.mu.Unlock()
		return domain.ErrSessionOver
	}
	if s.pending == nil {
		s.mu.Unlock()
		return domain.ErrNoAnswerPending
	}
	answer := s.pending
	s.pending = nil

	if !answer.Correct {
		s.endLocked(ctx)
		s.mu.Unlock()
		s.notify()
		return nil
	}

	q := s.questions[s.idx]
	last := s.idx == len(s.questions)-1
	// The point table is not monotone near the top, so banking a later level
	// must never lower an already-banked checkpoint.
	if (q.Secure || last) && q.Points > s.checkpoint {
		s.checkpoint = q.Points
	}
	if last {
		s.hasWon = true
		s.endLocked(ctx)
		s.mu.Unlock()
		s.notify()
		return nil
	}

	q.Done = true
	q.Active = false
	s.idx++
	s.questions[s.idx].Active = true
	s.secondsRemaining = SecondsPerQuestion
	s.suspended = false
	for _, j := range s.jokers {
		j.UsedThisQuestion = false
	}

	s.mu.Unlock()
	s.notify()
	return nil
}

// UseJoker activates a joker against the active question. The profile-held
// count is decremented immediately, not at session end.
func (s *Session) UseJoker(t domain.JokerType) error {
	s.mu.Lock()

	if s.state != sessionInProgress {
		s.mu.Unlock()
		return domain.ErrSessionOver
	}
	if s.pending != nil {
		s.mu.Unlock()
		return domain.ErrAnswerPending
	}
	var joker *JokerState
	for _, j := range s.jokers {
		if j.Type == t {
			joker = j
			break
		}
	}
	if joker == nil {
		s.mu.Unlock()
		return domain.ErrUnknownJoker
	}
	if joker.Count == 0 {
		s.mu.Unlock()
		return domain.ErrJokerExhausted
	}
	if joker.UsedThisQuestion {
		s.mu.Unlock()
		return domain.ErrJokerAlreadyUsed
	}

	s.jokerUsed = true
	joker.UsedThisQuestion = true
	joker.Count--
	s.profile.SpendJoker(t)

	switch t {
	case domain.JokerFiftyFifty:
		s.removeTwoWrongAnswersLocked()
	case domain.JokerTimerStop:
		s.suspended = true
	}

	s.mu.Unlock()
	s.notify()
	return nil
}

// removeTwoWrongAnswersLocked drops two of the three wrong answers of the
// active question, chosen uniformly at random.
func (s *Session) removeTwoWrongAnswersLocked() {
	q := s.questions[s.idx]
	wrong := make([]int, 0, 3)
	for i, a := range q.Answers {
		if !a.Correct {
			wrong = append(wrong, i)
		}
	}
	if len(wrong) < 2 {
		return
	}
	perm := s.rnd.Perm(len(wrong))
	drop := map[int]bool{wrong[perm[0]]: true, wrong[perm[1]]: true}

	kept := make([]ActiveAnswer, 0, len(q.Answers)-2)
	for i, a := range q.Answers {
		if !drop[i] {
			kept = append(kept, a)
		}
	}
	q.Answers = kept
}

// Abandon discards an in-progress session: the countdown stops and nothing
// is awarded or persisted. This is deliberately different from a game over.
func (s *Session) Abandon() {
	s.mu.Lock()
	if s.state != sessionInProgress {
		s.mu.Unlock()
		return
	}
	s.state = sessionGameOver
	s.suspended = true
	s.pending = nil
	s.mu.Unlock()
	s.notify()
}

// endLocked is the single transition into GameOver. It marks the active
// question done, computes newly won badges against the pre-mutation profile
// and reconciles the outcome into the profile exactly once.
func (s *Session) endLocked(ctx context.Context) {
	if s.state == sessionGameOver {
		return
	}
	s.state = sessionGameOver
	s.suspended = true
	s.pending = nil

	q := s.questions[s.idx]
	q.Done = true
	q.Active = false

	badgeIDs := s.newlyWonBadgesLocked()
	outcome := applyOutcome(ctx, s.profile, s.saver, sessionResult{
		TopicID:        s.topicID,
		Won:            s.hasWon,
		TotalPoints:    s.checkpoint,
		Penalty:        s.penaltyLocked(),
		SecondsElapsed: s.secondsElapsed,
		BadgeIDs:       badgeIDs,
	})
	s.outcome = &outcome
}

// penaltyLocked is the derived joker malus: a quarter of the banked points,
// rounded, and only when a joker was used.
func (s *Session) penaltyLocked() int {
	if !s.jokerUsed {
		return 0
	}
	return int(math.Round(float64(s.checkpoint) / 4))
}

// newlyWonBadgesLocked computes the badges this session earns, excluding
// badges the profile already holds. Win-count badges fire only on an exact
// match of the post-increment games-played count; time badges are cumulative
// thresholds, so a fast win can earn several at once.
func (s *Session) newlyWonBadgesLocked() []string {
	if !s.hasWon {
		return nil
	}
	var won []string
	switch s.profile.GamesPlayed + 1 {
	case 1:
		won = append(won, BadgeWonGame1)
	case 5:
		won = append(won, BadgeWonGame5)
	case 10:
		won = append(won, BadgeWonGame10)
	}
	if !s.jokerUsed {
		won = append(won, BadgeNoJoker)
	}
	if s.secondsElapsed < 5*60 {
		won = append(won, BadgeWonTime5m)
	}
	if s.secondsElapsed < 2*60 {
		won = append(won, BadgeWonTime2m)
	}
	if s.secondsElapsed < 60 {
		won = append(won, BadgeWonTime1m)
	}
	if s.secondsElapsed < 30 {
		won = append(won, BadgeWonTime30)
	}

	newBadges := make([]string, 0, len(won))
	for _, id := range won {
		if !s.profile.HasBadge(id) {
			newBadges = append(newBadges, id)
		}
	}
	return newBadges
}
