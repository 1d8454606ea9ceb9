package app

// QuestionView is the driver-facing projection of the active question.
// Answer correctness is withheld; the driver learns it from the verdict.
type QuestionView struct {
	Level    int      `json:"level"`
	Points   int      `json:"points"`
	Secure   bool     `json:"secure"`
	Text     string   `json:"text"`
	ImageRef string   `json:"imageRef,omitempty"`
	Answers  []string `json:"answers"`
}

// LadderStep is one rung of the point ladder for progress display.
type LadderStep struct {
	Level  int  `json:"level"`
	Points int  `json:"points"`
	Secure bool `json:"secure"`
	Done   bool `json:"done"`
	Active bool `json:"active"`
}

// JokerView is the driver-facing state of one joker.
type JokerView struct {
	Type             string `json:"type"`
	Count            int    `json:"count"`
	UsedThisQuestion bool   `json:"usedThisQuestion"`
}

// SessionView is a consistent snapshot of the running (or finished) session.
type SessionView struct {
	TopicID          string        `json:"topicId"`
	GameOver         bool          `json:"gameOver"`
	SecondsRemaining int           `json:"secondsRemaining"`
	SecondsElapsed   int           `json:"secondsElapsed"`
	TotalPoints      int           `json:"totalPoints"`
	Penalty          int           `json:"penalty"`
	EarnedPoints     int           `json:"earnedPoints"`
	Question         *QuestionView `json:"question,omitempty"`
	Ladder           []LadderStep  `json:"ladder"`
	Jokers           []JokerView   `json:"jokers"`
	Outcome          *Outcome      `json:"outcome,omitempty"`
}

// Snapshot returns a copy of the observable session state. The earned-points
// fields are derived on every read; they are never stored.
func (s *Session) Snapshot() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := SessionView{
		TopicID:          s.topicID,
		GameOver:         s.state == sessionGameOver,
		SecondsRemaining: s.secondsRemaining,
		SecondsElapsed:   s.secondsElapsed,
		TotalPoints:      s.checkpoint,
		Penalty:          s.penaltyLocked(),
	}
	view.EarnedPoints = view.TotalPoints - view.Penalty
	if view.EarnedPoints < 0 {
		view.EarnedPoints = 0
	}

	for _, q := range s.questions {
		view.Ladder = append(view.Ladder, LadderStep{
			Level:  q.Level,
			Points: q.Points,
			Secure: q.Secure,
			Done:   q.Done,
			Active: q.Active,
		})
		if q.Active {
			answers := make([]string, 0, len(q.Answers))
			for _, a := range q.Answers {
				answers = append(answers, a.Text)
			}
			view.Question = &QuestionView{
				Level:    q.Level,
				Points:   q.Points,
				Secure:   q.Secure,
				Text:     q.Text,
				ImageRef: q.ImageRef,
				Answers:  answers,
			}
		}
	}

	for _, j := range s.jokers {
		view.Jokers = append(view.Jokers, JokerView{
			Type:             string(j.Type),
			Count:            j.Count,
			UsedThisQuestion: j.UsedThisQuestion,
		})
	}

	if s.outcome != nil {
		outcome := *s.outcome
		view.Outcome = &outcome
	}
	return view
}
