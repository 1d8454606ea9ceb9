package domain

import "errors"

var (
	// ErrTopicNotFound indicates the requested quiz topic does not exist.
	ErrTopicNotFound = errors.New("quiz topic not found")
	// ErrTopicInactive is returned when starting a session on a deactivated topic.
	ErrTopicInactive = errors.New("quiz topic is inactive")
	// ErrTopicCompleted is returned when the player already finished the topic.
	ErrTopicCompleted = errors.New("quiz topic already completed")
	// ErrQuizNotFound indicates the question bank could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrEmptyQuestionBank is returned when a topic has no questions to play.
	ErrEmptyQuestionBank = errors.New("question bank is empty")
	// ErrTooManyQuestions is returned when a bank exceeds the 15-question ladder.
	ErrTooManyQuestions = errors.New("question bank exceeds maximum size")
	// ErrProfileNotFound indicates the player profile could not be loaded.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrNoActiveSession is returned when a player acts without a running game.
	ErrNoActiveSession = errors.New("no active game session")
	// ErrSessionOver is returned for actions against a finished session.
	ErrSessionOver = errors.New("game session is over")
	// ErrAnswerPending is returned when an answer is already awaiting advancement.
	ErrAnswerPending = errors.New("answer already selected for this question")
	// ErrNoAnswerPending is returned when advancing without a selected answer.
	ErrNoAnswerPending = errors.New("no answer selected")
	// ErrAnswerOutOfRange indicates the answer index is not in the active set.
	ErrAnswerOutOfRange = errors.New("answer not in active question")
	// ErrUnknownJoker indicates an unrecognized joker type.
	ErrUnknownJoker = errors.New("unknown joker type")
	// ErrJokerExhausted is returned when a joker has no remaining uses.
	ErrJokerExhausted = errors.New("joker has no remaining uses")
	// ErrJokerAlreadyUsed is returned when a joker was already used this question.
	ErrJokerAlreadyUsed = errors.New("joker already used for this question")
)
