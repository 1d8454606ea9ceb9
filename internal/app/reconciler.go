package app

import (
	"context"

	"millionaire-quiz-service/internal/domain"
)

// ProfileSaver durably writes a mutated profile.
type ProfileSaver interface {
	SaveProfile(ctx context.Context, profile *domain.Profile) error
}

// sessionResult is the finished session's contribution to the profile.
type sessionResult struct {
	TopicID        string
	Won            bool
	TotalPoints    int
	Penalty        int
	SecondsElapsed int
	BadgeIDs       []string
}

// Outcome is the final summary handed to the driver after game over.
type Outcome struct {
	Won            bool    `json:"won"`
	TotalPoints    int     `json:"totalPoints"`
	Penalty        int     `json:"penalty"`
	EarnedPoints   int     `json:"earnedPoints"`
	SecondsElapsed int     `json:"secondsElapsed"`
	Level          int     `json:"level"`
	LevelUp        bool    `json:"levelUp"`
	NextLevel      int     `json:"nextLevelPoints"`
	LevelProgress  float64 `json:"levelProgress"`
	Badges         []Badge `json:"badges"`
	// SaveErr reports a failed profile save. The in-memory profile stays
	// authoritative; the outcome is still shown and the caller may retry.
	SaveErr error `json:"-"`
}

// applyOutcome merges a finished session into the persistent profile: points,
// level (with the joker grant on level-up), games-played counter, and on a
// win the completed topic and badge sets. It runs exactly once per session.
func applyOutcome(ctx context.Context, profile *domain.Profile, saver ProfileSaver, result sessionResult) Outcome {
	earned := result.TotalPoints - result.Penalty
	if earned < 0 {
		earned = 0
	}

	profile.Points += earned
	oldLevel := profile.Level
	profile.Level = LevelForPoints(profile.Points)
	levelUp := profile.Level > oldLevel
	if levelUp {
		profile.GrantLevelUpJokers()
	}
	profile.GamesPlayed++

	if result.Won {
		profile.AddCompletedTopic(result.TopicID)
		profile.AddBadges(result.BadgeIDs)
	}

	saveErr := saver.SaveProfile(ctx, profile)

	return Outcome{
		Won:            result.Won,
		TotalPoints:    result.TotalPoints,
		Penalty:        result.Penalty,
		EarnedPoints:   earned,
		SecondsElapsed: result.SecondsElapsed,
		Level:          profile.Level,
		LevelUp:        levelUp,
		NextLevel:      PointsToReachLevel(profile.Level),
		LevelProgress:  LevelProgress(profile.Points),
		Badges:         ResolveBadges(result.BadgeIDs),
		SaveErr:        saveErr,
	}
}
