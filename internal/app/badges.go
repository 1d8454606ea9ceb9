package app

// Badge ids are persisted in player profiles and must stay stable.
const (
	BadgeWonGame1  = "won-1"
	BadgeWonGame5  = "won-5"
	BadgeWonGame10 = "won-10"
	BadgeNoJoker   = "no-joker"
	BadgeWonTime5m = "time-5m"
	BadgeWonTime2m = "time-2m"
	BadgeWonTime1m = "time-1m"
	BadgeWonTime30 = "time-30s"
)

// Badge is the display metadata for a won badge.
type Badge struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	ImageRef string `json:"imageRef"`
}

var badgeCatalog = []Badge{
	{ID: BadgeWonGame1, Label: "Won 1 Game", ImageRef: "badge_won_1_game.png"},
	{ID: BadgeWonGame5, Label: "Won 5 Games", ImageRef: "badge_won_5_game.png"},
	{ID: BadgeWonGame10, Label: "Won 10 Games", ImageRef: "badge_won_10_game.png"},
	{ID: BadgeNoJoker, Label: "Won Game without Joker", ImageRef: "badge_no_joker.png"},
	{ID: BadgeWonTime5m, Label: "Won Game in 5 Minutes", ImageRef: "badge_won_time_5.png"},
	{ID: BadgeWonTime2m, Label: "Won Game in 2 Minutes", ImageRef: "badge_won_time_2.png"},
	{ID: BadgeWonTime1m, Label: "Won Game in 1 Minute", ImageRef: "badge_won_time_1.png"},
	{ID: BadgeWonTime30, Label: "Won Game in 30 Seconds", ImageRef: "badge_won_time_30.png"},
}

// ResolveBadge maps a badge id to its display metadata. Unknown ids resolve
// to a placeholder entry so persisted profiles stay forward-compatible.
func ResolveBadge(id string) Badge {
	for _, b := range badgeCatalog {
		if b.ID == id {
			return b
		}
	}
	return Badge{ID: id, Label: "Unknown Badge"}
}

// ResolveBadges maps a list of badge ids to their display metadata.
func ResolveBadges(ids []string) []Badge {
	badges := make([]Badge, 0, len(ids))
	for _, id := range ids {
		badges = append(badges, ResolveBadge(id))
	}
	return badges
}
