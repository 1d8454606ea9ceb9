package app

import "fmt"

const (
	// SecondsPerQuestion is the countdown budget for every question.
	SecondsPerQuestion = 40
	// MaxQuestions is the length of a full ladder; banks may be shorter.
	MaxQuestions = 15
	// SecureEvery marks every Nth level as a secure checkpoint.
	SecureEvery = 5
	// LevelSize is the point span of one player level.
	LevelSize = 1_000_000
)

// questionLevelPoints maps a question's 1-based ladder level to its point
// value. Levels are always engine-generated, so a miss is a programming error.
var questionLevelPoints = [MaxQuestions + 1]int{
	1:  50,
	2:  100,
	3:  200,
	4:  300,
	5:  500,
	6:  1000,
	7:  2000,
	8:  4000,
	9:  8000,
	10: 160000,
	11: 320000,
	12: 640000,
	13: 125000,
	14: 500000,
	15: 1000000,
}

// PointsForLevel returns the point value of a ladder level (1..15).
// It panics on out-of-range levels.
func PointsForLevel(level int) int {
	if level < 1 || level > MaxQuestions {
		panic(fmt.Sprintf("question level %d out of range", level))
	}
	return questionLevelPoints[level]
}

// PointsToReachLevel returns the cumulative points needed for the next
// player level after the given one.
func PointsToReachLevel(level int) int {
	return (level + 1) * LevelSize
}

// LevelForPoints derives the player level from cumulative points.
func LevelForPoints(points int) int {
	return points / LevelSize
}

// LevelProgress returns the progress through the current player level as a
// percentage (0-100).
func LevelProgress(points int) float64 {
	return float64(points%LevelSize) / LevelSize * 100
}
