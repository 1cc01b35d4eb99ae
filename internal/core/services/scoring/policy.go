// Package scoring computes the decayed score of a submission.
package scoring

import (
	"math"

	"gitlab.com/bugfix-arena.net/internal/domain"
)

// MaxScore is the full credit for one question: the round weight split evenly across its questions.
func MaxScore(roundWeight, questionCount int) int {
	if questionCount <= 0 {
		return 0
	}
	return roundHalfUp(float64(roundWeight) / float64(questionCount))
}

// Score returns the points earned by a submission. previousAttempts is the attempt count before
// this submission, so a first attempt passes 0.
func Score(roundWeight, questionCount, previousAttempts int, passed bool) int {
	if !passed {
		return 0
	}
	deduction := math.Min(float64(previousAttempts)/float64(domain.MaxAttempts), 1)
	if deduction < 0 {
		deduction = 0
	}
	score := roundHalfUp(float64(MaxScore(roundWeight, questionCount)) * (1 - deduction))
	if score < 0 {
		return 0
	}
	return score
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
