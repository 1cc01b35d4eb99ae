package domain

import "fmt"

const (
	CompetitionRoom = "competition_overall"

	EventRoundLeaderboardUpdate       = "round_leaderboard_update"
	EventCompetitionLeaderboardUpdate = "competition_leaderboard_update"
	EventRoundStarted                 = "round_started"
	EventRoundStopped                 = "round_stopped"
	EventRoundUpdated                 = "round_updated"
)

func RoundRoom(roundID int64) string {
	return fmt.Sprintf("round_%d", roundID)
}
