package domain

import "time"

// LeaderboardRow is the standing of one user in one round. Rank is rebuilt after every change.
type LeaderboardRow struct {
	ID           int64     `db:"id" json:"id"`
	RoundID      int64     `db:"round_id" json:"roundId"`
	UserID       int64     `db:"user_id" json:"userId"`
	Score        int       `db:"score" json:"score"`
	TimePenalty  int       `db:"time_penalty" json:"timePenalty"`
	CorrectCount int       `db:"correct_count" json:"correctCount"`
	WrongCount   int       `db:"wrong_count" json:"wrongCount"`
	Rank         int       `db:"rank" json:"rank"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

type RoundStanding struct {
	UserID       int64            `db:"user_id" json:"userId"`
	TeamName     string           `db:"team_name" json:"teamName"`
	Username     string           `db:"username" json:"username"`
	Rank         int              `db:"rank" json:"rank"`
	Score        int              `db:"score" json:"score"`
	CorrectCount int              `db:"correct_count" json:"correctCount"`
	WrongCount   int              `db:"wrong_count" json:"wrongCount"`
	TimePenalty  int              `db:"time_penalty" json:"timePenalty"`
	Submissions  []SubmissionMark `db:"-" json:"submissions"`
}

type RoundBoard struct {
	RoundID     int64            `json:"roundId"`
	Leaderboard []*RoundStanding `json:"leaderboard"`
}

type CompetitionEntry struct {
	ID         int64  `db:"id" json:"id"`
	Username   string `db:"username" json:"username"`
	FullName   string `db:"full_name" json:"fullName"`
	TeamName   string `db:"team_name" json:"teamName"`
	TotalScore int    `db:"total_score" json:"totalScore"`
}
