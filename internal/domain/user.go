package domain

type Role string

const (
	RoleParticipant Role = "PARTICIPANT"
	RoleAdmin       Role = "ADMIN"
)

// User holds TotalScore, which only grows, aggregated across all rounds.
type User struct {
	ID           int64   `db:"id" json:"id"`
	Username     string  `db:"username" json:"username"`
	FullName     string  `db:"full_name" json:"fullName"`
	PasswordHash *string `db:"password_hash" json:"-"`
	Role         Role    `db:"role" json:"role"`
	TeamID       *int64  `db:"team_id" json:"teamId"`
	TotalScore   int     `db:"total_score" json:"totalScore"`
}
