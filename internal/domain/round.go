package domain

import "time"

type RoundStatus string

const (
	RoundStatusLocked    RoundStatus = "LOCKED"
	RoundStatusUnlocked  RoundStatus = "UNLOCKED"
	RoundStatusActive    RoundStatus = "ACTIVE"
	RoundStatusCompleted RoundStatus = "COMPLETED"
)

// Round is a timed contest phase. Weight is the points budget split evenly across its questions.
type Round struct {
	ID              int64       `db:"id" json:"id"`
	RoundNumber     int         `db:"round_number" json:"roundNumber"`
	Name            string      `db:"name" json:"name"`
	DurationMinutes int         `db:"duration_minutes" json:"duration"`
	Weight          int         `db:"weight" json:"weight"`
	Status          RoundStatus `db:"status" json:"status"`
	StartTime       *time.Time  `db:"start_time" json:"startTime"`
	EndsAt          *time.Time  `db:"ends_at" json:"endsAt"`
	CreatedAt       time.Time   `db:"created_at" json:"createdAt"`
}

// HasStarted reports whether the round has ever been started.
func (r *Round) HasStarted() bool {
	return r.StartTime != nil
}

// IsEditable reports whether questions, test cases and buggy codes of the round may change.
func (r *Round) IsEditable() bool {
	return IsEditableStatus(r.Status)
}

func (r *Round) IsActive() bool {
	return r.Status == RoundStatusActive
}

func (r *Round) Duration() time.Duration {
	return time.Duration(r.DurationMinutes) * time.Minute
}

// Elapsed returns the whole seconds between the round start and at, never negative.
func (r *Round) Elapsed(at time.Time) int {
	if r.StartTime == nil {
		return 0
	}
	secs := int(at.Sub(*r.StartTime) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}

// ClosedAt reports whether a submission arriving at the given time falls after the round closed.
func (r *Round) ClosedAt(at time.Time, grace time.Duration) bool {
	if r.Status == RoundStatusCompleted {
		return true
	}
	if r.EndsAt == nil {
		return false
	}
	return at.After(r.EndsAt.Add(grace))
}

func IsEditableStatus(status RoundStatus) bool {
	return status == RoundStatusLocked || status == RoundStatusUnlocked
}
