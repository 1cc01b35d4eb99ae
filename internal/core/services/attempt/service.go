package attempt

import "context"

// IAttemptTracker enforces the per user, per question attempt ceiling
type IAttemptTracker interface {
	// CheckAndReserve returns the attempts made so far without changing them. The count is only
	// a hint; the transaction re-reads it under lock before scoring.
	CheckAndReserve(ctx context.Context, userID, questionID int64) (int, error)
}
