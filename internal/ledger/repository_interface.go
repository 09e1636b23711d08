package ledger

import "context"

type Repository interface {
	// GetOrCreate loads the user's balance, lazily creating it with the
	// welcome grant on first access.
	GetOrCreate(ctx context.Context, userID string) (*Balance, error)

	// ApplyDelta atomically adds a signed delta to the user's points and
	// appends one matching history entry. Returns the new balance.
	// ErrInsufficientPoints when a debit would take the balance below zero.
	ApplyDelta(ctx context.Context, userID string, delta int64, action string) (int64, error)

	// ClaimDaily credits the daily reward unless one was already claimed on
	// today's calendar date. claimed=false on a same-day repeat is a
	// successful no-op, not an error.
	ClaimDaily(ctx context.Context, userID string, points int64) (claimed bool, newBalance int64, err error)

	// CreditOnce applies the reward for an external transaction id at most
	// once. firstClaim=false means the id was already processed and nothing
	// was changed.
	CreditOnce(ctx context.Context, transactionID, userID string, reward int64, action string) (firstClaim bool, newBalance int64, err error)

	History(ctx context.Context, userID string, limit, offset int) ([]HistoryEntry, error)
}
