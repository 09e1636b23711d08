package ledger

import "time"

// Balance is the authoritative points record, one row per user. Points are
// only ever written inside a repository transaction; everything else reads.
type Balance struct {
	UserID          string     `db:"user_id" json:"user_id"`
	Points          int64      `db:"points" json:"points"`
	LastDailyReward *time.Time `db:"last_daily_reward" json:"last_daily_reward,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// HistoryEntry is one append-only audit row per successful balance mutation.
// Display only, never authoritative for the balance value.
type HistoryEntry struct {
	ID        int64     `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Points    int64     `db:"points" json:"points"` // signed delta
	Action    string    `db:"action" json:"action"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PostbackEvent marks an offer-network transaction id as already credited.
// Its existence is the idempotency guarantee for the postback path.
type PostbackEvent struct {
	TransactionID string    `db:"transaction_id" json:"transaction_id"`
	UserID        string    `db:"user_id" json:"user_id"`
	Reward        int64     `db:"reward" json:"reward"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
