package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	// ErrInsufficientPoints is returned when a debit would take the balance
	// below zero. The balance is left untouched.
	ErrInsufficientPoints = errors.New("insufficient points")

	// ErrStoreUnavailable wraps persistence failures so callers can surface
	// them as transient and safe to retry.
	ErrStoreUnavailable = errors.New("ledger store unavailable")
)

const dateLayout = "2006-01-02"

type repository struct {
	db           *sqlx.DB
	welcomeBonus int64
}

// NewRepository builds the only component allowed to write the points field.
// welcomeBonus is granted once, when a user's balance row is first created.
func NewRepository(db *sqlx.DB, welcomeBonus int64) Repository {
	return &repository{db: db, welcomeBonus: welcomeBonus}
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

func (r *repository) GetOrCreate(ctx context.Context, userID string) (*Balance, error) {
	b := &Balance{}
	err := r.db.GetContext(ctx, b,
		`SELECT user_id, points, last_daily_reward, created_at, updated_at
		 FROM balances
		 WHERE user_id = $1`,
		userID,
	)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, storeErr(err)
	}

	// First access: create the row and the welcome history entry together.
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, storeErr(err)
	}
	defer tx.Rollback()

	b, err = r.createBalance(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, storeErr(err)
	}

	return b, nil
}

func (r *repository) ApplyDelta(ctx context.Context, userID string, delta int64, action string) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, storeErr(err)
	}
	defer tx.Rollback()

	b, err := r.lockOrCreate(ctx, tx, userID)
	if err != nil {
		return 0, err
	}

	newPoints := b.Points + delta
	if newPoints < 0 {
		return 0, ErrInsufficientPoints
	}

	if err := r.writeMutation(ctx, tx, userID, newPoints, delta, action); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, storeErr(err)
	}

	return newPoints, nil
}

func (r *repository) ClaimDaily(ctx context.Context, userID string, points int64) (bool, int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, 0, storeErr(err)
	}
	defer tx.Rollback()

	b, err := r.lockOrCreate(ctx, tx, userID)
	if err != nil {
		return false, 0, err
	}

	now := time.Now()
	if b.LastDailyReward != nil && sameCalendarDate(*b.LastDailyReward, now) {
		// Already claimed today. Release the row lock; nothing to write.
		if err := tx.Commit(); err != nil {
			return false, 0, storeErr(err)
		}
		return false, b.Points, nil
	}

	newPoints := b.Points + points
	_, err = tx.ExecContext(ctx,
		`UPDATE balances
		 SET points = $1, last_daily_reward = NOW(), updated_at = NOW()
		 WHERE user_id = $2`,
		newPoints, userID,
	)
	if err != nil {
		return false, 0, storeErr(err)
	}

	if err := r.appendHistory(ctx, tx, userID, points, "daily reward"); err != nil {
		return false, 0, err
	}

	if err := tx.Commit(); err != nil {
		return false, 0, storeErr(err)
	}

	return true, newPoints, nil
}

func (r *repository) CreditOnce(ctx context.Context, transactionID, userID string, reward int64, action string) (bool, int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, 0, storeErr(err)
	}
	defer tx.Rollback()

	// Creating the event record is the lock: under concurrent duplicates
	// exactly one insert lands, and only that branch credits the balance.
	res, err := tx.ExecContext(ctx,
		`INSERT INTO postback_events (transaction_id, user_id, reward)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (transaction_id) DO NOTHING`,
		transactionID, userID, reward,
	)
	if err != nil {
		return false, 0, storeErr(err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return false, 0, storeErr(err)
	}
	if inserted == 0 {
		return false, 0, nil
	}

	b, err := r.lockOrCreate(ctx, tx, userID)
	if err != nil {
		return false, 0, err
	}

	newPoints := b.Points + reward
	if err := r.writeMutation(ctx, tx, userID, newPoints, reward, action); err != nil {
		return false, 0, err
	}

	if err := tx.Commit(); err != nil {
		return false, 0, storeErr(err)
	}

	return true, newPoints, nil
}

func (r *repository) History(ctx context.Context, userID string, limit, offset int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	var entries []HistoryEntry
	// id is the tie-break for entries created within the same timestamp tick.
	err := r.db.SelectContext(ctx, &entries,
		`SELECT id, user_id, points, action, created_at
		 FROM point_history
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, storeErr(err)
	}

	return entries, nil
}

// lockOrCreate reads the balance row FOR UPDATE, creating it with the welcome
// grant when absent. The returned row stays locked until the tx ends, which
// serializes all mutations per user.
func (r *repository) lockOrCreate(ctx context.Context, tx *sqlx.Tx, userID string) (*Balance, error) {
	b := &Balance{}
	err := tx.QueryRowxContext(ctx,
		`SELECT user_id, points, last_daily_reward, created_at, updated_at
		 FROM balances
		 WHERE user_id = $1
		 FOR UPDATE`,
		userID,
	).StructScan(b)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, storeErr(err)
	}

	return r.createBalance(ctx, tx, userID)
}

func (r *repository) createBalance(ctx context.Context, tx *sqlx.Tx, userID string) (*Balance, error) {
	b := &Balance{}
	err := tx.QueryRowxContext(ctx,
		`INSERT INTO balances (user_id, points)
		 VALUES ($1, $2)
		 RETURNING user_id, points, last_daily_reward, created_at, updated_at`,
		userID, r.welcomeBonus,
	).StructScan(b)
	if err != nil {
		return nil, storeErr(err)
	}

	if r.welcomeBonus > 0 {
		if err := r.appendHistory(ctx, tx, userID, r.welcomeBonus, "welcome bonus"); err != nil {
			return nil, err
		}
	}

	return b, nil
}

func (r *repository) writeMutation(ctx context.Context, tx *sqlx.Tx, userID string, newPoints, delta int64, action string) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE balances
		 SET points = $1, updated_at = NOW()
		 WHERE user_id = $2`,
		newPoints, userID,
	)
	if err != nil {
		return storeErr(err)
	}

	return r.appendHistory(ctx, tx, userID, delta, action)
}

func (r *repository) appendHistory(ctx context.Context, tx *sqlx.Tx, userID string, delta int64, action string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO point_history (user_id, points, action)
		 VALUES ($1, $2, $3)`,
		userID, delta, action,
	)
	if err != nil {
		return storeErr(err)
	}
	return nil
}

func sameCalendarDate(a, b time.Time) bool {
	return a.Local().Format(dateLayout) == b.Local().Format(dateLayout)
}
