package prize

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrPrizeNotFound = errors.New("prize not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListActive(ctx context.Context) ([]Prize, error) {
	var prizes []Prize
	err := r.db.SelectContext(ctx, &prizes,
		`SELECT id, name, description, cost_points, active, created_at
		 FROM prizes
		 WHERE active = true
		 ORDER BY cost_points ASC`,
	)
	if err != nil {
		return nil, err
	}

	return prizes, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Prize, error) {
	p := &Prize{}
	err := r.db.GetContext(ctx, p,
		`SELECT id, name, description, cost_points, active, created_at
		 FROM prizes
		 WHERE id = $1`,
		id,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPrizeNotFound
		}
		return nil, err
	}

	return p, nil
}

func (r *repository) Create(ctx context.Context, name, description string, costPoints int64) (*Prize, error) {
	p := &Prize{}
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO prizes (name, description, cost_points)
		 VALUES ($1, $2, $3)
		 RETURNING id, name, description, cost_points, active, created_at`,
		name, description, costPoints,
	).StructScan(p)
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (r *repository) RecordRedemption(ctx context.Context, userID string, prizeID int, costPoints int64) (*Redemption, error) {
	red := &Redemption{}
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO redemptions (user_id, prize_id, cost_points)
		 VALUES ($1, $2, $3)
		 RETURNING id, user_id, prize_id, cost_points, created_at`,
		userID, prizeID, costPoints,
	).StructScan(red)
	if err != nil {
		return nil, err
	}

	return red, nil
}

func (r *repository) ListRedemptionsByUser(ctx context.Context, userID string) ([]Redemption, error) {
	var redemptions []Redemption
	err := r.db.SelectContext(ctx, &redemptions,
		`SELECT id, user_id, prize_id, cost_points, created_at
		 FROM redemptions
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}

	return redemptions, nil
}
