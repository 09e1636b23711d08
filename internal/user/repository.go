package user

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/VirtualStudios6/VirtualGift-App-sub000/internal/db"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

func (r *repository) Create(ctx context.Context, name, email, passwordHash, role string) (*User, error) {
	// Ids are opaque strings; everything downstream (balances, history,
	// postbacks) keys on them without knowing they are uuids.
	id := uuid.NewString()

	u := &User{}
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, role)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, name, email, password_hash, role, created_at`,
		id, name, email, passwordHash, role,
	).StructScan(u)
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	u := &User{}
	err := r.db.GetContext(ctx, u,
		`SELECT id, name, email, password_hash, role, created_at
		 FROM users
		 WHERE email = $1`,
		email,
	)
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	u := &User{}
	err := r.db.GetContext(ctx, u,
		`SELECT id, name, email, password_hash, role, created_at
		 FROM users
		 WHERE id = $1`,
		id,
	)
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	return db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
}
