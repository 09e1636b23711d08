package prize

import "time"

type Prize struct {
	ID          int       `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CostPoints  int64     `db:"cost_points" json:"cost_points"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type Redemption struct {
	ID         int64     `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"user_id"`
	PrizeID    int       `db:"prize_id" json:"prize_id"`
	CostPoints int64     `db:"cost_points" json:"cost_points"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type CreatePrizeRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=500"`
	CostPoints  int64  `json:"cost_points" validate:"required,gte=1"`
}
