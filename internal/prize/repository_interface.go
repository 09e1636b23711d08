package prize

import "context"

type Repository interface {
	ListActive(ctx context.Context) ([]Prize, error)
	GetByID(ctx context.Context, id int) (*Prize, error)
	Create(ctx context.Context, name, description string, costPoints int64) (*Prize, error)
	RecordRedemption(ctx context.Context, userID string, prizeID int, costPoints int64) (*Redemption, error)
	ListRedemptionsByUser(ctx context.Context, userID string) ([]Redemption, error)
}
