package prize

import (
	"context"
	"errors"

	"github.com/VirtualStudios6/VirtualGift-App-sub000/internal/cache"
	"github.com/VirtualStudios6/VirtualGift-App-sub000/internal/ledger"
	"github.com/VirtualStudios6/VirtualGift-App-sub000/internal/logger"
)

var (
	ErrPrizeInactive      = errors.New("prize is not available")
	ErrInsufficientPoints = errors.New("not enough points for this prize")
)

type Service interface {
	ListPrizes(ctx context.Context) ([]Prize, error)
	CreatePrize(ctx context.Context, req CreatePrizeRequest) (*Prize, error)

	// Redeem debits the prize cost. The sufficient-funds check runs against
	// the authoritative stored balance inside the ledger transaction, so two
	// racing redemptions cannot both spend the same points.
	Redeem(ctx context.Context, userID string, prizeID int) (*Redemption, int64, error)

	MyRedemptions(ctx context.Context, userID string) ([]Redemption, error)
}

type service struct {
	repo       Repository
	ledgerRepo ledger.Repository
	balances   *cache.BalanceCache
}

func NewService(repo Repository, ledgerRepo ledger.Repository, balances *cache.BalanceCache) Service {
	return &service{
		repo:       repo,
		ledgerRepo: ledgerRepo,
		balances:   balances,
	}
}

func (s *service) ListPrizes(ctx context.Context) ([]Prize, error) {
	return s.repo.ListActive(ctx)
}

func (s *service) CreatePrize(ctx context.Context, req CreatePrizeRequest) (*Prize, error) {
	return s.repo.Create(ctx, req.Name, req.Description, req.CostPoints)
}

func (s *service) Redeem(ctx context.Context, userID string, prizeID int) (*Redemption, int64, error) {
	p, err := s.repo.GetByID(ctx, prizeID)
	if err != nil {
		return nil, 0, err
	}
	if !p.Active {
		return nil, 0, ErrPrizeInactive
	}

	newBalance, err := s.ledgerRepo.ApplyDelta(ctx, userID, -p.CostPoints, "redeem: "+p.Name)
	if err != nil {
		if errors.Is(err, ledger.ErrInsufficientPoints) {
			return nil, 0, ErrInsufficientPoints
		}
		return nil, 0, err
	}

	s.balances.Invalidate(ctx, userID)

	red, err := s.repo.RecordRedemption(ctx, userID, p.ID, p.CostPoints)
	if err != nil {
		// The debit already committed and is in the history; only the
		// fulfillment record is missing. Flag it loudly for reconciliation.
		logger.Errorf("redemption record failed for user %s prize %d after debit: %v", userID, p.ID, err)
		return nil, 0, err
	}

	return red, newBalance, nil
}

func (s *service) MyRedemptions(ctx context.Context, userID string) ([]Redemption, error) {
	return s.repo.ListRedemptionsByUser(ctx, userID)
}
