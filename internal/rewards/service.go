package rewards

import (
	"context"
	"errors"
	"fmt"

	"github.com/VirtualStudios6/VirtualGift-App-sub000/internal/cache"
	"github.com/VirtualStudios6/VirtualGift-App-sub000/internal/ledger"
)

var ErrWatchTooShort = errors.New("ad watch too short")

type SpinResult struct {
	RotationDegrees int   `json:"rotation_degrees"`
	Sector          int   `json:"sector"`
	Points          int64 `json:"points"`
	Balance         int64 `json:"balance"`
}

type Service interface {
	// WatchAd credits the ad reward once the client-reported watch time
	// reaches the configured minimum. The duration is client-asserted; there
	// is no server-side proof the ad actually played.
	WatchAd(ctx context.Context, userID string, watchedSeconds int) (reward, newBalance int64, err error)

	// ClaimDaily credits the daily reward at most once per calendar date.
	ClaimDaily(ctx context.Context, userID string) (claimed bool, newBalance int64, err error)

	// SpinWheel rolls a rotation, credits the landed sector's points and
	// returns the rotation for the client animation.
	SpinWheel(ctx context.Context, userID string) (*SpinResult, error)
}

type service struct {
	ledgerRepo ledger.Repository
	balances   *cache.BalanceCache

	adReward    int64
	adMinWatch  int
	dailyReward int64
}

func NewService(ledgerRepo ledger.Repository, balances *cache.BalanceCache, adReward int64, adMinWatchSeconds int, dailyReward int64) Service {
	return &service{
		ledgerRepo:  ledgerRepo,
		balances:    balances,
		adReward:    adReward,
		adMinWatch:  adMinWatchSeconds,
		dailyReward: dailyReward,
	}
}

func (s *service) WatchAd(ctx context.Context, userID string, watchedSeconds int) (int64, int64, error) {
	if watchedSeconds < s.adMinWatch {
		return 0, 0, ErrWatchTooShort
	}

	newBalance, err := s.ledgerRepo.ApplyDelta(ctx, userID, s.adReward, "ad reward")
	if err != nil {
		return 0, 0, err
	}

	s.balances.Invalidate(ctx, userID)

	return s.adReward, newBalance, nil
}

func (s *service) ClaimDaily(ctx context.Context, userID string) (bool, int64, error) {
	claimed, newBalance, err := s.ledgerRepo.ClaimDaily(ctx, userID, s.dailyReward)
	if err != nil {
		return false, 0, err
	}

	if claimed {
		s.balances.Invalidate(ctx, userID)
	}

	return claimed, newBalance, nil
}

func (s *service) SpinWheel(ctx context.Context, userID string) (*SpinResult, error) {
	rotation := rollRotation()
	sector := SectorForRotation(rotation)
	points := PointsForSector(sector)

	newBalance, err := s.ledgerRepo.ApplyDelta(ctx, userID, points, fmt.Sprintf("wheel spin (sector %d)", sector+1))
	if err != nil {
		return nil, err
	}

	s.balances.Invalidate(ctx, userID)

	return &SpinResult{
		RotationDegrees: rotation,
		Sector:          sector,
		Points:          points,
		Balance:         newBalance,
	}, nil
}
