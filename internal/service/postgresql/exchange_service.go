package service

import (
	"context"

	entity "leafloop/internal/domain"
	repo "leafloop/internal/repository/postgresql"

	"github.com/google/uuid"
)

type ExchangeService struct {
	exchangeRepo repo.ExchangeRepository
}

func NewExchangeService(exchangeRepo repo.ExchangeRepository) *ExchangeService {
	return &ExchangeService{exchangeRepo: exchangeRepo}
}

// History lists the caller's completed trades, newest first.
func (s *ExchangeService) History(ctx context.Context, userID uuid.UUID) ([]entity.ExchangeView, error) {
	return s.exchangeRepo.ListForUser(ctx, userID)
}
