package auth

import (
	"context"
	"time"

	"subscriptionservice/internal/domain"
)

// ServiceRepositoryInterface — credential store methods the auth service uses
type ServiceRepositoryInterface interface {
	Create(ctx context.Context, s *domain.Service) error
	GetByServiceID(ctx context.Context, serviceID string) (*domain.Service, error)
}

// TokenRepositoryInterface — storage for bearer tokens
type TokenRepositoryInterface interface {
	Create(ctx context.Context, t *domain.Token) error
	FindLatestValid(ctx context.Context, serviceID int64, now time.Time) (*domain.Token, error)
	FindForService(ctx context.Context, serviceID int64, tokenID string) (*domain.Token, error)
}
