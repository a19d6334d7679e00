package subscription

import (
	"context"

	"subscriptionservice/internal/domain"
	"subscriptionservice/internal/repository"
)

// TokenValidator authorizes a caller; implemented by auth.Service.
type TokenValidator interface {
	Validate(ctx context.Context, serviceID, tokenID string) (*domain.Service, error)
}

// Repository is the ledger storage with per-operation transactions.
type Repository interface {
	repository.SubscriptionStore
	Transaction(ctx context.Context, fn func(tx repository.SubscriptionStore) error) error
}
