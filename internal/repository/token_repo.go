package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"subscriptionservice/internal/domain"
)

// TokenRepository provides DB access for bearer tokens. Rows are insert-only.
type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) Create(ctx context.Context, t *domain.Token) error {
	return translate(r.db.WithContext(ctx).Create(t).Error)
}

// FindLatestValid returns the service's unexpired token with the latest
// expiry, or nil, nil when every token has expired.
func (r *TokenRepository) FindLatestValid(ctx context.Context, serviceID int64, now time.Time) (*domain.Token, error) {
	var t domain.Token
	err := r.db.WithContext(ctx).
		Where("service_id = ? AND expires_at > ?", serviceID, now.UTC()).
		Order("expires_at DESC").
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// FindForService looks a token up by value within one service. Expired tokens
// are returned too; the caller decides.
func (r *TokenRepository) FindForService(ctx context.Context, serviceID int64, tokenID string) (*domain.Token, error) {
	var t domain.Token
	err := r.db.WithContext(ctx).
		Where("token_id = ? AND service_id = ?", tokenID, serviceID).
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}
