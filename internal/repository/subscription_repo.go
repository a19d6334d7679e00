package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"subscriptionservice/internal/domain"
)

// SubscriptionStore is the set of ledger queries available inside and outside
// a transaction.
type SubscriptionStore interface {
	FindForUpdate(ctx context.Context, serviceID int64, phone string) (*domain.Subscription, error)
	FindActive(ctx context.Context, serviceID int64, phone string) (*domain.Subscription, error)
	Create(ctx context.Context, sub *domain.Subscription) error
	Reactivate(ctx context.Context, id int64, now time.Time) (bool, error)
	Deactivate(ctx context.Context, id int64, now time.Time) (bool, error)
	DeleteByPhone(ctx context.Context, serviceID int64, phone string) (int64, error)
	ListByService(ctx context.Context, serviceID int64, from, to *time.Time) ([]domain.Subscription, error)
}

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Transaction runs fn against a store bound to a single database transaction.
// fn's error rolls the transaction back and is returned unchanged.
func (r *SubscriptionRepository) Transaction(ctx context.Context, fn func(tx SubscriptionStore) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SubscriptionRepository{db: tx})
	})
}

// FindForUpdate returns the row for (service, phone) regardless of its active
// flag, locking it on databases that support row locks. An active row wins
// over historical inactive ones.
func (r *SubscriptionRepository) FindForUpdate(ctx context.Context, serviceID int64, phone string) (*domain.Subscription, error) {
	var sub domain.Subscription
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("service_id = ? AND phone_number = ?", serviceID, phone).
		Order("is_active DESC").
		Order("updated_at DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepository) FindActive(ctx context.Context, serviceID int64, phone string) (*domain.Subscription, error) {
	var sub domain.Subscription
	err := r.db.WithContext(ctx).
		Where("service_id = ? AND phone_number = ? AND is_active = ?", serviceID, phone, true).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

// Create inserts sub. A second active row for the same pair yields ErrDuplicate.
func (r *SubscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	return translate(r.db.WithContext(ctx).Create(sub).Error)
}

// Reactivate flips an inactive row back on. It reports false when the row was
// already active, i.e. a concurrent request got there first.
func (r *SubscriptionRepository) Reactivate(ctx context.Context, id int64, now time.Time) (bool, error) {
	return r.setActive(ctx, id, true, now)
}

// Deactivate reports false when the row was not active.
func (r *SubscriptionRepository) Deactivate(ctx context.Context, id int64, now time.Time) (bool, error) {
	return r.setActive(ctx, id, false, now)
}

func (r *SubscriptionRepository) setActive(ctx context.Context, id int64, active bool, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Subscription{}).
		Where("id = ? AND is_active = ?", id, !active).
		Updates(map[string]any{
			"is_active":  active,
			"updated_at": now.UTC(),
		})
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected == 1, nil
}

// DeleteByPhone removes every row for (service, phone), active or not.
func (r *SubscriptionRepository) DeleteByPhone(ctx context.Context, serviceID int64, phone string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("service_id = ? AND phone_number = ?", serviceID, phone).
		Delete(&domain.Subscription{})
	return res.RowsAffected, res.Error
}

// ListByService returns the service's rows ordered by creation time, limited
// to from <= created_at <= to for whichever bounds are set.
func (r *SubscriptionRepository) ListByService(ctx context.Context, serviceID int64, from, to *time.Time) ([]domain.Subscription, error) {
	q := r.db.WithContext(ctx).Where("service_id = ?", serviceID)
	if from != nil {
		q = q.Where("created_at >= ?", from.UTC())
	}
	if to != nil {
		q = q.Where("created_at <= ?", to.UTC())
	}

	var subs []domain.Subscription
	if err := q.Order("created_at ASC").Order("id ASC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}
