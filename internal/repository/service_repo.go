package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"subscriptionservice/internal/domain"
)

// ServiceRepository is the credential store.
type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// Create inserts s. A taken service_id yields ErrDuplicate.
func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

// GetByServiceID returns nil, nil when no service has that external id.
func (r *ServiceRepository) GetByServiceID(ctx context.Context, serviceID string) (*domain.Service, error) {
	var s domain.Service
	err := r.db.WithContext(ctx).Where("service_id = ?", serviceID).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *ServiceRepository) ExistsByServiceID(ctx context.Context, serviceID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Service{}).Where("service_id = ?", serviceID).Count(&count).Error
	return count > 0, err
}
