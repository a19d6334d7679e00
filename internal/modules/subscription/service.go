package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"subscriptionservice/internal/domain"
	"subscriptionservice/internal/pkg/apperr"
	"subscriptionservice/internal/pkg/metrics"
	"subscriptionservice/internal/repository"
)

const (
	opSubscribe   = "subscribe"
	opUnsubscribe = "unsubscribe"
	opStatus      = "status"
	opDelete      = "delete"
	opList        = "list"
)

// Service is the subscription ledger. Every operation authorizes the caller
// before reading subscription data, so a bad token never reveals state.
type Service struct {
	auth TokenValidator
	repo Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewService(auth TokenValidator, repo Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		auth: auth,
		repo: repo,
		log:  log,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Subscribe activates phone for the caller's service and returns the
// subscription id. An inactive row is reactivated in place and keeps its id.
func (s *Service) Subscribe(ctx context.Context, serviceID, tokenID, phone string) (id string, err error) {
	defer s.observe(opSubscribe, &err)

	svc, err := s.authorize(ctx, serviceID, tokenID, phone)
	if err != nil {
		return "", err
	}

	now := s.now()
	err = s.repo.Transaction(ctx, func(tx repository.SubscriptionStore) error {
		existing, err := tx.FindForUpdate(ctx, svc.ID, phone)
		if err != nil {
			return s.storageError(opSubscribe, err)
		}

		if existing == nil {
			sub := &domain.Subscription{
				SubscriptionID: uuid.NewString(),
				ServiceID:      svc.ID,
				PhoneNumber:    phone,
				CreatedAt:      now,
				UpdatedAt:      now,
				IsActive:       true,
			}
			if err := tx.Create(ctx, sub); err != nil {
				if errors.Is(err, repository.ErrDuplicate) {
					return ErrAlreadySubscribed
				}
				return s.storageError(opSubscribe, err)
			}
			id = sub.SubscriptionID
			return nil
		}

		if existing.IsActive {
			return ErrAlreadySubscribed
		}

		ok, err := tx.Reactivate(ctx, existing.ID, now)
		if err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrAlreadySubscribed
			}
			return s.storageError(opSubscribe, err)
		}
		if !ok {
			return ErrAlreadySubscribed
		}
		id = existing.SubscriptionID
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// Unsubscribe deactivates the active subscription for phone. The row is kept.
func (s *Service) Unsubscribe(ctx context.Context, serviceID, tokenID, phone string) (err error) {
	defer s.observe(opUnsubscribe, &err)

	svc, err := s.authorize(ctx, serviceID, tokenID, phone)
	if err != nil {
		return err
	}

	return s.repo.Transaction(ctx, func(tx repository.SubscriptionStore) error {
		active, err := tx.FindActive(ctx, svc.ID, phone)
		if err != nil {
			return s.storageError(opUnsubscribe, err)
		}
		if active == nil {
			return ErrNotSubscribed
		}

		ok, err := tx.Deactivate(ctx, active.ID, s.now())
		if err != nil {
			return s.storageError(opUnsubscribe, err)
		}
		if !ok {
			return ErrNotSubscribed
		}
		return nil
	})
}

// GetStatus reports the current state for phone. Absence of an active
// subscription is a normal result, not an error.
func (s *Service) GetStatus(ctx context.Context, serviceID, tokenID, phone string) (view *StatusView, err error) {
	defer s.observe(opStatus, &err)

	svc, err := s.authorize(ctx, serviceID, tokenID, phone)
	if err != nil {
		return nil, err
	}

	active, err := s.repo.FindActive(ctx, svc.ID, phone)
	if err != nil {
		return nil, s.storageError(opStatus, err)
	}
	if active == nil {
		return &StatusView{Status: StatusNotSubscribed}, nil
	}

	since := active.UpdatedAt
	return &StatusView{Status: StatusSubscribed, Date: &since}, nil
}

// Delete removes every row for phone, active or not.
func (s *Service) Delete(ctx context.Context, serviceID, tokenID, phone string) (err error) {
	defer s.observe(opDelete, &err)

	svc, err := s.authorize(ctx, serviceID, tokenID, phone)
	if err != nil {
		return err
	}

	n, err := s.repo.DeleteByPhone(ctx, svc.ID, phone)
	if err != nil {
		return s.storageError(opDelete, err)
	}
	if n == 0 {
		return ErrSubscriptionNotFound
	}
	s.log.Info("subscription deleted", zap.String("service_id", serviceID), zap.Int64("rows", n))
	return nil
}

// List returns the caller's subscriptions, optionally bounded by creation time.
func (s *Service) List(ctx context.Context, serviceID, tokenID string, from, to *time.Time) (subs []domain.Subscription, err error) {
	defer s.observe(opList, &err)

	if serviceID == "" || tokenID == "" {
		return nil, ErrMissingAuth
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, ErrInvalidRange
	}

	svc, err := s.auth.Validate(ctx, serviceID, tokenID)
	if err != nil {
		return nil, err
	}

	subs, err = s.repo.ListByService(ctx, svc.ID, from, to)
	if err != nil {
		return nil, s.storageError(opList, err)
	}
	if len(subs) == 0 {
		if from != nil || to != nil {
			return nil, ErrNoSubscriptionsInRange
		}
		return nil, ErrNoSubscriptions
	}
	return subs, nil
}

func (s *Service) authorize(ctx context.Context, serviceID, tokenID, phone string) (*domain.Service, error) {
	if serviceID == "" || tokenID == "" || phone == "" {
		return nil, ErrMissingFields
	}
	return s.auth.Validate(ctx, serviceID, tokenID)
}

func (s *Service) storageError(op string, err error) error {
	s.log.Error("storage failure", zap.String("op", op), zap.Error(err))
	return apperr.Storage(err)
}

func (s *Service) observe(op string, errp *error) {
	outcome := metrics.OutcomeSuccess
	if *errp != nil {
		outcome = string(apperr.From(*errp).Kind)
	}
	metrics.SubscriptionOperationsTotal.WithLabelValues(op, outcome).Inc()
}
