package auth

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

const DefaultTokenTTL = 24 * time.Hour

// Service issues and validates bearer tokens for registered services.
type Service struct {
	services ServiceRepositoryInterface
	tokens   TokenRepositoryInterface
	tokenTTL time.Duration
	log      *zap.Logger
	now      func() time.Time
}

func NewService(services ServiceRepositoryInterface, tokens TokenRepositoryInterface, tokenTTL time.Duration, log *zap.Logger) *Service {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		services: services,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Register stores a new service with its secret as given.
func (s *Service) Register(ctx context.Context, serviceID, secret string) (svc *domain.Service, err error) {
	defer func() { metrics.RegistrationAttemptsTotal.WithLabelValues(outcome(err, metrics.OutcomeSuccess)).Inc() }()

	if serviceID == "" || secret == "" {
		return nil, ErrMissingCredentials
	}

	existing, err := s.services.GetByServiceID(ctx, serviceID)
	if err != nil {
		return nil, s.storageError("lookup service", err)
	}
	if existing != nil {
		return nil, ErrDuplicateService
	}

	svc = &domain.Service{ServiceID: serviceID, Secret: secret}
	if err := s.services.Create(ctx, svc); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateService
		}
		return nil, s.storageError("create service", err)
	}

	s.log.Info("service registered", zap.String("service_id", serviceID))
	return svc, nil
}

// Login authenticates a service and returns a usable token. The unexpired
// token with the latest expiry is handed back unchanged when one exists;
// otherwise a new one is minted.
func (s *Service) Login(ctx context.Context, serviceID, secret string) (tok *domain.Token, err error) {
	result := metrics.OutcomeSuccess
	defer func() { metrics.LoginAttemptsTotal.WithLabelValues(outcome(err, result)).Inc() }()

	if serviceID == "" || secret == "" {
		return nil, ErrMissingCredentials
	}

	svc, err := s.services.GetByServiceID(ctx, serviceID)
	if err != nil {
		return nil, s.storageError("lookup service", err)
	}
	if svc == nil {
		return nil, ErrInvalidService
	}
	if svc.Secret != secret {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	existing, err := s.tokens.FindLatestValid(ctx, svc.ID, now)
	if err != nil {
		return nil, s.storageError("lookup token", err)
	}
	if existing != nil && !existing.IsExpired(now) {
		result = metrics.OutcomeReused
		s.log.Debug("token reused", zap.String("service_id", serviceID), zap.Time("expires_at", existing.ExpiresAt))
		return existing, nil
	}

	tok = &domain.Token{
		TokenID:   uuid.NewString(),
		ServiceID: svc.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokenTTL),
	}
	if err := s.tokens.Create(ctx, tok); err != nil {
		return nil, s.storageError("create token", err)
	}

	s.log.Info("token issued", zap.String("service_id", serviceID), zap.Time("expires_at", tok.ExpiresAt))
	return tok, nil
}

// Validate authorizes a (service_id, token) pair and returns the service the
// token belongs to.
func (s *Service) Validate(ctx context.Context, serviceID, tokenID string) (svc *domain.Service, err error) {
	defer func() { metrics.TokenValidationsTotal.WithLabelValues(outcome(err, metrics.OutcomeSuccess)).Inc() }()

	if serviceID == "" || tokenID == "" {
		return nil, ErrMissingToken
	}

	svc, err = s.services.GetByServiceID(ctx, serviceID)
	if err != nil {
		return nil, s.storageError("lookup service", err)
	}
	if svc == nil {
		return nil, ErrInvalidService
	}

	tok, err := s.tokens.FindForService(ctx, svc.ID, tokenID)
	if err != nil {
		return nil, s.storageError("lookup token", err)
	}
	if tok == nil {
		return nil, ErrInvalidToken
	}
	if tok.IsExpired(s.now()) {
		return nil, ErrTokenExpired
	}
	return svc, nil
}

func (s *Service) storageError(op string, err error) error {
	s.log.Error("storage failure", zap.String("op", op), zap.Error(err))
	return apperr.Storage(err)
}

func outcome(err error, success string) string {
	if err == nil {
		return success
	}
	return string(apperr.From(err).Kind)
}
