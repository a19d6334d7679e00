package auth

import (
	"net/http"

	"subscriptionservice/internal/pkg/apperr"
)

var (
	ErrMissingCredentials = apperr.Validation("service_id and password are required")
	ErrMissingToken       = apperr.Validation("service_id and token_id are required")

	ErrInvalidService     = apperr.New(apperr.KindInvalidService, "Invalid service_id", http.StatusBadRequest)
	ErrInvalidCredentials = apperr.New(apperr.KindInvalidCredentials, "Invalid password", http.StatusUnauthorized)
	ErrInvalidToken       = apperr.New(apperr.KindInvalidToken, "Invalid token", http.StatusUnauthorized)
	ErrTokenExpired       = apperr.New(apperr.KindTokenExpired, "Token expired, please login again", http.StatusUnauthorized)
	ErrDuplicateService   = apperr.New(apperr.KindDuplicateService, "Service ID already exists", http.StatusConflict)
)
