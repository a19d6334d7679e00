package subscription

import (
	"net/http"

	"subscriptionservice/internal/pkg/apperr"
)

var (
	ErrMissingFields = apperr.Validation("service_id, token_id, and phone_number are required")
	ErrMissingAuth   = apperr.Validation("service_id and token_id are required")
	ErrInvalidRange  = apperr.Validation("from must not be after to")
	ErrBadListBody   = apperr.Validation("service_id and token_id are required, from and to must be RFC 3339 timestamps")

	ErrAlreadySubscribed = apperr.New(apperr.KindAlreadySubscribed, "Already subscribed", http.StatusConflict)
	ErrNotSubscribed     = apperr.New(apperr.KindNotSubscribed, "No active subscription found", http.StatusNotFound)

	ErrSubscriptionNotFound   = apperr.New(apperr.KindNotFound, "Subscription not found", http.StatusNotFound)
	ErrNoSubscriptions        = apperr.New(apperr.KindNotFound, "No subscriptions found", http.StatusNotFound)
	ErrNoSubscriptionsInRange = apperr.New(apperr.KindNotFound, "No subscriptions found in the given date range", http.StatusNotFound)
)
