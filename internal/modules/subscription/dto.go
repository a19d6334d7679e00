package subscription

import "time"

const (
	StatusSubscribed    = "subscribed"
	StatusNotSubscribed = "not_subscribed"
)

type SubscriptionRequest struct {
	ServiceID   string `json:"service_id" binding:"required"`
	TokenID     string `json:"token_id" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
}

// ListRequest filters on created_at when From or To is set.
type ListRequest struct {
	ServiceID string     `json:"service_id" binding:"required"`
	TokenID   string     `json:"token_id" binding:"required"`
	From      *time.Time `json:"from"`
	To        *time.Time `json:"to"`
}

type SubscribeResponse struct {
	SubscriptionID string `json:"subscription_id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// StatusView reports whether a phone number is subscribed. Date is the start
// of the current subscription period and nil when not subscribed.
type StatusView struct {
	Status string     `json:"status"`
	Date   *time.Time `json:"subscription_date"`
}

type SubscriptionItem struct {
	SubscriptionID string    `json:"subscription_id"`
	PhoneNumber    string    `json:"phone_number"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ListResponse struct {
	Subscriptions []SubscriptionItem `json:"subscriptions"`
}
