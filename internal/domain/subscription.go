package domain

import "time"

// Subscription links a phone number to a Service.
//
// At most one row per (service, phone number) may be active; the partial
// unique index below enforces it. Deactivated rows are reactivated in place,
// so SubscriptionID survives unsubscribe/subscribe cycles.
type Subscription struct {
	ID             int64   `json:"-" gorm:"primaryKey"`
	SubscriptionID string  `json:"subscription_id" gorm:"column:subscription_id;size:64;uniqueIndex;not null"`
	ServiceID      int64   `json:"-" gorm:"column:service_id;not null;index:idx_subscriptions_service_phone;uniqueIndex:idx_subscriptions_active_pair,where:is_active = true"`
	Service        Service `json:"-" gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE"`
	PhoneNumber    string  `json:"phone_number" gorm:"column:phone_number;size:32;not null;index:idx_subscriptions_service_phone;uniqueIndex:idx_subscriptions_active_pair,where:is_active = true"`

	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
	IsActive  bool      `json:"is_active" gorm:"column:is_active;not null;default:false"`
}

func (Subscription) TableName() string { return "subscriptions" }
