package domain

import "time"

// Token is an opaque bearer token issued to a Service. Rows are never updated
// or deleted by the application; expiry is evaluated at use time.
type Token struct {
	ID int64 `json:"-" gorm:"primaryKey"`

	TokenID   string  `json:"token" gorm:"column:token_id;size:64;uniqueIndex;not null"`
	ServiceID int64   `json:"-" gorm:"column:service_id;index;not null"`
	Service   Service `json:"-" gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index;not null"`
}

func (Token) TableName() string { return "tokens" }

// IsExpired reports whether the token can no longer authorize at now.
func (t *Token) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
