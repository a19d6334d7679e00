package domain

// Service is a client application that authenticates with a shared secret.
//
// The secret is stored and compared as plaintext; there is no hashing layer.
type Service struct {
	ID        int64  `json:"-" gorm:"primaryKey"`
	ServiceID string `json:"service_id" gorm:"column:service_id;size:128;uniqueIndex;not null"`
	Secret    string `json:"-" gorm:"column:secret;not null"`
}

func (Service) TableName() string { return "services" }
