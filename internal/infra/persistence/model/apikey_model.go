package model

import "time"

// APIKeyModel mirrors the 'api_keys' table. KeyHash is the SHA-256 digest of
// the secret; the plaintext is never stored. Scopes persist as a JSON array.
type APIKeyModel struct {
	ID         int64    `gorm:"column:api_key_id;primaryKey;autoIncrement"`
	UserID     int64    `gorm:"not null;index"`
	Name       string   `gorm:"type:varchar(255);not null"`
	KeyHash    string   `gorm:"type:char(64);unique;not null"`
	KeyPrefix  string   `gorm:"type:varchar(16);not null"`
	Scopes     []string `gorm:"type:jsonb;serializer:json"`
	ExpiresAt  *time.Time
	IsActive   bool `gorm:"not null;default:true"`
	LastUsedAt *time.Time
	CreatedAt  time.Time

	User *UserModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (APIKeyModel) TableName() string {
	return "api_keys"
}
