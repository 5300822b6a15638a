package model

import "time"

// UserModel mirrors the 'users' table holding management-tier accounts.
type UserModel struct {
	ID           int64  `gorm:"column:user_id;primaryKey;autoIncrement"`
	Username     string `gorm:"type:varchar(100);unique;not null"`
	FullName     string `gorm:"type:varchar(255);not null"`
	Role         string `gorm:"type:varchar(50);not null"`
	PasswordHash string `gorm:"column:password;type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	APIKeys []APIKeyModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
