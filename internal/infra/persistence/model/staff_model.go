package model

import "time"

// StaffModel mirrors the 'staff' table of branch employee accounts.
type StaffModel struct {
	ID           int64  `gorm:"column:staff_id;primaryKey;autoIncrement"`
	BranchID     int64  `gorm:"not null;index"`
	Username     string `gorm:"type:varchar(100);unique;not null"`
	FullName     string `gorm:"type:varchar(255);not null"`
	Role         string `gorm:"type:varchar(50);not null"`
	PasswordHash string `gorm:"column:password;type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Branch *BranchModel `gorm:"foreignKey:BranchID"`
}

// TableName explicitly sets the table name for GORM.
func (StaffModel) TableName() string {
	return "staff"
}
