package model

import "time"

// CustomerModel mirrors the 'customers' table. Email is globally unique
// across branches; the code column holds the store-assigned customer code.
type CustomerModel struct {
	ID               int64     `gorm:"column:customer_id;primaryKey;autoIncrement"`
	BranchID         int64     `gorm:"not null;index"`
	FullName         string    `gorm:"type:varchar(255);not null"`
	Email            string    `gorm:"type:varchar(255);unique;not null"`
	PhoneNumber      string    `gorm:"type:varchar(50)"`
	Code             string    `gorm:"type:varchar(100)"`
	Address          string    `gorm:"type:text"`
	RegistrationDate time.Time `gorm:"not null"`
	Status           string    `gorm:"type:varchar(20);not null;default:Active"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Branch *BranchModel `gorm:"foreignKey:BranchID"`
}

// TableName explicitly sets the table name for GORM.
func (CustomerModel) TableName() string {
	return "customers"
}
