// Package model contains the GORM persistence models mirroring the database
// schema. They stay out of the domain layer; repositories map between them
// and the entities.
package model

import "time"

// BranchModel mirrors the 'branches' table.
type BranchModel struct {
	ID        int64  `gorm:"column:branch_id;primaryKey;autoIncrement"`
	Name      string `gorm:"column:branch_name;type:varchar(255);not null"`
	Address   string `gorm:"type:text"`
	Phone     string `gorm:"column:phone_number;type:varchar(50)"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Staff     []StaffModel    `gorm:"foreignKey:BranchID"`
	Customers []CustomerModel `gorm:"foreignKey:BranchID"`
}

// TableName explicitly sets the table name for GORM.
func (BranchModel) TableName() string {
	return "branches"
}
