package models

import "time"

// Barangay is a local district. Submissions and validators are scoped to one.
type Barangay struct {
	BarangayID int        `gorm:"primaryKey;column:barangay_id" json:"barangay_id"`
	Name       string     `gorm:"column:name" json:"name"`
	City       string     `gorm:"column:city" json:"city"`
	Province   string     `gorm:"column:province" json:"province"`
	Region     string     `gorm:"column:region" json:"region"`
	IsActive   bool       `gorm:"column:is_active" json:"is_active"`
	CreateAt   time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt   *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt   *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (Barangay) TableName() string {
	return "barangays"
}
