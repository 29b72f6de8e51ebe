package models

import "time"

// PlantingSite is an approved planting location inside a barangay.
type PlantingSite struct {
	SiteID     int        `gorm:"primaryKey;column:site_id" json:"site_id"`
	BarangayID int        `gorm:"column:barangay_id" json:"barangay_id"`
	Name       string     `gorm:"column:name" json:"name"`
	Latitude   *float64   `gorm:"column:latitude" json:"latitude,omitempty"`
	Longitude  *float64   `gorm:"column:longitude" json:"longitude,omitempty"`
	Capacity   *int       `gorm:"column:capacity" json:"capacity,omitempty"`
	IsActive   bool       `gorm:"column:is_active" json:"is_active"`
	CreateAt   time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt   *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt   *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	Barangay Barangay `gorm:"foreignKey:BarangayID" json:"barangay,omitempty"`
}

func (PlantingSite) TableName() string {
	return "planting_sites"
}
