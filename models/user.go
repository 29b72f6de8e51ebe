package models

import (
	"time"
)

type User struct {
	UserID     int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	FirstName  string     `gorm:"column:first_name" json:"first_name"`
	LastName   string     `gorm:"column:last_name" json:"last_name"`
	Email      string     `gorm:"column:email;unique" json:"email"`
	Password   string     `gorm:"column:password" json:"-"`
	RoleID     int        `gorm:"column:role_id" json:"role_id"`
	BarangayID *int       `gorm:"column:barangay_id" json:"barangay_id,omitempty"`
	Phone      *string    `gorm:"column:phone" json:"phone,omitempty"`
	IsActive   bool       `gorm:"column:is_active" json:"is_active"`
	CreateAt   *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt   *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt   *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Role     Role      `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Barangay *Barangay `gorm:"foreignKey:BarangayID" json:"barangay,omitempty"`
}

type Role struct {
	RoleID   int        `gorm:"primaryKey;column:role_id" json:"role_id"`
	Role     string     `gorm:"column:role" json:"role"`
	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// Role IDs referenced by route guards.
const (
	RoleCitizen   = 1
	RoleValidator = 2
	RoleAdmin     = 3
)

// FullName returns the display name used in notifications.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// TableName overrides
func (User) TableName() string {
	return "users"
}

func (Role) TableName() string {
	return "roles"
}
