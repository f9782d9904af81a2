package model

import (
	"time"

	"gorm.io/gorm"
)

// SystemRole is a global grant independent of any team membership.
type SystemRole string

// Known system roles.
const (
	SystemRoleAdmin SystemRole = "ADMIN"
	SystemRoleUser  SystemRole = "USER"
)

// User status values accepted by the users.status column.
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

// User represents a user entity in the system.
// Matches the users table schema.
type User struct {
	ID        string    `gorm:"primaryKey;column:id;type:varchar(36)"                          json:"id"`
	Name      string    `gorm:"column:name;type:varchar(255);not null"                         json:"name"`
	Email     string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex:idx_users_email" json:"email"`
	Password  string    `gorm:"column:password;type:varchar(255);not null"                     json:"-"`
	Status    string    `gorm:"column:status;type:varchar(32);not null;default:active"         json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"      json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()"      json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}

// UserSystemRole is a single system-role grant.
// A user may hold several grants at once, so the pair forms the key.
type UserSystemRole struct {
	UserID    string     `gorm:"primaryKey;column:user_id;type:varchar(36)"                json:"user_id"`
	Role      SystemRole `gorm:"primaryKey;column:role;type:varchar(16)"                   json:"role"`
	CreatedAt time.Time  `gorm:"column:created_at;type:timestamptz;not null;default:now()" json:"-"`
}

// TableName specifies the table name for GORM.
func (UserSystemRole) TableName() string {
	return "user_system_roles"
}
