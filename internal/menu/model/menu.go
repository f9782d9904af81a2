package model

import (
	"time"

	"gorm.io/gorm"
)

// SystemRoleUser is the system-role key of the fallback menu set.
// ADMIN needs no association rows: it implicitly sees every menu.
const SystemRoleUser = "USER"

// Menu represents a node in the menu forest.
// Matches the menus table schema. ParentID is nil for root menus.
type Menu struct {
	ID        string    `gorm:"primaryKey;column:id;type:varchar(36)"                        json:"id"`
	Name      string    `gorm:"column:name;type:varchar(255);not null"                       json:"name"`
	Path      string    `gorm:"column:path;type:varchar(255);not null;uniqueIndex:idx_menus_path" json:"path"`
	Icon      string    `gorm:"column:icon;type:varchar(64)"                                 json:"icon,omitempty"`
	SortOrder int       `gorm:"column:sort_order;type:integer;not null;default:0"            json:"sort_order"`
	ParentID  *string   `gorm:"column:parent_id;type:varchar(36);index:idx_menus_parent_id"  json:"parent_id,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"    json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()"    json:"-"`
}

// TableName specifies the table name for GORM.
func (Menu) TableName() string {
	return "menus"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (m *Menu) BeforeUpdate(tx *gorm.DB) error {
	m.UpdatedAt = time.Now()
	return nil
}

// SystemRoleMenu associates a system role with a visible menu.
// Only the USER role carries rows; they form the fallback menu set.
type SystemRoleMenu struct {
	Role   string `gorm:"primaryKey;column:role;type:varchar(16)"    json:"role"`
	MenuID string `gorm:"primaryKey;column:menu_id;type:varchar(36)" json:"menu_id"`
}

// TableName specifies the table name for GORM.
func (SystemRoleMenu) TableName() string {
	return "system_role_menus"
}
