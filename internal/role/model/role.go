package model

import (
	"time"

	"gorm.io/gorm"
)

// TeamRole is a per-team permission bundle.
// Name and code are each unique within their team; a role with
// IsAdmin grants administrative authority over the team and,
// through downward propagation, its descendants.
type TeamRole struct {
	ID        string    `gorm:"primaryKey;column:id;type:varchar(36)"                                        json:"id"`
	TeamID    string    `gorm:"column:team_id;type:varchar(36);not null;uniqueIndex:idx_team_roles_name;uniqueIndex:idx_team_roles_code" json:"team_id"`
	Name      string    `gorm:"column:name;type:varchar(255);not null;uniqueIndex:idx_team_roles_name"       json:"name"`
	Code      string    `gorm:"column:code;type:varchar(64);not null;uniqueIndex:idx_team_roles_code"        json:"code"`
	IsAdmin   bool      `gorm:"column:is_admin;type:boolean;not null;default:false"                          json:"is_admin"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"                    json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()"                    json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (TeamRole) TableName() string {
	return "team_roles"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (r *TeamRole) BeforeUpdate(tx *gorm.DB) error {
	r.UpdatedAt = time.Now()
	return nil
}

// TeamRoleMenu associates a team role with a visible menu.
type TeamRoleMenu struct {
	TeamRoleID string `gorm:"primaryKey;column:team_role_id;type:varchar(36)" json:"team_role_id"`
	MenuID     string `gorm:"primaryKey;column:menu_id;type:varchar(36)"      json:"menu_id"`
}

// TableName specifies the table name for GORM.
func (TeamRoleMenu) TableName() string {
	return "team_role_menus"
}
