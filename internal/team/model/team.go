package model

import (
	"time"

	"gorm.io/gorm"
)

// RootTeamID is the distinguished system administration team.
// It always exists and can never be deleted.
const RootTeamID = "admin-team"

// Team represents a node in the team forest.
// Matches the teams table schema. ParentID is nil for root teams.
type Team struct {
	ID          string    `gorm:"primaryKey;column:id;type:varchar(36)"                     json:"id"`
	Name        string    `gorm:"column:name;type:varchar(255);not null"                    json:"name"`
	Description string    `gorm:"column:description;type:text"                              json:"description,omitempty"`
	ParentID    *string   `gorm:"column:parent_id;type:varchar(36);index:idx_teams_parent_id" json:"parent_id,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Team) TableName() string {
	return "teams"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (t *Team) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return nil
}

// TeamMember joins a user to a team with exactly one team role.
// At most one row exists per (user, team) pair.
type TeamMember struct {
	UserID     string    `gorm:"primaryKey;column:user_id;type:varchar(36)"                json:"user_id"`
	TeamID     string    `gorm:"primaryKey;column:team_id;type:varchar(36)"                json:"team_id"`
	TeamRoleID string    `gorm:"column:team_role_id;type:varchar(36);not null"             json:"team_role_id"`
	CreatedAt  time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()" json:"-"`
}

// TableName specifies the table name for GORM.
func (TeamMember) TableName() string {
	return "team_members"
}
