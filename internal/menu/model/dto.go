// Package model provides domain models and DTOs for the menu module.
package model

// MenuNode represents a menu in the nested tree response.
// Children beyond the third level are never attached.
type MenuNode struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Path      string     `json:"path"`
	Icon      string     `json:"icon,omitempty"`
	SortOrder int        `json:"sort_order"`
	ParentID  *string    `json:"parent_id,omitempty"`
	Children  []MenuNode `json:"children,omitempty"`
}

// UpdateFallbackRequest replaces the USER fallback menu set.
// OperatorID identifies the caller; only system admins may write it.
type UpdateFallbackRequest struct {
	MenuIDs    []string `json:"menu_ids"    binding:"required"`
	OperatorID string   `json:"operator_id" binding:"required"`
}
