package models

import "time"

// Permission is an authorization capability entry.
// Both Name and Route are unique across all permissions.
type Permission struct {
	// ID is the unique identifier for the permission.
	ID uint `gorm:"primaryKey" json:"id"`
	// Name is the unique permission identifier (e.g., "view_orders").
	Name string `gorm:"uniqueIndex:idx_permissions_name;size:100;not null" json:"name"`
	// Route is the unique route string the permission grants (e.g., "/api/sales-orders").
	Route string `gorm:"uniqueIndex:idx_permissions_route;size:255;not null" json:"route"`
	// Description explains what this permission grants.
	Description string `gorm:"size:255;not null" json:"description"`
	// CreatedAt is the timestamp when the permission was created (managed by GORM).
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the timestamp when the permission was last updated (managed by GORM).
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the database table name for the Permission model.
func (Permission) TableName() string {
	return "permissions"
}
