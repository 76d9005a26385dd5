package models

// Role represents a role in the role-based access control system.
// Roles are assigned to users; their effective permissions are the
// RolePermission rows derived from the role's RoleRights by the sync engine.
type Role struct {
	// ID is the unique identifier for the role.
	ID uint `gorm:"primaryKey"`
	// Name is the unique display name of the role (e.g. "Admin").
	Name string `gorm:"unique;size:100;not null"`
	// Code is the unique short code of the role (e.g. "ADMIN").
	Code string `gorm:"unique;size:50;not null"`
	// Description provides a human-readable description of the role's purpose.
	Description string `gorm:"type:text"`

	Audit `gorm:"embedded"`
}

// TableName specifies the database table name for the Role model.
func (Role) TableName() string {
	return "roles"
}
