package models

// Permission represents a fine grained, code identified authorization unit
// consumed by business-logic checks, independent of any UI menu.
// Permissions are created by catalog seeding and never mutated afterwards
// except for soft deactivation.
type Permission struct {
	// ID is the unique identifier for the permission.
	ID uint `gorm:"primaryKey"`
	// Code is the unique permission identifier in module.action format (e.g. "user.create").
	Code string `gorm:"unique;size:100;not null"`
	// Name is a human-readable permission name (e.g. "Create Users").
	Name string `gorm:"size:200;not null"`
	// Description provides a human-readable explanation of what this permission grants.
	Description string `gorm:"type:text"`
	// Module is the owning module (e.g. "user", "organization").
	Module string `gorm:"size:50;not null"`
	// Action is the action allowed on the module (view, create, update or delete).
	Action string `gorm:"size:50;not null"`

	Audit `gorm:"embedded"`
}

// TableName specifies the database table name for the Permission model.
func (Permission) TableName() string {
	return "permissions"
}
