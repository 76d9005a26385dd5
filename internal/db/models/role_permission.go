package models

// RolePermission records that a role holds a permission. It is a derived,
// idempotently recomputable entity: its activation state is fully determined
// by the role's active RoleRights via the MenuPermission mapping. Rows are
// created lazily the first time an action becomes enabled and are never hard
// deleted afterwards; revocation flips Inactive, preserving audit history.
type RolePermission struct {
	// ID is the unique identifier for the grant.
	ID uint `gorm:"primaryKey"`
	// RoleID is the role holding the permission.
	RoleID uint `gorm:"not null;index"`
	// Role is the associated role (loaded via foreign key).
	Role Role `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE"`
	// PermissionID is the held permission.
	PermissionID uint `gorm:"not null"`
	// Permission is the associated permission (loaded via foreign key).
	Permission Permission `gorm:"foreignKey:PermissionID;constraint:OnDelete:CASCADE"`

	Audit `gorm:"embedded"`
}

// TableName specifies the database table name for the RolePermission model.
func (RolePermission) TableName() string {
	return "role_permissions"
}
