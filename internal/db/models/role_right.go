package models

// RoleRight is the per-role, per-menu capability grid edited through the
// admin UI. Every create or update of a RoleRight must be followed, within
// the same transaction, by a run of the permission sync engine so that the
// derived RolePermission rows never observably diverge from the grid.
type RoleRight struct {
	// ID is the unique identifier for the role right.
	ID uint `gorm:"primaryKey"`
	// RoleID is the role the right belongs to.
	RoleID uint `gorm:"not null;index"`
	// Role is the associated role (loaded via foreign key).
	Role Role `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE"`
	// MenuID is the menu the right applies to. Only one active RoleRight per
	// (role, menu) pair may exist; the controller enforces this.
	MenuID uint `gorm:"not null"`
	// Menu is the associated menu (loaded via foreign key).
	Menu Menu `gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE"`

	// The four independent capability flags of the grid.
	CanView   bool `gorm:"default:true"`
	CanCreate bool `gorm:"default:false"`
	CanEdit   bool `gorm:"default:false"`
	CanDelete bool `gorm:"default:false"`

	Audit `gorm:"embedded"`
}

// TableName specifies the database table name for the RoleRight model.
func (RoleRight) TableName() string {
	return "role_rights"
}
