package models

// Action types shared between role rights and menu permissions.
// Note that the "edit" action type maps onto permissions whose Action is
// "update"; the two vocabularies differ in exactly this one word.
const (
	ActionTypeView   = "view"
	ActionTypeCreate = "create"
	ActionTypeEdit   = "edit"
	ActionTypeDelete = "delete"
)

// MenuPermission links a menu to one of the permissions it governs, tagged
// with the action type the permission corresponds to in the role right grid.
// Rows are created during catalog seeding and are read-only to the sync
// engine. For a given menu at most one active row per action type should
// exist; this is enforced at seed time, not by a database constraint.
type MenuPermission struct {
	// ID is the unique identifier for the link.
	ID uint `gorm:"primaryKey"`
	// MenuID is the governed menu.
	MenuID uint `gorm:"not null;index"`
	// Menu is the associated menu (loaded via foreign key).
	Menu Menu `gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE"`
	// PermissionID is the governed permission.
	PermissionID uint `gorm:"not null"`
	// Permission is the associated permission (loaded via foreign key).
	Permission Permission `gorm:"foreignKey:PermissionID;constraint:OnDelete:CASCADE"`
	// ActionType is one of view, create, edit or delete.
	ActionType string `gorm:"size:20;not null"`

	Audit `gorm:"embedded"`
}

// TableName specifies the database table name for the MenuPermission model.
func (MenuPermission) TableName() string {
	return "menu_permissions"
}
