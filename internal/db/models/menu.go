package models

// MenuType describes where a menu entry appears in the navigation hierarchy.
const (
	// MenuTypeMain is a top level navigation entry.
	MenuTypeMain = "main"
	// MenuTypeSub is a child entry below a main menu.
	MenuTypeSub = "sub"
	// MenuTypeInner is an entry rendered inside a page, not in the navigation.
	MenuTypeInner = "inner"
)

// Menu represents a navigable UI entry business users see.
// Each menu governs one or more fine grained permissions through
// MenuPermission links; the role right grid is edited per menu.
type Menu struct {
	// ID is the unique identifier for the menu.
	ID uint `gorm:"primaryKey"`
	// ParentID references the parent menu for sub entries (0 for top level).
	ParentID *uint
	// Name is the display name of the menu.
	Name string `gorm:"size:100;not null"`
	// Code is the unique menu code (e.g. "USERS").
	Code string `gorm:"unique;size:50;not null"`
	// Icon is the icon identifier shown by the dashboard.
	Icon string `gorm:"size:100"`
	// Route is the frontend route the menu navigates to.
	Route       string `gorm:"size:200"`
	Description string `gorm:"type:text"`
	// SortOrder controls the display order within a level.
	SortOrder int `gorm:"default:0"`
	// MenuType is one of main, sub or inner.
	MenuType string `gorm:"size:20;default:'main'"`

	Audit `gorm:"embedded"`
}

// TableName specifies the database table name for the Menu model.
func (Menu) TableName() string {
	return "menus"
}
