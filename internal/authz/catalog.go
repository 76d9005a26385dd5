package authz

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/evination/backoffice/internal/db/models"
)

// MenuPermissions returns the active MenuPermission rows for a menu, each
// carrying a target permission and an action type. The catalog is seeded
// once and read-only afterwards; the sync engine consumes this lookup.
func MenuPermissions(db *gorm.DB, menuID uint) ([]models.MenuPermission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var menuPerms []models.MenuPermission

	result := db.Where("menu_id = ? AND inactive = ?", menuID, false).Find(&menuPerms)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load menu permissions: %w", result.Error)
	}

	return menuPerms, nil
}

// PermissionByCode resolves a permission code to its active Permission row.
// Returns ErrPermissionNotFound for unknown or deactivated codes.
func PermissionByCode(db *gorm.DB, code string) (*models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var permission models.Permission

	result := db.Where("code = ? AND inactive = ?", code, false).First(&permission)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPermissionNotFound
		}

		return nil, fmt.Errorf("failed to resolve permission code: %w", result.Error)
	}

	return &permission, nil
}

// permissionMenus returns the active MenuPermission rows across all menus
// that govern a permission. Used by the aggregate sync strategy to build the
// reverse permission to menus index.
func permissionMenus(db *gorm.DB, permissionID uint) ([]models.MenuPermission, error) {
	var menuPerms []models.MenuPermission

	result := db.Where("permission_id = ? AND inactive = ?", permissionID, false).Find(&menuPerms)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load governing menus: %w", result.Error)
	}

	return menuPerms, nil
}
