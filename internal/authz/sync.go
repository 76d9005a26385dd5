package authz

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/evination/backoffice/internal/db/models"
)

// Strategy selects how the sync engine computes a permission's activation
// state when more than one menu governs the same permission.
type Strategy int

const (
	// StrategyMenuWins recomputes a permission only from the menu being
	// edited. When two menus govern the same permission, the later processed
	// menu's flags win, even if the other menu still grants the action.
	// This reproduces the historical behavior the rights UI was built
	// against, where every permission belongs to exactly one menu.
	StrategyMenuWins Strategy = iota

	// StrategyAggregate ORs the flags of every active RoleRight whose menu
	// governs the permission, so a permission stays granted as long as any
	// contributing menu right grants it.
	StrategyAggregate
)

// Strategy names accepted by ParseStrategy, matching the config vocabulary.
const (
	strategyNameMenuWins  = "menu-wins"
	strategyNameAggregate = "aggregate"
)

// ParseStrategy converts a configured strategy name into a Strategy.
// Unknown names fall back to StrategyMenuWins.
func ParseStrategy(name string) Strategy {
	if name == strategyNameAggregate {
		return StrategyAggregate
	}

	return StrategyMenuWins
}

// GrantState describes the three observable states of a role/permission
// pair: never granted (no row), revoked (row flagged inactive) and granted.
type GrantState int

const (
	// GrantAbsent means no RolePermission row exists; the action was never enabled.
	GrantAbsent GrantState = iota
	// GrantInactive means the permission was granted once and later revoked.
	GrantInactive
	// GrantActive means the permission is currently granted.
	GrantActive
)

// String returns a human readable name for the grant state.
func (s GrantState) String() string {
	switch s {
	case GrantInactive:
		return "inactive"
	case GrantActive:
		return "active"
	default:
		return "absent"
	}
}

// RolePermissionState reports the grant state for a (role, permission) pair.
func RolePermissionState(db *gorm.DB, roleID, permissionID uint) (GrantState, error) {
	if db == nil {
		return GrantAbsent, ErrDBNil
	}

	var rolePerm models.RolePermission

	result := db.Where("role_id = ? AND permission_id = ?", roleID, permissionID).First(&rolePerm)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return GrantAbsent, nil
		}

		return GrantAbsent, fmt.Errorf("failed to load role permission: %w", result.Error)
	}

	if rolePerm.Inactive {
		return GrantInactive, nil
	}

	return GrantActive, nil
}

// actionFlags maps the shared action type vocabulary onto the four
// capability flags of a role right. Unknown action types resolve to false.
func actionFlags(right models.RoleRight) map[string]bool {
	return map[string]bool{
		models.ActionTypeView:   right.CanView,
		models.ActionTypeCreate: right.CanCreate,
		models.ActionTypeEdit:   right.CanEdit,
		models.ActionTypeDelete: right.CanDelete,
	}
}

// SyncRolePermissions recomputes the RolePermission activation state for
// every permission governed by the edited menu. It must run inside the same
// transaction as the RoleRight write so readers never observe the two stores
// diverging. The operation is idempotent: re-running it with the same right
// yields the same activation set.
//
// For each governed permission the engine upserts lazily: a permission that
// becomes enabled gets a row created (or an existing row reactivated); a
// permission that becomes disabled gets its row flagged inactive, never
// deleted. No row is created for a disabled action, so a permission stays
// materially absent until first enabled.
func SyncRolePermissions(db *gorm.DB, actor string, roleID, menuID uint, right models.RoleRight, strategy Strategy) error {
	if db == nil {
		return ErrDBNil
	}

	menuPerms, err := MenuPermissions(db, menuID)
	if err != nil {
		return err
	}

	flags := actionFlags(right)

	for _, menuPerm := range menuPerms {
		enabled := flags[menuPerm.ActionType]

		if strategy == StrategyAggregate {
			enabled, err = aggregateEnabled(db, roleID, menuID, menuPerm, right)
			if err != nil {
				return err
			}
		}

		if err := upsertRolePermission(db, actor, roleID, menuPerm.PermissionID, enabled); err != nil {
			return err
		}
	}

	return nil
}

// aggregateEnabled ORs the relevant flag of every active RoleRight whose
// menu governs the permission. The in-flight right stands in for its stored
// row so the computation sees the edit being applied.
func aggregateEnabled(db *gorm.DB, roleID, editedMenuID uint, menuPerm models.MenuPermission, right models.RoleRight) (bool, error) {
	governing, err := permissionMenus(db, menuPerm.PermissionID)
	if err != nil {
		return false, err
	}

	for _, gov := range governing {
		if gov.MenuID == editedMenuID {
			if actionFlags(right)[gov.ActionType] {
				return true, nil
			}

			continue
		}

		var other models.RoleRight

		result := db.Where("role_id = ? AND menu_id = ? AND inactive = ?", roleID, gov.MenuID, false).First(&other)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				continue // no right for that menu, contributes nothing
			}

			return false, fmt.Errorf("failed to load contributing role right: %w", result.Error)
		}

		if actionFlags(other)[gov.ActionType] {
			return true, nil
		}
	}

	return false, nil
}

// upsertRolePermission applies one permission's computed activation state.
// The lookup deliberately keys on (role, permission) only; the row carries
// no memory of which menu last wrote it.
func upsertRolePermission(db *gorm.DB, actor string, roleID, permissionID uint, enabled bool) error {
	var existing models.RolePermission

	result := db.Where("role_id = ? AND permission_id = ?", roleID, permissionID).First(&existing)

	switch {
	case result.Error == nil:
		update := map[string]interface{}{
			"inactive":    !enabled,
			"modified_by": actor,
		}

		if err := db.Model(&existing).Updates(update).Error; err != nil {
			return fmt.Errorf("failed to update role permission: %w", err)
		}

	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		if !enabled {
			return nil // never granted, nothing to revoke
		}

		rolePerm := models.RolePermission{
			RoleID:       roleID,
			PermissionID: permissionID,
			Audit:        models.Audit{CreatedBy: actor},
		}

		if err := db.Create(&rolePerm).Error; err != nil {
			return fmt.Errorf("failed to create role permission: %w", err)
		}

	default:
		return fmt.Errorf("failed to look up role permission: %w", result.Error)
	}

	return nil
}

// SyncAllRolePermissions re-runs the sync for every active RoleRight of a
// role, in one transaction: either the whole grid is resynchronized or
// nothing is. Useful after seeding a role or when the catalog changed.
func SyncAllRolePermissions(db *gorm.DB, actor string, roleID uint, strategy Strategy) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var roleRights []models.RoleRight

		result := tx.Where("role_id = ? AND inactive = ?", roleID, false).Find(&roleRights)
		if result.Error != nil {
			return fmt.Errorf("failed to list role rights: %w", result.Error)
		}

		for _, right := range roleRights {
			if err := SyncRolePermissions(tx, actor, roleID, right.MenuID, right, strategy); err != nil {
				return err
			}
		}

		return nil
	})
}
