// Package roleright provides CRUD operations for the per-role, per-menu
// capability grid. Every mutation runs the permission sync engine inside the
// same transaction, so the derived RolePermission store never observably
// diverges from the grid.
package roleright

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/evination/backoffice/internal/authz"
	"github.com/evination/backoffice/internal/db/models"
)

var (
	// ErrRoleRightExists is returned when an active right for the
	// (role, menu) pair already exists.
	ErrRoleRightExists = errors.New("role right already exists")
	// ErrRoleRightNotFound is returned when a role right is not found.
	ErrRoleRightNotFound = errors.New("role right not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Flags carries the four capability booleans of the grid.
type Flags struct {
	CanView   bool
	CanCreate bool
	CanEdit   bool
	CanDelete bool
}

// Create inserts a new role right and synchronizes the role's permissions,
// both in one transaction. Fails with ErrRoleRightExists when an active
// right for the (role, menu) pair is already present.
func Create(db *gorm.DB, actor string, roleID, menuID uint, flags Flags, strategy authz.Strategy) (*models.RoleRight, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	right := models.RoleRight{
		RoleID:    roleID,
		MenuID:    menuID,
		CanView:   flags.CanView,
		CanCreate: flags.CanCreate,
		CanEdit:   flags.CanEdit,
		CanDelete: flags.CanDelete,
		Audit:     models.Audit{CreatedBy: actor},
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var existing models.RoleRight

		result := tx.Where("role_id = ? AND menu_id = ? AND inactive = ?", roleID, menuID, false).First(&existing)
		if result.Error == nil {
			return ErrRoleRightExists
		}

		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up role right: %w", result.Error)
		}

		if err := tx.Create(&right).Error; err != nil {
			return fmt.Errorf("failed to create role right: %w", err)
		}

		return authz.SyncRolePermissions(tx, actor, roleID, menuID, right, strategy)
	})
	if err != nil {
		return nil, err
	}

	return &right, nil
}

// Update replaces the four capability flags of an existing role right and
// synchronizes the role's permissions, both in one transaction. Fails with
// ErrRoleRightNotFound when the right does not exist.
func Update(db *gorm.DB, actor string, id uint, flags Flags, strategy authz.Strategy) (*models.RoleRight, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var right models.RoleRight

	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.First(&right, id)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrRoleRightNotFound
			}

			return fmt.Errorf("failed to load role right: %w", result.Error)
		}

		right.CanView = flags.CanView
		right.CanCreate = flags.CanCreate
		right.CanEdit = flags.CanEdit
		right.CanDelete = flags.CanDelete
		right.ModifiedBy = actor

		if err := tx.Save(&right).Error; err != nil {
			return fmt.Errorf("failed to update role right: %w", err)
		}

		return authz.SyncRolePermissions(tx, actor, right.RoleID, right.MenuID, right, strategy)
	})
	if err != nil {
		return nil, err
	}

	return &right, nil
}

// Get retrieves a role right by its ID.
func Get(db *gorm.DB, id uint) (*models.RoleRight, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var right models.RoleRight

	result := db.First(&right, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRoleRightNotFound
		}

		return nil, result.Error
	}

	return &right, nil
}

// ListByRole retrieves the active role rights of a role. Order is not
// significant; callers must not depend on a particular menu order.
func ListByRole(db *gorm.DB, roleID uint) ([]models.RoleRight, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var rights []models.RoleRight

	result := db.Where("role_id = ? AND inactive = ?", roleID, false).Find(&rights)
	if result.Error != nil {
		return nil, result.Error
	}

	return rights, nil
}
