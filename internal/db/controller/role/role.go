// Package role provides CRUD operations for RBAC roles.
package role

import (
	"errors"

	"gorm.io/gorm"

	"github.com/evination/backoffice/internal/db/models"
)

var (
	// ErrRoleNotFound is returned when a role is not found.
	ErrRoleNotFound = errors.New("role not found")
	// ErrRoleExists is returned when a role with the same name or code already exists.
	ErrRoleExists = errors.New("role already exists")
	// ErrRoleInUse is returned when deleting a role that still has users assigned.
	ErrRoleInUse = errors.New("role is assigned to users")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a role by its ID.
func Get(db *gorm.DB, id uint) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var role models.Role
	result := db.First(&role, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, result.Error
	}

	return &role, nil
}

// GetByCode retrieves a role by its unique code.
func GetByCode(db *gorm.DB, code string) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var role models.Role
	result := db.Where("code = ?", code).First(&role)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, result.Error
	}

	return &role, nil
}

// GetAll retrieves all active roles.
func GetAll(db *gorm.DB) ([]models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var roles []models.Role
	result := db.Where("inactive = ?", false).Find(&roles)
	if result.Error != nil {
		return nil, result.Error
	}

	return roles, nil
}

// Create creates a new role. Name and code must both be unused.
func Create(db *gorm.DB, actor string, role *models.Role) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var existing models.Role
	result := db.Where("name = ? OR code = ?", role.Name, role.Code).First(&existing)
	if result.Error == nil {
		return nil, ErrRoleExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	role.CreatedBy = actor

	result = db.Create(role)
	if result.Error != nil {
		return nil, result.Error
	}

	return role, nil
}

// Update saves changes to an existing role.
func Update(db *gorm.DB, actor string, role *models.Role) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	existing, err := Get(db, role.ID)
	if err != nil {
		return nil, err
	}

	role.CreatedAt = existing.CreatedAt
	role.CreatedBy = existing.CreatedBy
	role.ModifiedBy = actor

	result := db.Save(role)
	if result.Error != nil {
		return nil, result.Error
	}

	return role, nil
}

// Delete deactivates a role. A role still assigned to users cannot be
// deleted; reassign the users first.
func Delete(db *gorm.DB, actor string, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	var userCount int64
	if err := db.Model(&models.User{}).Where("role_id = ? AND inactive = ?", id, false).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		return ErrRoleInUse
	}

	result := db.Model(&models.Role{}).
		Where("id = ? AND inactive = ?", id, false).
		Updates(map[string]interface{}{"inactive": true, "modified_by": actor})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRoleNotFound
	}

	return nil
}
