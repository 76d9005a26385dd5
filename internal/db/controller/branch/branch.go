// Package branch provides CRUD operations for organization branches.
package branch

import (
	"errors"

	"gorm.io/gorm"

	"github.com/evination/backoffice/internal/db/models"
)

var (
	// ErrBranchNotFound is returned when a branch is not found.
	ErrBranchNotFound = errors.New("branch not found")
	// ErrBranchExists is returned when the organization already has a branch with the same code.
	ErrBranchExists = errors.New("branch already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a branch by its ID.
func Get(db *gorm.DB, id uint) (*models.Branch, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var branch models.Branch
	result := db.First(&branch, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrBranchNotFound
		}
		return nil, result.Error
	}

	return &branch, nil
}

// GetByOrganization retrieves the active branches of an organization.
func GetByOrganization(db *gorm.DB, organizationID uint) ([]models.Branch, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var branches []models.Branch
	result := db.Where("organization_id = ? AND inactive = ?", organizationID, false).Find(&branches)
	if result.Error != nil {
		return nil, result.Error
	}

	return branches, nil
}

// Create creates a new branch. The code must be unused within the
// organization.
func Create(db *gorm.DB, actor string, branch *models.Branch) (*models.Branch, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var existing models.Branch
	result := db.Where("organization_id = ? AND code = ?", branch.OrganizationID, branch.Code).First(&existing)
	if result.Error == nil {
		return nil, ErrBranchExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	branch.CreatedBy = actor

	result = db.Create(branch)
	if result.Error != nil {
		return nil, result.Error
	}

	return branch, nil
}

// Update saves changes to an existing branch.
func Update(db *gorm.DB, actor string, branch *models.Branch) (*models.Branch, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	existing, err := Get(db, branch.ID)
	if err != nil {
		return nil, err
	}

	branch.CreatedAt = existing.CreatedAt
	branch.CreatedBy = existing.CreatedBy
	branch.ModifiedBy = actor

	result := db.Save(branch)
	if result.Error != nil {
		return nil, result.Error
	}

	return branch, nil
}

// Delete deactivates a branch.
func Delete(db *gorm.DB, actor string, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Model(&models.Branch{}).
		Where("id = ? AND inactive = ?", id, false).
		Updates(map[string]interface{}{"inactive": true, "modified_by": actor})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBranchNotFound
	}

	return nil
}
