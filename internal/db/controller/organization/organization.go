// Package organization provides CRUD operations for tenant organizations.
package organization

import (
	"errors"

	"gorm.io/gorm"

	"github.com/evination/backoffice/internal/db/models"
)

var (
	// ErrOrganizationNotFound is returned when an organization is not found.
	ErrOrganizationNotFound = errors.New("organization not found")
	// ErrOrganizationExists is returned when an organization with the same name or code already exists.
	ErrOrganizationExists = errors.New("organization already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves an organization by its ID.
func Get(db *gorm.DB, id uint) (*models.Organization, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var org models.Organization
	result := db.First(&org, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, result.Error
	}

	return &org, nil
}

// GetAll retrieves all active organizations.
func GetAll(db *gorm.DB) ([]models.Organization, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var orgs []models.Organization
	result := db.Where("inactive = ?", false).Find(&orgs)
	if result.Error != nil {
		return nil, result.Error
	}

	return orgs, nil
}

// Create creates a new organization. Name and code must both be unused.
func Create(db *gorm.DB, actor string, org *models.Organization) (*models.Organization, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var existing models.Organization
	result := db.Where("name = ? OR code = ?", org.Name, org.Code).First(&existing)
	if result.Error == nil {
		return nil, ErrOrganizationExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	org.CreatedBy = actor

	result = db.Create(org)
	if result.Error != nil {
		return nil, result.Error
	}

	return org, nil
}

// Update saves changes to an existing organization.
func Update(db *gorm.DB, actor string, org *models.Organization) (*models.Organization, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	existing, err := Get(db, org.ID)
	if err != nil {
		return nil, err
	}

	org.CreatedAt = existing.CreatedAt
	org.CreatedBy = existing.CreatedBy
	org.ModifiedBy = actor

	result := db.Save(org)
	if result.Error != nil {
		return nil, result.Error
	}

	return org, nil
}

// Delete deactivates an organization. Rows are never hard deleted once
// branches or users reference them.
func Delete(db *gorm.DB, actor string, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Model(&models.Organization{}).
		Where("id = ? AND inactive = ?", id, false).
		Updates(map[string]interface{}{"inactive": true, "modified_by": actor})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrganizationNotFound
	}

	return nil
}
