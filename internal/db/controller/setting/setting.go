// Package setting provides CRUD operations for per-organization settings.
package setting

import (
	"errors"

	"gorm.io/gorm"

	"github.com/evination/backoffice/internal/db/models"
)

const (
	orgKeyQueryPattern = "organization_id = ? AND setting_key = ?"
)

var (
	// ErrSettingNotFound is returned when a setting is not found.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrSettingKeyEmpty is returned when attempting to create/update a setting with an empty key.
	ErrSettingKeyEmpty = errors.New("setting key cannot be empty")
	// ErrSettingAlreadyExists is returned when attempting to create a setting that already exists.
	ErrSettingAlreadyExists = errors.New("setting already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a setting by organization and key.
func Get(db *gorm.DB, organizationID uint, key string) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if key == "" {
		return nil, ErrSettingKeyEmpty
	}

	var setting models.Setting
	result := db.Where(orgKeyQueryPattern, organizationID, key).First(&setting)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, result.Error
	}

	return &setting, nil
}

// GetByID retrieves a setting by its ID.
func GetByID(db *gorm.DB, id uint) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var setting models.Setting
	result := db.First(&setting, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, result.Error
	}

	return &setting, nil
}

// GetAll retrieves all settings of an organization.
func GetAll(db *gorm.DB, organizationID uint) ([]models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var settings []models.Setting
	result := db.Where("organization_id = ?", organizationID).Find(&settings)
	if result.Error != nil {
		return nil, result.Error
	}

	return settings, nil
}

// GetByCategory retrieves an organization's settings in one category.
func GetByCategory(db *gorm.DB, organizationID uint, category string) ([]models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var settings []models.Setting
	result := db.Where("organization_id = ? AND category = ?", organizationID, category).Find(&settings)
	if result.Error != nil {
		return nil, result.Error
	}

	return settings, nil
}

// Create creates a new setting for an organization.
func Create(db *gorm.DB, actor string, setting *models.Setting) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if setting.Key == "" {
		return nil, ErrSettingKeyEmpty
	}

	// Check if setting already exists
	var existing models.Setting
	result := db.Where(orgKeyQueryPattern, setting.OrganizationID, setting.Key).First(&existing)
	if result.Error == nil {
		return nil, ErrSettingAlreadyExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	setting.CreatedBy = actor

	result = db.Create(setting)
	if result.Error != nil {
		return nil, result.Error
	}

	return setting, nil
}

// Set creates or updates a setting by organization and key (upsert operation).
func Set(db *gorm.DB, actor string, organizationID uint, key, value string) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if key == "" {
		return nil, ErrSettingKeyEmpty
	}

	var setting models.Setting
	result := db.Where(orgKeyQueryPattern, organizationID, key).First(&setting)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, result.Error
		}

		setting = models.Setting{
			OrganizationID: organizationID,
			Key:            key,
			Value:          value,
			Type:           models.SettingTypeString,
			Audit:          models.Audit{CreatedBy: actor},
		}
		if err := db.Create(&setting).Error; err != nil {
			return nil, err
		}

		return &setting, nil
	}

	setting.Value = value
	setting.ModifiedBy = actor
	if err := db.Save(&setting).Error; err != nil {
		return nil, err
	}

	return &setting, nil
}

// Update updates the value of an existing setting by ID.
func Update(db *gorm.DB, actor string, id uint, value string) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	setting, err := GetByID(db, id)
	if err != nil {
		return nil, err
	}

	setting.Value = value
	setting.ModifiedBy = actor
	if err := db.Save(setting).Error; err != nil {
		return nil, err
	}

	return setting, nil
}

// Delete removes a setting by ID. Settings carry no audit obligations
// beyond their own row, so removal is a hard delete.
func Delete(db *gorm.DB, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Setting{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSettingNotFound
	}

	return nil
}
