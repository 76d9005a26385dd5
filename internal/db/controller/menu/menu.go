// Package menu provides read and maintenance operations for the menu
// catalog. Menus and their permission links are created by seeding; runtime
// code mostly reads them.
package menu

import (
	"errors"

	"gorm.io/gorm"

	"github.com/evination/backoffice/internal/db/models"
)

var (
	// ErrMenuNotFound is returned when a menu is not found.
	ErrMenuNotFound = errors.New("menu not found")
	// ErrMenuExists is returned when a menu with the same code already exists.
	ErrMenuExists = errors.New("menu already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a menu by its ID.
func Get(db *gorm.DB, id uint) (*models.Menu, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var menu models.Menu
	result := db.First(&menu, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMenuNotFound
		}
		return nil, result.Error
	}

	return &menu, nil
}

// GetByCode retrieves a menu by its unique code.
func GetByCode(db *gorm.DB, code string) (*models.Menu, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var menu models.Menu
	result := db.Where("code = ?", code).First(&menu)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMenuNotFound
		}
		return nil, result.Error
	}

	return &menu, nil
}

// GetAll retrieves all active menus ordered for navigation rendering.
func GetAll(db *gorm.DB) ([]models.Menu, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var menus []models.Menu
	result := db.Where("inactive = ?", false).Order("sort_order, id").Find(&menus)
	if result.Error != nil {
		return nil, result.Error
	}

	return menus, nil
}

// Create creates a new menu. The code must be unused.
func Create(db *gorm.DB, actor string, menu *models.Menu) (*models.Menu, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var existing models.Menu
	result := db.Where("code = ?", menu.Code).First(&existing)
	if result.Error == nil {
		return nil, ErrMenuExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	menu.CreatedBy = actor

	result = db.Create(menu)
	if result.Error != nil {
		return nil, result.Error
	}

	return menu, nil
}

// Update saves changes to an existing menu.
func Update(db *gorm.DB, actor string, menu *models.Menu) (*models.Menu, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	existing, err := Get(db, menu.ID)
	if err != nil {
		return nil, err
	}

	menu.CreatedAt = existing.CreatedAt
	menu.CreatedBy = existing.CreatedBy
	menu.ModifiedBy = actor

	result := db.Save(menu)
	if result.Error != nil {
		return nil, result.Error
	}

	return menu, nil
}

// Delete deactivates a menu. Its permission links stay in place so a
// reactivated menu resumes governing the same permissions.
func Delete(db *gorm.DB, actor string, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Model(&models.Menu{}).
		Where("id = ? AND inactive = ?", id, false).
		Updates(map[string]interface{}{"inactive": true, "modified_by": actor})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMenuNotFound
	}

	return nil
}
