// Package department provides CRUD operations for branch departments.
package department

import (
	"errors"

	"gorm.io/gorm"

	"github.com/evination/backoffice/internal/db/models"
)

var (
	// ErrDepartmentNotFound is returned when a department is not found.
	ErrDepartmentNotFound = errors.New("department not found")
	// ErrDepartmentExists is returned when the branch already has a department with the same code.
	ErrDepartmentExists = errors.New("department already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a department by its ID.
func Get(db *gorm.DB, id uint) (*models.Department, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var dept models.Department
	result := db.First(&dept, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, result.Error
	}

	return &dept, nil
}

// GetByBranch retrieves the active departments of a branch.
func GetByBranch(db *gorm.DB, branchID uint) ([]models.Department, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var depts []models.Department
	result := db.Where("branch_id = ? AND inactive = ?", branchID, false).Find(&depts)
	if result.Error != nil {
		return nil, result.Error
	}

	return depts, nil
}

// Create creates a new department. The code must be unused within the branch.
func Create(db *gorm.DB, actor string, dept *models.Department) (*models.Department, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var existing models.Department
	result := db.Where("branch_id = ? AND code = ?", dept.BranchID, dept.Code).First(&existing)
	if result.Error == nil {
		return nil, ErrDepartmentExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	dept.CreatedBy = actor

	result = db.Create(dept)
	if result.Error != nil {
		return nil, result.Error
	}

	return dept, nil
}

// Update saves changes to an existing department.
func Update(db *gorm.DB, actor string, dept *models.Department) (*models.Department, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	existing, err := Get(db, dept.ID)
	if err != nil {
		return nil, err
	}

	dept.CreatedAt = existing.CreatedAt
	dept.CreatedBy = existing.CreatedBy
	dept.ModifiedBy = actor

	result := db.Save(dept)
	if result.Error != nil {
		return nil, result.Error
	}

	return dept, nil
}

// Delete deactivates a department.
func Delete(db *gorm.DB, actor string, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Model(&models.Department{}).
		Where("id = ? AND inactive = ?", id, false).
		Updates(map[string]interface{}{"inactive": true, "modified_by": actor})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDepartmentNotFound
	}

	return nil
}
