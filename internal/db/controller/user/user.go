// Package user provides CRUD operations for user accounts.
package user

import (
	"errors"

	"gorm.io/gorm"

	"github.com/evination/backoffice/internal/db/models"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when a user with the same username already exists.
	ErrUserExists = errors.New("user already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a user by ID.
func Get(db *gorm.DB, id uint64) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var user models.User
	result := db.First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}

	return &user, nil
}

// GetByUsername retrieves an active user by username. Login uses this
// lookup, so inactive accounts cannot authenticate.
func GetByUsername(db *gorm.DB, username string) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var user models.User
	result := db.Where("username = ? AND inactive = ?", username, false).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}

	return &user, nil
}

// GetByOrganization retrieves the active users of an organization.
func GetByOrganization(db *gorm.DB, organizationID uint) ([]models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var users []models.User
	result := db.Where("organization_id = ? AND inactive = ?", organizationID, false).Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

// Create creates a new user with the given plaintext password. The username
// must be unused; the password is stored as an Argon2id hash.
func Create(db *gorm.DB, actor string, user *models.User, password string) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var existing models.User
	result := db.Where("username = ?", user.Username).First(&existing)
	if result.Error == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	user.PasswordHash = models.HashPassword(password)
	user.CreatedBy = actor

	result = db.Create(user)
	if result.Error != nil {
		return nil, result.Error
	}

	return user, nil
}

// Update saves changes to an existing user. The password hash is carried
// over unchanged; use SetPassword to change it.
func Update(db *gorm.DB, actor string, user *models.User) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	existing, err := Get(db, user.ID)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = existing.PasswordHash
	user.CreatedAt = existing.CreatedAt
	user.CreatedBy = existing.CreatedBy
	user.ModifiedBy = actor

	result := db.Save(user)
	if result.Error != nil {
		return nil, result.Error
	}

	return user, nil
}

// SetPassword replaces a user's password.
func SetPassword(db *gorm.DB, actor string, id uint64, password string) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"password_hash": models.HashPassword(password), "modified_by": actor})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// Delete deactivates a user account.
func Delete(db *gorm.DB, actor string, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Model(&models.User{}).
		Where("id = ? AND inactive = ?", id, false).
		Updates(map[string]interface{}{"inactive": true, "modified_by": actor})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
