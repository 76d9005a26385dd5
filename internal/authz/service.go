package authz

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Service provides the read side of the authorization subsystem.
// It answers permission checks from the derived RolePermission store only;
// it never recomputes from the RoleRight grid.
type Service struct {
	db *gorm.DB
}

// NewService creates a new authorization query service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CheckPermission reports whether a role holds an active permission.
// Unknown or deactivated permission codes yield false, not an error:
// absence of a grant is a normal, expected outcome.
func (s *Service) CheckPermission(roleID uint, permissionCode string) (bool, error) {
	permission, err := PermissionByCode(s.db, permissionCode)
	if err != nil {
		if errors.Is(err, ErrPermissionNotFound) {
			return false, nil
		}

		return false, err
	}

	var count int64

	err = s.db.Table("role_permissions").
		Where("role_id = ? AND permission_id = ? AND inactive = ?", roleID, permission.ID, false).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check role permission: %w", err)
	}

	return count > 0, nil
}

// ListPermissionCodes returns the codes of all active permissions a role
// holds. Order is not significant; callers should treat the result as a set.
func (s *Service) ListPermissionCodes(roleID uint) ([]string, error) {
	var codes []string

	err := s.db.Table("permissions").
		Select("DISTINCT permissions.code").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Where("role_permissions.role_id = ?", roleID).
		Where("role_permissions.inactive = ? AND permissions.inactive = ?", false, false).
		Pluck("permissions.code", &codes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list role permissions: %w", err)
	}

	return codes, nil
}

// UserHasPermission reports whether a user holds a permission through the
// role assigned to their account.
func (s *Service) UserHasPermission(userID uint64, permissionCode string) (bool, error) {
	var count int64

	err := s.db.Table("permissions").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Joins("JOIN users ON users.role_id = role_permissions.role_id").
		Where("users.id = ? AND permissions.code = ?", userID, permissionCode).
		Where("role_permissions.inactive = ? AND permissions.inactive = ?", false, false).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check user permission: %w", err)
	}

	return count > 0, nil
}

// UserPermissionCodes returns all active permission codes granted to a user
// through their role. Used by the dashboard to decide what to render.
func (s *Service) UserPermissionCodes(userID uint64) ([]string, error) {
	var codes []string

	err := s.db.Table("permissions").
		Select("DISTINCT permissions.code").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Joins("JOIN users ON users.role_id = role_permissions.role_id").
		Where("users.id = ?", userID).
		Where("role_permissions.inactive = ? AND permissions.inactive = ?", false, false).
		Pluck("permissions.code", &codes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list user permissions: %w", err)
	}

	return codes, nil
}
