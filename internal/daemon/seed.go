package daemon

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/evination/backoffice/internal/authz"
	"github.com/evination/backoffice/internal/config"
	"github.com/evination/backoffice/internal/db/models"
	"github.com/evination/backoffice/internal/uniuri"
)

// menuSeed describes one menu and the permission module it governs.
type menuSeed struct {
	name      string
	code      string
	route     string
	icon      string
	module    string
	actions   []string
	sortOrder int
}

// actionTypeFor maps a permission action back onto the grid action type
// vocabulary. The "update" action is driven by the "edit" grid flag.
func actionTypeFor(action string) string {
	if action == "update" {
		return models.ActionTypeEdit
	}

	return action
}

var menuSeeds = []menuSeed{
	{name: "Dashboard", code: "DASHBOARD", route: "/dashboard", icon: "home", module: "dashboard", actions: []string{"view"}, sortOrder: 1},
	{name: "Users", code: "USERS", route: "/users", icon: "users", module: "user", actions: []string{"view", "create", "update", "delete"}, sortOrder: 2},
	{name: "Organizations", code: "ORGANIZATIONS", route: "/organizations", icon: "building", module: "organization", actions: []string{"view", "create", "update", "delete"}, sortOrder: 3},
	{name: "Branches", code: "BRANCHES", route: "/branches", icon: "git-branch", module: "branch", actions: []string{"view", "create", "update", "delete"}, sortOrder: 4},
	{name: "Roles", code: "ROLES", route: "/roles", icon: "shield", module: "role", actions: []string{"view", "create", "update", "delete"}, sortOrder: 5},
	{name: "Settings", code: "SETTINGS", route: "/settings", icon: "settings", module: "settings", actions: []string{"view", "update"}, sortOrder: 6},
}

// Seed creates the initial organization, menu and permission catalog, Admin
// role and admin user. It is idempotent: when an organization already
// exists, it does nothing.
func Seed(cfg *config.Config) error {
	db, err := OpenDB(cfg)
	if err != nil {
		return err
	}

	return seed(cfg, db)
}

func seed(cfg *config.Config, db *gorm.DB) error {
	var orgCount int64
	if err := db.Model(&models.Organization{}).Count(&orgCount).Error; err != nil {
		return fmt.Errorf("failed to inspect organizations: %w", err)
	}

	if orgCount > 0 {
		log.Info().Msg("database already seeded, nothing to do")
		return nil
	}

	password := uniuri.NewLen(16)

	err := db.Transaction(func(tx *gorm.DB) error {
		org := models.Organization{
			Name:  "Evination",
			Code:  "EVI",
			Audit: models.Audit{CreatedBy: models.SystemActor},
		}
		if err := tx.Create(&org).Error; err != nil {
			return fmt.Errorf("failed to create organization: %w", err)
		}

		branch := models.Branch{
			OrganizationID: org.ID,
			Name:           "Head Office",
			Code:           "HO",
			IsHeadOffice:   true,
			Audit:          models.Audit{CreatedBy: models.SystemActor},
		}
		if err := tx.Create(&branch).Error; err != nil {
			return fmt.Errorf("failed to create branch: %w", err)
		}

		adminRole := models.Role{
			Name:        "Admin",
			Code:        "ADMIN",
			Description: "Full access to the back office",
			Audit:       models.Audit{CreatedBy: models.SystemActor},
		}
		if err := tx.Create(&adminRole).Error; err != nil {
			return fmt.Errorf("failed to create admin role: %w", err)
		}

		if err := seedCatalog(tx, adminRole.ID); err != nil {
			return err
		}

		// Derive the admin role's permissions from the full-true grid.
		strategy := authz.ParseStrategy(cfg.Sync.Strategy)
		if err := authz.SyncAllRolePermissions(tx, models.SystemActor, adminRole.ID, strategy); err != nil {
			return fmt.Errorf("failed to sync admin permissions: %w", err)
		}

		// role.manage is not governed by any menu; the first grant has to be
		// seeded because granting it through the API already requires it.
		if err := seedBootstrapGrant(tx, adminRole.ID); err != nil {
			return err
		}

		admin := models.User{
			OrganizationID: org.ID,
			BranchID:       branch.ID,
			RoleID:         adminRole.ID,
			Username:       "admin",
			Email:          "admin@evination.example",
			PasswordHash:   models.HashPassword(password),
			Audit:          models.Audit{CreatedBy: models.SystemActor},
		}
		if err := tx.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	// Logged once; the hash in the database is not recoverable.
	log.Info().Str("username", "admin").Str("password", password).
		Msg("created initial admin user, change the password after first login")

	return nil
}

// seedCatalog creates the menus, permissions, menu-permission links and the
// admin role's full-true rights grid.
func seedCatalog(tx *gorm.DB, adminRoleID uint) error {
	for _, seed := range menuSeeds {
		menu := models.Menu{
			Name:      seed.name,
			Code:      seed.code,
			Icon:      seed.icon,
			Route:     seed.route,
			SortOrder: seed.sortOrder,
			MenuType:  models.MenuTypeMain,
			Audit:     models.Audit{CreatedBy: models.SystemActor},
		}
		if err := tx.Create(&menu).Error; err != nil {
			return fmt.Errorf("failed to create menu %s: %w", seed.code, err)
		}

		for _, action := range seed.actions {
			perm := models.Permission{
				Code:   seed.module + "." + action,
				Name:   seed.name + " " + action,
				Module: seed.module,
				Action: action,
				Audit:  models.Audit{CreatedBy: models.SystemActor},
			}
			if err := tx.Create(&perm).Error; err != nil {
				return fmt.Errorf("failed to create permission %s: %w", perm.Code, err)
			}

			link := models.MenuPermission{
				MenuID:       menu.ID,
				PermissionID: perm.ID,
				ActionType:   actionTypeFor(action),
				Audit:        models.Audit{CreatedBy: models.SystemActor},
			}
			if err := tx.Create(&link).Error; err != nil {
				return fmt.Errorf("failed to link permission %s: %w", perm.Code, err)
			}
		}

		right := models.RoleRight{
			RoleID:    adminRoleID,
			MenuID:    menu.ID,
			CanView:   true,
			CanCreate: true,
			CanEdit:   true,
			CanDelete: true,
			Audit:     models.Audit{CreatedBy: models.SystemActor},
		}
		if err := tx.Create(&right).Error; err != nil {
			return fmt.Errorf("failed to create admin right for %s: %w", seed.code, err)
		}
	}

	return nil
}

// seedBootstrapGrant creates the role.manage permission and grants it to
// the admin role directly.
func seedBootstrapGrant(tx *gorm.DB, adminRoleID uint) error {
	manage := models.Permission{
		Code:        authz.PermRoleManage,
		Name:        "Manage roles and rights",
		Description: "Edit role rights and synchronize role permissions",
		Module:      "role",
		Action:      "manage",
		Audit:       models.Audit{CreatedBy: models.SystemActor},
	}
	if err := tx.Create(&manage).Error; err != nil {
		return fmt.Errorf("failed to create role.manage permission: %w", err)
	}

	grant := models.RolePermission{
		RoleID:       adminRoleID,
		PermissionID: manage.ID,
		Audit:        models.Audit{CreatedBy: models.SystemActor},
	}
	if err := tx.Create(&grant).Error; err != nil {
		return fmt.Errorf("failed to grant role.manage: %w", err)
	}

	return nil
}
