package roleright

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/evination/backoffice/internal/authz"
	"github.com/evination/backoffice/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	// Migrate the schema
	err = db.AutoMigrate(
		&models.Role{},
		&models.Menu{},
		&models.Permission{},
		&models.MenuPermission{},
		&models.RoleRight{},
		&models.RolePermission{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// seedCatalog creates a role, a menu and the four permissions the menu
// governs, one per action type. Returns the role ID, the menu ID and the
// permission IDs keyed by action type.
func seedCatalog(t *testing.T, db *gorm.DB) (uint, uint, map[string]uint) {
	t.Helper()

	role := models.Role{Name: "Operators", Code: "operators"}
	require.NoError(t, db.Create(&role).Error)

	menu := models.Menu{Name: "Users", Code: "users", MenuType: models.MenuTypeMain}
	require.NoError(t, db.Create(&menu).Error)

	perms := map[string]uint{}
	for actionType, action := range map[string]string{
		models.ActionTypeView:   "view",
		models.ActionTypeCreate: "create",
		models.ActionTypeEdit:   "update",
		models.ActionTypeDelete: "delete",
	} {
		perm := models.Permission{
			Code:   "user." + action,
			Name:   "User " + action,
			Module: "user",
			Action: action,
		}
		require.NoError(t, db.Create(&perm).Error)

		link := models.MenuPermission{
			MenuID:       menu.ID,
			PermissionID: perm.ID,
			ActionType:   actionType,
		}
		require.NoError(t, db.Create(&link).Error)

		perms[actionType] = perm.ID
	}

	return role.ID, menu.ID, perms
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)
	roleID, menuID, _ := seedCatalog(t, db)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		flags         Flags
		seedExisting  bool
		expectedError error
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			expectedError: ErrDBNil,
		},
		{
			name:    "successful create",
			dbParam: db,
			flags:   Flags{CanView: true, CanCreate: true},
		},
		{
			name:          "duplicate role right",
			dbParam:       db,
			flags:         Flags{CanView: true},
			seedExisting:  true,
			expectedError: ErrRoleRightExists,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.dbParam != nil {
				tc.dbParam.Exec("DELETE FROM role_rights")
				tc.dbParam.Exec("DELETE FROM role_permissions")
			}

			if tc.seedExisting {
				existing := models.RoleRight{RoleID: roleID, MenuID: menuID, CanView: true}
				require.NoError(t, db.Create(&existing).Error)
			}

			right, err := Create(tc.dbParam, "alice", roleID, menuID, tc.flags, authz.StrategyMenuWins)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, right)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, right)
				assert.NotZero(t, right.ID)
				assert.Equal(t, tc.flags.CanView, right.CanView)
				assert.Equal(t, tc.flags.CanCreate, right.CanCreate)
				assert.Equal(t, "alice", right.CreatedBy)
			}
		})
	}
}

func TestCreateSynchronizesPermissions(t *testing.T) {
	db := setupTestDB(t)
	roleID, menuID, perms := seedCatalog(t, db)

	_, err := Create(db, "alice", roleID, menuID, Flags{CanView: true, CanCreate: true}, authz.StrategyMenuWins)
	require.NoError(t, err)

	// Enabled actions are granted.
	for _, actionType := range []string{models.ActionTypeView, models.ActionTypeCreate} {
		state, err := authz.RolePermissionState(db, roleID, perms[actionType])
		require.NoError(t, err)
		assert.Equal(t, authz.GrantActive, state, "action %s should be granted", actionType)
	}

	// Disabled actions never produce a row.
	for _, actionType := range []string{models.ActionTypeEdit, models.ActionTypeDelete} {
		state, err := authz.RolePermissionState(db, roleID, perms[actionType])
		require.NoError(t, err)
		assert.Equal(t, authz.GrantAbsent, state, "action %s should have no grant", actionType)
	}
}

func TestCreateConflictLeavesNoPermissions(t *testing.T) {
	db := setupTestDB(t)
	roleID, menuID, _ := seedCatalog(t, db)

	existing := models.RoleRight{RoleID: roleID, MenuID: menuID, CanView: true}
	require.NoError(t, db.Create(&existing).Error)

	_, err := Create(db, "alice", roleID, menuID, Flags{CanView: true, CanDelete: true}, authz.StrategyMenuWins)
	require.ErrorIs(t, err, ErrRoleRightExists)

	// The transaction rolled back; no grants were written.
	var count int64
	db.Model(&models.RolePermission{}).Count(&count)
	assert.Zero(t, count)
}

func TestUpdate(t *testing.T) {
	db := setupTestDB(t)
	roleID, menuID, perms := seedCatalog(t, db)

	t.Run("not found", func(t *testing.T) {
		right, err := Update(db, "alice", 999, Flags{}, authz.StrategyMenuWins)
		require.ErrorIs(t, err, ErrRoleRightNotFound)
		assert.Nil(t, right)
	})

	t.Run("nil database", func(t *testing.T) {
		right, err := Update(nil, "alice", 1, Flags{}, authz.StrategyMenuWins)
		require.ErrorIs(t, err, ErrDBNil)
		assert.Nil(t, right)
	})

	t.Run("disable revokes without deleting", func(t *testing.T) {
		created, err := Create(db, "alice", roleID, menuID, Flags{CanView: true, CanCreate: true}, authz.StrategyMenuWins)
		require.NoError(t, err)

		updated, err := Update(db, "bob", created.ID, Flags{CanView: true}, authz.StrategyMenuWins)
		require.NoError(t, err)
		assert.False(t, updated.CanCreate)
		assert.Equal(t, "bob", updated.ModifiedBy)

		// The create grant survives as an inactive row, not a deletion.
		state, err := authz.RolePermissionState(db, roleID, perms[models.ActionTypeCreate])
		require.NoError(t, err)
		assert.Equal(t, authz.GrantInactive, state)

		state, err = authz.RolePermissionState(db, roleID, perms[models.ActionTypeView])
		require.NoError(t, err)
		assert.Equal(t, authz.GrantActive, state)
	})

	t.Run("re-enable reactivates the same row", func(t *testing.T) {
		var right models.RoleRight
		require.NoError(t, db.Where("role_id = ? AND menu_id = ?", roleID, menuID).First(&right).Error)

		var before models.RolePermission
		require.NoError(t, db.Where("role_id = ? AND permission_id = ?", roleID, perms[models.ActionTypeCreate]).First(&before).Error)

		_, err := Update(db, "carol", right.ID, Flags{CanView: true, CanCreate: true}, authz.StrategyMenuWins)
		require.NoError(t, err)

		var after models.RolePermission
		require.NoError(t, db.Where("role_id = ? AND permission_id = ?", roleID, perms[models.ActionTypeCreate]).First(&after).Error)
		assert.Equal(t, before.ID, after.ID)
		assert.False(t, after.Inactive)
		assert.Equal(t, "carol", after.ModifiedBy)
	})
}

func TestUpdateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	roleID, menuID, _ := seedCatalog(t, db)

	created, err := Create(db, "alice", roleID, menuID, Flags{CanView: true, CanEdit: true}, authz.StrategyMenuWins)
	require.NoError(t, err)

	flags := Flags{CanView: true, CanEdit: true}

	_, err = Update(db, "alice", created.ID, flags, authz.StrategyMenuWins)
	require.NoError(t, err)

	var firstPass []models.RolePermission
	require.NoError(t, db.Order("id").Find(&firstPass).Error)

	_, err = Update(db, "alice", created.ID, flags, authz.StrategyMenuWins)
	require.NoError(t, err)

	var secondPass []models.RolePermission
	require.NoError(t, db.Order("id").Find(&secondPass).Error)

	require.Len(t, secondPass, len(firstPass))
	for i := range firstPass {
		assert.Equal(t, firstPass[i].ID, secondPass[i].ID)
		assert.Equal(t, firstPass[i].Inactive, secondPass[i].Inactive)
	}
}

func TestGet(t *testing.T) {
	db := setupTestDB(t)
	roleID, menuID, _ := seedCatalog(t, db)

	created, err := Create(db, "alice", roleID, menuID, Flags{CanView: true}, authz.StrategyMenuWins)
	require.NoError(t, err)

	t.Run("nil database", func(t *testing.T) {
		right, err := Get(nil, created.ID)
		require.ErrorIs(t, err, ErrDBNil)
		assert.Nil(t, right)
	})

	t.Run("not found", func(t *testing.T) {
		right, err := Get(db, 999)
		require.ErrorIs(t, err, ErrRoleRightNotFound)
		assert.Nil(t, right)
	})

	t.Run("successful get", func(t *testing.T) {
		right, err := Get(db, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, right.ID)
		assert.True(t, right.CanView)
	})
}

func TestListByRole(t *testing.T) {
	db := setupTestDB(t)
	roleID, menuID, _ := seedCatalog(t, db)

	secondMenu := models.Menu{Name: "Roles", Code: "roles", MenuType: models.MenuTypeMain}
	require.NoError(t, db.Create(&secondMenu).Error)

	_, err := Create(db, "alice", roleID, menuID, Flags{CanView: true}, authz.StrategyMenuWins)
	require.NoError(t, err)
	_, err = Create(db, "alice", roleID, secondMenu.ID, Flags{CanView: true}, authz.StrategyMenuWins)
	require.NoError(t, err)

	// Inactive rights are excluded from the listing.
	inactive := models.RoleRight{RoleID: roleID, MenuID: 42, Audit: models.Audit{Inactive: true}}
	require.NoError(t, db.Create(&inactive).Error)

	rights, err := ListByRole(db, roleID)
	require.NoError(t, err)
	assert.Len(t, rights, 2)

	rights, err = ListByRole(db, 999)
	require.NoError(t, err)
	assert.Empty(t, rights)
}

// Drives the full grant lifecycle through the query service: granting a
// right makes the permission check pass, widening it extends the grants,
// and disabling the right revokes them again.
func TestGrantLifecycle(t *testing.T) {
	db := setupTestDB(t)
	roleID, menuID, _ := seedCatalog(t, db)
	svc := authz.NewService(db)

	granted := func(code string) bool {
		t.Helper()

		ok, err := svc.CheckPermission(roleID, code)
		require.NoError(t, err)

		return ok
	}

	created, err := Create(db, "alice", roleID, menuID, Flags{CanView: true}, authz.StrategyMenuWins)
	require.NoError(t, err)
	assert.True(t, granted("user.view"))
	assert.False(t, granted("user.create"))
	assert.False(t, granted("user.update"))
	assert.False(t, granted("user.delete"))

	_, err = Update(db, "bob", created.ID, Flags{CanView: true, CanCreate: true, CanEdit: true}, authz.StrategyMenuWins)
	require.NoError(t, err)
	assert.True(t, granted("user.view"))
	assert.True(t, granted("user.create"))
	assert.True(t, granted("user.update"))
	assert.False(t, granted("user.delete"))

	_, err = Update(db, "bob", created.ID, Flags{}, authz.StrategyMenuWins)
	require.NoError(t, err)
	assert.False(t, granted("user.view"))
	assert.False(t, granted("user.create"))
	assert.False(t, granted("user.update"))
	assert.False(t, granted("user.delete"))
}
