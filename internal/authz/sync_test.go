package authz

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

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
		&models.User{},
		&models.Organization{},
		&models.Branch{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// seedMenu creates a menu and links it to one permission per given action
// type. Permission codes are "<module>.<action>", with the "edit" action
// type mapped onto the "update" action.
func seedMenu(t *testing.T, db *gorm.DB, code, module string, actionTypes ...string) (uint, map[string]uint) {
	t.Helper()

	menu := models.Menu{Name: code, Code: code, MenuType: models.MenuTypeMain}
	require.NoError(t, db.Create(&menu).Error)

	perms := map[string]uint{}
	for _, actionType := range actionTypes {
		action := actionType
		if actionType == models.ActionTypeEdit {
			action = "update"
		}

		perm := models.Permission{Code: module + "." + action, Name: module + " " + action, Module: module, Action: action}
		// The same permission may already exist when two menus govern it.
		result := db.Where("code = ?", perm.Code).First(&perm)
		if result.Error != nil {
			require.ErrorIs(t, result.Error, gorm.ErrRecordNotFound)
			require.NoError(t, db.Create(&perm).Error)
		}

		link := models.MenuPermission{MenuID: menu.ID, PermissionID: perm.ID, ActionType: actionType}
		require.NoError(t, db.Create(&link).Error)

		perms[actionType] = perm.ID
	}

	return menu.ID, perms
}

func seedRole(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()

	role := models.Role{Name: name, Code: name}
	require.NoError(t, db.Create(&role).Error)

	return role.ID
}

func TestParseStrategy(t *testing.T) {
	assert.Equal(t, StrategyMenuWins, ParseStrategy("menu-wins"))
	assert.Equal(t, StrategyAggregate, ParseStrategy("aggregate"))
	assert.Equal(t, StrategyMenuWins, ParseStrategy(""))
	assert.Equal(t, StrategyMenuWins, ParseStrategy("bogus"))
}

func TestGrantStateString(t *testing.T) {
	assert.Equal(t, "absent", GrantAbsent.String())
	assert.Equal(t, "inactive", GrantInactive.String())
	assert.Equal(t, "active", GrantActive.String())
}

func TestSyncRolePermissions(t *testing.T) {
	db := setupTestDB(t)
	roleID := seedRole(t, db, "operators")
	menuID, perms := seedMenu(t, db, "USERS", "user",
		models.ActionTypeView, models.ActionTypeCreate, models.ActionTypeEdit, models.ActionTypeDelete)

	right := models.RoleRight{RoleID: roleID, MenuID: menuID, CanView: true, CanEdit: true}

	err := SyncRolePermissions(db, "alice", roleID, menuID, right, StrategyMenuWins)
	require.NoError(t, err)

	expectState(t, db, roleID, perms[models.ActionTypeView], GrantActive)
	expectState(t, db, roleID, perms[models.ActionTypeEdit], GrantActive)
	expectState(t, db, roleID, perms[models.ActionTypeCreate], GrantAbsent)
	expectState(t, db, roleID, perms[models.ActionTypeDelete], GrantAbsent)

	// Created rows carry the actor.
	var rolePerm models.RolePermission
	require.NoError(t, db.Where("role_id = ? AND permission_id = ?", roleID, perms[models.ActionTypeView]).First(&rolePerm).Error)
	assert.Equal(t, "alice", rolePerm.CreatedBy)
}

func TestSyncRolePermissionsNilDB(t *testing.T) {
	err := SyncRolePermissions(nil, "alice", 1, 1, models.RoleRight{}, StrategyMenuWins)
	require.ErrorIs(t, err, ErrDBNil)
}

func TestSyncDisableRevokesWithoutDeleting(t *testing.T) {
	db := setupTestDB(t)
	roleID := seedRole(t, db, "operators")
	menuID, perms := seedMenu(t, db, "USERS", "user", models.ActionTypeView)

	enabled := models.RoleRight{RoleID: roleID, MenuID: menuID, CanView: true}
	require.NoError(t, SyncRolePermissions(db, "alice", roleID, menuID, enabled, StrategyMenuWins))
	expectState(t, db, roleID, perms[models.ActionTypeView], GrantActive)

	disabled := models.RoleRight{RoleID: roleID, MenuID: menuID, CanView: false}
	require.NoError(t, SyncRolePermissions(db, "bob", roleID, menuID, disabled, StrategyMenuWins))
	expectState(t, db, roleID, perms[models.ActionTypeView], GrantInactive)

	var rolePerm models.RolePermission
	require.NoError(t, db.Where("role_id = ? AND permission_id = ?", roleID, perms[models.ActionTypeView]).First(&rolePerm).Error)
	assert.Equal(t, "alice", rolePerm.CreatedBy)
	assert.Equal(t, "bob", rolePerm.ModifiedBy)
}

func TestSyncUnknownActionTypeDisables(t *testing.T) {
	db := setupTestDB(t)
	roleID := seedRole(t, db, "operators")

	menu := models.Menu{Name: "REPORTS", Code: "REPORTS", MenuType: models.MenuTypeMain}
	require.NoError(t, db.Create(&menu).Error)

	perm := models.Permission{Code: "report.export", Name: "Export", Module: "report", Action: "export"}
	require.NoError(t, db.Create(&perm).Error)

	link := models.MenuPermission{MenuID: menu.ID, PermissionID: perm.ID, ActionType: "export"}
	require.NoError(t, db.Create(&link).Error)

	// A fully enabled right still cannot grant an action type outside the
	// view/create/edit/delete vocabulary.
	right := models.RoleRight{RoleID: roleID, MenuID: menu.ID, CanView: true, CanCreate: true, CanEdit: true, CanDelete: true}
	require.NoError(t, SyncRolePermissions(db, "alice", roleID, menu.ID, right, StrategyMenuWins))

	expectState(t, db, roleID, perm.ID, GrantAbsent)
}

func TestSyncSkipsInactiveMenuPermissions(t *testing.T) {
	db := setupTestDB(t)
	roleID := seedRole(t, db, "operators")
	menuID, perms := seedMenu(t, db, "USERS", "user", models.ActionTypeView)

	require.NoError(t, db.Model(&models.MenuPermission{}).
		Where("menu_id = ?", menuID).
		Update("inactive", true).Error)

	right := models.RoleRight{RoleID: roleID, MenuID: menuID, CanView: true}
	require.NoError(t, SyncRolePermissions(db, "alice", roleID, menuID, right, StrategyMenuWins))

	expectState(t, db, roleID, perms[models.ActionTypeView], GrantAbsent)
}

func TestSyncIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	roleID := seedRole(t, db, "operators")
	menuID, _ := seedMenu(t, db, "USERS", "user",
		models.ActionTypeView, models.ActionTypeCreate, models.ActionTypeEdit, models.ActionTypeDelete)

	right := models.RoleRight{RoleID: roleID, MenuID: menuID, CanView: true, CanDelete: true}

	require.NoError(t, SyncRolePermissions(db, "alice", roleID, menuID, right, StrategyMenuWins))

	var firstPass []models.RolePermission
	require.NoError(t, db.Order("id").Find(&firstPass).Error)

	require.NoError(t, SyncRolePermissions(db, "alice", roleID, menuID, right, StrategyMenuWins))

	var secondPass []models.RolePermission
	require.NoError(t, db.Order("id").Find(&secondPass).Error)

	require.Len(t, secondPass, len(firstPass))
	for i := range firstPass {
		assert.Equal(t, firstPass[i].ID, secondPass[i].ID)
		assert.Equal(t, firstPass[i].Inactive, secondPass[i].Inactive)
	}
}

// Two menus governing the same permission is where the strategies diverge:
// menu-wins lets the last synced menu overwrite the grant, aggregate keeps
// it active while any governing menu right still grants the action.
func TestSyncStrategiesDiverge(t *testing.T) {
	testCases := []struct {
		name     string
		strategy Strategy
		expected GrantState
	}{
		{name: "menu wins lets the later menu revoke", strategy: StrategyMenuWins, expected: GrantInactive},
		{name: "aggregate keeps the grant alive", strategy: StrategyAggregate, expected: GrantActive},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db := setupTestDB(t)
			roleID := seedRole(t, db, "operators")

			usersMenuID, perms := seedMenu(t, db, "USERS", "user", models.ActionTypeView)
			adminMenuID, _ := seedMenu(t, db, "ADMIN", "user", models.ActionTypeView)
			permissionID := perms[models.ActionTypeView]

			// The USERS menu right grants view and is stored.
			usersRight := models.RoleRight{RoleID: roleID, MenuID: usersMenuID, CanView: true}
			require.NoError(t, db.Create(&usersRight).Error)
			require.NoError(t, SyncRolePermissions(db, "alice", roleID, usersMenuID, usersRight, tc.strategy))
			expectState(t, db, roleID, permissionID, GrantActive)

			// The ADMIN menu right denies view and syncs afterwards.
			adminRight := models.RoleRight{RoleID: roleID, MenuID: adminMenuID, CanView: false}
			require.NoError(t, db.Create(&adminRight).Error)
			require.NoError(t, SyncRolePermissions(db, "alice", roleID, adminMenuID, adminRight, tc.strategy))

			expectState(t, db, roleID, permissionID, tc.expected)
		})
	}
}

func TestSyncAggregateSeesInFlightRight(t *testing.T) {
	db := setupTestDB(t)
	roleID := seedRole(t, db, "operators")
	menuID, perms := seedMenu(t, db, "USERS", "user", models.ActionTypeView)

	// A stored right denies view; the in-flight edit enables it. Aggregate
	// must evaluate the edit, not the stale row.
	stored := models.RoleRight{RoleID: roleID, MenuID: menuID, CanView: false}
	require.NoError(t, db.Create(&stored).Error)

	stored.CanView = true
	require.NoError(t, SyncRolePermissions(db, "alice", roleID, menuID, stored, StrategyAggregate))

	expectState(t, db, roleID, perms[models.ActionTypeView], GrantActive)
}

func TestSyncAllRolePermissions(t *testing.T) {
	db := setupTestDB(t)
	roleID := seedRole(t, db, "operators")

	usersMenuID, userPerms := seedMenu(t, db, "USERS", "user", models.ActionTypeView, models.ActionTypeCreate)
	rolesMenuID, rolePerms := seedMenu(t, db, "ROLES", "role", models.ActionTypeView)

	usersRight := models.RoleRight{RoleID: roleID, MenuID: usersMenuID, CanView: true, CanCreate: true}
	require.NoError(t, db.Create(&usersRight).Error)
	rolesRight := models.RoleRight{RoleID: roleID, MenuID: rolesMenuID, CanView: true}
	require.NoError(t, db.Create(&rolesRight).Error)

	// An inactive right contributes nothing.
	retired := models.RoleRight{RoleID: roleID, MenuID: 42, CanView: true, Audit: models.Audit{Inactive: true}}
	require.NoError(t, db.Create(&retired).Error)

	require.NoError(t, SyncAllRolePermissions(db, models.SystemActor, roleID, StrategyMenuWins))

	expectState(t, db, roleID, userPerms[models.ActionTypeView], GrantActive)
	expectState(t, db, roleID, userPerms[models.ActionTypeCreate], GrantActive)
	expectState(t, db, roleID, rolePerms[models.ActionTypeView], GrantActive)

	require.ErrorIs(t, SyncAllRolePermissions(nil, models.SystemActor, roleID, StrategyMenuWins), ErrDBNil)
}

func TestRolePermissionState(t *testing.T) {
	db := setupTestDB(t)
	roleID := seedRole(t, db, "operators")

	state, err := RolePermissionState(db, roleID, 12345)
	require.NoError(t, err)
	assert.Equal(t, GrantAbsent, state)

	_, err = RolePermissionState(nil, roleID, 1)
	require.ErrorIs(t, err, ErrDBNil)
}

// expectState asserts the grant state of a (role, permission) pair.
func expectState(t *testing.T, db *gorm.DB, roleID, permissionID uint, expected GrantState) {
	t.Helper()

	state, err := RolePermissionState(db, roleID, permissionID)
	require.NoError(t, err)
	assert.Equal(t, expected, state)
}
