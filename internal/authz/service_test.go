package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/evination/backoffice/internal/db/models"
)

// grant writes an active RolePermission row directly. Service tests bypass
// the sync engine on purpose: the query side must answer from the derived
// store alone.
func grant(t *testing.T, db *gorm.DB, roleID, permissionID uint, inactive bool) {
	t.Helper()

	rolePerm := models.RolePermission{
		RoleID:       roleID,
		PermissionID: permissionID,
		Audit:        models.Audit{CreatedBy: models.SystemActor, Inactive: inactive},
	}
	require.NoError(t, db.Create(&rolePerm).Error)
}

func seedPermission(t *testing.T, db *gorm.DB, code string, inactive bool) uint {
	t.Helper()

	perm := models.Permission{
		Code:   code,
		Name:   code,
		Module: "user",
		Action: "view",
		Audit:  models.Audit{Inactive: inactive},
	}
	require.NoError(t, db.Create(&perm).Error)

	return perm.ID
}

func TestCheckPermission(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	roleID := seedRole(t, db, "operators")
	activeID := seedPermission(t, db, "user.view", false)
	retiredID := seedPermission(t, db, "user.export", true)
	revokedID := seedPermission(t, db, "user.delete", false)

	grant(t, db, roleID, activeID, false)
	grant(t, db, roleID, retiredID, false)
	grant(t, db, roleID, revokedID, true)

	testCases := []struct {
		name     string
		code     string
		expected bool
	}{
		{name: "active grant", code: "user.view", expected: true},
		{name: "unknown code yields false, not an error", code: "user.bogus", expected: false},
		{name: "deactivated permission yields false", code: "user.export", expected: false},
		{name: "revoked grant yields false", code: "user.delete", expected: false},
		{name: "permission never granted", code: "user.create", expected: false},
	}

	// user.create exists but was never granted.
	seedPermission(t, db, "user.create", false)

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			has, err := svc.CheckPermission(roleID, tc.code)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, has)
		})
	}
}

// The query side must not consult the RoleRight grid. A right that was never
// synced grants nothing; a grant whose right was since deleted still holds.
func TestCheckPermissionReadsDerivedStoreOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	roleID := seedRole(t, db, "operators")
	menuID, perms := seedMenu(t, db, "USERS", "user", models.ActionTypeView, models.ActionTypeCreate)

	right := models.RoleRight{RoleID: roleID, MenuID: menuID, CanView: true, CanCreate: true}
	require.NoError(t, db.Create(&right).Error)

	// Unsynced right: no grants yet.
	has, err := svc.CheckPermission(roleID, "user.view")
	require.NoError(t, err)
	assert.False(t, has)

	grant(t, db, roleID, perms[models.ActionTypeView], false)

	has, err = svc.CheckPermission(roleID, "user.view")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestListPermissionCodes(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	roleID := seedRole(t, db, "operators")
	otherRoleID := seedRole(t, db, "viewers")

	viewID := seedPermission(t, db, "user.view", false)
	createID := seedPermission(t, db, "user.create", false)
	deleteID := seedPermission(t, db, "user.delete", false)

	grant(t, db, roleID, viewID, false)
	grant(t, db, roleID, createID, false)
	grant(t, db, roleID, deleteID, true)
	grant(t, db, otherRoleID, deleteID, false)

	codes, err := svc.ListPermissionCodes(roleID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"user.view", "user.create"}, codes)

	codes, err = svc.ListPermissionCodes(999)
	require.NoError(t, err)
	assert.Empty(t, codes)
}

func TestUserHasPermission(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	org := models.Organization{Name: "Evination", Code: "EVI"}
	require.NoError(t, db.Create(&org).Error)
	branch := models.Branch{OrganizationID: org.ID, Name: "Head Office", Code: "HO", IsHeadOffice: true}
	require.NoError(t, db.Create(&branch).Error)

	roleID := seedRole(t, db, "operators")
	viewID := seedPermission(t, db, "user.view", false)
	grant(t, db, roleID, viewID, false)

	user := models.User{
		OrganizationID: org.ID,
		BranchID:       branch.ID,
		RoleID:         roleID,
		Username:       "alice",
		Email:          "alice@example.com",
	}
	require.NoError(t, db.Create(&user).Error)

	has, err := svc.UserHasPermission(user.ID, "user.view")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = svc.UserHasPermission(user.ID, "user.delete")
	require.NoError(t, err)
	assert.False(t, has)

	has, err = svc.UserHasPermission(999, "user.view")
	require.NoError(t, err)
	assert.False(t, has)

	codes, err := svc.UserPermissionCodes(user.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"user.view"}, codes)
}

func TestPermissionByCode(t *testing.T) {
	db := setupTestDB(t)

	seedPermission(t, db, "user.view", false)
	seedPermission(t, db, "user.export", true)

	perm, err := PermissionByCode(db, "user.view")
	require.NoError(t, err)
	assert.Equal(t, "user.view", perm.Code)

	_, err = PermissionByCode(db, "user.export")
	require.ErrorIs(t, err, ErrPermissionNotFound)

	_, err = PermissionByCode(db, "nope")
	require.ErrorIs(t, err, ErrPermissionNotFound)

	_, err = PermissionByCode(nil, "user.view")
	require.ErrorIs(t, err, ErrDBNil)
}
