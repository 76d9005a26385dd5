package authz

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/evination/backoffice/internal/db/models"
	"github.com/evination/backoffice/internal/web/session"
)

// setupApp builds a fiber app with one protected route and an in-memory
// session store.
func setupApp(t *testing.T, db *gorm.DB, permission string) *fiber.App {
	t.Helper()

	// default config uses in-memory storage
	session.Store = fibersession.New()

	app := fiber.New()
	app.Get("/protected", RequirePermission(NewService(db), permission), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	return app
}

// loginSession writes a session for the user and returns its ID.
func loginSession(t *testing.T, user models.User) string {
	t.Helper()

	sessionID, err := session.GenerateSessionID()
	require.NoError(t, err)

	data := &session.Data{User: user}
	require.NoError(t, data.Write(sessionID, time.Hour))

	return sessionID
}

func TestRequirePermission(t *testing.T) {
	db := setupTestDB(t)

	org := models.Organization{Name: "Evination", Code: "EVI"}
	require.NoError(t, db.Create(&org).Error)
	branch := models.Branch{OrganizationID: org.ID, Name: "Head Office", Code: "HO"}
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

	testCases := []struct {
		name           string
		permission     string
		sessionID      string
		noCookie       bool
		expectedStatus int
	}{
		{
			name:           "no session cookie",
			permission:     "user.view",
			noCookie:       true,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "unknown session id",
			permission:     "user.view",
			sessionID:      "deadbeef",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing permission",
			permission:     "user.delete",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "granted permission",
			permission:     "user.view",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := setupApp(t, db, tc.permission)

			sessionID := tc.sessionID
			if sessionID == "" && !tc.noCookie {
				sessionID = loginSession(t, user)
			}

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if !tc.noCookie {
				req.AddCookie(&http.Cookie{Name: "session", Value: sessionID})
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
		})
	}
}

func TestSessionUser(t *testing.T) {
	session.Store = fibersession.New()

	user := models.User{ID: 7, Username: "alice"}
	sessionID := loginSession(t, user)

	app := fiber.New()
	app.Get("/whoami", func(c *fiber.Ctx) error {
		data := SessionUser(c)
		if data == nil {
			return c.SendString("anonymous")
		}

		return c.SendString(data.User.Username)
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: sessionID})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// no cookie resolves to no session user
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
