package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/batibatii/textilecom-sub000/auth"
	"github.com/batibatii/textilecom-sub000/models"
)

type fakeVerifier struct {
	claims auth.Claims
	err    error
}

func (f fakeVerifier) VerifySession(_ context.Context, cookie string) (auth.Claims, error) {
	if cookie == "" {
		return auth.Claims{}, auth.ErrNoSession
	}
	if f.err != nil {
		return auth.Claims{}, f.err
	}
	return f.claims, nil
}

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func doRequest(r *gin.Engine, path string, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireSessionRejectsMissingAndInvalidAlike(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/me", RequireSession(fakeVerifier{err: auth.ErrVerificationFailed}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	missing := doRequest(r, "/me", "")
	invalid := doRequest(r, "/me", "stale-cookie")

	assert.Equal(t, http.StatusUnauthorized, missing.Code)
	assert.Equal(t, http.StatusUnauthorized, invalid.Code)
	assert.Equal(t, missing.Body.String(), invalid.Body.String())
}

func TestRequireSessionSetsIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)

	v := fakeVerifier{claims: auth.Claims{UID: "user-1", Email: "u@example.com", Role: models.RoleCustomer}}
	r := gin.New()
	r.GET("/me", RequireSession(v), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": c.GetString("user_id"), "email": c.GetString("email")})
	})

	w := doRequest(r, "/me", "good-cookie")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
	assert.Contains(t, w.Body.String(), "u@example.com")
}

func TestRequireSessionSkipsWhenAlreadyVerified(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", "user-1") })
	// A verifier that always fails proves no second verification happens.
	r.GET("/me", RequireSession(fakeVerifier{err: auth.ErrVerificationFailed}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := doRequest(r, "/me", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func roleRows(role models.Role) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"role"}).AddRow(string(role))
}

func TestRequireRoleReadsPersistedRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := newMockGorm(t)

	// The session snapshot says admin but the persisted role is customer:
	// the persisted value decides.
	v := fakeVerifier{claims: auth.Claims{UID: "user-1", Role: models.RoleAdmin}}
	r := gin.New()
	r.GET("/admin/ping", RequireSession(v), RequireRole(db, models.RoleAdmin, models.RoleSuperAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	mock.ExpectQuery(`SELECT "role" FROM "users" WHERE id = \$1`).
		WillReturnRows(roleRows(models.RoleCustomer))
	w := doRequest(r, "/admin/ping", "cookie")
	assert.Equal(t, http.StatusForbidden, w.Code)

	mock.ExpectQuery(`SELECT "role" FROM "users" WHERE id = \$1`).
		WillReturnRows(roleRows(models.RoleAdmin))
	w = doRequest(r, "/admin/ping", "cookie")
	assert.Equal(t, http.StatusOK, w.Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequireRoleFailsClosedOnLookupError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := newMockGorm(t)

	v := fakeVerifier{claims: auth.Claims{UID: "user-1", Role: models.RoleSuperAdmin}}
	r := gin.New()
	r.GET("/admin/ping", RequireSession(v), RequireRole(db, models.RoleSuperAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	mock.ExpectQuery(`SELECT "role" FROM "users"`).
		WillReturnError(assert.AnError)

	w := doRequest(r, "/admin/ping", "cookie")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
