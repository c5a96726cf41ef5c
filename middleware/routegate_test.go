package middleware

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/batibatii/textilecom-sub000/auth"
	"github.com/batibatii/textilecom-sub000/models"
)

func gatedRouter(v SessionVerifier, t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock := newMockGorm(t)
	// Admin-path role lookups are allowed but not required per test.
	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery(`SELECT "role" FROM "users"`).
		WillReturnRows(roleRows(models.RoleCustomer))

	r := gin.New()
	r.Use(RouteGate(v, db))
	for _, p := range []string{"/", "/products", "/cart", "/checkout", "/admin/products"} {
		r.GET(p, func(c *gin.Context) { c.Status(http.StatusOK) })
	}
	return r
}

func TestRouteGateIgnoresPublicPaths(t *testing.T) {
	r := gatedRouter(fakeVerifier{err: auth.ErrVerificationFailed}, t)

	for _, p := range []string{"/", "/products"} {
		w := doRequest(r, p, "")
		assert.Equal(t, http.StatusOK, w.Code, p)
	}
}

func TestRouteGateRedirectsAnonymousWithReturnPath(t *testing.T) {
	r := gatedRouter(fakeVerifier{}, t)

	w := doRequest(r, "/checkout", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?redirect=%2Fcheckout", w.Header().Get("Location"))
}

func TestRouteGateClearsStaleCookieBeforeRedirect(t *testing.T) {
	r := gatedRouter(fakeVerifier{err: auth.ErrVerificationFailed}, t)

	w := doRequest(r, "/cart", "revoked")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?redirect=%2Fcart", w.Header().Get("Location"))

	setCookie := w.Header().Get("Set-Cookie")
	assert.Contains(t, setCookie, auth.SessionCookieName+"=")
	assert.Contains(t, setCookie, "Max-Age=0")
}

func TestRouteGateSendsNonAdminHome(t *testing.T) {
	v := fakeVerifier{claims: auth.Claims{UID: "user-1", Role: models.RoleCustomer}}
	r := gatedRouter(v, t)

	w := doRequest(r, "/admin/products", "cookie")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestRouteGateAdmitsVerifiedUserToGatedPath(t *testing.T) {
	v := fakeVerifier{claims: auth.Claims{UID: "user-1", Role: models.RoleCustomer}}
	r := gatedRouter(v, t)

	w := doRequest(r, "/cart", "cookie")
	assert.Equal(t, http.StatusOK, w.Code)
}
