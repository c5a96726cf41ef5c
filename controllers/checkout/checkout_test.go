package checkoutControllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/batibatii/textilecom-sub000/models"
	"github.com/batibatii/textilecom-sub000/payment"
)

type fakeGateway struct {
	session *payment.Session
	err     error
	calls   int
	cartIDs []string
}

func (g *fakeGateway) CreateSession(_ context.Context, cartID string, _ []payment.LineItem, _ models.User) (*payment.Session, error) {
	g.calls++
	g.cartIDs = append(g.cartIDs, cartID)
	if g.err != nil {
		return nil, g.err
	}
	return g.session, nil
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

func checkoutRouter(db *gorm.DB, gw SessionCreator, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/checkout", func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	}, HandleCheckout(db, gw))
	return r
}

func postCheckout(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var userColumns = []string{"id", "email", "phone", "name", "picture", "provider", "role",
	"line1", "line2", "city", "state", "postal_code", "country"}

func userRow(withAddress bool) *sqlmock.Rows {
	line1, city, postal, country := "", "", "", ""
	if withAddress {
		line1, city, postal, country = "1 Main St", "Berlin", "10115", "DE"
	}
	return sqlmock.NewRows(userColumns).
		AddRow("user-1", "ada@example.com", "", "Ada", "", "google", "customer",
			line1, "", city, "", postal, country)
}

const validBody = `{"items":[{"priceRef":"price_tee","quantity":2}]}`

func TestCheckoutRequiresCompleteAddress(t *testing.T) {
	db, mock := newMockGorm(t)
	gw := &fakeGateway{session: &payment.Session{ID: "sess-1", URL: "https://pay.example"}}
	r := checkoutRouter(db, gw, "user-1")

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WillReturnRows(userRow(false))

	w := postCheckout(r, validBody)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"no_address"`)
	assert.Zero(t, gw.calls, "no payment session may be created without an address")
}

func TestCheckoutRejectsInvalidPayload(t *testing.T) {
	db, _ := newMockGorm(t)
	gw := &fakeGateway{}
	r := checkoutRouter(db, gw, "user-1")

	for _, body := range []string{
		`{}`,
		`{"items":[]}`,
		`{"items":[{"priceRef":"","quantity":1}]}`,
		`{"items":[{"priceRef":"price_tee","quantity":0}]}`,
	} {
		w := postCheckout(r, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
	assert.Zero(t, gw.calls)
}

func TestCheckoutSurfacesGatewayFailure(t *testing.T) {
	db, mock := newMockGorm(t)
	gw := &fakeGateway{err: errors.New("payment gateway error: Invalid store id")}
	r := checkoutRouter(db, gw, "user-1")

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WillReturnRows(userRow(true))

	w := postCheckout(r, validBody)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid store id")
}

func TestCheckoutCreatesSessionRecord(t *testing.T) {
	db, mock := newMockGorm(t)
	gw := &fakeGateway{session: &payment.Session{ID: "sess-1", URL: "https://pay.example/sess-1"}}
	r := checkoutRouter(db, gw, "user-1")

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WillReturnRows(userRow(true))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "checkout_sessions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	w := postCheckout(r, validBody)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://pay.example/sess-1")
	assert.Contains(t, w.Body.String(), "sess-1")

	require.Equal(t, 1, gw.calls)
	assert.NotEmpty(t, gw.cartIDs[0], "each attempt gets its own cart id")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutRejectsAnonymous(t *testing.T) {
	db, _ := newMockGorm(t)
	r := checkoutRouter(db, &fakeGateway{}, "")

	w := postCheckout(r, validBody)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
