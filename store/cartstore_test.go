package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/batibatii/textilecom-sub000/models"
)

func newMockStore(t *testing.T) (*CartStore, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewCartStore(db), mock
}

var cartColumns = []string{"cart_id", "user_id", "items", "created_at", "updated_at"}

func cartRow(userID, itemsJSON string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(cartColumns).
		AddRow(1, userID, []byte(itemsJSON), now, now)
}

func TestGetDistinguishesMissingFromEmpty(t *testing.T) {
	carts, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "carts" WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows(cartColumns))

	_, err := carts.Get(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrCartNotFound)

	mock.ExpectQuery(`SELECT \* FROM "carts" WHERE user_id = \$1`).
		WillReturnRows(cartRow("user-1", `[]`))

	items, err := carts.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, items)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDecodesItemsDocument(t *testing.T) {
	carts, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "carts" WHERE user_id = \$1`).
		WillReturnRows(cartRow("user-1",
			`[{"productId":"p1","title":"Tee","price":{"amount":"20.00","currency":"EUR"},"size":"M","quantity":2}]`))

	items, err := carts.Get(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "M", items[0].Size)
}

func TestSaveUpsertsOnUserID(t *testing.T) {
	carts, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "carts" .* ON CONFLICT \("user_id"\) DO UPDATE SET`).
		WillReturnRows(sqlmock.NewRows([]string{"cart_id"}).AddRow(1))
	mock.ExpectCommit()

	err := carts.Save(context.Background(), "user-1", []models.CartItem{
		{ProductID: "p1", Quantity: 1},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMergeEmptyIncomingWritesNothing(t *testing.T) {
	carts, mock := newMockStore(t)

	// No saved cart and nothing incoming: no document gets created.
	mock.ExpectQuery(`SELECT \* FROM "carts" WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows(cartColumns))

	merged, err := carts.Merge(context.Background(), "user-1", nil)
	require.NoError(t, err)
	assert.Empty(t, merged)

	// Saved cart present: the empty incoming side must not erase it.
	mock.ExpectQuery(`SELECT \* FROM "carts" WHERE user_id = \$1`).
		WillReturnRows(cartRow("user-1", `[{"productId":"p1","quantity":2}]`))

	merged, err = carts.Merge(context.Background(), "user-1", nil)
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, 2, merged[0].Quantity)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMergeSumsAndPersists(t *testing.T) {
	carts, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "carts" WHERE user_id = \$1`).
		WillReturnRows(cartRow("user-1", `[{"productId":"p1","size":"M","quantity":2}]`))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "carts" .* ON CONFLICT \("user_id"\) DO UPDATE SET`).
		WillReturnRows(sqlmock.NewRows([]string{"cart_id"}).AddRow(1))
	mock.ExpectCommit()

	merged, err := carts.Merge(context.Background(), "user-1", []models.CartItem{
		{ProductID: "p1", Size: "M", Quantity: 3},
		{ProductID: "p2", Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, merged, 2)
	assert.Equal(t, 5, merged[0].Quantity)
	assert.Equal(t, "p2", merged[1].ProductID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMergeCreatesCartForFirstLogin(t *testing.T) {
	carts, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "carts" WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows(cartColumns))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "carts"`).
		WillReturnRows(sqlmock.NewRows([]string{"cart_id"}).AddRow(1))
	mock.ExpectCommit()

	merged, err := carts.Merge(context.Background(), "user-1", []models.CartItem{
		{ProductID: "p1", Quantity: 1},
	})
	require.NoError(t, err)
	assert.Len(t, merged, 1)

	assert.NoError(t, mock.ExpectationsWereMet())
}
