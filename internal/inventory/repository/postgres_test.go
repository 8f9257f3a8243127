package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-repair-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func newMockRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewPGRepository(sqlx.NewDb(db, "pgx"))
	repo.Now = func() time.Time { return fixedNow }
	return repo, mock
}

func itemRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "category", "brand", "model", "quantity", "price", "min_stock", "created_at", "updated_at"})
}

func TestPGRepository_List(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + columns + " FROM inventory ORDER BY name")).
		WillReturnRows(itemRows().
			AddRow("a", "Batería iPhone 12", "battery", "Apple", "iPhone 12", 3, 45.5, 2, fixedNow, fixedNow).
			AddRow("b", "Pantalla A52", "screen", "Samsung", "A52", 0, 80.0, 1, fixedNow, fixedNow))

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, model.CategoryBattery, items[0].Category)
	assert.Equal(t, 2, items[0].MinStock)
	assert.True(t, items[1].IsLowStock())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepository_ListError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection refused"))

	_, err := repo.List(context.Background())
	assert.Error(t, err)
}

func TestPGRepository_UpdateSendsOnlyProvidedFields(t *testing.T) {
	repo, mock := newMockRepo(t)
	qty := 7
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE inventory SET quantity = $1, updated_at = $2 WHERE id = $3")).
		WithArgs(7, fixedNow, "a").
		WillReturnRows(itemRows().AddRow("a", "Batería", "battery", "Apple", "X", 7, 45.5, 2, fixedNow, fixedNow))

	item, err := repo.Update(context.Background(), "a", model.InventoryPatch{Quantity: &qty})
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, 7, item.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepository_UpdateNoMatch(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("UPDATE inventory").WillReturnRows(itemRows())

	item, err := repo.Update(context.Background(), "missing", model.InventoryPatch{})
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestPGRepository_Delete(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM inventory WHERE id = $1")).
		WithArgs("a").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM inventory WHERE id = $1")).
		WithArgs("b").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.Delete(context.Background(), "a")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(context.Background(), "b")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPGRepository_CreateAssignsIDAndStamps(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectPrepare("INSERT INTO inventory").
		ExpectQuery().
		WithArgs(sqlmock.AnyArg(), "Funda", "accessory", "", "", 10, 5.0, 3, fixedNow, fixedNow).
		WillReturnRows(itemRows().AddRow("new-id", "Funda", "accessory", "", "", 10, 5.0, 3, fixedNow, fixedNow))

	item, err := repo.Create(context.Background(), model.InventoryItem{
		Name: "Funda", Category: model.CategoryAccessory, Quantity: 10, Price: 5, MinStock: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "new-id", item.ID)
	assert.Equal(t, fixedNow, item.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
