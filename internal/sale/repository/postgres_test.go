package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-repair-service/internal/model"
	"github.com/fekuna/omnipos-repair-service/internal/storage"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPGRepository_ListMapsNullableColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPGRepository(sqlx.NewDb(db, "pgx"))

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + columns + " FROM sales ORDER BY sale_date DESC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sale_date", "type", "description", "amount", "payment_method", "customer_name", "job_id", "created_at"}).
			AddRow("s1", now, "repair", "Cambio de pantalla", 80.0, "cash", "Ana", "j1", now).
			AddRow("s2", now, "accessory_sale", "Funda", 10.0, "card", nil, nil, now))

	sales, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, sales, 2)

	require.NotNil(t, sales[0].JobID)
	assert.Equal(t, "j1", *sales[0].JobID)
	assert.Equal(t, model.PaymentCash, sales[0].PaymentMethod)
	assert.Nil(t, sales[1].CustomerName)
	assert.Nil(t, sales[1].JobID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepository_UpdateIsNotSupported(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPGRepository(sqlx.NewDb(db, "pgx"))

	_, err = repo.Update(context.Background(), "s1", storage.NoPatch{})
	assert.ErrorIs(t, err, storage.ErrNotSupported)
}
