package repository

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-repair-service/internal/model"
	"github.com/fekuna/omnipos-repair-service/internal/sale"
	"github.com/fekuna/omnipos-repair-service/internal/storage"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var _ sale.Repository = (*PGRepository)(nil)

const columns = `id, sale_date, type, description, amount, payment_method, customer_name, job_id, created_at`

type saleRow struct {
	ID            string    `db:"id"`
	Date          time.Time `db:"sale_date"`
	Type          string    `db:"type"`
	Description   string    `db:"description"`
	Amount        float64   `db:"amount"`
	PaymentMethod string    `db:"payment_method"`
	CustomerName  *string   `db:"customer_name"`
	JobID         *string   `db:"job_id"`
	CreatedAt     time.Time `db:"created_at"`
}

func (r saleRow) toModel() model.DailySale {
	return model.DailySale{
		ID:            r.ID,
		Date:          r.Date,
		Type:          model.SaleType(r.Type),
		Description:   r.Description,
		Amount:        r.Amount,
		PaymentMethod: model.PaymentMethod(r.PaymentMethod),
		CustomerName:  r.CustomerName,
		JobID:         r.JobID,
		CreatedAt:     r.CreatedAt,
	}
}

func fromModel(s model.DailySale) saleRow {
	return saleRow{
		ID:            s.ID,
		Date:          s.Date,
		Type:          string(s.Type),
		Description:   s.Description,
		Amount:        s.Amount,
		PaymentMethod: string(s.PaymentMethod),
		CustomerName:  s.CustomerName,
		JobID:         s.JobID,
		CreatedAt:     s.CreatedAt,
	}
}

type PGRepository struct {
	DB  *sqlx.DB
	Now func() time.Time
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db, Now: time.Now}
}

func (r *PGRepository) List(ctx context.Context) ([]model.DailySale, error) {
	var rows []saleRow
	if err := r.DB.SelectContext(ctx, &rows, `SELECT `+columns+` FROM sales ORDER BY sale_date DESC`); err != nil {
		return nil, err
	}
	sales := make([]model.DailySale, len(rows))
	for i, row := range rows {
		sales[i] = row.toModel()
	}
	return sales, nil
}

func (r *PGRepository) Create(ctx context.Context, s model.DailySale) (*model.DailySale, error) {
	row := fromModel(s)
	row.ID = uuid.New().String()
	row.CreatedAt = r.Now()

	query := `
        INSERT INTO sales (` + columns + `)
        VALUES (:id, :sale_date, :type, :description, :amount, :payment_method, :customer_name, :job_id, :created_at)
        RETURNING ` + columns

	stmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var created saleRow
	if err := stmt.GetContext(ctx, &created, row); err != nil {
		return nil, err
	}
	out := created.toModel()
	return &out, nil
}

func (r *PGRepository) Update(ctx context.Context, id string, _ storage.NoPatch) (*model.DailySale, error) {
	return nil, storage.ErrNotSupported
}

func (r *PGRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
