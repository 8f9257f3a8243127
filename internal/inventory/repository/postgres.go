package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fekuna/omnipos-repair-service/internal/database/postgres"
	"github.com/fekuna/omnipos-repair-service/internal/inventory"
	"github.com/fekuna/omnipos-repair-service/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var _ inventory.Repository = (*PGRepository)(nil)

const columns = `id, name, category, brand, model, quantity, price, min_stock, created_at, updated_at`

type itemRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Category  string    `db:"category"`
	Brand     string    `db:"brand"`
	Model     string    `db:"model"`
	Quantity  int       `db:"quantity"`
	Price     float64   `db:"price"`
	MinStock  int       `db:"min_stock"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r itemRow) toModel() model.InventoryItem {
	return model.InventoryItem{
		ID:        r.ID,
		Name:      r.Name,
		Category:  model.Category(r.Category),
		Brand:     r.Brand,
		Model:     r.Model,
		Quantity:  r.Quantity,
		Price:     r.Price,
		MinStock:  r.MinStock,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func fromModel(i model.InventoryItem) itemRow {
	return itemRow{
		ID:        i.ID,
		Name:      i.Name,
		Category:  string(i.Category),
		Brand:     i.Brand,
		Model:     i.Model,
		Quantity:  i.Quantity,
		Price:     i.Price,
		MinStock:  i.MinStock,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

type PGRepository struct {
	DB  *sqlx.DB
	Now func() time.Time
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db, Now: time.Now}
}

func (r *PGRepository) List(ctx context.Context) ([]model.InventoryItem, error) {
	var rows []itemRow
	if err := r.DB.SelectContext(ctx, &rows, `SELECT `+columns+` FROM inventory ORDER BY name`); err != nil {
		return nil, err
	}
	items := make([]model.InventoryItem, len(rows))
	for i, row := range rows {
		items[i] = row.toModel()
	}
	return items, nil
}

func (r *PGRepository) Create(ctx context.Context, item model.InventoryItem) (*model.InventoryItem, error) {
	row := fromModel(item)
	row.ID = uuid.New().String()
	now := r.Now()
	row.CreatedAt, row.UpdatedAt = now, now

	query := `
        INSERT INTO inventory (` + columns + `)
        VALUES (:id, :name, :category, :brand, :model, :quantity, :price, :min_stock, :created_at, :updated_at)
        RETURNING ` + columns

	stmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var created itemRow
	if err := stmt.GetContext(ctx, &created, row); err != nil {
		return nil, err
	}
	out := created.toModel()
	return &out, nil
}

func (r *PGRepository) Update(ctx context.Context, id string, p model.InventoryPatch) (*model.InventoryItem, error) {
	var set postgres.SetList
	if p.Name != nil {
		set.Add("name", *p.Name)
	}
	if p.Category != nil {
		set.Add("category", string(*p.Category))
	}
	if p.Brand != nil {
		set.Add("brand", *p.Brand)
	}
	if p.Model != nil {
		set.Add("model", *p.Model)
	}
	if p.Quantity != nil {
		set.Add("quantity", *p.Quantity)
	}
	if p.Price != nil {
		set.Add("price", *p.Price)
	}
	if p.MinStock != nil {
		set.Add("min_stock", *p.MinStock)
	}

	query, args := set.UpdateQuery("inventory", id, r.Now(), columns)
	var row itemRow
	if err := r.DB.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	out := row.toModel()
	return &out, nil
}

func (r *PGRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM inventory WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
