package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fekuna/omnipos-repair-service/internal/database/postgres"
	"github.com/fekuna/omnipos-repair-service/internal/model"
	"github.com/fekuna/omnipos-repair-service/internal/warranty"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var _ warranty.Repository = (*PGRepository)(nil)

const columns = `id, job_id, customer_name, device_info, work_done, warranty_days, start_date, end_date,
    is_active, claim_date, claim_reason, created_at, updated_at`

// Customer and device come from the job when it exists remotely; the
// warranty keeps its own copy for jobs that never left the device.
const listQuery = `
    SELECT w.id, w.job_id,
        COALESCE(j.customer_name, w.customer_name) AS customer_name,
        COALESCE(j.device_brand || ' ' || j.device_model, w.device_info) AS device_info,
        w.work_done, w.warranty_days, w.start_date, w.end_date,
        w.is_active, w.claim_date, w.claim_reason, w.created_at, w.updated_at
    FROM warranties w
    LEFT JOIN jobs j ON j.id = w.job_id
    ORDER BY w.created_at DESC`

type warrantyRow struct {
	ID           string     `db:"id"`
	JobID        string     `db:"job_id"`
	CustomerName string     `db:"customer_name"`
	DeviceInfo   string     `db:"device_info"`
	WorkDone     string     `db:"work_done"`
	WarrantyDays int        `db:"warranty_days"`
	StartDate    time.Time  `db:"start_date"`
	EndDate      time.Time  `db:"end_date"`
	IsActive     bool       `db:"is_active"`
	ClaimDate    *time.Time `db:"claim_date"`
	ClaimReason  *string    `db:"claim_reason"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

func (r warrantyRow) toModel() model.Warranty {
	return model.Warranty{
		ID:           r.ID,
		JobID:        r.JobID,
		CustomerName: r.CustomerName,
		DeviceInfo:   r.DeviceInfo,
		WorkDone:     r.WorkDone,
		WarrantyDays: r.WarrantyDays,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		IsActive:     r.IsActive && r.ClaimDate == nil,
		ClaimDate:    r.ClaimDate,
		ClaimReason:  r.ClaimReason,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func fromModel(w model.Warranty) warrantyRow {
	return warrantyRow{
		ID:           w.ID,
		JobID:        w.JobID,
		CustomerName: w.CustomerName,
		DeviceInfo:   w.DeviceInfo,
		WorkDone:     w.WorkDone,
		WarrantyDays: w.WarrantyDays,
		StartDate:    w.StartDate,
		EndDate:      w.EndDate,
		IsActive:     w.IsActive,
		ClaimDate:    w.ClaimDate,
		ClaimReason:  w.ClaimReason,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
}

type PGRepository struct {
	DB  *sqlx.DB
	Now func() time.Time
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db, Now: time.Now}
}

func (r *PGRepository) List(ctx context.Context) ([]model.Warranty, error) {
	var rows []warrantyRow
	if err := r.DB.SelectContext(ctx, &rows, listQuery); err != nil {
		return nil, err
	}
	out := make([]model.Warranty, len(rows))
	for i, row := range rows {
		out[i] = row.toModel()
	}
	return out, nil
}

func (r *PGRepository) Create(ctx context.Context, w model.Warranty) (*model.Warranty, error) {
	row := fromModel(w)
	row.ID = uuid.New().String()
	now := r.Now()
	row.CreatedAt, row.UpdatedAt = now, now

	query := `
        INSERT INTO warranties (` + columns + `)
        VALUES (:id, :job_id, :customer_name, :device_info, :work_done, :warranty_days, :start_date, :end_date,
            :is_active, :claim_date, :claim_reason, :created_at, :updated_at)
        RETURNING ` + columns

	stmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var created warrantyRow
	if err := stmt.GetContext(ctx, &created, row); err != nil {
		return nil, err
	}
	out := created.toModel()
	return &out, nil
}

func (r *PGRepository) Update(ctx context.Context, id string, p model.WarrantyPatch) (*model.Warranty, error) {
	var set postgres.SetList
	if p.CustomerName != nil {
		set.Add("customer_name", *p.CustomerName)
	}
	if p.DeviceInfo != nil {
		set.Add("device_info", *p.DeviceInfo)
	}
	if p.WorkDone != nil {
		set.Add("work_done", *p.WorkDone)
	}
	if p.WarrantyDays != nil {
		set.Add("warranty_days", *p.WarrantyDays)
	}
	if p.StartDate != nil {
		set.Add("start_date", *p.StartDate)
	}
	if p.EndDate != nil {
		set.Add("end_date", *p.EndDate)
	}
	switch {
	case p.ClaimDate != nil:
		set.Add("is_active", false)
	case p.IsActive != nil:
		// a recorded claim keeps the warranty inactive
		set.AddExpr("is_active", "CASE WHEN claim_date IS NULL THEN %s ELSE FALSE END", *p.IsActive)
	}
	if p.ClaimDate != nil {
		set.Add("claim_date", *p.ClaimDate)
	}
	if p.ClaimReason != nil {
		set.Add("claim_reason", *p.ClaimReason)
	}

	query, args := set.UpdateQuery("warranties", id, r.Now(), columns)
	var row warrantyRow
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
	res, err := r.DB.ExecContext(ctx, `DELETE FROM warranties WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
