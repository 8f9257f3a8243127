package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-repair-service/internal/database/postgres"
	"github.com/fekuna/omnipos-repair-service/internal/job"
	"github.com/fekuna/omnipos-repair-service/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
)

var _ job.Repository = (*PGRepository)(nil)

const columns = `id, customer_name, customer_phone, device_brand, device_model, problem, diagnosis, status,
    estimated_cost, final_cost, parts_used, has_warranty, warranty_days, notes,
    start_date, completion_date, delivery_date, created_at, updated_at`

type jobRow struct {
	ID             string         `db:"id"`
	CustomerName   string         `db:"customer_name"`
	CustomerPhone  string         `db:"customer_phone"`
	DeviceBrand    string         `db:"device_brand"`
	DeviceModel    string         `db:"device_model"`
	Problem        string         `db:"problem"`
	Diagnosis      string         `db:"diagnosis"`
	Status         string         `db:"status"`
	EstimatedCost  float64        `db:"estimated_cost"`
	FinalCost      float64        `db:"final_cost"`
	PartsUsed      types.JSONText `db:"parts_used"`
	HasWarranty    bool           `db:"has_warranty"`
	WarrantyDays   int            `db:"warranty_days"`
	Notes          string         `db:"notes"`
	StartDate      time.Time      `db:"start_date"`
	CompletionDate *time.Time     `db:"completion_date"`
	DeliveryDate   *time.Time     `db:"delivery_date"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func (r jobRow) toModel() (model.Job, error) {
	parts := []model.PartUsed{}
	if len(r.PartsUsed) > 0 {
		if err := r.PartsUsed.Unmarshal(&parts); err != nil {
			return model.Job{}, fmt.Errorf("job %s parts_used: %w", r.ID, err)
		}
	}
	return model.Job{
		ID:             r.ID,
		CustomerName:   r.CustomerName,
		CustomerPhone:  r.CustomerPhone,
		DeviceBrand:    r.DeviceBrand,
		DeviceModel:    r.DeviceModel,
		Problem:        r.Problem,
		Diagnosis:      r.Diagnosis,
		Status:         model.JobStatus(r.Status),
		EstimatedCost:  r.EstimatedCost,
		FinalCost:      r.FinalCost,
		PartsUsed:      parts,
		HasWarranty:    r.HasWarranty,
		WarrantyDays:   r.WarrantyDays,
		Notes:          r.Notes,
		StartDate:      r.StartDate,
		CompletionDate: r.CompletionDate,
		DeliveryDate:   r.DeliveryDate,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}, nil
}

func encodeParts(parts []model.PartUsed) (types.JSONText, error) {
	if parts == nil {
		parts = []model.PartUsed{}
	}
	raw, err := json.Marshal(parts)
	if err != nil {
		return nil, err
	}
	return types.JSONText(raw), nil
}

func fromModel(j model.Job) (jobRow, error) {
	parts, err := encodeParts(j.PartsUsed)
	if err != nil {
		return jobRow{}, err
	}
	return jobRow{
		ID:             j.ID,
		CustomerName:   j.CustomerName,
		CustomerPhone:  j.CustomerPhone,
		DeviceBrand:    j.DeviceBrand,
		DeviceModel:    j.DeviceModel,
		Problem:        j.Problem,
		Diagnosis:      j.Diagnosis,
		Status:         string(j.Status),
		EstimatedCost:  j.EstimatedCost,
		FinalCost:      j.FinalCost,
		PartsUsed:      parts,
		HasWarranty:    j.HasWarranty,
		WarrantyDays:   j.WarrantyDays,
		Notes:          j.Notes,
		StartDate:      j.StartDate,
		CompletionDate: j.CompletionDate,
		DeliveryDate:   j.DeliveryDate,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
	}, nil
}

type PGRepository struct {
	DB  *sqlx.DB
	Now func() time.Time
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db, Now: time.Now}
}

func (r *PGRepository) List(ctx context.Context) ([]model.Job, error) {
	var rows []jobRow
	if err := r.DB.SelectContext(ctx, &rows, `SELECT `+columns+` FROM jobs ORDER BY created_at DESC`); err != nil {
		return nil, err
	}
	jobs := make([]model.Job, 0, len(rows))
	for _, row := range rows {
		j, err := row.toModel()
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

func (r *PGRepository) Create(ctx context.Context, j model.Job) (*model.Job, error) {
	row, err := fromModel(j)
	if err != nil {
		return nil, err
	}
	row.ID = uuid.New().String()
	now := r.Now()
	row.CreatedAt, row.UpdatedAt = now, now

	query := `
        INSERT INTO jobs (` + columns + `)
        VALUES (:id, :customer_name, :customer_phone, :device_brand, :device_model, :problem, :diagnosis, :status,
            :estimated_cost, :final_cost, :parts_used, :has_warranty, :warranty_days, :notes,
            :start_date, :completion_date, :delivery_date, :created_at, :updated_at)
        RETURNING ` + columns

	stmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var created jobRow
	if err := stmt.GetContext(ctx, &created, row); err != nil {
		return nil, err
	}
	out, err := created.toModel()
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *PGRepository) Update(ctx context.Context, id string, p model.JobPatch) (*model.Job, error) {
	set, err := updateSet(p)
	if err != nil {
		return nil, err
	}

	query, args := set.UpdateQuery("jobs", id, r.Now(), columns)
	var row jobRow
	if err := r.DB.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	out, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func updateSet(p model.JobPatch) (*postgres.SetList, error) {
	var set postgres.SetList
	if p.CustomerName != nil {
		set.Add("customer_name", *p.CustomerName)
	}
	if p.CustomerPhone != nil {
		set.Add("customer_phone", *p.CustomerPhone)
	}
	if p.DeviceBrand != nil {
		set.Add("device_brand", *p.DeviceBrand)
	}
	if p.DeviceModel != nil {
		set.Add("device_model", *p.DeviceModel)
	}
	if p.Problem != nil {
		set.Add("problem", *p.Problem)
	}
	if p.Diagnosis != nil {
		set.Add("diagnosis", *p.Diagnosis)
	}
	if p.Status != nil {
		set.Add("status", string(*p.Status))
	}
	if p.EstimatedCost != nil {
		set.Add("estimated_cost", *p.EstimatedCost)
	}
	if p.FinalCost != nil {
		set.Add("final_cost", *p.FinalCost)
	}
	if p.PartsUsed != nil {
		parts, err := encodeParts(*p.PartsUsed)
		if err != nil {
			return nil, err
		}
		set.Add("parts_used", parts)
	}
	if p.HasWarranty != nil {
		set.Add("has_warranty", *p.HasWarranty)
	}
	if p.WarrantyDays != nil {
		set.Add("warranty_days", *p.WarrantyDays)
	}
	if p.Notes != nil {
		set.Add("notes", *p.Notes)
	}
	if p.CompletionDate != nil {
		set.Add("completion_date", *p.CompletionDate)
	}
	if p.DeliveryDate != nil {
		set.Add("delivery_date", *p.DeliveryDate)
	}
	return &set, nil
}

func (r *PGRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
