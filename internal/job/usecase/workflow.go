package usecase

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-repair-service/internal/event"
	"github.com/fekuna/omnipos-repair-service/internal/job"
	"github.com/fekuna/omnipos-repair-service/internal/model"
	"go.uber.org/zap"
)

func (uc *jobUseCase) Save(ctx context.Context, in job.SaveInput) job.SaveResult {
	j := in.Job
	now := uc.now()

	var prev *model.Job
	if j.ID != "" {
		prev = uc.Get(ctx, j.ID)
	}
	if prev != nil {
		if j.CompletionDate == nil {
			j.CompletionDate = prev.CompletionDate
		}
		if j.DeliveryDate == nil {
			j.DeliveryDate = prev.DeliveryDate
		}
	}
	if j.Status.IsFinished() && j.CompletionDate == nil {
		t := now
		j.CompletionDate = &t
	}
	if j.Status == model.JobStatusDelivered && j.DeliveryDate == nil {
		t := now
		j.DeliveryDate = &t
	}

	var saved model.Job
	if prev != nil {
		updated := uc.repo.Update(ctx, prev.ID, fullPatch(j))
		if updated == nil {
			uc.logger.Warn("Job vanished before update, recreating", zap.String("id", prev.ID))
			saved = uc.Add(ctx, j)
		} else {
			saved = *updated
		}
	} else {
		j.ID = ""
		saved = uc.Add(ctx, j)
	}

	res := job.SaveResult{Job: saved}
	if !saved.Status.IsFinished() {
		return res
	}

	if prev == nil || !prev.Status.IsFinished() {
		uc.consumeParts(ctx, saved, &res)
		uc.publishCompleted(ctx, saved)
	}
	uc.recordSale(ctx, saved, in.PaymentMethod, &res)
	uc.issueWarranty(ctx, saved, &res)
	return res
}

func (uc *jobUseCase) consumeParts(ctx context.Context, j model.Job, res *job.SaveResult) {
	for _, part := range j.PartsUsed {
		item := uc.inventory.Get(ctx, part.ItemID)
		if item == nil {
			uc.warn(res, "part %s is no longer in inventory", part.ItemName)
			continue
		}
		if item.Quantity < part.Quantity {
			uc.warn(res, "not enough stock of %s: have %d, used %d", item.Name, item.Quantity, part.Quantity)
			continue
		}
		if _, err := uc.inventory.AdjustStock(ctx, part.ItemID, -part.Quantity, "job "+j.ID); err != nil {
			uc.warn(res, "could not take %s from stock: %v", item.Name, err)
		}
	}
}

func (uc *jobUseCase) recordSale(ctx context.Context, j model.Job, method model.PaymentMethod, res *job.SaveResult) {
	amount := j.ChargeAmount()
	if amount <= 0 {
		return
	}
	if existing := uc.sales.FindByJob(ctx, j.ID); existing != nil {
		return
	}
	if method == "" {
		method = model.PaymentCash
	}

	date := uc.now()
	if j.CompletionDate != nil {
		date = *j.CompletionDate
	}
	customer, jobID := j.CustomerName, j.ID
	s := uc.sales.Add(ctx, model.DailySale{
		Date: date,
		Type: model.SaleTypeRepair,
		Description: uc.describer.T("", "sale.description.repair", map[string]any{
			"Device": j.DeviceInfo(),
			"Work":   j.WorkDone(),
		}),
		Amount:        amount,
		PaymentMethod: method,
		CustomerName:  &customer,
		JobID:         &jobID,
	})
	res.Sale = &s
}

func (uc *jobUseCase) issueWarranty(ctx context.Context, j model.Job, res *job.SaveResult) {
	if !j.HasWarranty {
		return
	}
	if j.WarrantyDays <= 0 {
		uc.warn(res, "warranty requested with %d days, not issued", j.WarrantyDays)
		return
	}
	if existing := uc.warranties.FindByJob(ctx, j.ID); existing != nil {
		return
	}

	start := uc.now()
	if j.CompletionDate != nil {
		start = *j.CompletionDate
	}
	w := uc.warranties.Add(ctx, model.NewWarrantyForJob(j, start))
	res.Warranty = &w
}

func (uc *jobUseCase) publishCompleted(ctx context.Context, j model.Job) {
	ev, err := event.New(event.TypeJobCompleted, event.JobCompletedPayload{
		JobID:        j.ID,
		Status:       string(j.Status),
		CustomerName: j.CustomerName,
		Amount:       j.ChargeAmount(),
	})
	if err == nil {
		err = uc.publisher.Publish(ctx, j.ID, ev)
	}
	if err != nil {
		uc.logger.Warn("Failed to publish job event", zap.String("job_id", j.ID), zap.Error(err))
	}
}

func (uc *jobUseCase) warn(res *job.SaveResult, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	res.Warnings = append(res.Warnings, msg)
	uc.logger.Warn("Job workflow step skipped", zap.String("job_id", res.Job.ID), zap.String("reason", msg))
}

// fullPatch turns a complete job form into a patch that sets every mutable field.
func fullPatch(j model.Job) model.JobPatch {
	parts := j.PartsUsed
	if parts == nil {
		parts = []model.PartUsed{}
	}
	return model.JobPatch{
		CustomerName:   &j.CustomerName,
		CustomerPhone:  &j.CustomerPhone,
		DeviceBrand:    &j.DeviceBrand,
		DeviceModel:    &j.DeviceModel,
		Problem:        &j.Problem,
		Diagnosis:      &j.Diagnosis,
		Status:         &j.Status,
		EstimatedCost:  &j.EstimatedCost,
		FinalCost:      &j.FinalCost,
		PartsUsed:      &parts,
		HasWarranty:    &j.HasWarranty,
		WarrantyDays:   &j.WarrantyDays,
		Notes:          &j.Notes,
		CompletionDate: j.CompletionDate,
		DeliveryDate:   j.DeliveryDate,
	}
}
