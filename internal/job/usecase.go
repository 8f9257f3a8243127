package job

import (
	"context"

	"github.com/fekuna/omnipos-repair-service/internal/model"
)

type UseCase interface {
	GetAll(ctx context.Context) []model.Job
	Get(ctx context.Context, id string) *model.Job
	Add(ctx context.Context, j model.Job) model.Job
	Update(ctx context.Context, id string, patch model.JobPatch) *model.Job
	Delete(ctx context.Context, id string) bool
	// Save creates or updates a job from a full form and runs the completion
	// side effects when the job is finished.
	Save(ctx context.Context, in SaveInput) SaveResult
	Counts(ctx context.Context) map[model.JobStatus]int
}

type SaveInput struct {
	Job model.Job
	// PaymentMethod of the repair sale recorded on completion. Cash when empty.
	PaymentMethod model.PaymentMethod
}

// SaveResult reports what Save did. The side effects are independent: a
// warning for one does not undo the others.
type SaveResult struct {
	Job      model.Job
	Sale     *model.DailySale
	Warranty *model.Warranty
	Warnings []string
}
