package warranty

import (
	"context"
	"errors"
	"time"

	"github.com/fekuna/omnipos-repair-service/internal/model"
)

var (
	ErrWarrantyNotFound = errors.New("warranty not found")
	ErrAlreadyClaimed   = errors.New("warranty already claimed")
)

type UseCase interface {
	GetAll(ctx context.Context) []model.Warranty
	FindByJob(ctx context.Context, jobID string) *model.Warranty
	Add(ctx context.Context, w model.Warranty) model.Warranty
	Update(ctx context.Context, id string, patch model.WarrantyPatch) *model.Warranty
	// ProcessClaim records a claim and deactivates the warranty. A warranty
	// can be claimed once.
	ProcessClaim(ctx context.Context, id, reason string) (*model.Warranty, error)
	ListExpiringSoon(ctx context.Context, now time.Time) []model.Warranty
}
