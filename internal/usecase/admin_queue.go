package usecase

import (
	"context"
	"errors"

	"github.com/V4T54L/transit-complaints/internal/domain"
)

var ErrInvalidMaxLen = errors.New("maxlen must be a positive integer")

// AdminQueueUseCase provides use cases for submission queue administration.
type AdminQueueUseCase struct {
	repo  domain.QueueAdminRepository
	group string
}

// NewAdminQueueUseCase creates a new AdminQueueUseCase for the given consumer group.
func NewAdminQueueUseCase(repo domain.QueueAdminRepository, group string) *AdminQueueUseCase {
	return &AdminQueueUseCase{repo: repo, group: group}
}

func (uc *AdminQueueUseCase) Stats(ctx context.Context) (*domain.QueueStats, error) {
	return uc.repo.QueueStats(ctx, uc.group)
}

func (uc *AdminQueueUseCase) Trim(ctx context.Context, maxLen int64) (int64, error) {
	if maxLen <= 0 {
		return 0, ErrInvalidMaxLen
	}
	return uc.repo.Trim(ctx, maxLen)
}
