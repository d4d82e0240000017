package task

import (
	"context"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

// TaskRepositoryInterface — only the methods the task service uses.
type TaskRepositoryInterface interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, userID int64, id string) (*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, userID int64, id string) (int64, error)
	List(ctx context.Context, userID int64, f repository.TaskFilter) ([]domain.Task, int64, error)
	Recent(ctx context.Context, userID int64, limit int) ([]domain.Task, error)
	Stats(ctx context.Context, userID int64, now time.Time) (*domain.TaskStats, error)
}
