package repository

import (
	"context"
	"strings"
	"time"

	"taskboard/internal/domain"

	"gorm.io/gorm"
)

// TaskRepository provides DB access for tasks. Every query is scoped by
// the owning user id.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// TaskFilter narrows List results. Status/Priority values of "" or
// "all" mean no filter; Query matches title or description,
// case-insensitive.
type TaskFilter struct {
	Status   string
	Priority string
	Query    string
	Page     int
	Limit    int
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TaskRepository) GetByID(ctx context.Context, userID int64, id string) (*domain.Task, error) {
	var t domain.Task
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *TaskRepository) Delete(ctx context.Context, userID int64, id string) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Task{})
	return tx.RowsAffected, tx.Error
}

func (r *TaskRepository) List(ctx context.Context, userID int64, f TaskFilter) ([]domain.Task, int64, error) {
	q := r.filtered(ctx, userID, f)

	var total int64
	if err := q.Model(&domain.Task{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (f.Page - 1) * f.Limit
	var tasks []domain.Task
	err := q.Order("created_at DESC").
		Offset(offset).
		Limit(f.Limit).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

func (r *TaskRepository) Recent(ctx context.Context, userID int64, limit int) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&tasks).Error
	return tasks, err
}

// Stats aggregates the dashboard counters in SQL. Overdue compares the
// due date against the start of today so a task due earlier today does
// not count.
func (r *TaskRepository) Stats(ctx context.Context, userID int64, now time.Time) (*domain.TaskStats, error) {
	type row struct {
		Status string
		Count  int64
	}

	var rows []row
	err := r.db.WithContext(ctx).Model(&domain.Task{}).
		Select("status, COUNT(*) as count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &domain.TaskStats{}
	for _, rw := range rows {
		stats.Total += rw.Count
		switch domain.TaskStatus(rw.Status) {
		case domain.StatusPending:
			stats.Pending = rw.Count
		case domain.StatusInProgress:
			stats.InProgress = rw.Count
		case domain.StatusCompleted:
			stats.Completed = rw.Count
		}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	err = r.db.WithContext(ctx).Model(&domain.Task{}).
		Where("user_id = ? AND status <> ? AND due_date IS NOT NULL AND due_date < ?",
			userID, domain.StatusCompleted, today).
		Count(&stats.Overdue).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *TaskRepository) filtered(ctx context.Context, userID int64, f TaskFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if f.Status != "" && f.Status != "all" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" && f.Priority != "all" {
		q = q.Where("priority = ?", f.Priority)
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		pattern := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	return q
}
