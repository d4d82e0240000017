package task

import (
	"context"
	"errors"
	"strings"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const recentLimit = 10

// Service contains the business logic for owner-scoped task CRUD and
// the dashboard aggregates.
type Service struct {
	tasks TaskRepositoryInterface
}

func NewService(tasks TaskRepositoryInterface) *Service {
	return &Service{tasks: tasks}
}

func (s *Service) Create(ctx context.Context, userID int64, req CreateTaskRequest) (*domain.Task, error) {
	status := domain.StatusPending
	if req.Status != "" {
		status = domain.TaskStatus(req.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
	}

	priority := domain.PriorityMedium
	if req.Priority != "" {
		priority = domain.TaskPriority(req.Priority)
		if !priority.Valid() {
			return nil, ErrInvalidPriority
		}
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.NewString()
	}

	t := &domain.Task{
		ID:          id,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Status:      status,
		Priority:    priority,
		DueDate:     dueDate,
		UserID:      userID,
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) List(ctx context.Context, userID int64, f repository.TaskFilter) (*ListResult, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}

	tasks, total, err := s.tasks.List(ctx, userID, f)
	if err != nil {
		return nil, err
	}

	totalPages := total / int64(f.Limit)
	if total%int64(f.Limit) != 0 {
		totalPages++
	}

	if tasks == nil {
		tasks = []domain.Task{}
	}
	return &ListResult{
		Tasks: tasks,
		Pagination: Pagination{
			TotalTasks:  total,
			TotalPages:  totalPages,
			CurrentPage: f.Page,
			PageSize:    f.Limit,
		},
	}, nil
}

func (s *Service) Update(ctx context.Context, userID int64, id string, req UpdateTaskRequest) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		t.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		t.Description = strings.TrimSpace(*req.Description)
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
		t.Status = status
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		if !priority.Valid() {
			return nil, ErrInvalidPriority
		}
		t.Priority = priority
	}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(req.DueDate)
		if err != nil {
			return nil, err
		}
		t.DueDate = dueDate
	}

	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, userID int64, id string) error {
	affected, err := s.tasks.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (s *Service) Stats(ctx context.Context, userID int64) (*domain.TaskStats, error) {
	return s.tasks.Stats(ctx, userID, time.Now())
}

func (s *Service) Recent(ctx context.Context, userID int64) ([]domain.Task, error) {
	tasks, err := s.tasks.Recent(ctx, userID, recentLimit)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

// parseDueDate accepts RFC3339 or plain dates and rejects values before
// today (date precision, local time).
func parseDueDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}

	v := strings.TrimSpace(*raw)
	due, err := time.Parse(time.RFC3339, v)
	if err != nil {
		due, err = time.Parse("2006-01-02", v)
		if err != nil {
			return nil, ErrInvalidDueDate
		}
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, now.Location())
	if dueDay.Before(today) {
		return nil, ErrDueDateInPast
	}
	return &due, nil
}
