package task

import "taskboard/internal/domain"

// CreateTaskRequest; ID is optional — clients may pre-generate a UUID.
type CreateTaskRequest struct {
	ID          string  `json:"id"`
	Title       string  `json:"title" validate:"required,min=3,max=150"`
	Description string  `json:"description" validate:"max=1000"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"dueDate"`
}

// UpdateTaskRequest; nil fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=3,max=150"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"dueDate"`
}

type Pagination struct {
	TotalTasks  int64 `json:"totalTasks"`
	TotalPages  int64 `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
}

type ListResult struct {
	Tasks      []domain.Task `json:"tasks"`
	Pagination Pagination    `json:"pagination"`
}
