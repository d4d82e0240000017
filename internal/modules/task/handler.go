package task

import (
	"errors"
	"net/http"
	"strconv"

	"taskboard/internal/middleware"
	"taskboard/internal/pkg/response"
	"taskboard/internal/pkg/validator"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for tasks. Every route runs
// behind the session middleware, so the owner id is always present.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /tasks.
func (h *Handler) Create(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.JSON(c, http.StatusBadRequest, gin.H{"fields": fields}, "Validation failed")
		return
	}

	t, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		if isValidationError(err) {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to create task")
		return
	}

	response.JSON(c, http.StatusCreated, t, "Task created successfully")
}

// List handles GET /tasks with pagination and filters.
func (h *Handler) List(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.service.List(c.Request.Context(), userID, repository.TaskFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Query:    c.Query("query"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch tasks")
		return
	}

	response.JSON(c, http.StatusOK, result, "Tasks fetched successfully")
}

// Update handles PATCH /tasks/:id.
func (h *Handler) Update(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.JSON(c, http.StatusBadRequest, gin.H{"fields": fields}, "Validation failed")
		return
	}

	t, err := h.service.Update(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrTaskNotFound):
			response.Error(c, http.StatusNotFound, "Task not found")
		case isValidationError(err):
			response.Error(c, http.StatusBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to update task")
		}
		return
	}

	response.JSON(c, http.StatusOK, t, "Task updated successfully")
}

// Delete handles DELETE /tasks/:id.
func (h *Handler) Delete(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	if err := h.service.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			response.Error(c, http.StatusNotFound, "Task not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete task")
		return
	}

	response.JSON(c, http.StatusOK, nil, "Task deleted successfully")
}

// Stats handles GET /tasks/stats.
func (h *Handler) Stats(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	stats, err := h.service.Stats(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch task statistics")
		return
	}

	response.JSON(c, http.StatusOK, stats, "Stats fetched successfully")
}

// Recent handles GET /tasks/recent.
func (h *Handler) Recent(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	tasks, err := h.service.Recent(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch recent tasks")
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"recentTasks": tasks}, "Recent tasks fetched successfully")
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidPriority) ||
		errors.Is(err, ErrInvalidDueDate) ||
		errors.Is(err, ErrDueDateInPast)
}
