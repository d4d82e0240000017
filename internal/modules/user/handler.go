package user

import (
	"errors"
	"net/http"

	"taskboard/internal/middleware"
	"taskboard/internal/pkg/response"
	"taskboard/internal/pkg/upload"

	"github.com/gin-gonic/gin"
)

// Handler manages the profile endpoints. Both run behind the session
// middleware.
type Handler struct {
	service *Service
	storage *upload.Storage
}

func NewHandler(service *Service, storage *upload.Storage) *Handler {
	return &Handler{service: service, storage: storage}
}

// GetProfile handles GET /users/profile; the middleware already
// attached the sanitized user.
func (h *Handler) GetProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		response.Error(c, http.StatusUnauthorized, "User not found")
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"user": user}, "Profile fetched successfully")
}

// UpdateProfile handles PATCH /users/profile (multipart: optional
// name, optional profile image).
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var profileURL *string
	if file, err := c.FormFile("profile"); err == nil && file != nil {
		url, err := h.storage.SaveImage(c, file, "profiles")
		if err != nil {
			switch {
			case errors.Is(err, upload.ErrNotAnImage), errors.Is(err, upload.ErrTooLarge):
				response.Error(c, http.StatusBadRequest, "Profile must be an image up to 5MB")
			default:
				response.Error(c, http.StatusInternalServerError, "Failed to store profile image")
			}
			return
		}
		profileURL = &url
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), userID, c.PostForm("name"), profileURL)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"user": user}, "Profile updated successfully")
}
