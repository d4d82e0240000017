package auth

import (
	"errors"
	"net/http"

	"taskboard/internal/pkg/response"
	"taskboard/internal/pkg/upload"
	"taskboard/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication: request
// decoding, error mapping, and the cookie lifecycle.
type Handler struct {
	service *Service
	storage *upload.Storage
	cookies CookieWriter
}

func NewHandler(service *Service, storage *upload.Storage, cookies CookieWriter) *Handler {
	return &Handler{
		service: service,
		storage: storage,
		cookies: cookies,
	}
}

// Signup handles POST /auth/signup (multipart: name, email, password,
// optional profile image).
func (h *Handler) Signup(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.JSON(c, http.StatusBadRequest, gin.H{"fields": fields}, "Validation failed")
		return
	}

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

	result, err := h.service.Register(c.Request.Context(), req, profileURL)
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			response.Error(c, http.StatusBadRequest, "User with email or username already exists")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Something went wrong during signup")
		return
	}

	h.cookies.SetSession(c, result.AccessToken, result.RefreshToken)
	response.JSON(c, http.StatusCreated, result.User, "User registered successfully")
}

// Signin handles POST /auth/signin.
func (h *Handler) Signin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.JSON(c, http.StatusBadRequest, gin.H{"fields": fields}, "Validation failed")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "User not found")
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "Invalid credentials")
		default:
			response.Error(c, http.StatusInternalServerError, "Something went wrong during signin")
		}
		return
	}

	h.cookies.SetSession(c, result.AccessToken, result.RefreshToken)
	response.JSON(c, http.StatusOK, result.User, "Login successful")
}

// Refresh handles POST /auth/refresh. The same service routine backs
// the middleware's silent refresh.
func (h *Handler) Refresh(c *gin.Context) {
	refreshRaw, err := c.Cookie(RefreshCookieName)
	if err != nil || refreshRaw == "" {
		response.Error(c, http.StatusUnauthorized, "No refresh token provided")
		return
	}

	result, err := h.service.Refresh(c.Request.Context(), refreshRaw)
	if err != nil {
		switch {
		case errors.Is(err, ErrRefreshTokenMismatch):
			response.Error(c, http.StatusForbidden, "Token mismatch or expired")
		case errors.Is(err, ErrInvalidRefreshToken):
			response.Error(c, http.StatusUnauthorized, "Invalid or expired refresh token")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to refresh session")
		}
		return
	}

	h.cookies.SetSession(c, result.AccessToken, result.RefreshToken)
	response.JSON(c, http.StatusOK, nil, "Access token refreshed successfully")
}

// Signout handles POST /auth/signout. Always succeeds from the
// client's perspective: cookies are cleared no matter what the refresh
// cookie decoded to.
func (h *Handler) Signout(c *gin.Context) {
	refreshRaw, _ := c.Cookie(RefreshCookieName)
	if err := h.service.Logout(c.Request.Context(), refreshRaw); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to logout")
		return
	}

	h.cookies.Clear(c)
	response.JSON(c, http.StatusOK, nil, "Logged out successfully")
}
