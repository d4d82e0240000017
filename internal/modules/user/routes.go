package user

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	users := protected.Group("/users")
	{
		users.GET("/profile", h.GetProfile)
		users.PATCH("/profile", h.UpdateProfile)
	}
}
