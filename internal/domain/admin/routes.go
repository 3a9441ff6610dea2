package admin

import "github.com/gin-gonic/gin"

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/auth/login", h.Login)
}
