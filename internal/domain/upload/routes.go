package upload

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the upload endpoints under /upload. guard wraps the
// mutating routes (admin auth when enabled).
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, guard gin.HandlerFunc) {
	uploads := r.Group("/upload")
	{
		uploads.GET("/list", h.List)
		uploads.POST("/single", guard, h.UploadSingle)
		uploads.POST("/multiple", guard, h.UploadMultiple)
		uploads.DELETE("/delete", guard, h.Delete)
	}
}
