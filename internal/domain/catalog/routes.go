package catalog

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts /categories and /models. Reads are public, writes
// pass through guard.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, guard gin.HandlerFunc) {
	categories := r.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.GET("/:id", h.GetCategory)
		categories.POST("", guard, h.CreateCategory)
		categories.PUT("/:id", guard, h.UpdateCategory)
		categories.DELETE("/:id", guard, h.DeleteCategory)
	}

	models := r.Group("/models")
	{
		models.GET("", h.ListModels)
		models.GET("/:id", h.GetModel)
		models.POST("", guard, h.CreateModel)
		models.PUT("/:id", guard, h.UpdateModel)
		models.DELETE("/:id", guard, h.DeleteModel)
	}
}
