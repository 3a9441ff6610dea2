package inquiry

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts /inquiries. Submissions are public; listing goes
// through guard and the stream authenticates itself.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, guard gin.HandlerFunc) {
	inquiries := r.Group("/inquiries")
	{
		inquiries.POST("/contact", h.SubmitContact)
		inquiries.POST("/customizer", h.SubmitCustomizer)
		inquiries.GET("", guard, h.List)
		inquiries.GET("/stream", h.Stream)
	}
}
