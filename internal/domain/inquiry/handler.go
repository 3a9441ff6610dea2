package inquiry

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"tigermarine/internal/pkg/jwt"
	"tigermarine/internal/pkg/response"
	"tigermarine/internal/pkg/validator"
)

type Handler struct {
	service      *Service
	hub          *Hub
	jwtService   *jwt.Service
	authRequired bool
	upgrader     websocket.Upgrader
	log          *zap.Logger
}

// NewHandler wires the inquiry endpoints. allowedOrigins restricts the
// websocket handshake; "*" allows any origin.
func NewHandler(service *Service, hub *Hub, jwtService *jwt.Service, authRequired bool, allowedOrigins []string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}
	return &Handler{
		service:      service,
		hub:          hub,
		jwtService:   jwtService,
		authRequired: authRequired,
		log:          log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origins["*"] || origins[origin]
			},
		},
	}
}

// SubmitContact godoc
// @Summary Submit the contact form
// @Tags Inquiries
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/inquiries/contact [post]
func (h *Handler) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	req.Normalize()
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	inq, err := h.service.SubmitContact(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit contact form")
		return
	}
	submitted(c, "Contact form submitted successfully", inq)
}

// SubmitCustomizer godoc
// @Summary Submit a customizer build inquiry
// @Tags Inquiries
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/inquiries/customizer [post]
func (h *Handler) SubmitCustomizer(c *gin.Context) {
	var req CustomizerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	req.Normalize()
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	inq, err := h.service.SubmitCustomizer(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit customizer inquiry")
		return
	}
	submitted(c, "Customizer inquiry submitted successfully", inq)
}

// List godoc
// @Summary List inquiries, newest first
// @Tags Inquiries
// @Produce json
// @Param type query string false "contact | customizer"
// @Param limit query integer false "Page size (default 50, max 200)"
// @Param offset query integer false "Rows to skip"
// @Success 200 {object} map[string]interface{}
// @Router /api/inquiries [get]
func (h *Handler) List(c *gin.Context) {
	f := ListFilter{Type: c.Query("type")}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be an integer")
			return
		}
		f.Limit = n
	}
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "offset must be an integer")
			return
		}
		f.Offset = n
	}

	items, total, f, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		if errors.Is(err, ErrInvalidType) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch inquiries")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
		"total":   total,
		"limit":   f.Limit,
		"offset":  f.Offset,
	})
}

// Stream upgrades to a websocket that receives every new inquiry. Browsers
// cannot set headers on the handshake, so the token may come as ?token=.
func (h *Handler) Stream(c *gin.Context) {
	if h.authRequired {
		token := c.Query("token")
		if token == "" {
			token, _ = strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		}
		claims, err := h.jwtService.ValidateToken(token)
		if err != nil || claims.Role != "admin" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	h.hub.ServeWS(conn)
}

func submitted(c *gin.Context, message string, inq *Inquiry) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   message,
		"emailSent": inq.EmailSent,
		"data":      gin.H{"id": inq.ID},
	})
}
