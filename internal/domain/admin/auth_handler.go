package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tigermarine/internal/pkg/response"
	"tigermarine/internal/pkg/validator"
)

type AuthHandler struct {
	service *Service
}

func NewAuthHandler(service *Service) *AuthHandler {
	return &AuthHandler{service: service}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login godoc
// @Summary Admin Login
// @Description Authenticate as admin and get JWT token
// @Tags Admin Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400,401,403 {object} map[string]interface{}
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	token, admin, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "AUTH_FAILED", "Invalid email or password")
		return
	case errors.Is(err, ErrAccountDisabled):
		response.Error(c, http.StatusForbidden, "ACCOUNT_DISABLED", "Account is disabled")
		return
	case err != nil:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Login failed")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   int64(h.service.jwt.TTL().Seconds()),
		"admin":        admin,
	})
}
