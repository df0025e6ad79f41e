package handlers

import (
	"crypto/subtle"
	"net/http"

	"portfolio_api/internal/errs"
	"portfolio_api/internal/models"

	"github.com/gin-gonic/gin"
)

const resetTokenHeader = "X-Admin-Reset-Token"

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type resetAdminRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    int64       `json:"id"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "credentials"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	if ok := h.bindJSON(c, &input); !ok {
		return
	}

	res, err := h.services.Authorization.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if h.log != nil && errs.IsUnauthorized(err) {
			h.log.Infow("auth_login_failed", "email", input.Email)
		}
		h.writeError(c, "auth_login_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "login successful",
		"token":      res.Token,
		"expires_at": res.ExpiresAt,
		"user":       userResponse{ID: res.User.ID, Email: res.User.Email, Role: res.User.Role},
	})
}

// @Summary Verify the bearer token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Router /api/auth/verify [get]
func (h *Handler) verifyToken(c *gin.Context) {
	claims, _ := claimsFrom(c)
	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"user":  userResponse{ID: claims.UserID, Email: claims.Email, Role: claims.Role},
	})
}

// @Summary Reset the admin account
// @Tags auth
// @Accept json
// @Produce json
// @Param X-Admin-Reset-Token header string true "operator secret"
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Router /api/auth/reset-admin [post]
func (h *Handler) resetAdmin(c *gin.Context) {
	given := c.GetHeader(resetTokenHeader)
	if given == "" || subtle.ConstantTimeCompare([]byte(given), []byte(h.resetToken)) != 1 {
		if h.log != nil {
			h.log.Warnw("auth_reset_admin_denied", "remote", c.ClientIP())
		}
		h.writeError(c, "auth_reset_admin_denied", errs.Unauthorized("invalid reset token"))
		return
	}

	var input resetAdminRequest
	if c.Request.ContentLength > 0 {
		if ok := h.bindJSON(c, &input); !ok {
			return
		}
	}

	creds, err := h.services.Authorization.ResetAdmin(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		h.writeError(c, "auth_reset_admin_failed", err)
		return
	}
	if h.log != nil {
		h.log.Warnw("auth_admin_reset", "email", creds.Email, "remote", c.ClientIP())
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "admin credentials reset",
		"email":   creds.Email,
	})
}
