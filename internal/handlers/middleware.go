package handlers

import (
	"net/http"
	"strings"

	"portfolio_api/internal/errs"
	"portfolio_api/internal/models"

	"github.com/gin-gonic/gin"
)

const claimsKey = "claims"

// authenticate requires "Authorization: Bearer <token>" and stores the
// verified claims in the context.
func (h *Handler) authenticate(c *gin.Context) {
	token, msg := bearerToken(c.GetHeader("Authorization"))
	if msg != "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
		return
	}
	h.verify(c, token)
}

// authenticateStream also accepts ?access_token= because browsers cannot set
// headers on websocket handshakes.
func (h *Handler) authenticateStream(c *gin.Context) {
	if c.GetHeader("Authorization") == "" {
		if token := c.Query("access_token"); token != "" {
			h.verify(c, token)
			return
		}
	}
	h.authenticate(c)
}

func (h *Handler) verify(c *gin.Context, token string) {
	claims, err := h.services.Authorization.ParseToken(token)
	if err != nil {
		if h.log != nil {
			h.log.Debugw("auth_token_rejected", "path", c.Request.URL.Path, "err", err)
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}
	c.Set(claimsKey, claims)
	c.Next()
}

// requireCapability must run after authenticate.
func (h *Handler) requireCapability(capability models.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !claims.Role.Can(capability) {
			if h.log != nil {
				h.log.Infow("auth_forbidden", "user_id", claims.UserID, "role", claims.Role, "capability", capability)
			}
			h.writeError(c, "auth_forbidden", errs.Forbidden("insufficient permissions"))
			return
		}
		c.Next()
	}
}

func claimsFrom(c *gin.Context) (models.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return models.Claims{}, false
	}
	claims, ok := v.(models.Claims)
	return claims, ok
}

// bearerToken returns the token or a client-facing reason it is unusable.
func bearerToken(header string) (string, string) {
	if header == "" {
		return "", "missing Authorization header"
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", "invalid Authorization header format"
	}
	return strings.TrimSpace(parts[1]), ""
}
