package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"paroquia-backend/internal/domain"
	resp "paroquia-backend/internal/transport/http/response"
)

// KeyUID holds the authenticated caller uid in the gin context.
const KeyUID = "uid"

const msgLoginRequired = "Você precisa estar logado para realizar esta ação."

// Authenticate verifies the bearer token and stores the caller uid. Requests
// without a valid token stop here, before any input is read.
func Authenticate(v domain.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(ah, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusOK, resp.Fail(resp.CodeUnauthorized, string(domain.KindUnauthenticated), msgLoginRequired))
			return
		}
		uid, err := v.VerifyToken(c.Request.Context(), strings.TrimSpace(token))
		if err != nil || uid == "" {
			if err != nil {
				_ = c.Error(err)
			}
			c.AbortWithStatusJSON(http.StatusOK, resp.Fail(resp.CodeUnauthorized, string(domain.KindUnauthenticated), msgLoginRequired))
			return
		}
		c.Set(KeyUID, uid)
		c.Next()
	}
}
