// internal/middleware/auth_middleware.go
package middleware

import (
	"crmdash-service/internal/pkg/response"
	"crmdash-service/internal/pkg/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware gates routes on a usable session credential. Token
// verification itself is the hosted backend's job; this only enforces
// the fail-fast rule: no credential, no request.
type AuthMiddleware struct {
	sessions *session.Store
	logger   *zap.Logger
}

func NewAuthMiddleware(sessions *session.Store, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		sessions: sessions,
		logger:   logger,
	}
}

func (m *AuthMiddleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := m.sessions.Credential(c.Request.Context())
		if err != nil {
			m.logger.Warn("request rejected, no usable credential", zap.Error(err))
			response.Unauthorized(c, "sign in required")
			return
		}

		c.Set("bearer_token", token)
		c.Next()
	}
}
