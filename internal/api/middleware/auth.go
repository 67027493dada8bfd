package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"teacher-eval/backend/pkg/jwt"
	"teacher-eval/backend/pkg/response"
)

// Context keys set by JWTAuth
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextClaims = "claims"
)

// RevocationChecker reports whether a token id was revoked; pkg/redis.Client implements it
type RevocationChecker interface {
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// JWTAuth validates the Bearer access token.
// revoked may be nil, in which case the blacklist is not consulted.
func JWTAuth(jwtMgr *jwt.Manager, revoked RevocationChecker, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "يلزم تسجيل الدخول")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "ترويسة المصادقة غير صالحة")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "رمز الدخول غير صالح أو منتهي")
			c.Abort()
			return
		}

		if claims.TokenType != jwt.TokenTypeAccess {
			response.Unauthorized(c, 10002, "نوع الرمز غير صالح")
			c.Abort()
			return
		}

		if revoked != nil {
			isRevoked, err := revoked.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				// Redis down: fail open
				logger.Warn("token blacklist check failed", zap.Error(err))
			} else if isRevoked {
				response.Unauthorized(c, 10002, "تم تسجيل الخروج من هذه الجلسة")
				c.Abort()
				return
			}
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextClaims, claims)

		c.Next()
	}
}

// RoleAuth allows only the listed roles
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if role == "" {
			response.Unauthorized(c, 10002, "يلزم تسجيل الدخول")
			c.Abort()
			return
		}

		for _, r := range allowedRoles {
			if role == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "لا تملك صلاحية الوصول")
		c.Abort()
	}
}
