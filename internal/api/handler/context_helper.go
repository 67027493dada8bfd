package handler

import (
	"github.com/gin-gonic/gin"

	"teacher-eval/backend/internal/api/middleware"
	"teacher-eval/backend/pkg/jwt"
	"teacher-eval/backend/pkg/response"
)

// MustGetUserID reads the user id injected by JWTAuth.
// On false a 401 has been written and the caller should return.
func MustGetUserID(c *gin.Context) (string, bool) {
	s := c.GetString(middleware.ContextUserID)
	if s == "" {
		response.Unauthorized(c, 10002, "يلزم تسجيل الدخول")
		return "", false
	}
	return s, true
}

// MustGetRole reads the role injected by JWTAuth
func MustGetRole(c *gin.Context) (string, bool) {
	s := c.GetString(middleware.ContextRole)
	if s == "" {
		response.Unauthorized(c, 10002, "يلزم تسجيل الدخول")
		return "", false
	}
	return s, true
}

// tokenClaims the parsed access token, nil outside JWTAuth
func tokenClaims(c *gin.Context) *jwt.Claims {
	v, ok := c.Get(middleware.ContextClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*jwt.Claims)
	return claims
}
