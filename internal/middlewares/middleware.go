package middlewares

import "github.com/menna-17/backend-craftora/internal/auth"

type tokenManager interface {
	ValidateToken(tokenStr string) (isValid bool, claims *auth.TokenClaims, err error)
}

type middleware struct {
	jwtManager tokenManager
}

func NewMiddleware(tokenManager tokenManager) *middleware {
	return &middleware{
		jwtManager: tokenManager,
	}
}
