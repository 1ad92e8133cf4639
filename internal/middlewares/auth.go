package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/menna-17/backend-craftora/internal/auth"
	"github.com/menna-17/backend-craftora/internal/handlerutils"
	"github.com/menna-17/backend-craftora/internal/servererrors"
	"github.com/google/uuid"
)

type contextKey struct{}

var actorKey contextKey = contextKey{}

// Actor is the decoded identity attached to the request context after a
// token passes validation.
type Actor struct {
	UserID uuid.UUID
	Role   string
}

// AuthWithContext requires a bearer token on the request and attaches the
// decoded [Actor] to the request context before handing over to h.
func (mw *middleware) AuthWithContext(h handlerutils.APIHandler) handlerutils.APIHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrNoBearerToken.Error(),
				nil,
			)
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		isValid, claims, err := mw.jwtManager.ValidateToken(tokenStr)
		if err != nil || !isValid {
			return servererrors.New(
				http.StatusBadRequest,
				servererrors.ErrInvalidToken.Error(),
				nil,
			)
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			return servererrors.New(
				http.StatusBadRequest,
				servererrors.ErrInvalidToken.Error(),
				nil,
			)
		}

		ctx := context.WithValue(
			r.Context(),
			actorKey,
			&Actor{
				UserID: userID,
				Role:   claims.Role,
			},
		)

		return h(w, r.WithContext(ctx))
	}
}

// RequireRoles fails closed with 403 unless an authenticated actor is on the
// context and its role is in allowedRoles. Must be composed after
// [middleware.AuthWithContext].
func (mw *middleware) RequireRoles(h handlerutils.APIHandler, allowedRoles ...string) handlerutils.APIHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		actor, ok := ActorFromContext(r.Context())
		if !ok || !auth.RoleAllowed(actor.Role, allowedRoles...) {
			return servererrors.New(
				http.StatusForbidden,
				servererrors.ErrAccessDenied.Error(),
				nil,
			)
		}

		return h(w, r)
	}
}

func ActorFromContext(ctx context.Context) (*Actor, bool) {
	actor, ok := ctx.Value(actorKey).(*Actor)
	if !ok || actor == nil {
		return nil, false
	}

	return actor, true
}
