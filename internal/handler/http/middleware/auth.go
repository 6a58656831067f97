package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/sala-hr/attendance-backend-go/internal/handler/http/response"
	appJWT "github.com/sala-hr/attendance-backend-go/internal/pkg/jwt"
)

type contextKey string

const actorKey contextKey = "actor"

// Actor is the authenticated identity extracted from the bearer token.
type Actor struct {
	ID   string
	Name string
	Role string
}

// ActorFromContext returns the actor set by AuthRequired.
func ActorFromContext(ctx context.Context) Actor {
	actor, _ := ctx.Value(actorKey).(Actor)
	return actor
}

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, "Missing bearer token")
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.Unauthorized(w, "Invalid token claims")
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.Unauthorized(w, "Invalid token type")
				return
			}

			actor := Actor{}
			actor.ID, _ = claims["user_id"].(string)
			actor.Name, _ = claims["name"].(string)
			actor.Role, _ = claims["role"].(string)

			ctx := context.WithValue(r.Context(), actorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// AdminOnly rejects callers whose token does not carry the admin role.
// Mutating endpoints (create on behalf of, edits, decisions, deletes) are
// admin actions.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ActorFromContext(r.Context()).Role != appJWT.RoleAdmin {
			response.Forbidden(w, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
