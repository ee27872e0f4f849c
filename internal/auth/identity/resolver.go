package identity

import (
	"context"
	"net/http"
	"time"

	"homestay/internal/auth/token"
	"homestay/pkg/logger"
	"homestay/pkg/model"
)

// UserFinder is the slice of the users repository the resolver needs.
type UserFinder interface {
	FindUserByID(ctx context.Context, id string) (*model.User, error)
}

// Resolver recovers the caller's identity from the credential cookie, once
// per request. It never rejects a request: every failure path degrades to an
// anonymous caller so public routes stay reachable, and guards downstream
// decide whether anonymity is acceptable.
type Resolver struct {
	codec      *token.Codec
	users      UserFinder
	cookieName string
	log        *logger.Logger
}

func NewResolver(codec *token.Codec, users UserFinder, cookieName string, log *logger.Logger) *Resolver {
	return &Resolver{
		codec:      codec,
		users:      users,
		cookieName: cookieName,
		log:        log,
	}
}

// Middleware populates the caller context for all downstream handlers.
func (rs *Resolver) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(rs.cookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := rs.codec.Verify(cookie.Value)
			if err != nil {
				// Invalid or expired credential: anonymous, no error
				// surfaced to the client at this stage.
				rs.log.Debug("Credential verification failed", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
			user, err := rs.users.FindUserByID(ctx, claims.Subject)
			cancel()
			if err != nil || user == nil {
				// The subject behind a valid credential is gone; signal
				// the client to drop the cookie.
				rs.log.Warn("Credential subject could not be resolved",
					"subject", claims.Subject,
					"error", err,
				)
				ClearCredentialCookie(w, rs.cookieName)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), user)))
		})
	}
}
