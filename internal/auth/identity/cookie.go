package identity

import (
	"net/http"
	"time"
)

// SetCredentialCookie installs the signed credential with an expiry matching
// the credential's TTL. Secure and SameSite=Lax are only set for production
// deployments so local HTTP development keeps working.
func SetCredentialCookie(w http.ResponseWriter, name, raw string, ttl time.Duration, production bool) {
	cookie := &http.Cookie{
		Name:     name,
		Value:    raw,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
	}
	if production {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteLaxMode
	}
	http.SetCookie(w, cookie)
}

// ClearCredentialCookie signals the client to drop a stale credential.
func ClearCredentialCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
