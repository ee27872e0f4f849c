package identity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"homestay/internal/auth/token"
	"homestay/pkg/logger"
	"homestay/pkg/model"
)

const testCookie = "homestay_session"

type mockUserFinder struct {
	findFunc func(ctx context.Context, id string) (*model.User, error)
}

func (m *mockUserFinder) FindUserByID(ctx context.Context, id string) (*model.User, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, id)
	}
	return nil, errors.New("user not found")
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
}

func resolveRequest(t *testing.T, resolver *Resolver, rawToken string) (*model.User, bool, *httptest.ResponseRecorder) {
	t.Helper()

	var caller *model.User
	var authenticated bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, authenticated = CallerFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/listings/abc", nil)
	if rawToken != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: rawToken})
	}

	rec := httptest.NewRecorder()
	resolver.Middleware()(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("resolver must never terminate the request, got status %d", rec.Code)
	}
	return caller, authenticated, rec
}

func TestResolver_NoCookie(t *testing.T) {
	codec := token.NewCodec("0123456789abcdef0123456789abcdef", time.Hour)
	resolver := NewResolver(codec, &mockUserFinder{}, testCookie, testLogger())

	_, authenticated, rec := resolveRequest(t, resolver, "")
	if authenticated {
		t.Error("expected anonymous caller without a cookie")
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("expected no cookie mutation for a cookieless request")
	}
}

func TestResolver_InvalidCredential(t *testing.T) {
	codec := token.NewCodec("0123456789abcdef0123456789abcdef", time.Hour)

	tests := []struct {
		name string
		raw  string
	}{
		{"malformed", "not-a-token"},
		{"tampered", func() string {
			raw, _, _ := codec.Issue(model.PublicUser{ID: "u-1", Email: "a@b.c", Username: "a"})
			return raw + "x"
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookups := 0
			finder := &mockUserFinder{
				findFunc: func(ctx context.Context, id string) (*model.User, error) {
					lookups++
					return nil, nil
				},
			}
			resolver := NewResolver(codec, finder, testCookie, testLogger())

			_, authenticated, _ := resolveRequest(t, resolver, tt.raw)
			if authenticated {
				t.Error("expected anonymous caller for invalid credential")
			}
			if lookups != 0 {
				t.Error("user lookup must not run for an unverifiable credential")
			}
		})
	}
}

func TestResolver_ExpiredCredential(t *testing.T) {
	issuer := token.NewCodec("0123456789abcdef0123456789abcdef", -time.Hour)
	raw, _, err := issuer.Issue(model.PublicUser{ID: "u-1", Email: "a@b.c", Username: "a"})
	if err != nil {
		t.Fatalf("unexpected issue error: %v", err)
	}

	verifier := token.NewCodec("0123456789abcdef0123456789abcdef", time.Hour)
	resolver := NewResolver(verifier, &mockUserFinder{}, testCookie, testLogger())

	_, authenticated, _ := resolveRequest(t, resolver, raw)
	if authenticated {
		t.Error("expected anonymous caller for expired credential")
	}
}

func TestResolver_VanishedSubjectClearsCookie(t *testing.T) {
	codec := token.NewCodec("0123456789abcdef0123456789abcdef", time.Hour)
	raw, _, err := codec.Issue(model.PublicUser{ID: "u-gone", Email: "a@b.c", Username: "a"})
	if err != nil {
		t.Fatalf("unexpected issue error: %v", err)
	}

	finder := &mockUserFinder{
		findFunc: func(ctx context.Context, id string) (*model.User, error) {
			return nil, errors.New("user not found")
		},
	}
	resolver := NewResolver(codec, finder, testCookie, testLogger())

	_, authenticated, rec := resolveRequest(t, resolver, raw)
	if authenticated {
		t.Error("expected anonymous caller when subject no longer exists")
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected a single cleared cookie, got %d", len(cookies))
	}
	if cookies[0].Name != testCookie || cookies[0].MaxAge >= 0 || cookies[0].Value != "" {
		t.Errorf("expected cookie %s to be cleared, got value=%q maxAge=%d",
			testCookie, cookies[0].Value, cookies[0].MaxAge)
	}
}

func TestResolver_ValidCredential(t *testing.T) {
	codec := token.NewCodec("0123456789abcdef0123456789abcdef", time.Hour)
	user := &model.User{ID: "u-1", Email: "ada@example.com", Username: "ada"}

	raw, _, err := codec.Issue(user.Public())
	if err != nil {
		t.Fatalf("unexpected issue error: %v", err)
	}

	finder := &mockUserFinder{
		findFunc: func(ctx context.Context, id string) (*model.User, error) {
			if id != user.ID {
				t.Errorf("expected lookup for %s, got %s", user.ID, id)
			}
			return user, nil
		},
	}
	resolver := NewResolver(codec, finder, testCookie, testLogger())

	caller, authenticated, rec := resolveRequest(t, resolver, raw)
	if !authenticated {
		t.Fatal("expected authenticated caller")
	}
	if caller.ID != user.ID {
		t.Errorf("expected caller %s, got %s", user.ID, caller.ID)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("expected no cookie mutation for a valid credential")
	}
}

func TestSetCredentialCookie_ProductionAttributes(t *testing.T) {
	tests := []struct {
		name       string
		production bool
		secure     bool
		sameSite   http.SameSite
	}{
		{"development", false, false, 0},
		{"production", true, true, http.SameSiteLaxMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			SetCredentialCookie(rec, testCookie, "raw-token", 2*time.Hour, tt.production)

			cookies := rec.Result().Cookies()
			if len(cookies) != 1 {
				t.Fatalf("expected one cookie, got %d", len(cookies))
			}
			c := cookies[0]
			if !c.HttpOnly {
				t.Error("credential cookie must be HttpOnly")
			}
			if c.Secure != tt.secure {
				t.Errorf("expected Secure=%v, got %v", tt.secure, c.Secure)
			}
			if c.SameSite != tt.sameSite {
				t.Errorf("expected SameSite=%v, got %v", tt.sameSite, c.SameSite)
			}
			if c.MaxAge != int((2 * time.Hour).Seconds()) {
				t.Errorf("expected MaxAge matching TTL, got %d", c.MaxAge)
			}
		})
	}
}
