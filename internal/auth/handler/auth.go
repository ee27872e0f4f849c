package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"homestay/internal/auth/identity"
	"homestay/internal/auth/service"
	"homestay/pkg/config"
	apperrors "homestay/pkg/errors"
	httputil "homestay/pkg/http"
	"homestay/pkg/logger"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthHandler struct {
	service service.AuthService
	cfg     *config.Config
	log     *logger.Logger
}

func NewAuthHandler(service service.AuthService, cfg *config.Config, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		cfg:     cfg,
		log:     log,
	}
}

// Login exchanges an email and password for a credential cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		apperrors.WriteError(w, apperrors.Validation("Validation failed", map[string]string{
			"email":    "email and password are required",
			"password": "email and password are required",
		}))
		return
	}

	user, raw, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}

	identity.SetCredentialCookie(w, h.cfg.CredentialCookie, raw, h.cfg.TokenTTL, h.cfg.IsProduction())

	if err := httputil.WriteSuccess(w, user.Public()); err != nil {
		h.log.Error("failed to write success response", "handler", "Login", "error", err)
	}
}

// Logout clears the credential cookie. Logging out an anonymous caller is a
// no-op, not an error.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity.ClearCredentialCookie(w, h.cfg.CredentialCookie)
	httputil.WriteNoContent(w)
}

// Session reports who the caller is. Anonymous callers get a null body, not
// a 401, so clients can probe their own state cheaply.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	caller, ok := identity.CallerFrom(r.Context())
	if !ok {
		if err := httputil.WriteJSON(w, http.StatusOK, map[string]any{"data": nil}); err != nil {
			h.log.Error("failed to write success response", "handler", "Session", "error", err)
		}
		return
	}

	if err := httputil.WriteSuccess(w, caller.Public()); err != nil {
		h.log.Error("failed to write success response", "handler", "Session", "error", err)
	}
}

func (h *AuthHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/auth/login", h.Login)
	router.DELETE("/api/v1/auth/logout", h.Logout)
	router.GET("/api/v1/auth/session", h.Session)
}
