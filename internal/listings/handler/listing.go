package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"homestay/internal/auth/guard"
	"homestay/internal/auth/identity"
	"homestay/internal/listings/repository"
	apperrors "homestay/pkg/errors"
	httputil "homestay/pkg/http"
	"homestay/pkg/logger"
	"homestay/pkg/model"
)

type ListingHandler struct {
	repo  repository.ListingRepository
	guard *guard.Guard
	log   *logger.Logger
}

func NewListingHandler(repo repository.ListingRepository, g *guard.Guard, log *logger.Logger) *ListingHandler {
	return &ListingHandler{
		repo:  repo,
		guard: g,
		log:   log,
	}
}

// GetByID is public; the guard has already resolved the listing or 404'd.
func (h *ListingHandler) GetByID(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	listing, ok := guard.ListingFrom(r.Context())
	if !ok {
		panic("handler: GetByID routed without RequireListing")
	}

	if err := httputil.WriteSuccess(w, listing); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

// ListMine returns the authenticated caller's own listings.
func (h *ListingHandler) ListMine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	caller, ok := identity.CallerFrom(r.Context())
	if !ok {
		panic("handler: ListMine routed without RequireAuthenticated")
	}

	listings, err := h.repo.FindListingsByOwner(r.Context(), caller.ID)
	if err != nil {
		apperrors.WriteError(w, apperrors.Internal("Failed to list listings", err))
		return
	}
	if listings == nil {
		listings = []*model.Listing{}
	}

	if err := httputil.WriteSuccess(w, listings); err != nil {
		h.log.Error("failed to write success response", "handler", "ListMine", "error", err)
	}
}

func (h *ListingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/listings/:listingID", h.guard.RequireListing("listingID", h.GetByID))
	router.GET("/api/v1/me/listings", guard.RequireAuthenticated(h.ListMine))
}
