package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"homestay/internal/auth/guard"
	"homestay/internal/auth/identity"
	"homestay/internal/reviews/service"
	apperrors "homestay/pkg/errors"
	httputil "homestay/pkg/http"
	"homestay/pkg/logger"
	"homestay/pkg/model"
)

type ReviewHandler struct {
	service service.ReviewService
	guard   *guard.Guard
	log     *logger.Logger
}

func NewReviewHandler(service service.ReviewService, g *guard.Guard, log *logger.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		guard:   g,
		log:     log,
	}
}

// Create posts a review on the resolved listing. The guard chain has
// verified the caller is signed in and does not own the listing.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	caller, ok := identity.CallerFrom(r.Context())
	if !ok {
		panic("handler: review route composed without RequireAuthenticated")
	}
	listing, ok := guard.ListingFrom(r.Context())
	if !ok {
		panic("handler: review route composed without RequireListing")
	}

	var req model.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}

	review, err := h.service.Create(r.Context(), listing, caller, &req)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}

	if err := httputil.WriteCreated(w, review); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

// ListForListing is public; anyone can read a listing's reviews.
func (h *ReviewHandler) ListForListing(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	listing, ok := guard.ListingFrom(r.Context())
	if !ok {
		panic("handler: review route composed without RequireListing")
	}

	reviews, err := h.service.ListForListing(r.Context(), listing)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	if reviews == nil {
		reviews = []*model.Review{}
	}

	if err := httputil.WriteSuccess(w, reviews); err != nil {
		h.log.Error("failed to write success response", "handler", "ListForListing", "error", err)
	}
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	review, ok := guard.ReviewFrom(r.Context())
	if !ok {
		panic("handler: Update routed without RequireReviewOwner")
	}

	var update model.ReviewUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		apperrors.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}

	edited, err := h.service.Update(r.Context(), review, &update)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, edited); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "error", err)
	}
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	review, ok := guard.ReviewFrom(r.Context())
	if !ok {
		panic("handler: Delete routed without RequireReviewOwner")
	}

	if err := h.service.Delete(r.Context(), review); err != nil {
		apperrors.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *ReviewHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/listings/:listingID/reviews",
		guard.RequireAuthenticated(
			h.guard.RequireListing("listingID",
				h.guard.RequireNotOwner(h.Create))))

	router.GET("/api/v1/listings/:listingID/reviews",
		h.guard.RequireListing("listingID", h.ListForListing))

	router.PATCH("/api/v1/reviews/:reviewID",
		guard.RequireAuthenticated(
			h.guard.RequireReviewOwner("reviewID", h.Update)))

	router.DELETE("/api/v1/reviews/:reviewID",
		guard.RequireAuthenticated(
			h.guard.RequireReviewOwner("reviewID", h.Delete)))
}
