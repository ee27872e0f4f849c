package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"homestay/internal/auth/guard"
	"homestay/internal/auth/identity"
	"homestay/internal/bookings/service"
	apperrors "homestay/pkg/errors"
	httputil "homestay/pkg/http"
	"homestay/pkg/logger"
	"homestay/pkg/model"
)

type BookingHandler struct {
	service service.BookingService
	guard   *guard.Guard
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, g *guard.Guard, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		guard:   g,
		log:     log,
	}
}

// Create books the resolved listing for the authenticated caller. The guard
// chain has already established that the caller is signed in, the listing
// exists, and the caller does not own it.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	caller, listing := h.resolved(r)

	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}

	booking, err := h.service.Create(r.Context(), listing, caller, &req)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

// ListForListing returns the listing's bookings scoped to the caller: the
// owner sees everything, any other caller sees only their own.
func (h *BookingHandler) ListForListing(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	caller, listing := h.resolved(r)

	bookings, err := h.service.ListForListing(r.Context(), listing, caller)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	if bookings == nil {
		bookings = []*model.Booking{}
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "ListForListing", "error", err)
	}
}

// Cancel deletes the resolved booking. RequireBookingOwner has already
// verified the caller made it.
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	booking, ok := guard.BookingFrom(r.Context())
	if !ok {
		panic("handler: Cancel routed without RequireBooking")
	}

	if err := h.service.Cancel(r.Context(), booking); err != nil {
		apperrors.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BookingHandler) resolved(r *http.Request) (*model.User, *model.Listing) {
	caller, ok := identity.CallerFrom(r.Context())
	if !ok {
		panic("handler: booking route composed without RequireAuthenticated")
	}
	listing, ok := guard.ListingFrom(r.Context())
	if !ok {
		panic("handler: booking route composed without RequireListing")
	}
	return caller, listing
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/listings/:listingID/bookings",
		guard.RequireAuthenticated(
			h.guard.RequireListing("listingID",
				h.guard.RequireNotOwner(h.Create))))

	router.GET("/api/v1/listings/:listingID/bookings",
		guard.RequireAuthenticated(
			h.guard.RequireListing("listingID", h.ListForListing)))

	router.DELETE("/api/v1/bookings/:bookingID",
		guard.RequireAuthenticated(
			h.guard.RequireBooking("bookingID",
				h.guard.RequireBookingOwner(h.Cancel))))
}
