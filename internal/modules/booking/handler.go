package booking

import (
	"errors"
	"net/http"
	"strconv"

	"salonbook/internal/middleware"
	"salonbook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the lifecycle onto the three route tiers: public
// carries OptionalAuth (guest bookings), authed requires a customer token,
// admin additionally requires the admin role.
func (h *Handler) RegisterRoutes(public, authed, admin *gin.RouterGroup) {
	public.GET("/stylists/:id/slots", h.GetSlots)
	public.POST("/bookings", h.CreateBooking)
	public.GET("/bookings/ref/:reference", h.GetByReference)

	authed.POST("/bookings/:id/cancel", h.CancelBooking)

	admin.PATCH("/bookings/:id/status", h.UpdateStatus)
	admin.GET("/stylists/:id/bookings", h.ListForStylist)
}

func (h *Handler) GetSlots(c *gin.Context) {
	stylistID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || stylistID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid stylist ID")
		return
	}

	date := c.Query("date")
	if date == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Query parameter date is required")
		return
	}

	slots, err := h.service.AvailableSlots(c.Request.Context(), stylistID, date)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"stylist_id": stylistID,
		"date":       date,
		"slots":      slots,
	})
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	req.CustomerID = middleware.CustomerID(c)

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) GetByReference(c *gin.Context) {
	b, err := h.service.GetByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) CancelBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking ID")
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), id, c.GetInt64("customer_id"), c.GetString("role"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) ListForStylist(c *gin.Context) {
	stylistID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || stylistID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid stylist ID")
		return
	}

	bookings, err := h.service.ListForStylist(c.Request.Context(), stylistID, c.Query("date"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking request")
	case errors.Is(err, ErrInvalidDate):
		response.Error(c, http.StatusBadRequest, "INVALID_DATE", "Date is in the past")
	case errors.Is(err, ErrSlotUnavailable):
		response.Error(c, http.StatusConflict, "SLOT_UNAVAILABLE", "Slot is not available for booking")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Status change is not allowed")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not allowed to modify this booking")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking or stylist not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
