package rating

import (
	"errors"
	"net/http"
	"strconv"

	"salonbook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(public, authed, admin *gin.RouterGroup) {
	// Mirrors the two submission flows: authenticated customers and guests.
	public.POST("/ratings/guest", h.SubmitGuest)
	authed.POST("/ratings", h.Submit)

	admin.POST("/stylists/:id/rating/recompute", h.Recompute)
}

func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	customerID := c.GetInt64("customer_id")
	r, err := h.service.Submit(c.Request.Context(), req.StylistID, &customerID, req.Value)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"rating": r})
}

func (h *Handler) SubmitGuest(c *gin.Context) {
	var req SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	r, err := h.service.Submit(c.Request.Context(), req.StylistID, nil, req.Value)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"rating": r})
}

func (h *Handler) Recompute(c *gin.Context) {
	stylistID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || stylistID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid stylist ID")
		return
	}

	avg, count, err := h.service.Recompute(c.Request.Context(), stylistID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"stylist_id":   stylistID,
		"rating":       avg,
		"review_count": count,
	})
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rating must be between 0 and 5")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Stylist not found")
	case errors.Is(err, ErrAggregateStale):
		// The rating itself committed; the caller (or an operator) should
		// trigger a recompute.
		response.Error(c, http.StatusInternalServerError, "AGGREGATE_STALE", "Rating saved but aggregate update failed")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit rating")
	}
}
