package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"carwash-service/internal/http/middleware"
	"carwash-service/internal/service"
)

func (h *Handler) createRating(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing", codeUnauthenticated))
		return
	}

	var req struct {
		ReservationID string `json:"reservation_id" binding:"required"`
		Stars         int    `json:"stars" binding:"required"`
		Comment       string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error(), codeValidation))
		return
	}

	reservationID, ok := parseBodyID(c, req.ReservationID, "reservation_id")
	if !ok {
		return
	}

	input := service.CreateRatingInput{
		ReservationID: reservationID,
		Stars:         req.Stars,
		Comment:       req.Comment,
	}

	rating, err := h.ratingService.Create(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(rating))
}

func (h *Handler) washerRatings(c *gin.Context) {
	washerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}

	summary, err := h.ratingService.ForWasher(c.Request.Context(), washerID, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(summary))
}
