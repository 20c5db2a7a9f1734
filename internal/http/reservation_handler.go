package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"carwash-service/internal/http/middleware"
	"carwash-service/internal/service"
)

const scheduledDateLayout = "2006-01-02"

func (h *Handler) createReservation(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing", codeUnauthenticated))
		return
	}

	var req struct {
		VehicleID     string   `json:"vehicle_id" binding:"required"`
		ServiceID     string   `json:"service_id" binding:"required"`
		ScheduledDate string   `json:"scheduled_date" binding:"required"`
		ScheduledTime string   `json:"scheduled_time" binding:"required"`
		Address       string   `json:"address" binding:"required"`
		Latitude      *float64 `json:"latitude"`
		Longitude     *float64 `json:"longitude"`
		Notes         string   `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error(), codeValidation))
		return
	}

	vehicleID, ok := parseBodyID(c, req.VehicleID, "vehicle_id")
	if !ok {
		return
	}
	serviceID, ok := parseBodyID(c, req.ServiceID, "service_id")
	if !ok {
		return
	}
	scheduledDate, err := time.Parse(scheduledDateLayout, strings.TrimSpace(req.ScheduledDate))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid scheduled_date", codeValidation))
		return
	}

	input := service.CreateReservationInput{
		VehicleID:     vehicleID,
		ServiceID:     serviceID,
		ScheduledDate: scheduledDate,
		ScheduledTime: req.ScheduledTime,
		Address:       req.Address,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Notes:         req.Notes,
	}

	reservation, err := h.reservationService.Create(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(reservation))
}

func (h *Handler) listReservations(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing", codeUnauthenticated))
		return
	}

	limit, offset := parsePagination(c)
	opts := service.ListReservationsOptions{
		Statuses: parseStatuses(c),
		Limit:    limit,
		Offset:   offset,
	}
	if raw := strings.TrimSpace(c.Query("date_from")); raw != "" {
		from, err := time.Parse(scheduledDateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid date_from", codeValidation))
			return
		}
		opts.DateFrom = &from
	}
	if raw := strings.TrimSpace(c.Query("date_to")); raw != "" {
		to, err := time.Parse(scheduledDateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid date_to", codeValidation))
			return
		}
		opts.DateTo = &to
	}

	reservations, err := h.reservationService.List(c.Request.Context(), principal, opts)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": reservations}))
}

func (h *Handler) getReservation(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing", codeUnauthenticated))
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reservation, err := h.reservationService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(reservation))
}

func (h *Handler) cancelReservation(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing", codeUnauthenticated))
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.reservationService.Cancel(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"status": "cancelled"}))
}

func (h *Handler) updateReservationSchedule(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing", codeUnauthenticated))
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		ScheduledDate string `json:"scheduled_date" binding:"required"`
		ScheduledTime string `json:"scheduled_time" binding:"required"`
		Address       string `json:"address"`
		Notes         string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error(), codeValidation))
		return
	}

	scheduledDate, err := time.Parse(scheduledDateLayout, strings.TrimSpace(req.ScheduledDate))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid scheduled_date", codeValidation))
		return
	}

	input := service.UpdateScheduleInput{
		ScheduledDate: scheduledDate,
		ScheduledTime: req.ScheduledTime,
		Address:       req.Address,
		Notes:         req.Notes,
	}

	reservation, err := h.reservationService.UpdateSchedule(c.Request.Context(), principal, id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(reservation))
}

func (h *Handler) deleteReservation(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing", codeUnauthenticated))
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.reservationService.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"status": "deleted"}))
}
