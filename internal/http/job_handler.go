package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"carwash-service/internal/http/middleware"
	"carwash-service/internal/metrics"
	"carwash-service/internal/service"
)

func (h *Handler) listAvailableJobs(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing", codeUnauthenticated))
		return
	}

	limit, offset := parsePagination(c)
	jobs, err := h.jobService.AvailableJobs(c.Request.Context(), principal, limit, offset)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": jobs}))
}

func (h *Handler) listMyJobs(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing", codeUnauthenticated))
		return
	}

	limit, offset := parsePagination(c)
	jobs, err := h.jobService.MyJobs(c.Request.Context(), principal, parseStatuses(c), limit, offset)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": jobs}))
}

func (h *Handler) acceptJob(c *gin.Context) {
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
		EstimatedArrival *string `json:"estimated_arrival"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse(err.Error(), codeValidation))
			return
		}
	}

	reservation, err := h.jobService.Accept(c.Request.Context(), principal, id, req.EstimatedArrival)
	if err != nil {
		switch err {
		case service.ErrConflict:
			metrics.IncJobAccept("lost_race")
		case service.ErrInvalidStatus:
			metrics.IncJobAccept("invalid_status")
		default:
			metrics.IncJobAccept("error")
		}
		h.handleError(c, err)
		return
	}

	metrics.IncJobAccept("accepted")
	c.JSON(http.StatusOK, successResponse(reservation))
}

func (h *Handler) startJob(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing", codeUnauthenticated))
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reservation, err := h.jobService.Start(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(reservation))
}

func (h *Handler) completeJob(c *gin.Context) {
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
		BeforePhotos []string `json:"before_photos"`
		AfterPhotos  []string `json:"after_photos"`
		Notes        string   `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error(), codeValidation))
		return
	}

	input := service.CompleteJobInput{
		BeforePhotos: req.BeforePhotos,
		AfterPhotos:  req.AfterPhotos,
		Notes:        req.Notes,
	}

	reservation, err := h.jobService.Complete(c.Request.Context(), principal, id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(reservation))
}

func (h *Handler) getProof(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing", codeUnauthenticated))
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	proof, err := h.jobService.Proof(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(proof))
}

func (h *Handler) nearbyWashers(c *gin.Context) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(c.Query("lat")), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid lat", codeValidation))
		return
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(c.Query("lng")), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid lng", codeValidation))
		return
	}

	radiusKm := 0.0
	if raw := strings.TrimSpace(c.Query("radius_km")); raw != "" {
		radiusKm, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid radius_km", codeValidation))
			return
		}
	}

	washers, err := h.jobService.NearbyWashers(c.Request.Context(), lat, lng, radiusKm)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": washers}))
}

func (h *Handler) setAvailability(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing", codeUnauthenticated))
		return
	}

	var req struct {
		Available *bool `json:"available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error(), codeValidation))
		return
	}

	if err := h.jobService.SetAvailability(c.Request.Context(), principal, *req.Available); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"available": *req.Available}))
}

func (h *Handler) setLocation(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing", codeUnauthenticated))
		return
	}

	var req struct {
		Latitude  *float64 `json:"latitude" binding:"required"`
		Longitude *float64 `json:"longitude" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error(), codeValidation))
		return
	}

	if err := h.jobService.SetLocation(c.Request.Context(), principal, *req.Latitude, *req.Longitude); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"status": "updated"}))
}
