package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"carwash-service/internal/http/middleware"
	"carwash-service/internal/model"
	"carwash-service/internal/service"
)

func (h *Handler) createService(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing", codeUnauthenticated))
		return
	}

	var req struct {
		Name            string  `json:"name" binding:"required"`
		Description     string  `json:"description"`
		Price           float64 `json:"price" binding:"required"`
		DurationMinutes int     `json:"duration_minutes" binding:"required"`
		VehicleType     string  `json:"vehicle_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error(), codeValidation))
		return
	}

	input := service.CreateServiceInput{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		VehicleType:     model.VehicleType(strings.ToUpper(strings.TrimSpace(req.VehicleType))),
	}

	svc, err := h.catalogService.Create(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(svc))
}

func (h *Handler) listServices(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing", codeUnauthenticated))
		return
	}

	var vehicleType *model.VehicleType
	if raw := strings.TrimSpace(c.Query("vehicle_type")); raw != "" {
		vt := model.VehicleType(strings.ToUpper(raw))
		if !vt.Valid() {
			c.JSON(http.StatusBadRequest, errorResponse("invalid vehicle_type", codeValidation))
			return
		}
		vehicleType = &vt
	}

	services, err := h.catalogService.List(c.Request.Context(), principal, vehicleType)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": services}))
}

func (h *Handler) getService(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	svc, err := h.catalogService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(svc))
}

func (h *Handler) updateService(c *gin.Context) {
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
		Name            *string  `json:"name"`
		Description     *string  `json:"description"`
		Price           *float64 `json:"price"`
		DurationMinutes *int     `json:"duration_minutes"`
		IsActive        *bool    `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error(), codeValidation))
		return
	}

	input := service.UpdateServiceInput{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		IsActive:        req.IsActive,
	}

	svc, err := h.catalogService.Update(c.Request.Context(), principal, id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(svc))
}

func (h *Handler) deleteService(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing", codeUnauthenticated))
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"status": "deleted"}))
}
