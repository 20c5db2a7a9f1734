package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"carwash-service/internal/http/middleware"
	"carwash-service/internal/model"
	"carwash-service/internal/service"
)

func (h *Handler) register(c *gin.Context) {
	var req struct {
		Role     string `json:"role" binding:"required"`
		FullName string `json:"full_name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Phone    string `json:"phone"`
		Address  string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error(), codeValidation))
		return
	}

	input := service.RegisterInput{
		Role:     model.UserRole(strings.ToUpper(strings.TrimSpace(req.Role))),
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
	}

	result, err := h.authService.Register(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(result))
}

func (h *Handler) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error(), codeValidation))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if err == service.ErrPermissionDenied {
			c.JSON(http.StatusUnauthorized, errorResponse("invalid credentials", codeUnauthenticated))
			return
		}
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(result))
}

func (h *Handler) me(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing", codeUnauthenticated))
		return
	}

	user, err := h.userService.Get(c.Request.Context(), principal, principal.UserID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(user))
}
