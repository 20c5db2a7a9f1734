package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"carwash-service/internal/http/middleware"
	"carwash-service/internal/service"
)

func (h *Handler) createPayment(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing", codeUnauthenticated))
		return
	}

	var req struct {
		ReservationID string  `json:"reservation_id" binding:"required"`
		Amount        float64 `json:"amount" binding:"required"`
		PaymentMethod string  `json:"payment_method" binding:"required"`
		TransactionID *string `json:"transaction_id"`
		Completed     bool    `json:"completed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error(), codeValidation))
		return
	}

	reservationID, ok := parseBodyID(c, req.ReservationID, "reservation_id")
	if !ok {
		return
	}

	input := service.CreatePaymentInput{
		ReservationID: reservationID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		TransactionID: req.TransactionID,
		Completed:     req.Completed,
	}

	payment, err := h.paymentService.Create(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(payment))
}

func (h *Handler) verifyPayment(c *gin.Context) {
	var req struct {
		TransactionID string `json:"transaction_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error(), codeValidation))
		return
	}

	payment, err := h.paymentService.Verify(c.Request.Context(), strings.TrimSpace(req.TransactionID))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(payment))
}

// paymentWebhook is the gateway callback. It is idempotent and always acks
// payloads referencing unknown transactions so the gateway stops retrying.
func (h *Handler) paymentWebhook(c *gin.Context) {
	var req struct {
		TransactionID string `json:"transaction_id" binding:"required"`
		Status        string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error(), codeValidation))
		return
	}

	if err := h.paymentService.HandleWebhook(c.Request.Context(), strings.TrimSpace(req.TransactionID)); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"status": "ok"}))
}

func (h *Handler) paymentSummary(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing", codeUnauthenticated))
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	summary, err := h.paymentService.Summary(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(summary))
}
