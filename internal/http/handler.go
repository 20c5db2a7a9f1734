package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"carwash-service/internal/chat"
	"carwash-service/internal/model"
	"carwash-service/internal/service"
)

type Handler struct {
	authService         *service.AuthService
	userService         *service.UserService
	vehicleService      *service.VehicleService
	catalogService      *service.CatalogService
	reservationService  *service.ReservationService
	jobService          *service.JobService
	ratingService       *service.RatingService
	paymentService      *service.PaymentService
	notificationService *service.NotificationService
	chatService         *service.ChatService
	registry            *chat.Registry
	log                 zerolog.Logger
}

func NewHandler(
	authService *service.AuthService,
	userService *service.UserService,
	vehicleService *service.VehicleService,
	catalogService *service.CatalogService,
	reservationService *service.ReservationService,
	jobService *service.JobService,
	ratingService *service.RatingService,
	paymentService *service.PaymentService,
	notificationService *service.NotificationService,
	chatService *service.ChatService,
	registry *chat.Registry,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		authService:         authService,
		userService:         userService,
		vehicleService:      vehicleService,
		catalogService:      catalogService,
		reservationService:  reservationService,
		jobService:          jobService,
		ratingService:       ratingService,
		paymentService:      paymentService,
		notificationService: notificationService,
		chatService:         chatService,
		registry:            registry,
		log:                 log,
	}
}

// Stable machine-readable error codes per taxonomy entry.
const (
	codeValidation      = "VALIDATION"
	codeUnauthenticated = "UNAUTHENTICATED"
	codeForbidden       = "FORBIDDEN"
	codeNotFound        = "NOT_FOUND"
	codeConflict        = "CONFLICT"
	codeInvalidStatus   = "INVALID_STATUS"
	codeUnavailable     = "UNAVAILABLE"
	codeInternal        = "INTERNAL"
)

func (h *Handler) handleError(c *gin.Context, err error) {
	switch err {
	case service.ErrPermissionDenied:
		c.JSON(http.StatusForbidden, errorResponse(err.Error(), codeForbidden))
	case service.ErrInvalidInput:
		c.JSON(http.StatusBadRequest, errorResponse(err.Error(), codeValidation))
	case service.ErrNotFound:
		c.JSON(http.StatusNotFound, errorResponse(err.Error(), codeNotFound))
	case service.ErrConflict:
		c.JSON(http.StatusConflict, errorResponse(err.Error(), codeConflict))
	case service.ErrInvalidStatus:
		c.JSON(http.StatusBadRequest, errorResponse(err.Error(), codeInvalidStatus))
	case service.ErrUnavailable:
		c.JSON(http.StatusServiceUnavailable, errorResponse(err.Error(), codeUnavailable))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error", codeInternal))
	}
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(name)))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid "+name, codeValidation))
		return uuid.Nil, false
	}
	return id, true
}

func parseBodyID(c *gin.Context, raw, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid "+name, codeValidation))
		return uuid.Nil, false
	}
	return id, true
}

func parseFrameID(raw string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(raw))
}

func parsePagination(c *gin.Context) (limit, offset int) {
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}
	if raw := strings.TrimSpace(c.Query("offset")); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			offset = v
		}
	}
	return limit, offset
}

func parseStatuses(c *gin.Context) []model.ReservationStatus {
	raw := c.Query("status")
	if raw == "" {
		return nil
	}
	var statuses []model.ReservationStatus
	for _, val := range splitCSV(raw) {
		statuses = append(statuses, model.ReservationStatus(strings.ToUpper(val)))
	}
	return statuses
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

type responseEnvelope struct {
	Data interface{} `json:"data"`
}

func successResponse(data interface{}) responseEnvelope {
	return responseEnvelope{Data: data}
}

func errorResponse(msg, code string) gin.H {
	return gin.H{"error": msg, "code": code}
}
