package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"carwash-service/internal/http/middleware"
)

var chatUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// chatSocket upgrades the request and parks the connection in the registry.
// Inbound frames are sends; everything the peer sends back arrives through
// Registry.Send while the reservation's chat counterpart is online.
func (h *Handler) chatSocket(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing", codeUnauthenticated))
		return
	}

	conn, err := chatUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	h.registry.Register(principal.UserID, conn)
	defer func() {
		h.registry.Unregister(principal.UserID, conn)
		_ = conn.Close()
	}()

	for {
		var frame struct {
			RecipientID string `json:"recipient_id"`
			Message     string `json:"message"`
		}
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}

		recipientID, err := parseFrameID(frame.RecipientID)
		if err != nil {
			_ = conn.WriteJSON(gin.H{"error": "invalid recipient_id", "code": codeValidation})
			continue
		}

		msg, err := h.chatService.Send(c.Request.Context(), principal, recipientID, frame.Message)
		if err != nil {
			_ = conn.WriteJSON(gin.H{"error": err.Error(), "code": codeValidation})
			continue
		}
		_ = conn.WriteJSON(gin.H{"ack": msg.ID})
	}
}

func (h *Handler) sendChatMessage(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing", codeUnauthenticated))
		return
	}

	peerID, ok := parseIDParam(c, "peer_id")
	if !ok {
		return
	}

	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error(), codeValidation))
		return
	}

	msg, err := h.chatService.Send(c.Request.Context(), principal, peerID, req.Message)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(msg))
}

func (h *Handler) chatHistory(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing", codeUnauthenticated))
		return
	}

	peerID, ok := parseIDParam(c, "peer_id")
	if !ok {
		return
	}

	limit, _ := parsePagination(c)
	history, err := h.chatService.History(c.Request.Context(), principal, peerID, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(history))
}
