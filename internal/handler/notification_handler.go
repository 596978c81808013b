package handler

import (
	"strings"

	"collabhub-be/internal/pkg/logger"
	"collabhub-be/internal/pkg/serverutils"
	"collabhub-be/internal/service"
	internalWS "collabhub-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	service   service.INotificationService
	hub       *internalWS.Hub
	auth      fiber.Handler
	jwtSecret string
	logger    logger.ILogger
}

func NewNotificationHandler(service service.INotificationService, hub *internalWS.Hub, jwtSecret string, log logger.ILogger) *NotificationHandler {
	return &NotificationHandler{
		service:   service,
		hub:       hub,
		auth:      serverutils.NewJwtMiddleware(jwtSecret),
		jwtSecret: jwtSecret,
		logger:    log,
	}
}

func (h *NotificationHandler) RegisterRoutes(r fiber.Router) {
	n := r.Group("/notifications")
	n.Use(h.auth)
	n.Get("", h.GetNotifications)
	n.Get("/unread-count", h.GetUnreadCount)
	n.Patch("/:id/read", h.MarkAsRead)
	n.Put("/read", h.MarkAllAsRead)

	r.Get("/ws", h.ServeWs)
}

// ServeWs upgrades an authenticated request to the notification socket.
// Browsers pass the token as ?token=, other clients may use the header.
func (h *NotificationHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		tokenStr = strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
	}

	userID, err := serverutils.ParseToken(h.jwtSecret, tokenStr)
	if err != nil {
		h.logger.Warn("NotificationHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err.Error()})
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("NotificationHandler", "WebSocket session started", map[string]interface{}{"user_id": userID})
		internalWS.ServeWs(h.hub, conn, userID)
		h.logger.Info("NotificationHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID})
	})(c)
}

func (h *NotificationHandler) GetNotifications(c *fiber.Ctx) error {
	userID, err := serverutils.CurrentUserID(c)
	if err != nil {
		return err
	}

	res, err := h.service.List(c.UserContext(), userID, c.QueryInt("page", 1), c.QueryInt("limit", 20))
	if err != nil {
		return err
	}
	return c.JSON(serverutils.SuccessResponse("Success get notifications", res))
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	userID, err := serverutils.CurrentUserID(c)
	if err != nil {
		return err
	}

	res, err := h.service.UnreadCount(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(serverutils.SuccessResponse("Success get unread count", res))
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	userID, err := serverutils.CurrentUserID(c)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.MarkRead(c.UserContext(), userID, id); err != nil {
		return err
	}
	return c.JSON(serverutils.SuccessResponse[*uuid.UUID]("Notification marked as read", nil))
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	userID, err := serverutils.CurrentUserID(c)
	if err != nil {
		return err
	}

	res, err := h.service.MarkAllRead(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(serverutils.SuccessResponse("All notifications marked as read", res))
}
