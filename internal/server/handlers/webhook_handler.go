package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/mamadbah2/terafetch/internal/domain/models"
	"github.com/mamadbah2/terafetch/internal/render"
	"github.com/mamadbah2/terafetch/internal/service/relay"
)

// PageRenderer renders the playback page for a media URL.
type PageRenderer interface {
	Render(mediaURL string) ([]byte, error)
}

// WebhookHandler handles the Telegram webhook and the player page.
type WebhookHandler struct {
	svc      relay.MessageHandler
	renderer PageRenderer
	logger   *zap.Logger
}

// NewWebhookHandler constructs the HTTP handler adapter.
func NewWebhookHandler(svc relay.MessageHandler, renderer PageRenderer, logger *zap.Logger) *WebhookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandler{svc: svc, renderer: renderer, logger: logger}
}

// Receive ingests Telegram webhook POST callbacks. Deliveries the relay does
// not act on are acknowledged with 200 so Telegram does not redeliver them.
func (h *WebhookHandler) Receive(c *gin.Context) {
	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.logger.Warn("ignoring undecodable webhook payload", zap.Error(err))
		c.Status(http.StatusOK)
		return
	}

	msg, ok := models.InboundFromUpdate(update)
	if !ok {
		h.logger.Debug("ignoring update without text message", zap.Int("update_id", update.UpdateID))
		c.Status(http.StatusOK)
		return
	}

	if err := h.svc.HandleMessage(c.Request.Context(), msg); err != nil {
		h.logger.Error("failed processing webhook",
			zap.Int("update_id", update.UpdateID),
			zap.Int64("chat_id", msg.ChatID),
			zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}

// Player serves the playback page for the url query parameter.
func (h *WebhookHandler) Player(c *gin.Context) {
	page, err := h.renderer.Render(c.Query("url"))
	switch {
	case errors.Is(err, render.ErrMissingURL):
		c.String(http.StatusOK, render.MissingURLBody)
		return
	case errors.Is(err, render.ErrInvalidURL):
		h.logger.Warn("rejected player url", zap.Error(err))
		c.String(http.StatusBadRequest, "Invalid video URL.")
		return
	case err != nil:
		h.logger.Error("failed rendering player page", zap.Error(err))
		c.String(http.StatusInternalServerError, "Unable to render player.")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// Health reports liveness.
func (h *WebhookHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
