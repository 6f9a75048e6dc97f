package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmsim/internal/domain/models"
	"github.com/mamadbah2/farmsim/internal/metrics"
	service "github.com/mamadbah2/farmsim/internal/service/whatsapp"
)

// WebhookHandler connects Meta's callbacks and the operator push endpoint to
// the chat game.
type WebhookHandler struct {
	svc    service.MessagingService
	logger *zap.Logger
}

// NewWebhookHandler constructs the HTTP handler adapter.
func NewWebhookHandler(svc service.MessagingService, logger *zap.Logger) *WebhookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandler{svc: svc, logger: logger}
}

func fail(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{Error: code, Message: message})
}

// Verify answers the subscription handshake with the echoed challenge.
func (h *WebhookHandler) Verify(c *gin.Context) {
	challenge, err := h.svc.VerifyWebhookToken(c.Query("hub.mode"), c.Query("hub.verify_token"), c.Query("hub.challenge"))
	if err != nil {
		h.logger.Warn("webhook verification failed", zap.String("ip", c.ClientIP()), zap.Error(err))
		c.String(http.StatusForbidden, "verification failed")
		return
	}
	c.String(http.StatusOK, challenge)
}

// Receive plays the commands found in a callback. Meta retries anything but
// a 200, so game failures are answered in the chat and only transport
// problems change the status.
func (h *WebhookHandler) Receive(c *gin.Context) {
	var payload models.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		metrics.WebhookPayloads.WithLabelValues("invalid").Inc()
		h.logger.Warn("invalid webhook payload", zap.Error(err))
		fail(c, http.StatusBadRequest, "invalid_payload", "invalid payload")
		return
	}

	if payload.Object != models.BusinessAccountObject {
		metrics.WebhookPayloads.WithLabelValues("ignored").Inc()
		h.logger.Debug("ignoring webhook object", zap.String("object", payload.Object))
		c.Status(http.StatusOK)
		return
	}

	if err := h.svc.HandleWebhook(c.Request.Context(), payload); err != nil {
		metrics.WebhookPayloads.WithLabelValues("failed").Inc()
		h.logger.Error("failed processing webhook", zap.Int("entries", len(payload.Entry)), zap.Error(err))
		fail(c, http.StatusInternalServerError, "internal", "failed to process webhook")
		return
	}

	metrics.WebhookPayloads.WithLabelValues("handled").Inc()
	c.Status(http.StatusOK)
}

// SendMessage pushes an operator message to one player, or to every recently
// active player when no number is given.
func (h *WebhookHandler) SendMessage(c *gin.Context) {
	var req models.OutboundMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid outbound payload", zap.Error(err))
		fail(c, http.StatusBadRequest, "invalid_payload", "body must be {\"to\": \"<number>\", \"message\": \"<text>\"}")
		return
	}

	var err error
	if req.To == "" {
		err = h.svc.Notify(c.Request.Context(), req.Message)
	} else {
		err = h.svc.SendOutbound(c.Request.Context(), req)
	}
	if err != nil {
		h.logger.Error("failed sending outbound", zap.String("to", req.To), zap.Error(err))
		fail(c, http.StatusBadGateway, "upstream", "unable to send message")
		return
	}

	c.JSON(http.StatusAccepted, models.OutboundMessageReply{To: req.To, Broadcast: req.To == ""})
}
