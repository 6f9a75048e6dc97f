package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/farmsim/internal/config"
	"github.com/mamadbah2/farmsim/internal/domain/models"
	"github.com/mamadbah2/farmsim/internal/service/commands"
	client "github.com/mamadbah2/farmsim/pkg/clients/whatsapp"
)

// activeWindow is how long a player keeps receiving scheduled reports.
const activeWindow = 48 * time.Hour

// MessagingService describes the operations the HTTP layer can perform.
type MessagingService interface {
	VerifyWebhookToken(mode, verifyToken, challenge string) (string, error)
	HandleWebhook(ctx context.Context, payload models.WebhookPayload) error
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
	Notify(ctx context.Context, message string) error
}

// MetaWhatsAppService plays the game over the WhatsApp Cloud API: inbound
// texts are commands, the replies go back to the sender.
type MetaWhatsAppService struct {
	cfg        config.WhatsAppConfig
	recipient  string
	client     client.Client
	dispatcher commands.Dispatcher
	sessions   *SessionManager
	logger     *zap.Logger
	now        func() time.Time
}

// NewMetaWhatsAppService wires a new service instance. recipient always
// receives scheduled notifications, on top of recently active players.
func NewMetaWhatsAppService(cfg config.WhatsAppConfig, recipient string, client client.Client, dispatcher commands.Dispatcher, sessions *SessionManager, logger *zap.Logger) *MetaWhatsAppService {
	svc := &MetaWhatsAppService{
		cfg:        cfg,
		recipient:  recipient,
		client:     client,
		dispatcher: dispatcher,
		sessions:   sessions,
		logger:     logger,
		now:        time.Now,
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	if svc.sessions == nil {
		svc.sessions = NewSessionManager()
	}
	return svc
}

const forgetReply = "You will no longer receive farm reports. Send any command to play again."

var quickActions = []client.ReplyButton{
	{ID: "status", Title: "Farm status"},
	{ID: "collect", Title: "Collect"},
	{ID: "sleep", Title: "End the day"},
}

// VerifyWebhookToken validates the callback verification token.
func (s *MetaWhatsAppService) VerifyWebhookToken(mode, verifyToken, challenge string) (string, error) {
	if mode == "" || verifyToken == "" {
		return "", errors.New("missing mode or verify token")
	}

	if !strings.EqualFold(mode, "subscribe") {
		return "", fmt.Errorf("unsupported hub.mode %s", mode)
	}

	if verifyToken != s.cfg.VerifyToken {
		return "", errors.New("invalid verify token")
	}

	return challenge, nil
}

// HandleWebhook processes inbound webhook payloads.
func (s *MetaWhatsAppService) HandleWebhook(ctx context.Context, payload models.WebhookPayload) error {
	var firstErr error

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			names := make(map[string]string, len(change.Value.Contacts))
			for _, c := range change.Value.Contacts {
				names[c.WaID] = c.Profile.Name
			}

			for _, msg := range change.Value.Messages {
				if err := s.handleInboundMessage(ctx, msg, names[msg.From]); err != nil {
					s.logger.Error("failed to handle inbound message", zap.Error(err), zap.String("message_id", msg.ID))
					if firstErr == nil {
						firstErr = err
					}
				}
			}
		}
	}

	return firstErr
}

func (s *MetaWhatsAppService) handleInboundMessage(ctx context.Context, msg models.InboundMessage, name string) error {
	text, ok := msg.CommandText()
	if !ok {
		s.logger.Debug("ignoring non-command message", zap.String("type", msg.Type), zap.String("from", msg.From))
		return nil
	}

	cmd := models.ParseCommand(text)
	if cmd.Type == models.CommandForget {
		s.sessions.ClearSession(msg.From)
		s.logger.Info("session cleared", zap.String("from", msg.From))
		return s.reply(ctx, msg.From, forgetReply)
	}
	s.sessions.Touch(msg.From, name, s.now())

	s.logger.Info("parsed inbound command",
		zap.String("from", msg.From),
		zap.String("command", string(cmd.Type)),
		zap.Strings("args", cmd.Args))

	reply, err := s.dispatcher.HandleCommand(ctx, cmd, msg.From)
	if err != nil {
		reply = commands.FailureText(err).Message
	}

	if err := s.reply(ctx, msg.From, reply); err != nil {
		return err
	}

	if cmd.Type == models.CommandHelp || cmd.Type == models.CommandUnknown {
		ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if _, err := s.client.SendReplyButtons(ctxWithTimeout, client.SendReplyButtonsRequest{
			To:      msg.From,
			Body:    "Quick actions:",
			Buttons: quickActions,
		}); err != nil {
			s.logger.Warn("failed to send quick actions", zap.String("to", msg.From), zap.Error(err))
		}
	}
	return nil
}

func (s *MetaWhatsAppService) reply(ctx context.Context, to, body string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := s.client.SendTextMessage(ctxWithTimeout, client.SendTextMessageRequest{To: to, Body: body}); err != nil {
		return fmt.Errorf("reply to %s: %w", to, err)
	}
	return nil
}

// SendOutbound pushes a message to one number.
func (s *MetaWhatsAppService) SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.client.SendTextMessage(ctxWithTimeout, client.SendTextMessageRequest{
		To:         req.To,
		Body:       req.Message,
		PreviewURL: req.PreviewURL,
	})
	return err
}

// Notify sends message to the configured recipient and to every player
// active in the last two days. It returns the first delivery error.
func (s *MetaWhatsAppService) Notify(ctx context.Context, message string) error {
	seen := map[string]bool{}
	var targets []string
	if s.recipient != "" {
		targets = append(targets, s.recipient)
		seen[s.recipient] = true
	}
	for _, session := range s.sessions.ActiveSince(s.now().Add(-activeWindow)) {
		if !seen[session.Sender] {
			targets = append(targets, session.Sender)
			seen[session.Sender] = true
		}
	}

	var firstErr error
	for _, to := range targets {
		if err := s.SendOutbound(ctx, models.OutboundMessageRequest{To: to, Message: message}); err != nil {
			s.logger.Error("notification failed", zap.String("to", to), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
