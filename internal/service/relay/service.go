package relay

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/terafetch/internal/domain/models"
)

// Reply texts use Telegram HTML formatting.
const (
	WelcomeText     = "🎬 <b>Welcome to TeraFetch Bot</b>\n\nSend me any Terabox link to get a playable video link."
	InvalidLinkText = "📎 Please send a valid Terabox link!"
	FailureText     = "❌ Could not fetch link. Try again later."
	ReadyText       = "✅ Your video is ready to play!"
	OpenVideoLabel  = "🎬 Open Video"
)

const playerPath = "/player"

// Messenger sends replies back to a chat.
type Messenger interface {
	SendMessage(ctx context.Context, reply models.OutboundReply) error
}

// Resolver turns a share link into a direct media URL.
type Resolver interface {
	Resolve(ctx context.Context, link string) (models.Resolution, error)
}

// MessageHandler describes the operations the HTTP layer can perform.
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg models.InboundMessage) error
}

// Options tunes the relay behaviour.
type Options struct {
	SiteURL    string
	LinkMarker string
	// CallTimeout bounds each outbound call; zero disables the extra deadline.
	CallTimeout time.Duration
}

// Service classifies inbound chat messages, resolves links and replies.
type Service struct {
	messenger Messenger
	resolver  Resolver
	opts      Options
	logger    *zap.Logger
}

// NewService wires a new relay service instance.
func NewService(messenger Messenger, resolver Resolver, opts Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		messenger: messenger,
		resolver:  resolver,
		opts:      opts,
		logger:    logger,
	}
}

// HandleMessage processes one inbound chat message. It sends at most one reply
// and calls the resolver at most once. A non-nil error means nothing was sent.
// Only a message without any text is ignored; whitespace-only text is answered
// like any other text that is not a link.
func (s *Service) HandleMessage(ctx context.Context, msg models.InboundMessage) error {
	if msg.Text == "" {
		return nil
	}
	text := strings.TrimSpace(msg.Text)

	kind := models.ClassifyText(text, s.opts.LinkMarker)
	s.logger.Debug("classified inbound message",
		zap.Int64("chat_id", msg.ChatID),
		zap.String("kind", string(kind)))

	switch kind {
	case models.TextStart:
		s.reply(ctx, models.OutboundReply{ChatID: msg.ChatID, Text: WelcomeText})
		return nil
	case models.TextInvalidLink:
		s.reply(ctx, models.OutboundReply{ChatID: msg.ChatID, Text: InvalidLinkText})
		return nil
	}

	resolution, err := s.resolve(ctx, text)
	if err != nil {
		return fmt.Errorf("resolve link for chat %d: %w", msg.ChatID, err)
	}

	if !resolution.Resolved() {
		s.logger.Warn("link resolution failed",
			zap.Int64("chat_id", msg.ChatID),
			zap.String("outcome", string(resolution.Outcome)),
			zap.String("reason", resolution.Reason))
		s.reply(ctx, models.OutboundReply{ChatID: msg.ChatID, Text: FailureText})
		return nil
	}

	s.reply(ctx, models.OutboundReply{
		ChatID: msg.ChatID,
		Text:   ReadyText,
		Button: &models.ActionButton{
			Label: OpenVideoLabel,
			URL:   PlayerURL(s.opts.SiteURL, resolution.DirectURL),
		},
	})
	return nil
}

// componentEscaper turns url.QueryEscape output into the URI component form
// browsers produce: spaces as %20 and the sub-delimiters !'()* left as is.
var componentEscaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// PlayerURL builds the public playback page link for a direct media URL.
func PlayerURL(siteURL, directURL string) string {
	return strings.TrimSuffix(siteURL, "/") + playerPath + "?url=" + escapeComponent(directURL)
}

func escapeComponent(s string) string {
	return componentEscaper.Replace(url.QueryEscape(s))
}

func (s *Service) resolve(ctx context.Context, link string) (models.Resolution, error) {
	callCtx, cancel := s.withCallTimeout(ctx)
	defer cancel()

	resolution, err := s.resolver.Resolve(callCtx, link)
	if err != nil && ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
		// Only the per-call deadline fired: the upstream was too slow.
		return models.Resolution{Outcome: models.OutcomeTransportError, Reason: "resolver timed out"}, nil
	}
	return resolution, err
}

// reply sends and logs failures; a lost reply is not escalated to the webhook caller.
func (s *Service) reply(ctx context.Context, reply models.OutboundReply) {
	ctx, cancel := s.withCallTimeout(ctx)
	defer cancel()

	if err := s.messenger.SendMessage(ctx, reply); err != nil {
		s.logger.Error("failed to send reply",
			zap.Int64("chat_id", reply.ChatID),
			zap.Bool("with_button", reply.Button != nil),
			zap.Error(err))
		return
	}

	s.logger.Info("reply sent",
		zap.Int64("chat_id", reply.ChatID),
		zap.Bool("with_button", reply.Button != nil))
}

func (s *Service) withCallTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.CallTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.opts.CallTimeout)
}
