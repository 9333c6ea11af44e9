package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mamadbah2/terafetch/internal/config"
	"github.com/mamadbah2/terafetch/internal/domain/models"
)

const parseModeHTML = "HTML"

// Client exposes the Telegram Bot API operations used by the relay.
type Client interface {
	SendMessage(ctx context.Context, reply models.OutboundReply) error
	SetWebhook(ctx context.Context, webhookURL string) error
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a Telegram client. The bot token is part of the URL path.
func NewClient(cfg config.TelegramConfig, timeout time.Duration) *APIClient {
	base := strings.TrimSuffix(cfg.BaseURL, "/")

	restyClient := resty.New()
	restyClient.
		SetBaseURL(fmt.Sprintf("%s/bot%s", base, cfg.BotToken)).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &APIClient{httpClient: restyClient}
}

type sendMessageRequest struct {
	ChatID      int64                          `json:"chat_id"`
	Text        string                         `json:"text"`
	ParseMode   string                         `json:"parse_mode"`
	ReplyMarkup *tgbotapi.InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

type setWebhookRequest struct {
	URL            string   `json:"url"`
	AllowedUpdates []string `json:"allowed_updates"`
}

// apiResponse is the envelope every Bot API method answers with.
type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

// SendMessage posts a HTML formatted text, with a single URL button when the
// reply carries one.
func (c *APIClient) SendMessage(ctx context.Context, reply models.OutboundReply) error {
	payload := sendMessageRequest{
		ChatID:    reply.ChatID,
		Text:      reply.Text,
		ParseMode: parseModeHTML,
	}

	if reply.Button != nil {
		markup := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonURL(reply.Button.Label, reply.Button.URL),
			),
		)
		payload.ReplyMarkup = &markup
	}

	if err := c.call(ctx, "sendMessage", payload); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

// SetWebhook registers webhookURL as the delivery target for message updates.
func (c *APIClient) SetWebhook(ctx context.Context, webhookURL string) error {
	if webhookURL == "" {
		return errors.New("webhook url must not be empty")
	}

	payload := setWebhookRequest{
		URL:            webhookURL,
		AllowedUpdates: []string{"message"},
	}

	if err := c.call(ctx, "setWebhook", payload); err != nil {
		return fmt.Errorf("set telegram webhook: %w", err)
	}
	return nil
}

func (c *APIClient) call(ctx context.Context, method string, payload any) error {
	result := new(apiResponse)
	apiErr := new(apiResponse)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(result).
		SetError(apiErr).
		Post(method)
	if err != nil {
		return err
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		code := resp.StatusCode()
		if apiErr.ErrorCode != 0 {
			code = apiErr.ErrorCode
		}
		return fmt.Errorf("telegram api error: code=%d, description=%s", code, apiErr.Description)
	}

	if !result.OK {
		return fmt.Errorf("telegram api rejected %s: %s", method, result.Description)
	}

	return nil
}
