package notifier

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/go-resty/resty/v2"
	"go-payout/internal/common/telegramprotocol"
	"go-payout/internal/payoutdesk/data"
	"go-payout/pkg/logging"
	"go.uber.org/zap"
)

const (
	DefaultAPIURL = "https://api.telegram.org"

	defaultTimestamp = "Сейчас"
)

var (
	ErrNotConfigured = errors.New("telegram notifier is not configured")
	ErrRejected      = errors.New("telegram rejected the message")
)

type Config struct {
	APIURL   string
	BotToken string
	ChatID   string
}

type Telegram struct {
	client *resty.Client
	logger *logging.ZapLogger
	cfg    Config
}

func NewTelegram(cfg Config, logger *logging.ZapLogger) *Telegram {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	return &Telegram{
		cfg:    cfg,
		client: resty.New().SetBaseURL(strings.TrimRight(cfg.APIURL, "/")),
		logger: logger,
	}
}

func (t *Telegram) Configured() bool {
	return t.cfg.BotToken != "" && t.cfg.ChatID != ""
}

// Send posts a new-submission alert to the admin chat.
func (t *Telegram) Send(ctx context.Context, notification data.Notification) error {
	if !t.Configured() {
		return ErrNotConfigured
	}

	result := telegramprotocol.Response{}
	resp, err := t.client.
		R().
		SetContext(ctx).
		SetPathParam("token", t.cfg.BotToken).
		SetBody(telegramprotocol.SendMessageRequest{
			ChatID:    t.cfg.ChatID,
			Text:      FormatMessage(notification),
			ParseMode: telegramprotocol.ParseModeHTML,
		}).
		SetResult(&result).
		SetError(&result).
		Post("/bot{token}/sendMessage")
	if err != nil {
		return fmt.Errorf("sendMessage request failed: %w", err)
	}
	if resp.IsError() || !result.OK {
		return fmt.Errorf(
			"%w: status %d, code %d: %s",
			ErrRejected,
			resp.StatusCode(),
			result.ErrorCode,
			result.Description,
		)
	}
	t.logger.DebugCtx(ctx, "telegram notification sent", zap.Int64("withdrawalID", notification.WithdrawalID))
	return nil
}

func FormatMessage(notification data.Notification) string {
	timestamp := strings.TrimSpace(notification.Timestamp)
	if timestamp == "" {
		timestamp = defaultTimestamp
	}
	var b strings.Builder
	b.WriteString("🔔 <b>Новая заявка на вывод!</b>\n\n")
	fmt.Fprintf(&b, "💰 Сумма: <b>%s ₽</b>\n", notification.Amount.String())
	fmt.Fprintf(&b, "📱 Телефон: <code>%s</code>\n", html.EscapeString(notification.PhoneNumber))
	fmt.Fprintf(&b, "🏦 Банк: <b>%s</b>\n", html.EscapeString(notification.BankName))
	fmt.Fprintf(&b, "🆔 Заявка: #%d\n\n", notification.WithdrawalID)
	fmt.Fprintf(&b, "⏰ %s", html.EscapeString(timestamp))
	return b.String()
}
