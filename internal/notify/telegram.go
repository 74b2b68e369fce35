package notify

import (
	"context"
	"fmt"
	"html"
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"

	"seekwatch/internal/domain"
)

// Telegram delivers job alerts through the Bot API. In dry-run mode the
// message is formatted and logged but never sent, so the pipeline can be
// exercised without live credentials.
type Telegram struct {
	api     *tgbotapi.BotAPI
	chatID  int64
	channel string // @channelname target; takes precedence over chatID
	dryRun  bool
	limiter *rate.Limiter
}

// NewTelegram accepts the chat id either as a numeric chat/group id or as
// an @channelname.
func NewTelegram(token, chatID string, dryRun bool) (*Telegram, error) {
	t := &Telegram{
		dryRun: dryRun,
		// small throttle between dispatches, same cadence as the Bot API
		// tolerates comfortably
		limiter: rate.NewLimiter(rate.Every(400*time.Millisecond), 1),
	}

	chatID = strings.TrimSpace(chatID)
	switch {
	case strings.HasPrefix(chatID, "@"):
		t.channel = chatID
	case chatID != "":
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("telegram chat id %q: %w", chatID, err)
		}
		t.chatID = id
	}

	if dryRun {
		return t, nil
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	t.api = api
	return t, nil
}

func (t *Telegram) Send(ctx context.Context, job domain.Job) error {
	text := FormatMessage(job)

	if t.dryRun {
		log.Printf("[notify] dry run: would send message for job %s: %s", job.ID, job.Title)
		return nil
	}

	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(t.chatID, text)
	if t.channel != "" {
		msg = tgbotapi.NewMessageToChannel(t.channel, text)
	}
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

// FormatMessage renders the alert in Telegram HTML parse mode.
func FormatMessage(job domain.Job) string {
	return fmt.Sprintf(
		"🔥 <b>New Opportunity Found!</b>\n\n"+
			"💼 <b>%s</b>\n"+
			"🏢 %s\n"+
			"📍 %s\n"+
			"💰 %s\n"+
			"📅 %s\n\n"+
			"<a href='%s'>🔗 View on Seek</a>",
		html.EscapeString(job.Title),
		html.EscapeString(job.Advertiser),
		html.EscapeString(job.Location),
		html.EscapeString(job.Salary),
		html.EscapeString(job.ListingDate),
		job.URL,
	)
}
