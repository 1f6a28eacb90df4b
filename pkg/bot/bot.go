package bot

import (
	"context"
	"fmt"
	"html"
	"time"

	"ridepilot/config"
	"ridepilot/pkg/logger"
	"ridepilot/pkg/models"
	"ridepilot/pkg/portal"
	"ridepilot/service"
	"ridepilot/storage"

	tele "gopkg.in/telebot.v3"
)

// Bot delivers magic links to drivers over Telegram.
// Linked drivers can also list their trips with /trips.
type Bot struct {
	Bot   *tele.Bot
	Log   logger.ILogger
	Cfg   *config.Config
	Stg   storage.IStorage
	Trips service.TripService
}

var messages = map[string]string{
	"start":       "👋 Hello! This chat id is <code>%d</code>.\n\nGive it to your dispatcher so your trip links can be sent here.",
	"new_link":    "🔑 <b>%s</b>, your driver portal link was renewed.\n\nOpen it to see your assigned trips. Your previous link no longer works.",
	"open_button": "🚖 Open my trips",
	"not_linked":  "🚫 This chat is not linked to an active driver. Send /start and give the chat id to your dispatcher.",
	"no_trips":    "📭 No trips assigned.",
	"trips_title": "<b>🚖 Trips for %s</b>\n",
	"error":       "⚠️ Failed to load trips. Please try again later.",
}

// New returns nil, nil when no bot token is configured.
func New(cfg *config.Config, stg storage.IStorage, log logger.ILogger) (*Bot, error) {
	if cfg.TelegramBotToken == "" {
		return nil, nil
	}

	pref := tele.Settings{
		Token:  cfg.TelegramBotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}
	bot := &Bot{
		Bot:   b,
		Log:   log,
		Cfg:   cfg,
		Stg:   stg,
		Trips: service.NewTripService(stg, log),
	}
	bot.registerHandlers()
	return bot, nil
}

func (b *Bot) Start() {
	b.Log.Info("🤖 Telegram notifier started...")
	b.Bot.Start()
}

func (b *Bot) Stop() {
	b.Bot.Stop()
}

func (b *Bot) registerHandlers() {
	b.Bot.Handle("/start", b.handleStart)
	b.Bot.Handle("/trips", b.handleTrips)
}

func (b *Bot) handleStart(c tele.Context) error {
	return c.Send(fmt.Sprintf(messages["start"], c.Chat().ID), tele.ModeHTML)
}

// NotifyToken sends the driver's new magic link to their linked chat.
// Drivers without a linked chat are skipped.
func (b *Bot) NotifyToken(ctx context.Context, driver *models.Driver, token string) error {
	if driver.TelegramID == nil {
		b.Log.Debug("driver has no telegram chat", logger.String("driver", driver.ID))
		return nil
	}

	text, link, err := linkMessage(b.Cfg.PortalBaseURL, driver, token)
	if err != nil {
		return err
	}
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(menu.URL(messages["open_button"], link)))

	if _, err := b.Bot.Send(&tele.User{ID: *driver.TelegramID}, text, menu, tele.ModeHTML); err != nil {
		return fmt.Errorf("send magic link: %w", err)
	}
	b.Log.Info("magic link delivered", logger.String("driver", driver.ID))
	return nil
}

func linkMessage(base string, driver *models.Driver, token string) (string, string, error) {
	link, err := portal.MagicLink(base, token)
	if err != nil {
		return "", "", fmt.Errorf("build magic link: %w", err)
	}
	text := fmt.Sprintf(messages["new_link"], html.EscapeString(driver.Name))
	return text, link, nil
}
