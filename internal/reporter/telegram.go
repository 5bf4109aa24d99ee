package reporter

import (
	"fmt"
	"html"
	"strings"

	"go-jobdemand-scraper/internal/config"
	"go-jobdemand-scraper/internal/scraper"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramReporter(cfg config.TelegramConfig) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &TelegramReporter{bot: bot, chatID: cfg.ChatID}, nil
}

// NewTelegramReporterWithEndpoint talks to a custom Bot API endpoint
// ("https://host/bot%s/%s"), e.g. a local bot API server.
func NewTelegramReporterWithEndpoint(cfg config.TelegramConfig, endpoint string) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(cfg.Token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &TelegramReporter{bot: bot, chatID: cfg.ChatID}, nil
}

func (t *TelegramReporter) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	_, err := t.bot.Send(msg)
	return err
}

func (t *TelegramReporter) SendDemand(skills []string, outcomes []scraper.Outcome) error {
	return t.SendMessage(FormatDemand(skills, outcomes))
}

func (t *TelegramReporter) SendError(errReq error) error {
	text := fmt.Sprintf("⚠️ <b>Job demand scrape failed</b>:\n%s", html.EscapeString(errReq.Error()))
	return t.SendMessage(text)
}

// FormatDemand renders one line per portal as Telegram HTML. Estimated
// counts are marked with "~".
func FormatDemand(skills []string, outcomes []scraper.Outcome) string {
	var b strings.Builder

	query := strings.Join(skills, ", ")
	if query == "" {
		query = "(no skills)"
	}
	fmt.Fprintf(&b, "📊 <b>Job demand</b> for %s\n", html.EscapeString(query))

	estimated := false
	total := 0
	for _, o := range outcomes {
		mark := ""
		if o.Estimated {
			mark = "~"
			estimated = true
		}
		total += o.Jobs
		fmt.Fprintf(&b, "• <a href=\"%s\">%s</a>: %s%d\n",
			html.EscapeString(o.URL), html.EscapeString(o.Name), mark, o.Jobs)
	}
	fmt.Fprintf(&b, "Total: %d", total)
	if estimated {
		b.WriteString("\n<i>~ live scraping failed, values are estimates</i>")
	}
	return b.String()
}
