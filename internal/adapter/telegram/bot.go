package telegram

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"student-relief/internal/domain"
	"student-relief/internal/usecase/comfort"
)

const emptyPrompt = "พิมพ์สิ่งที่อยู่ในใจมาได้เลยนะ เรารับฟังอยู่ 🎈"

type Comforter interface {
	Comfort(ctx context.Context, message string) (string, error)
}

type Recorder interface {
	Record(err error) error
}

type Bot struct {
	api     *tgbotapi.BotAPI
	allowed []int64
	comfort Comforter
	errs    Recorder
	logger  zerolog.Logger
}

func NewBot(token string, allowed []int64, comforter Comforter, errs Recorder, logger zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:     api,
		allowed: allowed,
		comfort: comforter,
		errs:    errs,
		logger:  logger,
	}, nil
}

func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	b.logger.Info().Str("bot", b.api.Self.UserName).Msg("telegram bot listening")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			msg := update.Message
			if msg.From == nil {
				continue
			}
			go b.handleMessage(ctx, msg)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if !isAllowedUser(msg.From.ID, b.allowed) {
		b.sendText(msg.Chat.ID, msg.MessageID, "access denied")
		return
	}

	if _, err := b.api.Request(tgbotapi.NewChatAction(msg.Chat.ID, tgbotapi.ChatTyping)); err != nil {
		b.logger.Debug().Err(err).Msg("failed to send chat action")
	}

	b.sendText(msg.Chat.ID, msg.MessageID, b.reply(ctx, msg.Text))
}

// reply never fails: every error path ends in one of the fallback messages.
func (b *Bot) reply(ctx context.Context, text string) string {
	text = strings.TrimSpace(text)
	if text == "" || strings.HasPrefix(text, "/start") {
		return emptyPrompt
	}

	resp, err := b.comfort.Comfort(ctx, text)
	switch {
	case err == nil:
		return resp
	case errors.Is(err, comfort.ErrNotConfigured):
		b.logger.Warn().Msg("comfort requested without provider key")
		return domain.FallbackUnconfigured
	default:
		b.logger.Error().Err(err).Msg("error calling provider")
		if b.errs != nil {
			if rerr := b.errs.Record(err); rerr != nil {
				b.logger.Error().Err(rerr).Msg("failed to write diagnostic log")
			}
		}
		return domain.Fallback
	}
}

func (b *Bot) sendText(chatID int64, replyTo int, text string) {
	const chunkSize = 4096

	for idx, chunk := range splitText(text, chunkSize) {
		msg := tgbotapi.NewMessage(chatID, chunk)
		if idx == 0 {
			msg.ReplyToMessageID = replyTo
		}
		if _, err := b.api.Send(msg); err != nil {
			b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("failed to send reply")
		}
	}
}

func isAllowedUser(userID int64, allowed []int64) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, id := range allowed {
		if id == userID {
			return true
		}
	}
	return false
}

func splitText(text string, chunkSize int) []string {
	if chunkSize <= 0 {
		return []string{text}
	}

	runes := []rune(text)
	if len(runes) <= chunkSize {
		return []string{text}
	}

	chunks := make([]string, 0, len(runes)/chunkSize+1)
	for start := 0; start < len(runes); start += chunkSize {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}

	return chunks
}
