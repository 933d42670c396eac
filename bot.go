package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/turbekoff/apcalc/pkg/apc"
)

var (
	ErrClosed         = errors.New("bot has closed")
	ErrSessionExpired = errors.New("session has expired")
	ErrAlreadyStarted = errors.New("bot already started")
)

// messageLimit is the longest text Telegram accepts in one message.
const messageLimit = 4096

var botKeyboard = tgbotapi.NewInlineKeyboardMarkup(
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("AC", "AC"),
		tgbotapi.NewInlineKeyboardButtonData("C", "C"),
		tgbotapi.NewInlineKeyboardButtonData("%", "%"),
		tgbotapi.NewInlineKeyboardButtonData("÷", "/"),
	),
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("7", "7"),
		tgbotapi.NewInlineKeyboardButtonData("8", "8"),
		tgbotapi.NewInlineKeyboardButtonData("9", "9"),
		tgbotapi.NewInlineKeyboardButtonData("×", "*"),
	),
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("4", "4"),
		tgbotapi.NewInlineKeyboardButtonData("5", "5"),
		tgbotapi.NewInlineKeyboardButtonData("6", "6"),
		tgbotapi.NewInlineKeyboardButtonData("-", "-"),
	),
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("1", "1"),
		tgbotapi.NewInlineKeyboardButtonData("2", "2"),
		tgbotapi.NewInlineKeyboardButtonData("3", "3"),
		tgbotapi.NewInlineKeyboardButtonData("+", "+"),
	),
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("±", "T"),
		tgbotapi.NewInlineKeyboardButtonData("0", "0"),
		tgbotapi.NewInlineKeyboardButtonData("xʸ", "^"),
		tgbotapi.NewInlineKeyboardButtonData("=", "="),
	),
)

// botAPI is the part of *tgbotapi.BotAPI the bot relies on.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type Bot struct {
	sessions   *Sessions[*Calculator]
	api        botAPI
	config     *Config
	metrics    *Metrics
	welcome    string
	help       string
	isStarted  atomic.Bool
	inShutdown atomic.Bool
	isDone     chan struct{}
	logger     *log.Logger
}

func LoadBot(config *Config, metrics *Metrics, logger *log.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(config.BotToken)
	if err != nil {
		return nil, err
	}
	return newBot(api, config, metrics, logger), nil
}

func newBot(api botAPI, config *Config, metrics *Metrics, logger *log.Logger) *Bot {
	return &Bot{
		api:     api,
		config:  config,
		metrics: metrics,
		logger:  logger,
		isDone:  make(chan struct{}),
		sessions: NewSessions[*Calculator](
			config.SessionTTL,
			config.SessionCleanup,
		),
		welcome: fmt.Sprintf(
			"%s%s%s %s of inactivity.",
			"Welcome! Type /open to get an integer calculator of unlimited precision.\n",
			"You can also send an expression like 2 ^ 100.\n",
			"Note: the session expires after",
			config.SessionTTL,
		),
		help: strings.Join([]string{
			"Help:",
			"/start - welcome message.",
			"/open - open new session.",
			"/calc <a> <op> <b> - evaluate one operation.",
			"/help - send this message.",
			"",
			"Operators: + - * / % ^",
			fmt.Sprintf("Exponents are limited to %d digits.", apc.MaxExponentDigits),
		}, "\n"),
	}
}

func (b *Bot) Run() error {
	if b.isStarted.Swap(true) {
		return ErrAlreadyStarted
	}
	defer close(b.isDone)

	updateConfig := tgbotapi.NewUpdate(b.config.BotOffset)
	updateConfig.Timeout = b.config.BotTimeout
	updates := b.api.GetUpdatesChan(updateConfig)

	for update := range updates {
		if b.inShutdown.Load() && b.sessions.IsEmpty() {
			continue
		}

		if update.CallbackQuery != nil {
			if err := b.handleCallback(update.CallbackQuery); err != nil {
				b.logger.Printf("failed to handle callback, error: %v", err)
				continue
			}
		}

		if update.Message == nil {
			continue
		}

		if err := b.handleCommand(update.Message); err != nil {
			b.logger.Printf("failed to send message, error: %v", err)
		}
	}

	return ErrClosed
}

func (b *Bot) createMessage(chatID int64, text string) error {
	for _, chunk := range splitMessage(text, messageLimit) {
		if _, err := b.api.Send(tgbotapi.NewMessage(chatID, chunk)); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bot) createKeyboard(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, displayText(text))
	msg.ReplyMarkup = botKeyboard

	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) updateKeyboard(callback *tgbotapi.CallbackQuery, text string) error {
	text = displayText(text)
	if text == callback.Message.Text {
		return nil
	}

	edit := tgbotapi.NewEditMessageText(
		callback.Message.Chat.ID,
		callback.Message.MessageID,
		text,
	)
	edit.ReplyMarkup = &botKeyboard

	_, err := b.api.Send(edit)
	return err
}

func (b *Bot) handleCommand(command *tgbotapi.Message) error {
	text := strings.TrimSpace(command.Text)
	switch {
	case text == "/start":
		return b.createMessage(command.Chat.ID, b.welcome)
	case text == "/help":
		return b.createMessage(command.Chat.ID, b.help)
	case text == "/open":
		key := sessionKey(command.Chat.ID, command.From.ID)
		if _, ok := b.sessions.Get(key); ok {
			return b.createMessage(
				command.Chat.ID,
				"Your session is not expired!",
			)
		}

		calculator := NewCalculator(b.metrics.Eval)
		err := b.createKeyboard(command.Chat.ID, calculator.Display)
		if err == nil {
			b.sessions.Set(key, calculator)
		}
		return err
	case strings.HasPrefix(text, "/calc"):
		return b.createMessage(command.Chat.ID, b.evaluate(strings.TrimPrefix(text, "/calc")))
	case strings.HasPrefix(text, "/"):
		return b.createMessage(command.Chat.ID, "Unknown command. Try /help")
	default:
		return b.createMessage(command.Chat.ID, b.evaluate(text))
	}
}

func (b *Bot) evaluate(expr string) string {
	x, op, y, err := apc.ParseExpr(expr)
	if err != nil {
		return "Expected an expression like 12 * 34. Try /help"
	}

	result, err := b.metrics.Eval(x, op, y)
	if err != nil {
		return "Error: " + rootCause(err).Error()
	}
	return result.String()
}

func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) error {
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		return err
	}

	key := sessionKey(callback.Message.Chat.ID, callback.From.ID)
	calculator, ok := b.sessions.Get(key)
	if !ok {
		err := b.updateKeyboard(
			callback,
			"Your session has expired, please /open a new one.",
		)
		if err != nil {
			return err
		}
		return ErrSessionExpired
	}

	var err error
	switch {
	case callback.Data == "AC":
		calculator = NewCalculator(b.metrics.Eval)
	case len(callback.Data) != 1:
		err = ErrUnsupported
	default:
		r := rune(callback.Data[0])
		if '0' <= r && r <= '9' {
			err = calculator.ProcessOperand(r)
		} else {
			err = calculator.ProcessOperator(r)
		}
	}

	if errors.Is(err, ErrUnsupported) {
		return err
	}

	if uerr := b.updateKeyboard(callback, calculator.Display); uerr != nil {
		return uerr
	}
	b.sessions.Set(key, calculator)
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.inShutdown.Store(true)
	err := b.sessions.Shutdown(ctx)
	b.api.StopReceivingUpdates()

	select {
	case <-b.isDone:
		if errors.Is(err, ErrSessionsClosed) {
			return ErrClosed
		}
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Bot) Close() error {
	b.inShutdown.Store(true)
	err := b.sessions.Close()
	b.api.StopReceivingUpdates()
	<-b.isDone

	if errors.Is(err, ErrSessionsClosed) {
		return ErrClosed
	}
	return err
}

func sessionKey(chatID, userID int64) string {
	return fmt.Sprintf("%d_%d", chatID, userID)
}

// displayText shortens a result that does not fit in one keypad message.
func displayText(text string) string {
	if len(text) <= messageLimit {
		return text
	}

	const keep = 64
	return fmt.Sprintf("%s…%s (%d digits)", text[:keep], text[len(text)-keep:], len(strings.TrimPrefix(text, "-")))
}

func splitMessage(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	chunks := make([]string, 0, len(runes)/limit+1)
	for len(runes) > limit {
		chunks = append(chunks, string(runes[:limit]))
		runes = runes[limit:]
	}
	return append(chunks, string(runes))
}
