// Package bot wires the Telegram transport to the quiz engine and the
// dictionary service. One update is handled per goroutine; all per-chat
// conversation state lives in explicit registries, not in callbacks.
package bot

import (
	"context"
	"fmt"
	"log"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/vocabbot/internal/config"
	"github.com/example/vocabbot/internal/database"
	"github.com/example/vocabbot/internal/dictionary"
	"github.com/example/vocabbot/internal/quiz"
	"github.com/example/vocabbot/internal/scheduler"
	"github.com/example/vocabbot/pkg/models"
)

// inputState tracks what free-text input a chat is expected to send next.
type inputState int

const (
	inputNone inputState = iota
	inputAddWord
	inputRemoveWord
)

// Bot represents the Telegram bot application.
type Bot struct {
	api     *tgbotapi.BotAPI
	store   *database.Store
	engine  *quiz.Engine
	dict    *dictionary.Service
	pending *quiz.PendingQuestions
	sched   *scheduler.Scheduler

	adminUserIDs map[int64]bool

	mu       sync.Mutex
	awaiting map[int64]inputState // keyed by chat ID
}

// New creates a bot instance over the given store.
func New(cfg *config.Config, store *database.Store) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("unable to create bot: %w", err)
	}

	pending := quiz.NewPendingQuestions(cfg.PendingTTL)

	return &Bot{
		api:          api,
		store:        store,
		engine:       quiz.New(store),
		dict:         dictionary.New(store),
		pending:      pending,
		sched:        scheduler.New(pending),
		adminUserIDs: cfg.AdminIDs,
		awaiting:     make(map[int64]inputState),
	}, nil
}

// Start runs the long-polling update loop until the context is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	log.Printf("Authorized on account %s", b.api.Self.UserName)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	b.sched.Start()

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

// Stop terminates the background sweeper.
func (b *Bot) Stop() {
	b.sched.Stop()
	log.Println("Bot stopped")
}

// isAdmin checks if a user is an admin.
func (b *Bot) isAdmin(userID int64) bool {
	return b.adminUserIDs[userID]
}

func (b *Bot) setAwaiting(chatID int64, state inputState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if state == inputNone {
		delete(b.awaiting, chatID)
		return
	}
	b.awaiting[chatID] = state
}

func (b *Bot) takeAwaiting(chatID int64) inputState {
	b.mu.Lock()
	defer b.mu.Unlock()
	state, ok := b.awaiting[chatID]
	if !ok {
		return inputNone
	}
	delete(b.awaiting, chatID)
	return state
}

// handleUpdate dispatches one incoming update. Order matters: commands
// always win, then a pending quiz answer, then expected free-text input,
// then menu buttons.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	message := update.Message
	chatID := message.Chat.ID

	user, err := b.store.Users.GetOrCreate(ctx, message.From.ID,
		message.From.UserName, message.From.FirstName, message.From.LastName)
	if err != nil {
		log.Printf("Error registering user %d: %v", message.From.ID, err)
		b.sendWithMainKeyboard(chatID, "Произошла ошибка. Попробуй еще раз.")
		return
	}

	if message.IsCommand() {
		b.pending.Drop(chatID)
		b.setAwaiting(chatID, inputNone)
		b.handleCommand(ctx, message, user)
		return
	}

	text := message.Text

	if text == backButton || text == "Главное меню" {
		b.pending.Drop(chatID)
		b.setAwaiting(chatID, inputNone)
		b.sendWithMainKeyboard(chatID, "Выбери действие:")
		return
	}

	if pending, ok := b.pending.Take(chatID); ok {
		b.handleQuizAnswer(ctx, chatID, user.ID, pending.Question, text)
		return
	}

	switch b.takeAwaiting(chatID) {
	case inputAddWord:
		b.processNewWord(ctx, chatID, user.ID, text)
		return
	case inputRemoveWord:
		b.confirmRemove(ctx, chatID, user.ID, text)
		return
	}

	switch text {
	case quizButton, nextQuestionButton:
		b.startQuiz(ctx, chatID, user)
	case myWordsButton:
		b.showMyWords(ctx, chatID, user.ID)
	case addWordButton:
		b.promptAddWord(chatID)
	case removeWordButton:
		b.promptRemoveWord(ctx, chatID, user.ID)
	case statsButton:
		b.showStats(ctx, chatID, user)
	case difficultyButton:
		b.showDifficultyMenu(chatID, user)
	case helpButton:
		b.showHelp(chatID)
	default:
		if tier, ok := tierByLabel(text); ok {
			b.setDifficulty(ctx, chatID, user.ID, tier)
			return
		}
		b.sendWithMainKeyboard(chatID, "Используй кнопки меню или команды.")
	}
}

// handleCommand handles slash commands.
func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message, user *models.User) {
	chatID := message.Chat.ID
	switch message.Command() {
	case "start":
		b.handleStart(chatID, user)
	case "help":
		b.showHelp(chatID)
	case "quiz":
		b.startQuiz(ctx, chatID, user)
	case "my_words":
		b.showMyWords(ctx, chatID, user.ID)
	case "add_word":
		b.promptAddWord(chatID)
	case "remove_word":
		b.promptRemoveWord(ctx, chatID, user.ID)
	case "stats":
		b.showStats(ctx, chatID, user)
	case "admin_stats":
		if !b.isAdmin(user.ID) {
			b.sendWithMainKeyboard(chatID, "Эта команда доступна только администраторам.")
			return
		}
		b.showAdminStats(ctx, chatID)
	default:
		b.sendWithMainKeyboard(chatID, "Неизвестная команда. Используй кнопки меню или /help.")
	}
}
