package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/vocabbot/internal/dictionary"
	"github.com/example/vocabbot/internal/quiz"
	"github.com/example/vocabbot/pkg/models"
)

// Main menu button labels.
const (
	quizButton         = "🎯 Начать тест"
	myWordsButton      = "📖 Мой словарь"
	addWordButton      = "➕ Добавить слово"
	removeWordButton   = "➖ Удалить слово"
	statsButton        = "📊 Статистика"
	difficultyButton   = "⚙️ Уровень сложности"
	helpButton         = "❓ Помощь"
	backButton         = "🔙 Главное меню"
	nextQuestionButton = "🎯 Следующий вопрос"
)

// dictionaryChunkLimit bounds one Telegram message when listing words.
const dictionaryChunkLimit = 3000

// mainKeyboard builds the persistent main menu.
func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(quizButton)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(myWordsButton)),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(addWordButton),
			tgbotapi.NewKeyboardButton(removeWordButton),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(statsButton),
			tgbotapi.NewKeyboardButton(difficultyButton),
		),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(helpButton)),
	)
	keyboard.ResizeKeyboard = true
	return keyboard
}

// afterAnswerKeyboard offers the next question or a way back.
func afterAnswerKeyboard() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(nextQuestionButton)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(backButton)),
	)
	keyboard.ResizeKeyboard = true
	return keyboard
}

// tierByLabel maps a difficulty button press back to its tier. A leading
// "✓ " marks the current level and is ignored.
func tierByLabel(text string) (quiz.Tier, bool) {
	label := strings.TrimPrefix(text, "✓ ")
	for _, level := range quiz.Levels() {
		if level.Label == label {
			return level.Tier, true
		}
	}
	return "", false
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

func (b *Bot) sendWithMainKeyboard(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = mainKeyboard()
	b.send(msg)
}

// handleStart greets the user. Registration already happened in dispatch.
func (b *Bot) handleStart(chatID int64, user *models.User) {
	welcome := fmt.Sprintf(
		"Привет, %s! 👋\n\n"+
			"Меня зовут Коннор. Помогу тебе с изучением английских слов. "+
			"Вот что я умею:\n\n"+
			"🎯 Начать тест - Проведу тест на знание слов\n"+
			"⚙️ Уровень сложности - Изменю сложность тестов\n"+
			"📖 Мой словарь - Покажу твой словарь\n"+
			"➕ Добавить слово - Добавлю новое слово\n"+
			"📊 Статистика - Покажу твою статистику\n"+
			"❓ Помощь - Дам справку по всем командам\n\n"+
			"Начни с добавления слов или сразу пройди тест!",
		user.FirstName)
	b.sendWithMainKeyboard(chatID, welcome)
}

func (b *Bot) showHelp(chatID int64) {
	helpText := `📚 <b>Вот мои функции:</b>

🎯 Начать тест - Проверить знание слов
⚙️ Уровень сложности - Изменить сложность тестов
📖 Мой словарь - Показать все слова
➕ Добавить слово - Добавить новое слово
➖ Удалить слово - Удалить слово из словаря
📊 Статистика - Показать прогресс обучения

<b>Формат добавления слов:</b>
<code>английское_слово - русский_перевод</code>
Пример: <code>apple - яблоко</code>`

	msg := tgbotapi.NewMessage(chatID, helpText)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = mainKeyboard()
	b.send(msg)
}

// startQuiz selects a question for the user's tier and presents it with a
// one-time answer keyboard. The question is parked in the pending registry
// until the next reply.
func (b *Bot) startQuiz(ctx context.Context, chatID int64, user *models.User) {
	tier := quiz.TierOrDefault(user.Difficulty)
	level, err := quiz.Resolve(tier)
	if err != nil {
		log.Printf("Error resolving tier %q: %v", tier, err)
		b.sendWithMainKeyboard(chatID, "Произошла ошибка при запуске теста.")
		return
	}

	question, err := b.engine.SelectQuestion(ctx, user.ID, tier)
	if errors.Is(err, quiz.ErrNoWords) {
		b.sendWithMainKeyboard(chatID, "Нет слов для тестирования. Добавь слова через /add_word")
		return
	}
	if err != nil {
		log.Printf("Error selecting question for user %d: %v", user.ID, err)
		b.sendWithMainKeyboard(chatID, "Произошла ошибка при запуске теста.")
		return
	}

	rows := make([][]tgbotapi.KeyboardButton, 0, len(question.Options)+1)
	for _, option := range question.Options {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(option)))
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(backButton)))
	keyboard := tgbotapi.NewReplyKeyboard(rows...)
	keyboard.ResizeKeyboard = true
	keyboard.OneTimeKeyboard = true

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"Уровень: %s\nКак переводится слово: <b>%s</b>?",
		level.Label, question.Headword))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = keyboard
	b.send(msg)

	b.pending.Put(chatID, user.ID, question)
}

// handleQuizAnswer grades the reply to a pending question. A history write
// failure is logged but never hides the feedback from the user.
func (b *Bot) handleQuizAnswer(ctx context.Context, chatID, userID int64, question *quiz.Question, text string) {
	outcome, err := b.engine.RecordAnswer(ctx, userID, question, text)
	if err != nil {
		log.Printf("Error recording answer for user %d: %v", userID, err)
	}

	response := "❌ Неправильно :( Попробуй еще раз."
	if outcome.Correct {
		response = "✅ Правильно! Молодец :)"
	}

	msg := tgbotapi.NewMessage(chatID, response)
	msg.ReplyMarkup = afterAnswerKeyboard()
	b.send(msg)
}

// showMyWords lists the user's dictionary, split across messages when long.
func (b *Bot) showMyWords(ctx context.Context, chatID, userID int64) {
	words, err := b.dict.List(ctx, userID)
	if err != nil {
		log.Printf("Error listing words for user %d: %v", userID, err)
		b.sendWithMainKeyboard(chatID, "Произошла ошибка при получении списка слов.")
		return
	}

	if len(words) == 0 {
		b.sendWithMainKeyboard(chatID, "Твой словарь пуст. Добавь слова через /add_word")
		return
	}

	lines := make([]string, 0, len(words)+1)
	lines = append(lines, "📚 <b>Твой словарь:</b>\n")
	for _, word := range words {
		lines = append(lines, fmt.Sprintf("• %s - %s", word.Headword, word.Translation))
	}

	var part []string
	partLength := 0
	flush := func() {
		if len(part) == 0 {
			return
		}
		msg := tgbotapi.NewMessage(chatID, strings.Join(part, "\n"))
		msg.ParseMode = tgbotapi.ModeHTML
		b.send(msg)
		part = nil
		partLength = 0
	}
	for _, line := range lines {
		lineLength := len(line) + 1
		if partLength+lineLength > dictionaryChunkLimit {
			flush()
		}
		part = append(part, line)
		partLength += lineLength
	}
	flush()

	b.sendWithMainKeyboard(chatID, fmt.Sprintf(
		"Всего слов: %d\nИспользуй /remove_word для удаления слов", len(words)))
}

// promptAddWord asks for a word pair and removes the keyboard so the user
// types freely.
func (b *Bot) promptAddWord(chatID int64) {
	msg := tgbotapi.NewMessage(chatID,
		"Введи новое слово в формате:\n"+
			"английское_слово - русский_перевод\n\n"+
			"Например: apple - яблоко")
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	b.send(msg)
	b.setAwaiting(chatID, inputAddWord)
}

func (b *Bot) processNewWord(ctx context.Context, chatID, userID int64, text string) {
	headword, count, err := b.dict.Add(ctx, userID, text)
	if errors.Is(err, dictionary.ErrInvalidFormat) {
		b.sendWithMainKeyboard(chatID,
			"Неправильный формат. Пожалуйста, введи слово в формате:\n"+
				"английское_слово - русский_перевод\n\n"+
				"Попробуй снова: /add_word")
		return
	}
	if err != nil {
		log.Printf("Error adding word for user %d: %v", userID, err)
		b.sendWithMainKeyboard(chatID, "Произошла ошибка при добавлении слова.")
		return
	}

	b.sendWithMainKeyboard(chatID, fmt.Sprintf(
		"✅ Слово '%s' добавлено в твой словарь.\n📚 Теперь ты изучаешь %d слов.",
		headword, count))
}

// promptRemoveWord shows the user's words as a one-time keyboard to pick
// from.
func (b *Bot) promptRemoveWord(ctx context.Context, chatID, userID int64) {
	words, err := b.dict.List(ctx, userID)
	if err != nil {
		log.Printf("Error listing words for user %d: %v", userID, err)
		b.sendWithMainKeyboard(chatID, "Произошла ошибка при получении списка слов.")
		return
	}
	if len(words) == 0 {
		b.sendWithMainKeyboard(chatID, "У тебя нет слов для удаления.")
		return
	}

	rows := make([][]tgbotapi.KeyboardButton, 0, len(words)+1)
	for _, word := range words {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(word.Headword)))
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(backButton)))
	keyboard := tgbotapi.NewReplyKeyboard(rows...)
	keyboard.ResizeKeyboard = true
	keyboard.OneTimeKeyboard = true

	msg := tgbotapi.NewMessage(chatID, "Выбери слово для удаления:")
	msg.ReplyMarkup = keyboard
	b.send(msg)
	b.setAwaiting(chatID, inputRemoveWord)
}

// confirmRemove deactivates one word picked from the removal keyboard.
func (b *Bot) confirmRemove(ctx context.Context, chatID, userID int64, text string) {
	headword := strings.ToLower(strings.TrimSpace(text))
	count, err := b.dict.Remove(ctx, userID, headword)
	if errors.Is(err, dictionary.ErrNotFound) {
		b.sendWithMainKeyboard(chatID, "Слово не найдено в твоем словаре.")
		return
	}
	if err != nil {
		log.Printf("Error removing word for user %d: %v", userID, err)
		b.sendWithMainKeyboard(chatID, "Произошла ошибка при удалении слова.")
		return
	}

	b.sendWithMainKeyboard(chatID, fmt.Sprintf(
		"🗑️ Слово '%s' удалено из твоего словаря.\n📚 Теперь ты изучаешь %d слов.",
		headword, count))
}

// showStats reports dictionary size, answer counts and accuracy.
func (b *Bot) showStats(ctx context.Context, chatID int64, user *models.User) {
	stats, err := b.engine.ComputeStats(ctx, user.ID)
	if err != nil {
		log.Printf("Error computing stats for user %d: %v", user.ID, err)
		b.sendWithMainKeyboard(chatID, "Произошла ошибка при получении статистики.")
		return
	}

	level, err := quiz.Resolve(quiz.TierOrDefault(user.Difficulty))
	if err != nil {
		log.Printf("Error resolving tier for user %d: %v", user.ID, err)
		b.sendWithMainKeyboard(chatID, "Произошла ошибка при получении статистики.")
		return
	}

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"📊 <b>Твоя статистика</b> (уровень: %s):\n\n"+
			"📚 Слов в словаре: %d\n"+
			"✅ Правильных ответов: %d\n"+
			"❌ Всего ответов: %d\n"+
			"🎯 Точность: %.1f%%",
		level.Label, stats.ActiveWords, stats.Correct, stats.Total, stats.Accuracy))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = mainKeyboard()
	b.send(msg)
}

// showDifficultyMenu lists the tiers, marking the user's current one.
func (b *Bot) showDifficultyMenu(chatID int64, user *models.User) {
	current := quiz.TierOrDefault(user.Difficulty)

	var rows [][]tgbotapi.KeyboardButton
	var descriptions []string
	for _, level := range quiz.Levels() {
		label := level.Label
		if level.Tier == current {
			label = "✓ " + label
		}
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(label)))
		descriptions = append(descriptions, fmt.Sprintf("%s - %s", level.Label, level.Description))
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(backButton)))
	keyboard := tgbotapi.NewReplyKeyboard(rows...)
	keyboard.ResizeKeyboard = true
	keyboard.OneTimeKeyboard = true

	msg := tgbotapi.NewMessage(chatID,
		"📊 <b>Выберите уровень сложности тестов:</b>\n\n"+strings.Join(descriptions, "\n"))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = keyboard
	b.send(msg)
}

// setDifficulty persists the picked tier and confirms it.
func (b *Bot) setDifficulty(ctx context.Context, chatID, userID int64, tier quiz.Tier) {
	level, err := quiz.Resolve(tier)
	if err != nil {
		log.Printf("Error resolving tier %q: %v", tier, err)
		b.sendWithMainKeyboard(chatID, "Произошла ошибка при изменении уровня сложности.")
		return
	}

	if err := b.store.Users.SetDifficulty(ctx, userID, string(tier)); err != nil {
		log.Printf("Error setting difficulty for user %d: %v", userID, err)
		b.sendWithMainKeyboard(chatID, "Произошла ошибка при изменении уровня сложности.")
		return
	}

	b.sendWithMainKeyboard(chatID, fmt.Sprintf(
		"✅ Уровень сложности установлен: %s\n%s", level.Label, level.Description))
}

// showAdminStats reports system-wide counters. Admin-only.
func (b *Bot) showAdminStats(ctx context.Context, chatID int64) {
	userCount, err := b.store.Users.Count(ctx)
	if err != nil {
		log.Printf("Error counting users: %v", err)
		b.sendWithMainKeyboard(chatID, "Произошла ошибка при получении статистики.")
		return
	}
	wordCount, err := b.store.Words.Count(ctx)
	if err != nil {
		log.Printf("Error counting words: %v", err)
		b.sendWithMainKeyboard(chatID, "Произошла ошибка при получении статистики.")
		return
	}

	b.sendWithMainKeyboard(chatID, fmt.Sprintf(
		"Статистика системы\n\n"+
			"Всего пользователей: %d\n"+
			"Слов в общем словаре: %d\n"+
			"Время сервера: %s",
		userCount, wordCount, time.Now().Format("2006-01-02 15:04:05")))
}
