package telegram

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"autotag/internal/container"
	"autotag/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я размечаю фотографии: нахожу на них объекты и возвращаю список меток.

📸 Отправьте мне фото, и я скажу, что на нём есть.

📋 Команды:
/tag — разметить фото
/format text|json — формат ответа
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте фото
2️⃣ Бот найдёт на нём объекты
3️⃣ Вы получите список меток: person,car или ["car","person"]

📋 Команды:
/tag — разметить фото
/format text|json — формат ответа
/cancel — отменить операцию`

	msgAwaitingPhoto   = "📸 Отправьте фото для разметки."
	msgCancelled       = "❌ Операция отменена. Отправьте /tag для новой разметки."
	msgSendPhoto       = "📸 Пожалуйста, отправьте фото для разметки."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Обрабатываю изображение..."
	msgNoObjects       = "🔍 Объекты не найдены."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте другое фото."
	msgFormatUsage     = "ℹ️ Использование: /format text или /format json"
	msgFormatSet       = "✅ Формат ответа: %s"
	msgTags            = "🏷 Метки:\n%s"
)

// Bot представляет Telegram-бота
type Bot struct {
	api       *tgbotapi.BotAPI
	container *container.Container
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:       api,
		container: c,
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}

	user, err := b.container.UserService.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		log.Printf("Error getting user: %v", err)
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg, user)
		return
	}

	// Обработка фото
	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg, user)
		return
	}

	// Текстовое сообщение (не команда)
	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	users := b.container.UserService

	switch msg.Command() {
	case "start":
		if _, err := users.Cancel(ctx, user.ID, user.ChatID); err != nil {
			log.Printf("Error saving user: %v", err)
		}
		b.sendMessage(msg.Chat.ID, msgStart)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	case "tag":
		if _, err := users.BeginTagging(ctx, user.ID, user.ChatID); err != nil {
			log.Printf("Error saving user: %v", err)
		}
		b.sendMessage(msg.Chat.ID, msgAwaitingPhoto)

	case "format":
		format, err := entity.ParseOutputFormat(msg.CommandArguments())
		if err != nil {
			b.sendMessage(msg.Chat.ID, msgFormatUsage)
			return
		}
		if _, err := users.SetFormat(ctx, user.ID, user.ChatID, format); err != nil {
			log.Printf("Error saving user: %v", err)
		}
		b.sendMessage(msg.Chat.ID, fmt.Sprintf(msgFormatSet, format))

	case "cancel":
		if _, err := users.Cancel(ctx, user.ID, user.ChatID); err != nil {
			log.Printf("Error saving user: %v", err)
		}
		b.sendMessage(msg.Chat.ID, msgCancelled)

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

// handlePhoto размечает входящее фото
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	users := b.container.UserService

	// Устанавливаем состояние "обработка"
	if _, err := users.SetState(ctx, user.ID, user.ChatID, entity.StateProcessing); err != nil {
		log.Printf("Error saving user: %v", err)
	}
	defer func() {
		// Возвращаем в главное меню
		if _, err := users.Cancel(ctx, user.ID, user.ChatID); err != nil {
			log.Printf("Error saving user: %v", err)
		}
	}()

	b.sendMessage(msg.Chat.ID, msgProcessing)

	// Берём файл с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	path, err := b.downloadFile(photo.FileID)
	if err != nil {
		log.Printf("Error downloading photo: %v", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}
	defer os.Remove(path)

	set, err := b.container.TaggingService.Tag(ctx, entity.DetectionRequest{ImagePath: path})
	if err != nil {
		log.Printf("Error tagging photo: %v", err)
	} else {
		log.Printf("Tagged photo for user %d: %d labels", user.ID, set.Len())
	}

	b.sendMessage(msg.Chat.ID, replyText(set, err, user.Format))
}

// replyText формирует ответ с метками в формате пользователя
func replyText(set entity.LabelSet, err error, format entity.OutputFormat) string {
	if err != nil {
		return msgProcessingError
	}
	if set.Len() == 0 {
		return msgNoObjects
	}
	return fmt.Sprintf(msgTags, format.Format(set))
}

// downloadFile скачивает файл из Telegram во временный файл и возвращает путь к нему
func (b *Bot) downloadFile(fileID string) (string, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return "", fmt.Errorf("get file: %w", err)
	}

	fileURL := file.Link(b.api.Token)

	resp, err := http.Get(fileURL)
	if err != nil {
		return "", fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download file: unexpected status %s", resp.Status)
	}

	return saveTemp(resp.Body, extension(file.FilePath))
}

// saveTemp сохраняет поток во временный файл
func saveTemp(r io.Reader, ext string) (string, error) {
	f, err := os.CreateTemp("", "autotag-*"+ext)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("save file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("save file: %w", err)
	}

	return f.Name(), nil
}

func extension(filePath string) string {
	i := strings.LastIndex(filePath, ".")
	if i < 0 || strings.Contains(filePath[i:], "/") {
		return ".jpg"
	}
	return filePath[i:]
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}
