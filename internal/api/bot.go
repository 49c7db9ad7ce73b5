package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "github.com/Ashan-264/Brain-Tumor-classifier/internal/application"
	"github.com/Ashan-264/Brain-Tumor-classifier/internal/container"
	"github.com/Ashan-264/Brain-Tumor-classifier/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я бот для анализа МРТ-снимков головного мозга.

🧠 Отправьте снимок МРТ, и я определю класс опухоли, покажу карту значимости и объясню результат.

📋 Команды:
/scan — начать анализ снимка
/report — показать последний отчёт
/help — справка
/cancel — отменить текущую операцию

⚠️ Результат не является медицинским диагнозом.`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте МРТ-снимок (фото или файл)
2️⃣ Бот классифицирует снимок и построит карту значимости
3️⃣ Вы получите предсказание, объяснение и отчёт
4️⃣ Дальше можно задавать вопросы по результату прямо в чате

💡 Рекомендации:
• Отправляйте снимок одним изображением
• Лучше присылать файлом — без сжатия

📋 Команды:
/scan — начать анализ
/report — показать последний отчёт
/cancel — отменить операцию`

	msgAwaitingScan    = "🧠 Отправьте МРТ-снимок для анализа."
	msgCancelled       = "❌ Операция отменена. Отправьте /scan для нового анализа."
	msgSendScan        = "🧠 Пожалуйста, отправьте МРТ-снимок для анализа."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Анализирую снимок..."
	msgProcessingError = "⚠️ Не удалось обработать снимок. Попробуйте отправить другое изображение."
	msgNoReport        = "📄 Отчётов пока нет. Отправьте снимок для анализа."
	msgNoSaliency      = "ℹ️ Модель не поддерживает карты значимости, показываю только предсказание."
	msgChatIntro       = "💬 Можете задавать вопросы по результату. /scan — новый снимок, /cancel — выход."
	msgChatError       = "⚠️ Не удалось получить ответ. Попробуйте ещё раз."
)

// Bot представляет Telegram-бота
type Bot struct {
	api      *tgbotapi.BotAPI
	services *container.Container
}

// NewBot создаёт нового бота
func NewBot(token string, services *container.Container) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:      api,
		services: services,
	}, nil
}

// Run запускает основной цикл обработки сообщений
func (b *Bot) Run() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	ctx := context.Background()

	for update := range updates {
		if update.Message == nil {
			continue
		}

		b.handleMessage(ctx, update.Message)
	}

	return nil
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	user, err := b.services.UserService.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		log.Printf("Error getting user: %v", err)
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg, user)
		return
	}

	// Обработка снимка: фото или файл-изображение
	if len(msg.Photo) > 0 || isImageDocument(msg.Document) {
		b.handleScan(ctx, msg)
		return
	}

	// В режиме диалога текст — это вопрос ассистенту
	if user.State == entity.StateChatting && msg.Text != "" {
		b.handleChat(ctx, msg)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendScan)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	switch msg.Command() {
	case "start":
		b.services.UserService.Cancel(ctx, msg.From.ID, msg.Chat.ID)
		b.sendMessage(msg.Chat.ID, msgStart)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	case "scan":
		b.services.UserService.BeginScan(ctx, msg.From.ID, msg.Chat.ID)
		b.sendMessage(msg.Chat.ID, msgAwaitingScan)

	case "report":
		if user.LastAnalysis == nil {
			b.sendMessage(msg.Chat.ID, msgNoReport)
			return
		}
		b.sendMessage(msg.Chat.ID, user.LastAnalysis.Report)

	case "cancel":
		b.services.UserService.Cancel(ctx, msg.From.ID, msg.Chat.ID)
		b.sendMessage(msg.Chat.ID, msgCancelled)

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

// handleScan обрабатывает присланный МРТ-снимок
func (b *Bot) handleScan(ctx context.Context, msg *tgbotapi.Message) {
	b.services.UserService.SetState(ctx, msg.From.ID, msg.Chat.ID, entity.StateProcessing)
	b.sendMessage(msg.Chat.ID, msgProcessing)

	fileID, fileName := scanFile(msg)

	imageData, err := b.downloadFile(fileID)
	if err != nil {
		log.Printf("Error downloading scan: %v", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		b.services.UserService.Cancel(ctx, msg.From.ID, msg.Chat.ID)
		return
	}

	analysis, err := b.services.AnalysisService.AnalyzeScan(ctx, msg.From.ID, msg.Chat.ID, fileName, imageData)
	if err != nil {
		log.Printf("Error analyzing scan: %v", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		b.services.UserService.Cancel(ctx, msg.From.ID, msg.Chat.ID)
		return
	}

	b.sendMessage(msg.Chat.ID, fmt.Sprintf("🔍 Предсказание: %s\n📊 Уверенность: %.2f%%",
		analysis.Prediction.Label, analysis.Prediction.Confidence*100))

	if len(analysis.SaliencyJPEG) > 0 {
		b.sendPhoto(msg.Chat.ID, fileName, analysis.SaliencyJPEG)
	} else {
		b.sendMessage(msg.Chat.ID, msgNoSaliency)
	}

	if analysis.Explanation != "" {
		b.sendMessage(msg.Chat.ID, "📝 Объяснение:\n"+analysis.Explanation)
	}

	b.sendMessage(msg.Chat.ID, analysis.Report)
	b.sendMessage(msg.Chat.ID, msgChatIntro)
}

// handleChat передаёт вопрос пользователя ассистенту
func (b *Bot) handleChat(ctx context.Context, msg *tgbotapi.Message) {
	answer, err := b.services.ChatService.Ask(ctx, msg.From.ID, msg.Chat.ID, msg.Text)
	if err != nil {
		if errors.Is(err, app.ErrNoAnalysis) {
			b.sendMessage(msg.Chat.ID, msgSendScan)
			return
		}
		log.Printf("Error answering question: %v", err)
		b.sendMessage(msg.Chat.ID, msgChatError)
		return
	}

	b.sendMessage(msg.Chat.ID, answer)
}

// scanFile выбирает файл снимка из сообщения: документ с именем либо
// фото в максимальном разрешении
func scanFile(msg *tgbotapi.Message) (fileID, fileName string) {
	if isImageDocument(msg.Document) {
		return msg.Document.FileID, msg.Document.FileName
	}

	photo := msg.Photo[len(msg.Photo)-1]
	return photo.FileID, photo.FileUniqueID + ".jpg"
}

func isImageDocument(doc *tgbotapi.Document) bool {
	return doc != nil && strings.HasPrefix(doc.MimeType, "image/")
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	fileURL := file.Link(b.api.Token)

	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

// sendPhoto отправляет изображение из памяти
func (b *Bot) sendPhoto(chatID int64, name string, data []byte) {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	photo.Caption = "Карта значимости"
	if _, err := b.api.Send(photo); err != nil {
		log.Printf("Error sending photo: %v", err)
	}
}
