package main

import (
	"context"
	"log"

	"github.com/Ashan-264/Brain-Tumor-classifier/config"
	telegram "github.com/Ashan-264/Brain-Tumor-classifier/internal/api"
	"github.com/Ashan-264/Brain-Tumor-classifier/internal/container"
	"github.com/Ashan-264/Brain-Tumor-classifier/internal/domain/port"
	"github.com/Ashan-264/Brain-Tumor-classifier/internal/infrastructure/classifier"
	"github.com/Ashan-264/Brain-Tumor-classifier/internal/infrastructure/llm"
	"github.com/Ashan-264/Brain-Tumor-classifier/internal/infrastructure/storage"
	"github.com/Ashan-264/Brain-Tumor-classifier/internal/infrastructure/vision"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_TOKEN is required")
	}

	ctx := context.Background()

	// Загружаем модель классификатора
	clf, err := classifier.NewONNXClassifier(cfg.ModelPath, cfg.MetadataPath)
	if err != nil {
		log.Fatalf("Failed to load model: %v", err)
	}
	defer clf.Close()
	log.Printf("Model loaded: %s, classes: %v", cfg.ModelPath, clf.Labels())

	// Генератор объяснений опционален
	var explainer port.Explainer
	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGeminiExplainer(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
		}
		explainer = gemini
	} else {
		log.Println("GEMINI_API_KEY is not set, explanations are disabled")
	}

	// Проверка качества снимков доступна только в сборке с OpenCV
	var gate port.ScanGate
	if vision.Available() {
		gate = vision.NewMRIGate()
	} else {
		log.Println("gocv build tag is not enabled, scan quality gate is disabled")
	}

	store, err := storage.NewFileScanStore(cfg.SaliencyDir)
	if err != nil {
		log.Fatalf("Failed to create scan store: %v", err)
	}

	// Создаём хранилище пользователей
	userRepo := storage.NewMemoryUserRepository()

	// Собираем сервисы приложения
	appContainer := container.New(userRepo, clf, explainer, gate, store)

	// Создаём бота
	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	log.Println("Bot is running...")
	if err := bot.Run(); err != nil {
		log.Fatalf("Bot error: %v", err)
	}
}
