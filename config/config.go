package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string
	GeminiAPIKey  string
	GeminiModel   string
	ModelPath     string
	MetadataPath  string
	SaliencyDir   string
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getenv("GEMINI_MODEL", "gemini-1.5-flash"),
		ModelPath:     getenv("MODEL_PATH", "models/xception.onnx"),
		MetadataPath:  getenv("MODEL_METADATA_PATH", "models/metadata.json"),
		SaliencyDir:   getenv("SALIENCY_DIR", "saliency_maps"),
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
