package port

import (
	"context"

	"github.com/Ashan-264/Brain-Tumor-classifier/internal/domain/entity"
)

// Explainer интерфейс генератора объяснений на естественном языке
type Explainer interface {
	// Explain генерирует текстовое объяснение карты значимости для предсказания
	Explain(ctx context.Context, saliencyJPEG []byte, prediction entity.Prediction) (string, error)

	// Chat отвечает на вопрос пользователя в контексте анализа и истории диалога
	Chat(ctx context.Context, analysis *entity.ScanAnalysis, history []entity.ChatMessage, question string) (string, error)
}
