package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/Ashan-264/Brain-Tumor-classifier/internal/domain/entity"
	"github.com/Ashan-264/Brain-Tumor-classifier/internal/domain/port"
)

const explainPrompt = `Ты — опытный нейрорадиолог. Тебе показывают карту значимости МРТ-снимка головного мозга.
Карта построена по глубокой модели, обученной различать классы: %s.
Подсвеченные области карты — участки, на которые модель опиралась при предсказании.

Модель отнесла снимок к классу '%s' с уверенностью %.2f%%.

В ответе:
- Опиши, на какие области мозга смотрит модель, судя по подсвеченным участкам.
- Объясни возможные причины такого предсказания.
- Не упоминай саму карту значимости и способ её построения.
- Не более 4 предложений.`

const chatPrompt = `Ты — опытный нейрорадиолог, помогаешь разбирать МРТ-снимки головного мозга.
Модель отнесла снимок к классу '%s' с уверенностью %.2f%%.

Ранее дано объяснение:
%s

История диалога:
%s

Ответь на вопрос пользователя:
%s`

// GeminiExplainer генерирует объяснения и ответы через Gemini API.
type GeminiExplainer struct {
	client *genai.Client
	model  string
}

// NewGeminiExplainer создаёт клиента Gemini.
func NewGeminiExplainer(ctx context.Context, apiKey, model string) (*GeminiExplainer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	return &GeminiExplainer{client: client, model: model}, nil
}

// Explain отправляет композит карты значимости вместе с промптом и
// возвращает текст объяснения.
func (e *GeminiExplainer) Explain(ctx context.Context, saliencyJPEG []byte, prediction entity.Prediction) (string, error) {
	prompt := fmt.Sprintf(explainPrompt, labelList(prediction), prediction.Label, prediction.Confidence*100)

	content := genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromBytes(saliencyJPEG, "image/jpeg"),
		genai.NewPartFromText(prompt),
	}, genai.RoleUser)

	resp, err := e.client.Models.GenerateContent(ctx, e.model, []*genai.Content{content}, nil)
	if err != nil {
		return "", fmt.Errorf("gemini explain: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

// Chat отвечает на вопрос с учётом предсказания, объяснения и истории.
func (e *GeminiExplainer) Chat(ctx context.Context, analysis *entity.ScanAnalysis, history []entity.ChatMessage, question string) (string, error) {
	prompt := fmt.Sprintf(chatPrompt,
		analysis.Prediction.Label,
		analysis.Prediction.Confidence*100,
		analysis.Explanation,
		transcript(history),
		question)

	content := genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromText(prompt),
	}, genai.RoleUser)

	resp, err := e.client.Models.GenerateContent(ctx, e.model, []*genai.Content{content}, nil)
	if err != nil {
		return "", fmt.Errorf("gemini chat: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

func labelList(p entity.Prediction) string {
	labels := make([]string, 0, len(p.Probabilities))
	for _, cp := range p.Probabilities {
		labels = append(labels, cp.Label)
	}
	return strings.Join(labels, ", ")
}

func transcript(history []entity.ChatMessage) string {
	if len(history) == 0 {
		return "(пока пусто)"
	}
	var b strings.Builder
	for _, m := range history {
		role := "Пользователь"
		if m.Role == entity.RoleAssistant {
			role = "Ассистент"
		}
		fmt.Fprintf(&b, "%s: %s\n", role, m.Content)
	}
	return b.String()
}

// Проверка реализации интерфейса
var _ port.Explainer = (*GeminiExplainer)(nil)
