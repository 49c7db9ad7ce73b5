package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"sort"

	"github.com/Ashan-264/Brain-Tumor-classifier/internal/domain/entity"
	"github.com/Ashan-264/Brain-Tumor-classifier/internal/domain/port"
	"github.com/Ashan-264/Brain-Tumor-classifier/internal/saliency"
)

// AnalysisService управляет полным конвейером анализа снимка:
// проверка качества → препроцессинг → классификация → карта значимости →
// сохранение → объяснение → отчёт.
type AnalysisService struct {
	users      *UserService
	classifier port.Classifier
	generator  *saliency.Generator
	explainer  port.Explainer
	gate       port.ScanGate
	store      port.ScanStore
}

// NewAnalysisService создаёт сервис анализа. Explainer, gate и store
// опциональны: без них конвейер деградирует, но не падает.
func NewAnalysisService(users *UserService, classifier port.Classifier, explainer port.Explainer, gate port.ScanGate, store port.ScanStore) *AnalysisService {
	return &AnalysisService{
		users:      users,
		classifier: classifier,
		generator:  saliency.NewGenerator(),
		explainer:  explainer,
		gate:       gate,
		store:      store,
	}
}

// AnalyzeScan прогоняет присланный снимок через весь конвейер и
// возвращает готовый анализ. Сессия пользователя переводится в режим
// диалога с сохранённым результатом.
func (s *AnalysisService) AnalyzeScan(ctx context.Context, userID, chatID int64, fileName string, imageData []byte) (*entity.ScanAnalysis, error) {
	if s.classifier == nil {
		return nil, errors.New("classifier is not configured")
	}

	if s.gate != nil {
		if err := s.gate.Check(ctx, imageData); err != nil {
			return nil, fmt.Errorf("quality gate: %w", err)
		}
	}

	tensor, err := s.classifier.Preprocess(imageData)
	if err != nil {
		return nil, fmt.Errorf("preprocess: %w", err)
	}

	probs, err := s.classifier.Predict(ctx, tensor)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}

	prediction, err := buildPrediction(s.classifier.Labels(), probs)
	if err != nil {
		return nil, err
	}

	analysis := &entity.ScanAnalysis{
		FileName:   fileName,
		Prediction: prediction,
	}

	size := s.classifier.InputSize()
	composite, err := s.generator.Generate(ctx, s.classifier, tensor, prediction.ClassIndex, size, size)
	switch {
	case err == nil:
		data, encErr := encodeJPEG(composite)
		if encErr != nil {
			return nil, fmt.Errorf("encode saliency map: %w", encErr)
		}
		analysis.SaliencyJPEG = data
		if s.store != nil {
			if path, saveErr := s.store.Save(fileName, data); saveErr == nil {
				analysis.SaliencyPath = path
			}
		}
	case errors.Is(err, saliency.ErrGradientUnsupported):
		// модель без градиентов: продолжаем без карты значимости
	default:
		return nil, fmt.Errorf("saliency map: %w", err)
	}

	if s.explainer != nil && len(analysis.SaliencyJPEG) > 0 {
		if explanation, explErr := s.explainer.Explain(ctx, analysis.SaliencyJPEG, prediction); explErr == nil {
			analysis.Explanation = explanation
		}
	}

	analysis.Report = BuildReport(analysis)

	if s.users != nil {
		if _, attachErr := s.users.AttachAnalysis(ctx, userID, chatID, analysis); attachErr != nil {
			return nil, attachErr
		}
	}

	return analysis, nil
}

// buildPrediction находит класс с максимальной вероятностью и готовит
// отсортированный по убыванию список для отчёта.
func buildPrediction(labels []string, probs []float32) (entity.Prediction, error) {
	if len(probs) == 0 || len(probs) != len(labels) {
		return entity.Prediction{}, fmt.Errorf("prediction size mismatch: %d labels, %d probabilities", len(labels), len(probs))
	}

	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}

	sorted := make([]entity.ClassProbability, len(labels))
	for i := range labels {
		sorted[i] = entity.ClassProbability{Label: labels[i], Probability: probs[i]}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Probability > sorted[j].Probability
	})

	return entity.Prediction{
		Label:         labels[best],
		ClassIndex:    best,
		Confidence:    probs[best],
		Probabilities: sorted,
	}, nil
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
