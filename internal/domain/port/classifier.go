package port

import (
	"context"

	"github.com/Ashan-264/Brain-Tumor-classifier/internal/domain/entity"
)

// Classifier интерфейс классификатора МРТ-снимков
type Classifier interface {
	// Preprocess декодирует изображение и готовит тензор для входа модели
	Preprocess(imageData []byte) (*entity.ImageTensor, error)

	// Predict возвращает распределение вероятностей по классам
	Predict(ctx context.Context, t *entity.ImageTensor) ([]float32, error)

	// Labels возвращает список классов в порядке выходов модели
	Labels() []string

	// InputSize возвращает сторону квадратного входа модели в пикселях
	InputSize() int
}

// GradientClassifier — классификатор, умеющий считать градиент оценки
// класса по входному тензору. Отдельная способность: не каждая модель
// дифференцируема от входа до выхода.
type GradientClassifier interface {
	Classifier

	// ClassGradient возвращает градиент оценки класса classIndex по входу t,
	// тензор той же формы что и t
	ClassGradient(ctx context.Context, t *entity.ImageTensor, classIndex int) (*entity.ImageTensor, error)
}
