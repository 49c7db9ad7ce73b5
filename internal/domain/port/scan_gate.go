package port

import "context"

// ScanGate интерфейс предварительной проверки качества снимка
type ScanGate interface {
	// Check возвращает ошибку, если изображение непригодно для анализа
	Check(ctx context.Context, imageData []byte) error
}
