//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"

	"github.com/Ashan-264/Brain-Tumor-classifier/internal/domain/port"
)

// MRIGate — заглушка проверки качества (сборка без OpenCV).
type MRIGate struct {
	MinImageSide          int
	MinSharpnessEdgeRatio float64
	MaxOverexposedRatio   float64
	MaxSaturationRatio    float64
}

// Available сообщает, собран ли бинарник с поддержкой OpenCV.
func Available() bool { return false }

// NewMRIGate создаёт заглушку (без OpenCV).
func NewMRIGate() *MRIGate {
	return &MRIGate{
		MinImageSide:          128,
		MinSharpnessEdgeRatio: 0.004,
		MaxOverexposedRatio:   0.50,
		MaxSaturationRatio:    0.25,
	}
}

// Check возвращает ошибку, если сборка без тега gocv.
func (g *MRIGate) Check(ctx context.Context, imageData []byte) error {
	_ = ctx
	_ = imageData
	return errors.New("gocv build tag is not enabled")
}

// Проверка реализации интерфейса
var _ port.ScanGate = (*MRIGate)(nil)
