//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"fmt"

	"gocv.io/x/gocv"

	"github.com/Ashan-264/Brain-Tumor-classifier/internal/domain/port"
)

// MRIGate проверяет, что присланное изображение пригодно для анализа:
// достаточно крупное, резкое, не пересвеченное и похоже на МРТ-снимок.
type MRIGate struct {
	MinImageSide          int
	MinSharpnessEdgeRatio float64
	MaxOverexposedRatio   float64
	MaxSaturationRatio    float64
}

// Available сообщает, собран ли бинарник с поддержкой OpenCV.
func Available() bool { return true }

// NewMRIGate создаёт проверку качества с порогами по умолчанию.
func NewMRIGate() *MRIGate {
	return &MRIGate{
		MinImageSide:          128,
		MinSharpnessEdgeRatio: 0.004,
		MaxOverexposedRatio:   0.50,
		MaxSaturationRatio:    0.25,
	}
}

// Check прогоняет изображение через проверки качества.
func (g *MRIGate) Check(ctx context.Context, imageData []byte) error {
	_ = ctx

	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err != nil || mat.Empty() {
		if !mat.Empty() {
			mat.Close()
		}
		return errors.New("failed to decode image")
	}
	defer mat.Close()

	if mat.Cols() < g.MinImageSide || mat.Rows() < g.MinImageSide {
		return fmt.Errorf("quality gate failed: image is too small (%dx%d)", mat.Cols(), mat.Rows())
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(gray, &edges, 80, 160)
	if edgeRatio := ratioOfMask(edges); edgeRatio < g.MinSharpnessEdgeRatio {
		return fmt.Errorf("quality gate failed: image is blurry (edge_ratio=%.4f)", edgeRatio)
	}

	bright := gocv.NewMat()
	defer bright.Close()
	gocv.Threshold(gray, &bright, 250, 255, gocv.ThresholdBinary)
	if overexposedRatio := ratioOfMask(bright); overexposedRatio > g.MaxOverexposedRatio {
		return fmt.Errorf("quality gate failed: overexposed image (ratio=%.4f)", overexposedRatio)
	}

	// МРТ — по сути градации серого: заметная насыщенность цвета
	// означает, что прислали обычную фотографию
	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(mat, &hsv, gocv.ColorBGRToHSV)
	channels := gocv.Split(hsv)
	for i := range channels {
		defer channels[i].Close()
	}
	if len(channels) < 3 {
		return errors.New("quality gate failed: invalid hsv channels")
	}

	saturated := gocv.NewMat()
	defer saturated.Close()
	gocv.Threshold(channels[1], &saturated, 60, 255, gocv.ThresholdBinary)
	if saturationRatio := ratioOfMask(saturated); saturationRatio > g.MaxSaturationRatio {
		return fmt.Errorf("quality gate failed: image does not look like an MRI scan (saturation=%.4f)", saturationRatio)
	}

	return nil
}

func ratioOfMask(mask gocv.Mat) float64 {
	total := mask.Cols() * mask.Rows()
	if total <= 0 {
		return 0
	}
	return float64(gocv.CountNonZero(mask)) / float64(total)
}

// Проверка реализации интерфейса
var _ port.ScanGate = (*MRIGate)(nil)
