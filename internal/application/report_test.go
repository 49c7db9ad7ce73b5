package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Ashan-264/Brain-Tumor-classifier/internal/domain/entity"
)

func TestBuildReport(t *testing.T) {
	a := &entity.ScanAnalysis{
		Prediction: entity.Prediction{
			Label:      "Glioma",
			Confidence: 0.8542,
			Probabilities: []entity.ClassProbability{
				{Label: "Glioma", Probability: 0.8542},
				{Label: "Meningioma", Probability: 0.10},
				{Label: "Pituitary", Probability: 0.03},
				{Label: "No tumor", Probability: 0.0158},
			},
		},
		Explanation:  "модель фокусируется на левом полушарии",
		SaliencyPath: "saliency_maps/scan.jpg",
	}

	report := BuildReport(a)
	require.Contains(t, report, "Класс: Glioma")
	require.Contains(t, report, "85.42%")
	require.Contains(t, report, "модель фокусируется на левом полушарии")
	require.Contains(t, report, "saliency_maps/scan.jpg")
	require.Contains(t, report, "не является медицинским диагнозом")

	// предсказанный класс помечен стрелкой
	for _, line := range strings.Split(report, "\n") {
		if strings.Contains(line, "Glioma") && strings.Contains(line, "%") {
			require.Contains(t, line, "←")
		}
	}
}

func TestBuildReport_WithoutOptionalSections(t *testing.T) {
	a := &entity.ScanAnalysis{
		Prediction: entity.Prediction{
			Label:         "No tumor",
			Confidence:    0.99,
			Probabilities: []entity.ClassProbability{{Label: "No tumor", Probability: 0.99}},
		},
	}

	report := BuildReport(a)
	require.NotContains(t, report, "Объяснение")
	require.NotContains(t, report, "Файл карты значимости")
	require.Contains(t, report, "No tumor")
}

func TestProbabilityBar(t *testing.T) {
	require.Equal(t, "", probabilityBar(0))
	require.Equal(t, strings.Repeat("█", 20), probabilityBar(1))
	require.Equal(t, strings.Repeat("█", 10), probabilityBar(0.5))
}
