package app

import (
	"fmt"
	"strings"

	"github.com/Ashan-264/Brain-Tumor-classifier/internal/domain/entity"
)

const reportHeader = `Отчёт по анализу МРТ-снимка
============================================`

const reportReference = `
Справка по классам
- Глиома: чаще возникает в полушариях мозга, агрессивное течение.
- Менингиома: как правило доброкачественная, растёт медленно.
- Опухоль гипофиза: локализуется в области гипофиза, поддаётся лечению.
- Нет опухоли: признаков опухоли на снимке не обнаружено.
`

const reportNextSteps = `
Дальнейшие шаги
- Подтвердите результат дополнительными исследованиями (биопсия, расширенная визуализация).
- Сверьте выделенные области карты значимости с оценкой рентгенолога.
- Запланируйте консультацию профильного специалиста.
`

const reportDisclaimer = "\n⚠️ Результат построен моделью и не является медицинским диагнозом.\n"

// BuildReport формирует текстовый отчёт по анализу снимка.
func BuildReport(a *entity.ScanAnalysis) string {
	var b strings.Builder

	b.WriteString(reportHeader)
	fmt.Fprintf(&b, "\n\nСводка предсказания\n- Класс: %s\n- Уверенность: %.2f%%\n",
		a.Prediction.Label, a.Prediction.Confidence*100)

	if a.Explanation != "" {
		fmt.Fprintf(&b, "\nОбъяснение\n%s\n", a.Explanation)
	}

	b.WriteString("\nВероятности классов\n")
	for _, p := range a.Prediction.Probabilities {
		marker := ""
		if p.Label == a.Prediction.Label {
			marker = " ←"
		}
		fmt.Fprintf(&b, "- %-12s %6.2f%% %s%s\n", p.Label, p.Probability*100, probabilityBar(p.Probability), marker)
	}

	b.WriteString(reportReference)
	b.WriteString(reportNextSteps)

	if a.SaliencyPath != "" {
		fmt.Fprintf(&b, "\nФайл карты значимости\n%s\n", a.SaliencyPath)
	}

	b.WriteString(reportDisclaimer)
	return b.String()
}

// probabilityBar рисует текстовую полосу длиной до 20 символов.
func probabilityBar(p float32) string {
	n := int(p*20 + 0.5)
	if n < 0 {
		n = 0
	}
	if n > 20 {
		n = 20
	}
	return strings.Repeat("█", n)
}
