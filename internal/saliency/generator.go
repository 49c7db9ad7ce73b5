package saliency

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"

	"github.com/Ashan-264/Brain-Tumor-classifier/internal/domain/entity"
	"github.com/Ashan-264/Brain-Tumor-classifier/internal/domain/port"
)

const (
	maskMargin          = 10
	thresholdPercentile = 80.0
	blurKernelSize      = 11
	heatmapWeight       = 0.7
	originalWeight      = 0.3
)

var (
	// ErrClassIndexOutOfRange — индекс класса вне выхода модели.
	ErrClassIndexOutOfRange = errors.New("saliency: class index out of range")
	// ErrGradientUnsupported — классификатор не умеет считать градиент по входу.
	ErrGradientUnsupported = errors.New("saliency: classifier does not support input gradients")
	// ErrInvalidTensor — форма входного тензора не согласована с моделью.
	ErrInvalidTensor = errors.New("saliency: invalid input tensor")
)

// Generator строит композит карты значимости поверх исходного снимка.
type Generator struct{}

// NewGenerator создаёт генератор карт значимости.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate вычисляет градиент оценки класса classIndex по входному тензору,
// превращает его в тепловую карту и накладывает на затемнённый исходный
// снимок. Результат — RGB-изображение размера width×height.
//
// Конвейер: |градиент| → максимум по каналам → билинейный ресайз →
// круглая маска → нормировка по маске → порог 80-го перцентиля →
// размытие Гаусса 11×11 → палитра jet → композит 0.3·оригинал + 0.7·карта.
// Вырожденный градиент не считается ошибкой: композит просто получается
// без выраженных горячих зон.
func (g *Generator) Generate(ctx context.Context, clf port.Classifier, input *entity.ImageTensor, classIndex, width, height int) (*image.RGBA, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTensor, err)
	}
	if input.Height != clf.InputSize() || input.Width != clf.InputSize() {
		return nil, fmt.Errorf("%w: got %dx%d, model expects %dx%d",
			ErrInvalidTensor, input.Width, input.Height, clf.InputSize(), clf.InputSize())
	}
	if classIndex < 0 || classIndex >= len(clf.Labels()) {
		return nil, fmt.Errorf("%w: %d of %d classes", ErrClassIndexOutOfRange, classIndex, len(clf.Labels()))
	}

	gc, ok := clf.(port.GradientClassifier)
	if !ok {
		return nil, ErrGradientUnsupported
	}

	grad, err := gc.ClassGradient(ctx, input, classIndex)
	if err != nil {
		return nil, fmt.Errorf("class gradient: %w", err)
	}
	if err := grad.Validate(); err != nil {
		return nil, fmt.Errorf("class gradient: %w", err)
	}

	grid := ChannelMaxAbs(grad).ResizeBilinear(width, height)

	mask := CircularMask(width, height, maskMargin)
	grid.ApplyMask(mask)
	grid.NormalizeInMask(mask)
	grid.ThresholdBelow(grid.PercentileInMask(mask, thresholdPercentile))
	grid = grid.GaussianBlur(blurKernelSize)

	original := scaleRGBA(tensorToRGBA(input), width, height)

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := grid.At(x, y)
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}
			hr, hg, hb := jetColor(uint8(v * 255))
			o := original.RGBAAt(x, y)
			out.SetRGBA(x, y, color.RGBA{
				R: blend(hr, o.R),
				G: blend(hg, o.G),
				B: blend(hb, o.B),
				A: 255,
			})
		}
	}
	return out, nil
}

// blend смешивает канал тепловой карты и затемнённого оригинала.
func blend(heat, orig uint8) uint8 {
	v := heatmapWeight*float64(heat) + originalWeight*float64(orig)
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

// tensorToRGBA переводит нормированный тензор обратно в изображение [0,255].
// Одноканальный тензор раскладывается в серый RGB.
func tensorToRGBA(t *entity.ImageTensor) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.Width, t.Height))
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			var r, g, b float32
			if t.Channels >= 3 {
				r, g, b = t.At(y, x, 0), t.At(y, x, 1), t.At(y, x, 2)
			} else {
				r = t.At(y, x, 0)
				g, b = r, r
			}
			img.SetRGBA(x, y, color.RGBA{R: clamp255(r), G: clamp255(g), B: clamp255(b), A: 255})
		}
	}
	return img
}

func clamp255(v float32) uint8 {
	s := float64(v) * 255
	if s < 0 {
		s = 0
	}
	if s > 255 {
		s = 255
	}
	return uint8(s)
}

// scaleRGBA приводит изображение к размеру вывода.
func scaleRGBA(src *image.RGBA, w, h int) *image.RGBA {
	if src.Bounds().Dx() == w && src.Bounds().Dy() == h {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
