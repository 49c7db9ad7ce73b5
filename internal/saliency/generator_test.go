package saliency

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Ashan-264/Brain-Tumor-classifier/internal/domain/entity"
)

// gradStub — дифференцируемый классификатор с заданной функцией градиента.
type gradStub struct {
	labels        []string
	size          int
	gradient      func(t *entity.ImageTensor) *entity.ImageTensor
	gradientCalls int
}

func (s *gradStub) Preprocess(imageData []byte) (*entity.ImageTensor, error) {
	return entity.NewImageTensor(s.size, s.size, 3), nil
}

func (s *gradStub) Predict(ctx context.Context, t *entity.ImageTensor) ([]float32, error) {
	out := make([]float32, len(s.labels))
	out[0] = 1
	return out, nil
}

func (s *gradStub) Labels() []string { return s.labels }
func (s *gradStub) InputSize() int   { return s.size }

func (s *gradStub) ClassGradient(ctx context.Context, t *entity.ImageTensor, classIndex int) (*entity.ImageTensor, error) {
	s.gradientCalls++
	return s.gradient(t), nil
}

// forwardStub — классификатор без поддержки градиентов.
type forwardStub struct {
	labels []string
	size   int
}

func (s *forwardStub) Preprocess(imageData []byte) (*entity.ImageTensor, error) {
	return entity.NewImageTensor(s.size, s.size, 3), nil
}

func (s *forwardStub) Predict(ctx context.Context, t *entity.ImageTensor) ([]float32, error) {
	return make([]float32, len(s.labels)), nil
}

func (s *forwardStub) Labels() []string { return s.labels }
func (s *forwardStub) InputSize() int   { return s.size }

func fourLabels() []string {
	return []string{"Glioma", "Meningioma", "No tumor", "Pituitary"}
}

// wavyGradient — детерминированный неоднородный градиент.
func wavyGradient(t *entity.ImageTensor) *entity.ImageTensor {
	g := entity.NewImageTensor(t.Height, t.Width, t.Channels)
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			for c := 0; c < t.Channels; c++ {
				g.Set(y, x, c, float32(math.Sin(float64(x*y+c))))
			}
		}
	}
	return g
}

func grayTensor(size int, v float32) *entity.ImageTensor {
	t := entity.NewImageTensor(size, size, 3)
	for i := range t.Data {
		t.Data[i] = v
	}
	return t
}

func TestGenerate_OutputShape(t *testing.T) {
	clf := &gradStub{labels: fourLabels(), size: 32, gradient: wavyGradient}
	gen := NewGenerator()

	img, err := gen.Generate(context.Background(), clf, grayTensor(32, 0.5), 0, 48, 48)
	require.NoError(t, err)
	require.Equal(t, 48, img.Bounds().Dx())
	require.Equal(t, 48, img.Bounds().Dy())
	require.Equal(t, 1, clf.gradientCalls)
}

func TestGenerate_Deterministic(t *testing.T) {
	clf := &gradStub{labels: fourLabels(), size: 32, gradient: wavyGradient}
	gen := NewGenerator()
	input := grayTensor(32, 0.4)

	first, err := gen.Generate(context.Background(), clf, input, 1, 32, 32)
	require.NoError(t, err)
	second, err := gen.Generate(context.Background(), clf, input, 1, 32, 32)
	require.NoError(t, err)

	require.Equal(t, first.Pix, second.Pix)
}

func TestGenerate_ClassIndexOutOfRange(t *testing.T) {
	clf := &gradStub{labels: fourLabels(), size: 32, gradient: wavyGradient}
	gen := NewGenerator()

	_, err := gen.Generate(context.Background(), clf, grayTensor(32, 0.5), 4, 32, 32)
	require.ErrorIs(t, err, ErrClassIndexOutOfRange)
	// индекс проверяется до любых тензорных вычислений
	require.Zero(t, clf.gradientCalls)

	_, err = gen.Generate(context.Background(), clf, grayTensor(32, 0.5), -1, 32, 32)
	require.ErrorIs(t, err, ErrClassIndexOutOfRange)
}

func TestGenerate_GradientUnsupported(t *testing.T) {
	gen := NewGenerator()

	_, err := gen.Generate(context.Background(), &forwardStub{labels: fourLabels(), size: 32}, grayTensor(32, 0.5), 0, 32, 32)
	require.ErrorIs(t, err, ErrGradientUnsupported)
}

func TestGenerate_InvalidTensorShape(t *testing.T) {
	clf := &gradStub{labels: fourLabels(), size: 32, gradient: wavyGradient}
	gen := NewGenerator()

	_, err := gen.Generate(context.Background(), clf, grayTensor(16, 0.5), 0, 32, 32)
	require.ErrorIs(t, err, ErrInvalidTensor)

	broken := &entity.ImageTensor{Data: make([]float32, 7), Height: 32, Width: 32, Channels: 3}
	_, err = gen.Generate(context.Background(), clf, broken, 0, 32, 32)
	require.ErrorIs(t, err, ErrInvalidTensor)
}

// Нулевой градиент: нормировка пропускается, порог обнуляет всю карту,
// композит вырождается в затемнённый оригинал с равномерным тоном палитры.
func TestGenerate_DegenerateGradient(t *testing.T) {
	clf := &gradStub{
		labels: fourLabels(),
		size:   32,
		gradient: func(t *entity.ImageTensor) *entity.ImageTensor {
			return entity.NewImageTensor(t.Height, t.Width, t.Channels)
		},
	}
	gen := NewGenerator()

	img, err := gen.Generate(context.Background(), clf, grayTensor(32, 0.5), 0, 32, 32)
	require.NoError(t, err)

	// 0.3 × 127 для R и G (jet даёт там ноль), синий канал несёт ровный тон:
	// 0.7·127 + 0.3·127 усекается до 126
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			px := img.RGBAAt(x, y)
			require.Equal(t, uint8(38), px.R)
			require.Equal(t, uint8(38), px.G)
			require.Equal(t, uint8(126), px.B)
			require.Equal(t, uint8(255), px.A)
		}
	}
}
