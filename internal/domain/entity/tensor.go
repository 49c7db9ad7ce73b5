package entity

import (
	"errors"
	"fmt"
)

// ImageTensor — изображение в виде тензора H×W×C.
// Для входа модели значения нормированы в [0,1].
type ImageTensor struct {
	Data     []float32
	Height   int
	Width    int
	Channels int
}

// NewImageTensor создаёт тензор заданной формы, заполненный нулями.
func NewImageTensor(height, width, channels int) *ImageTensor {
	return &ImageTensor{
		Data:     make([]float32, height*width*channels),
		Height:   height,
		Width:    width,
		Channels: channels,
	}
}

// At возвращает значение пикселя (y, x) в канале c.
func (t *ImageTensor) At(y, x, c int) float32 {
	return t.Data[(y*t.Width+x)*t.Channels+c]
}

// Set записывает значение пикселя (y, x) в канале c.
func (t *ImageTensor) Set(y, x, c int, v float32) {
	t.Data[(y*t.Width+x)*t.Channels+c] = v
}

// Validate проверяет согласованность формы и данных тензора.
func (t *ImageTensor) Validate() error {
	if t == nil {
		return errors.New("tensor is nil")
	}
	if t.Height <= 0 || t.Width <= 0 || t.Channels <= 0 {
		return fmt.Errorf("tensor dimensions must be positive, got %dx%dx%d", t.Height, t.Width, t.Channels)
	}
	if len(t.Data) != t.Height*t.Width*t.Channels {
		return fmt.Errorf("tensor data length %d does not match shape %dx%dx%d", len(t.Data), t.Height, t.Width, t.Channels)
	}
	return nil
}
