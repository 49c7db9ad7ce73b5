package classifier

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"

	"github.com/Ashan-264/Brain-Tumor-classifier/internal/domain/entity"
)

// PreprocessImage декодирует изображение, приводит его к квадрату
// size×size и нормирует значения каналов в [0,1]. Раскладка HWC — как
// у входа модели.
func PreprocessImage(imageData []byte, size int) (*entity.ImageTensor, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid target size %d", size)
	}

	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	resized := resize.Resize(uint(size), uint(size), img, resize.Lanczos3)

	t := entity.NewImageTensor(size, size, 3)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r, g, b, _ := resized.At(x, y).RGBA()
			t.Set(y, x, 0, float32(r)/65535.0)
			t.Set(y, x, 1, float32(g)/65535.0)
			t.Set(y, x, 2, float32(b)/65535.0)
		}
	}
	return t, nil
}
