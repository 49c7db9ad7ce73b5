package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/Ashan-264/Brain-Tumor-classifier/internal/domain/entity"
	"github.com/Ashan-264/Brain-Tumor-classifier/internal/domain/port"
)

// Metadata описывает модель: форма входа/выхода и список классов.
type Metadata struct {
	InputShape  []int64  `json:"input_shape"`
	OutputShape []int64  `json:"output_shape"`
	Classes     []string `json:"classes"`
	ImageSize   int      `json:"image_size"`
}

// ONNXClassifier — классификатор поверх сессии onnxruntime.
// Сессия работает с преаллоцированными тензорами, поэтому Predict
// сериализуется мьютексом. Градиенты по входу onnxruntime не считает:
// интерфейс GradientClassifier намеренно не реализован.
type ONNXClassifier struct {
	mu           sync.Mutex
	session      *ort.AdvancedSession
	meta         Metadata
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
}

// NewONNXClassifier загружает модель и метаданные и создаёт сессию.
func NewONNXClassifier(modelPath, metadataPath string) (*ONNXClassifier, error) {
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
	}

	metaFile, err := os.ReadFile(metadataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	var meta Metadata
	if err := json.Unmarshal(metaFile, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}
	if len(meta.Classes) == 0 || meta.ImageSize <= 0 {
		return nil, fmt.Errorf("invalid metadata: %d classes, image size %d", len(meta.Classes), meta.ImageSize)
	}

	inputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(meta.InputShape...))
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(meta.OutputShape...))
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{"input"}, []string{"output"},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &ONNXClassifier{
		session:      session,
		meta:         meta,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
	}, nil
}

// Preprocess готовит тензор модели из байтов изображения.
func (c *ONNXClassifier) Preprocess(imageData []byte) (*entity.ImageTensor, error) {
	return PreprocessImage(imageData, c.meta.ImageSize)
}

// Predict прогоняет тензор через модель и возвращает вероятности классов.
func (c *ONNXClassifier) Predict(ctx context.Context, t *entity.ImageTensor) ([]float32, error) {
	_ = ctx
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("input tensor: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	input := c.inputTensor.GetData()
	if len(t.Data) != len(input) {
		return nil, fmt.Errorf("input size mismatch: got %d values, model expects %d", len(t.Data), len(input))
	}
	copy(input, t.Data)

	if err := c.session.Run(); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	output := c.outputTensor.GetData()
	probs := make([]float32, len(c.meta.Classes))
	copy(probs, output)
	return probs, nil
}

// Labels возвращает классы в порядке выходов модели.
func (c *ONNXClassifier) Labels() []string {
	return c.meta.Classes
}

// InputSize возвращает сторону входного изображения модели.
func (c *ONNXClassifier) InputSize() int {
	return c.meta.ImageSize
}

// Close освобождает тензоры и сессию.
func (c *ONNXClassifier) Close() {
	if c.inputTensor != nil {
		c.inputTensor.Destroy()
	}
	if c.outputTensor != nil {
		c.outputTensor.Destroy()
	}
	if c.session != nil {
		c.session.Destroy()
	}
	ort.DestroyEnvironment()
}

// Проверка реализации интерфейса
var _ port.Classifier = (*ONNXClassifier)(nil)
