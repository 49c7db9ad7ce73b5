package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Ashan-264/Brain-Tumor-classifier/internal/domain/port"
)

// FileScanStore сохраняет композиты карт значимости в каталог на диске.
type FileScanStore struct {
	dir string
}

// NewFileScanStore создаёт хранилище и каталог, если его ещё нет.
func NewFileScanStore(dir string) (*FileScanStore, error) {
	if dir == "" {
		return nil, errors.New("storage dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileScanStore{dir: dir}, nil
}

// Save записывает композит под именем исходного файла и возвращает путь.
// Имя файла обрезается до базового: путь снаружи каталога недопустим.
func (s *FileScanStore) Save(fileName string, data []byte) (string, error) {
	name := filepath.Base(fileName)
	if name == "." || name == string(filepath.Separator) || name == "" {
		name = "scan.jpg"
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write scan: %w", err)
	}
	return path, nil
}

// Проверка реализации интерфейса
var _ port.ScanStore = (*FileScanStore)(nil)
