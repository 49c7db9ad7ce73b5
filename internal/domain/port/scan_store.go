package port

// ScanStore интерфейс хранилища карт значимости
type ScanStore interface {
	// Save сохраняет композит под именем исходного файла и возвращает путь
	Save(fileName string, data []byte) (string, error)
}
