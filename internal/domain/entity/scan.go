package entity

// ClassProbability — вероятность одного класса опухоли.
type ClassProbability struct {
	Label       string
	Probability float32
}

// Prediction — итог классификации МРТ-снимка.
type Prediction struct {
	Label      string
	ClassIndex int
	Confidence float32
	// Probabilities отсортированы по убыванию вероятности
	Probabilities []ClassProbability
}

// ScanAnalysis хранит полный результат анализа снимка.
type ScanAnalysis struct {
	FileName     string
	Prediction   Prediction
	SaliencyJPEG []byte // композит с картой значимости, пустой если модель без градиентов
	SaliencyPath string // путь к сохранённому композиту на диске
	Explanation  string
	Report       string
}

// ChatRole — роль участника диалога с ассистентом.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage — одна реплика диалога.
type ChatMessage struct {
	Role    ChatRole
	Content string
}
