package entity

// UserState состояние пользователя в диалоге
type UserState string

const (
	StateMainMenu     UserState = "main_menu"     // В главном меню
	StateAwaitingScan UserState = "awaiting_scan" // Ожидание МРТ-снимка
	StateProcessing   UserState = "processing"    // Обработка снимка
	StateChatting     UserState = "chatting"      // Диалог об итогах анализа
)

// User представляет пользователя бота
type User struct {
	ID           int64         // Telegram User ID
	ChatID       int64         // Telegram Chat ID
	State        UserState     // Текущее состояние пользователя
	History      []ChatMessage // Журнал диалога с ассистентом, только добавление
	LastAnalysis *ScanAnalysis // Последний анализ снимка в рамках сессии
}

// NewUser создаёт нового пользователя с начальным состоянием
func NewUser(userID, chatID int64) *User {
	return &User{
		ID:     userID,
		ChatID: chatID,
		State:  StateMainMenu,
	}
}

// SetState обновляет состояние пользователя
func (u *User) SetState(state UserState) {
	u.State = state
}

// SetAnalysis запоминает результат анализа для последующего диалога
func (u *User) SetAnalysis(a *ScanAnalysis) {
	u.LastAnalysis = a
}

// AppendMessage добавляет реплику в журнал диалога
func (u *User) AppendMessage(role ChatRole, content string) {
	u.History = append(u.History, ChatMessage{Role: role, Content: content})
}
