package entity

// UserState состояние пользователя в диалоге
type UserState string

const (
	StateMainMenu      UserState = "main_menu"      // В главном меню
	StateAwaitingPhoto UserState = "awaiting_photo" // Ожидание фото для разметки
	StateProcessing    UserState = "processing"     // Разметка изображения
)

// User представляет пользователя бота
type User struct {
	ID     int64        // Telegram User ID
	ChatID int64        // Telegram Chat ID
	State  UserState    // Текущее состояние пользователя
	Format OutputFormat // Формат ответа с метками
}

// NewUser создаёт нового пользователя с начальным состоянием
func NewUser(userID, chatID int64, format OutputFormat) *User {
	return &User{
		ID:     userID,
		ChatID: chatID,
		State:  StateMainMenu,
		Format: format,
	}
}

// SetState обновляет состояние пользователя
func (u *User) SetState(state UserState) {
	u.State = state
}

// SetFormat меняет формат ответа пользователя
func (u *User) SetFormat(format OutputFormat) {
	u.Format = format
}
