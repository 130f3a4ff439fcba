package models

import "time"

// PreferenceRecord представляет сохранённые настройки пользователя.
// Таблица настроек append-only: каждое сохранение добавляет новую строку,
// актуальной считается последняя по saved_at.
type PreferenceRecord struct {
	ID            int       `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Notifications bool      `json:"notifications"`
	SavedAt       time.Time `json:"saved_at"`
}

// DummyPreferenceRequest используется для приёма настроек из JSON-запроса.
type DummyPreferenceRequest struct {
	Email         string `json:"email" validate:"required,email"` // Электронная почта для уведомлений
	Notifications bool   `json:"notifications"`                   // Включены ли email-уведомления
}

// PreferenceSavedEvent описывает событие сохранения настроек,
// публикуемое в RabbitMQ для воркера отправки уведомлений.
type PreferenceSavedEvent struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}
