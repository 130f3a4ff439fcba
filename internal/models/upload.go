package models

import "time"

// UploadRecord представляет загруженный пользователем табличный файл.
// Поле Data хранит таблицу, сериализованную в JSON-строку; при чтении
// она разбирается обратно в строки и столбцы без потерь.
type UploadRecord struct {
	ID         int       `json:"id"`
	Username   string    `json:"username"`
	Data       string    `json:"data"`
	UploadedAt time.Time `json:"uploaded_at"`
}
