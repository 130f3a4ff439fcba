// Package models содержит доменные структуры, описывающие прогноз заказов,
// а также вспомогательные типы для работы с данными из внешних источников (например, JSON-запросы).
package models

import "time"

// PredictionRecord представляет собой сохранённый прогноз числа заказов,
// используемый в бизнес-логике и хранилище. Содержит полный вектор признаков,
// с которым был сделан прогноз, результат модели и метку времени.
type PredictionRecord struct {
	ID              int       `json:"id"`
	Username        string    `json:"username"`
	StoreID         int       `json:"store_id"`
	StoreType       int       `json:"store_type"`
	LocationType    int       `json:"location_type"`
	RegionCode      int       `json:"region_code"`
	Holiday         int       `json:"holiday"`
	Discount        int       `json:"discount"`
	Sales           int       `json:"sales"`
	Year            int       `json:"year"`
	Month           int       `json:"month"`
	Day             int       `json:"day"`
	Week            int       `json:"week"`
	PredictedOrders int       `json:"predicted_orders"`
	CreatedAt       time.Time `json:"created_at"`
}

// DummyPredictionRequest используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в вектор признаков.
// Дата приходит в виде строки, чтобы её можно было валидировать и парсить вручную.
type DummyPredictionRequest struct {
	StoreType    int    `json:"store_type" validate:"min=0,max=3"`            // Тип магазина, 0-3
	LocationType int    `json:"location_type" validate:"min=0,max=2"`         // Тип локации, 0-2
	RegionCode   int    `json:"region_code" validate:"min=0,max=52"`          // Код региона, 0-52
	Discount     int    `json:"discount" validate:"min=0,max=1"`              // Наличие скидки, 0 или 1
	Date         string `json:"date" validate:"required,datetime=2006-01-02"` // Начало недели в формате 2006-01-02
}
