// Package features отвечает за построение вектора признаков для модели прогноза.
//
// Вектор фиксированный: одиннадцать числовых полей в строго заданном порядке.
// Часть полей — константы обучающей выборки (Store_id, Holiday, Sales),
// остальные выводятся из выбранных пользователем категорий и даты начала недели.
package features

import "time"

// Names перечисляет имена признаков в том порядке, в котором
// модель ожидает их значения. Порядок менять нельзя.
var Names = []string{
	"Store_id",
	"Store_Type",
	"Location_Type",
	"Region_Code",
	"Holiday",
	"Discount",
	"Sales",
	"year",
	"month",
	"day",
	"week",
}

// Vector представляет вектор признаков одного прогноза.
type Vector struct {
	StoreID      int // Всегда 0: модель обучена без привязки к конкретному магазину
	StoreType    int
	LocationType int
	RegionCode   int
	Holiday      int // Всегда 0
	Discount     int
	Sales        int // Всегда 0
	Year         int
	Month        int
	Day          int
	Week         int // Номер ISO-недели, от 1 до 53
}

// Derive строит вектор признаков из категориальных входов пользователя
// и даты начала недели. Календарные поля берутся из разложения даты,
// номер недели — по ISO 8601.
func Derive(storeType, locationType, regionCode, discount int, date time.Time) Vector {
	_, week := date.ISOWeek()
	return Vector{
		StoreID:      0,
		StoreType:    storeType,
		LocationType: locationType,
		RegionCode:   regionCode,
		Holiday:      0,
		Discount:     discount,
		Sales:        0,
		Year:         date.Year(),
		Month:        int(date.Month()),
		Day:          date.Day(),
		Week:         week,
	}
}

// Values возвращает значения вектора в порядке Names.
func (v Vector) Values() []float64 {
	return []float64{
		float64(v.StoreID),
		float64(v.StoreType),
		float64(v.LocationType),
		float64(v.RegionCode),
		float64(v.Holiday),
		float64(v.Discount),
		float64(v.Sales),
		float64(v.Year),
		float64(v.Month),
		float64(v.Day),
		float64(v.Week),
	}
}
