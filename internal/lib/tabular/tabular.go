// Package tabular представляет загруженные пользователем табличные данные
// в виде строк и столбцов и отвечает за их сериализацию.
//
// Таблица читается из CSV, хранится в базе как JSON-строка и восстанавливается
// обратно без потерь: после цикла разбор → сериализация → разбор получается
// та же таблица.
package tabular

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Table — табличные данные: строка заголовков и строки значений.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// ParseCSV читает CSV с обязательной строкой заголовка.
// Все строки должны иметь столько же полей, сколько заголовок.
func ParseCSV(r io.Reader) (*Table, error) {
	const op = "tabular.ParseCSV"

	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read header row: %w", op, err)
	}

	rows := make([][]string, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		rows = append(rows, record)
	}

	return &Table{Columns: header, Rows: rows}, nil
}

// Serialize преобразует таблицу в JSON-строку для хранения в базе.
func (t *Table) Serialize() (string, error) {
	const op = "tabular.Serialize"
	data, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(data), nil
}

// Deserialize восстанавливает таблицу из JSON-строки.
func Deserialize(data string) (*Table, error) {
	const op = "tabular.Deserialize"
	var t Table
	if err := json.Unmarshal([]byte(data), &t); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &t, nil
}

// WriteCSV выводит таблицу обратно в CSV: заголовок, затем строки.
func (t *Table) WriteCSV(w io.Writer) error {
	const op = "tabular.WriteCSV"

	writer := csv.NewWriter(w)
	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for _, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CSVString возвращает таблицу как CSV-текст, удобно для выгрузки файла.
func (t *Table) CSVString() (string, error) {
	var sb strings.Builder
	if err := t.WriteCSV(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
