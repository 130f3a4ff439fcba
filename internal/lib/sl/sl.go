// Package sl содержит короткие помощники для структурированного логирования.
package sl

import "log/slog"

// Err упаковывает ошибку в атрибут с ключом "error",
// чтобы все слои писали ошибки в лог одинаково:
//
//	log.Error("failed to store prediction", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.String("error", err.Error())
}
