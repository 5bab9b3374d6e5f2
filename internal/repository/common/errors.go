package common

import "errors"

// ErrInvalidInput сигнализирует о некорректных данных, переданных в репозиторий.
var ErrInvalidInput = errors.New("invalid input")
