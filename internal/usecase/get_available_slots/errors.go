package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	// Ошибка хранилища никогда не маскируется под пустой список слотов
	ErrInternal = errors.New("get_available_slots: internal error")
)
