package schedule

import "errors"

var (
	// ErrWindowNotFound возвращается, когда рабочее окно не найдено
	ErrWindowNotFound = errors.New("working window not found")

	// ErrWindowOverlap возвращается, когда окно пересекается с другим окном
	// того же провайдера на тот же день недели
	ErrWindowOverlap = errors.New("window overlaps an existing window")

	// ErrAccessDenied возвращается, когда расписание пытается менять не его владелец
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidWindow возвращается при некорректных границах окна
	ErrInvalidWindow = errors.New("invalid working window")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
