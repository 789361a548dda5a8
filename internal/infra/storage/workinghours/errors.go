package workinghours

import "errors"

var (
	// ErrWindowNotFound возвращается, когда рабочее окно не найдено
	ErrWindowNotFound = errors.New("workinghours.repository: working window not found")

	// ErrWindowOverlap возвращается, когда окно пересекается с другим окном
	// того же дня (нарушение exclusion constraint на уровне БД)
	ErrWindowOverlap = errors.New("workinghours.repository: window overlaps existing window")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("workinghours.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("workinghours.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("workinghours.repository: failed to scan row")
)
