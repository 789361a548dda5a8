package create_appointment

import "errors"

var (
	// ErrInvalidInterval возвращается, когда start_time >= end_time
	ErrInvalidInterval = errors.New("create_appointment: start time must be before end time")

	// ErrOutsideWorkingHours возвращается, когда интервал не помещается целиком
	// ни в одно рабочее окно провайдера на этот день недели
	// (в том числе когда на этот день окон нет вообще)
	ErrOutsideWorkingHours = errors.New("create_appointment: interval is outside provider working hours")

	// ErrSlotConflict возвращается, когда интервал пересекается с активной записью
	ErrSlotConflict = errors.New("create_appointment: interval conflicts with an existing appointment")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
