package create_appointment

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден или неактивен
	ErrSalonNotFound = errors.New("salon not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге салона
	ErrServiceNotFound = errors.New("service not found")

	// ErrSlotNotAvailable возвращается, когда вместимость салона на интервал исчерпана
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrSalonClosed возвращается, когда салон закрыт в выбранную дату
	ErrSalonClosed = errors.New("salon is closed on this date")

	// ErrOutsideWorkingHours возвращается, когда интервал не помещается в рабочие часы
	ErrOutsideWorkingHours = errors.New("appointment is outside working hours")

	// ErrDateInPast возвращается при попытке записаться на прошедшее время
	ErrDateInPast = errors.New("appointment starts in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
