package get_availability

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден или неактивен.
	// Неактивный тенант не отличается от несуществующего, чтобы не раскрывать
	// данные о слотах чужим.
	ErrSalonNotFound = errors.New("salon not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
