package salons

import "errors"

var (
	// ErrSalonNotFound салон не найден
	ErrSalonNotFound = errors.New("salon not found")
	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("invalid input")
	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("internal error")
)
