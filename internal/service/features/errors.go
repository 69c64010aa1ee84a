package features

import "errors"

var (
	// ErrUnknownFlag возвращается при обращении к неизвестному флагу
	ErrUnknownFlag = errors.New("unknown feature flag")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
