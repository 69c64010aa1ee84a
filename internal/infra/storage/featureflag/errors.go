package featureflag

import "errors"

var (
	// ErrFlagNotFound возвращается, когда флаг не найден
	ErrFlagNotFound = errors.New("featureflag.repository: flag not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("featureflag.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("featureflag.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("featureflag.repository: failed to scan row")
)
