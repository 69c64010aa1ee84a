package contentservice

import "errors"

var (
	ErrSalonNotFound   = errors.New("contentservice: salon not found")
	ErrServiceNotFound = errors.New("contentservice: service not found")
	ErrStaffNotFound   = errors.New("contentservice: staff not found")
	ErrInternal        = errors.New("contentservice: internal error")
	ErrInvalidResponse = errors.New("contentservice: invalid response")
	ErrServiceDegraded = errors.New("contentservice: service degraded")
)
