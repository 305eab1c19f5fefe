package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrCodeTaken        = errors.New("employee code already exists")
	ErrCodeRequired     = errors.New("employee_code and name are required")
)
