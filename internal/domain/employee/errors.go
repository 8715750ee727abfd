package employee

import "errors"

var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrManagerAccessRequired = errors.New("manager or owner role required")
	ErrEmailAlreadyExists    = errors.New("email already exists")
)
