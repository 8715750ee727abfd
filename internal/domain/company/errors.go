package company

import "errors"

var (
	ErrConfigNotFound = errors.New("system config not found")
)
