package service

import "errors"

var (
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidStatus = errors.New("invalid status")
	ErrConflict      = errors.New("resource already exists")
	ErrUnauthorized  = errors.New("invalid credentials")
)
