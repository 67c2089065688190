package session

import "errors"

var (
	ErrNotFound      = errors.New("session not found")
	ErrAlreadyExists = errors.New("session already exists")
	ErrTableFull     = errors.New("session table is full")
)
