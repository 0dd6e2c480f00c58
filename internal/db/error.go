package db

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// DuplicateKeyError is returned when a write would create a second record
// under an existing key. It matches ErrDuplicateKey with errors.Is.
type DuplicateKeyError struct {
	Key     string
	Message string
}

func (e *DuplicateKeyError) Error() string {
	return describe(e.Message, e.Key, ErrDuplicateKey)
}

func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}

func IsDuplicateKeyError(err error) bool {
	return errors.Is(err, ErrDuplicateKey)
}

// NotFoundError matches ErrNotFound with errors.Is.
type NotFoundError struct {
	Key     string
	Message string
}

func (e *NotFoundError) Error() string {
	return describe(e.Message, e.Key, ErrNotFound)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func describe(message, key string, sentinel error) string {
	if message != "" {
		return message
	}
	return fmt.Sprintf("%s: %s", sentinel, key)
}
