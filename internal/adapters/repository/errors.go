package repository

import "errors"

// Sentinel kinds for client book errors.
var (
	ErrNotFound = errors.New("client not found")
	ErrBookFull = errors.New("client book is full")
)
