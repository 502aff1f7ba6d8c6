// Package repository defines the client book store interface and errors.
package repository

// Option applies a configuration option to the BookStore.
type Option func(*BookStore)

// WithMaxSize bounds the number of client records the book accepts.
// Zero or negative means unbounded.
func WithMaxSize(n int) Option {
	return func(s *BookStore) {
		if n > 0 {
			s.maxSize = n
		}
	}
}
