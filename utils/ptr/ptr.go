// Package ptr contains utility functions for creating pointers to literals.
package ptr

// To returns a pointer to the given value.
func To[T any](v T) *T {
	return &v
}
