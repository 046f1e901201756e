// Package ptr provides a tiny helper for taking addresses of values inline.
package ptr

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
