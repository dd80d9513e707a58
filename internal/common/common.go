package common

import "unsafe"

// Alias reinterprets byteLen bytes starting at p as a []T without
// copying. Trailing bytes that do not fill a whole element are
// dropped. The returned slice borrows p; the caller owns the lifetime
// question.
func Alias[T any](p unsafe.Pointer, byteLen int64) []T {
	var zero T
	n := byteLen / int64(unsafe.Sizeof(zero))
	if p == nil || n <= 0 {
		return nil
	}
	return unsafe.Slice((*T)(p), n)
}

// Aligned reports whether p satisfies the natural alignment of T.
func Aligned[T any](p unsafe.Pointer) bool {
	var zero T
	return uintptr(p)%unsafe.Alignof(zero) == 0
}

// CloneBytes copies b into a freshly allocated slice.
func CloneBytes(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
