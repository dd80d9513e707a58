// Package memexport provides an in-process, heap-backed buffer
// exporter. It is the reference implementation of bufview.Exporter
// used by examples, tests and benchmarks, and a convenient way to hand
// Go-owned bytes to code written against the view API.
package memexport

import (
	"errors"
	"unsafe"

	"github.com/rawbytedev/bufview"
	"github.com/rawbytedev/bufview/pkg/structfmt"
)

// ErrHeld means AcquireBuffer was called while a previous acquisition
// is still outstanding. A Region hands out one descriptor at a time.
var ErrHeld = errors.New("region already acquired")

// Region exports a Go byte slice under the buffer-export protocol. The
// slice stays owned by the Region; views alias it directly, so the
// caller must not resize or reassign it while a view is live.
type Region struct {
	data     []byte
	format   string
	itemSize int
	ndim     int
	readOnly bool
	held     bool
}

// New wraps data in a one-dimensional region with the given format
// descriptor. The item size is inferred from the first element code in
// the format, defaulting to 1.
func New(data []byte, format string) *Region {
	return &Region{
		data:     data,
		format:   format,
		itemSize: inferItemSize(format),
		ndim:     1,
	}
}

func inferItemSize(format string) int {
	f := structfmt.Parse(format)
	for i := 0; i < len(f.Codes); i++ {
		if w := structfmt.Width(f.Codes[i]); w > 0 {
			return w
		}
	}
	return 1
}

// MarkReadOnly flags the region as immutable through views.
func (r *Region) MarkReadOnly() *Region {
	r.readOnly = true
	return r
}

// SetDims overrides the declared dimensionality.
func (r *Region) SetDims(n int) *Region {
	r.ndim = n
	return r
}

// Bytes exposes the backing slice, mainly so tests can observe writes
// made through a view.
func (r *Region) Bytes() []byte { return r.data }

// AcquireBuffer implements bufview.Exporter. It fails with ErrHeld
// while a previous descriptor is outstanding.
func (r *Region) AcquireBuffer() (bufview.Descriptor, error) {
	if r.held {
		return bufview.Descriptor{}, ErrHeld
	}
	r.held = true
	d := bufview.Descriptor{
		ByteLen:  int64(len(r.data)),
		ItemSize: r.itemSize,
		NDim:     r.ndim,
		Format:   r.format,
		ReadOnly: r.readOnly,
	}
	if len(r.data) > 0 {
		d.Addr = unsafe.Pointer(&r.data[0])
	}
	return d, nil
}

// ReleaseBuffer implements bufview.Exporter.
func (r *Region) ReleaseBuffer(*bufview.Descriptor) {
	r.held = false
}
