package bufview

import "unsafe"

// Descriptor is the raw snapshot an exporter hands out for one
// acquisition: where the region starts, how big it is, and how its
// elements are encoded. The memory behind Addr stays owned by the
// exporter; a descriptor is only meaningful between a successful
// AcquireBuffer and its matching ReleaseBuffer.
type Descriptor struct {
	// Addr points at the first byte of the region. Not owned: the
	// exporter must keep it valid and fixed while the descriptor is
	// held.
	Addr unsafe.Pointer

	// ByteLen is the total size of the region in bytes.
	ByteLen int64

	// ItemSize is the size in bytes of one logical element.
	ItemSize int

	// NDim is the dimensionality. 0 or 1 means the region is
	// addressable as a flat typed sequence; anything higher is
	// rejected by the typed accessors.
	NDim int

	// Format encodes byte order and element codes, see structfmt.
	Format string

	// ReadOnly is set when the exporter forbids mutation through
	// this region.
	ReadOnly bool
}

// Exporter is implemented by objects that can hand out a descriptor
// over their internal memory. AcquireBuffer must be paired with
// exactly one ReleaseBuffer; the View type owns that pairing so
// callers never call ReleaseBuffer themselves.
type Exporter interface {
	AcquireBuffer() (Descriptor, error)
	ReleaseBuffer(*Descriptor)
}
