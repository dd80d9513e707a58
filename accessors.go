package bufview

import (
	"fmt"

	"github.com/rawbytedev/bufview/internal/common"
	"github.com/rawbytedev/bufview/pkg/structfmt"
)

// scalarCheck runs every precondition shared by the typed accessors:
// the view is Live, the region is flat, the format declares the
// requested element code, and the opt-in hardening checks pass. All of
// it happens before any byte of the region is touched.
func (v *View) scalarCheck(code byte) error {
	if v.released {
		return ErrReleased
	}
	if v.desc.NDim > 1 {
		return fmt.Errorf("%w: ndim=%d", ErrShape, v.desc.NDim)
	}
	if !v.format.Contains(code) {
		return fmt.Errorf("%w: requested %q, format %q", ErrFormatMismatch, code, v.desc.Format)
	}
	if v.opts.EnforceReadOnly && v.desc.ReadOnly {
		return fmt.Errorf("%w: format %q", ErrReadOnly, v.desc.Format)
	}
	return nil
}

// Typed accessors below return slices that alias the exporter's
// memory directly: no copy, no allocation beyond the slice header. The
// element count is ByteLen divided by the element width, truncating;
// trailing bytes that do not fill a whole element are silently
// dropped. A returned slice must not outlive the view that produced
// it.
//
// Only the exact canonical code satisfies each accessor; a 'l' (long)
// code does not satisfy Int32s even though the widths agree.

// Int32s returns the region as a []int32.
func (v *View) Int32s() ([]int32, error) {
	if err := v.scalarCheck(structfmt.Int); err != nil {
		return nil, err
	}
	if v.opts.CheckAlignment && !common.Aligned[int32](v.desc.Addr) {
		return nil, fmt.Errorf("%w: addr=%p", ErrAlignment, v.desc.Addr)
	}
	return common.Alias[int32](v.desc.Addr, v.desc.ByteLen), nil
}

// Uint32s returns the region as a []uint32.
func (v *View) Uint32s() ([]uint32, error) {
	if err := v.scalarCheck(structfmt.UInt); err != nil {
		return nil, err
	}
	if v.opts.CheckAlignment && !common.Aligned[uint32](v.desc.Addr) {
		return nil, fmt.Errorf("%w: addr=%p", ErrAlignment, v.desc.Addr)
	}
	return common.Alias[uint32](v.desc.Addr, v.desc.ByteLen), nil
}

// Int64s returns the region as a []int64.
func (v *View) Int64s() ([]int64, error) {
	if err := v.scalarCheck(structfmt.LongLong); err != nil {
		return nil, err
	}
	if v.opts.CheckAlignment && !common.Aligned[int64](v.desc.Addr) {
		return nil, fmt.Errorf("%w: addr=%p", ErrAlignment, v.desc.Addr)
	}
	return common.Alias[int64](v.desc.Addr, v.desc.ByteLen), nil
}

// Uint64s returns the region as a []uint64.
func (v *View) Uint64s() ([]uint64, error) {
	if err := v.scalarCheck(structfmt.ULongLong); err != nil {
		return nil, err
	}
	if v.opts.CheckAlignment && !common.Aligned[uint64](v.desc.Addr) {
		return nil, fmt.Errorf("%w: addr=%p", ErrAlignment, v.desc.Addr)
	}
	return common.Alias[uint64](v.desc.Addr, v.desc.ByteLen), nil
}

// Float32s returns the region as a []float32.
func (v *View) Float32s() ([]float32, error) {
	if err := v.scalarCheck(structfmt.Float); err != nil {
		return nil, err
	}
	if v.opts.CheckAlignment && !common.Aligned[float32](v.desc.Addr) {
		return nil, fmt.Errorf("%w: addr=%p", ErrAlignment, v.desc.Addr)
	}
	return common.Alias[float32](v.desc.Addr, v.desc.ByteLen), nil
}

// Float64s returns the region as a []float64.
func (v *View) Float64s() ([]float64, error) {
	if err := v.scalarCheck(structfmt.Double); err != nil {
		return nil, err
	}
	if v.opts.CheckAlignment && !common.Aligned[float64](v.desc.Addr) {
		return nil, fmt.Errorf("%w: addr=%p", ErrAlignment, v.desc.Addr)
	}
	return common.Alias[float64](v.desc.Addr, v.desc.ByteLen), nil
}

// Bytes returns the raw region as a []byte, still zero-copy. Requires
// a Live, flat buffer but no particular format code.
func (v *View) Bytes() ([]byte, error) {
	if v.released {
		return nil, ErrReleased
	}
	if v.desc.NDim > 1 {
		return nil, fmt.Errorf("%w: ndim=%d", ErrShape, v.desc.NDim)
	}
	return common.Alias[byte](v.desc.Addr, v.desc.ByteLen), nil
}
