// Package bufview gives a host process zero-copy typed views over
// memory regions exported by foreign objects under a buffer-export
// protocol. An exporter declares a contiguous region (address, byte
// length, element format, dimensionality, mutability); a View owns the
// acquire/release pairing for one such region and reinterprets the raw
// bytes as typed slices without copying.
//
// The package is not thread-safe: the region is shared between the
// exporter and every live view derived from it, and any concurrent use
// needs external synchronization. All operations are synchronous,
// bounded pointer/metadata work; nothing here blocks on I/O.
package bufview

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rawbytedev/bufview/pkg/structfmt"
)

var (
	// ErrAcquisition means the object does not implement Exporter or
	// its AcquireBuffer call failed.
	ErrAcquisition = errors.New("exporter does not support buffer export")
	// ErrShape means a scalar accessor hit a buffer with two or more
	// dimensions.
	ErrShape = errors.New("buffer is not scalar")
	// ErrFormatMismatch means the requested element code is absent
	// from the buffer's declared format.
	ErrFormatMismatch = errors.New("element code absent from buffer format")
	// ErrReleased means a view was used after Release.
	ErrReleased = errors.New("view used after release")
	// ErrReadOnly is returned by typed accessors on read-only buffers
	// when Options.EnforceReadOnly is set.
	ErrReadOnly = errors.New("buffer is read-only")
	// ErrAlignment is returned by typed accessors when
	// Options.CheckAlignment is set and the region start does not
	// satisfy the element's natural alignment.
	ErrAlignment = errors.New("region start not aligned for element width")
)

// Options controls opt-in hardening of a view.
type Options struct {
	// EnforceReadOnly makes typed accessors fail on read-only
	// buffers. Off by default: the aliased slice is technically
	// writable either way, and some callers rely on that.
	EnforceReadOnly bool

	// CheckAlignment verifies the region start against the element's
	// natural alignment before aliasing.
	CheckAlignment bool

	// Logger receives acquire/release lifecycle events at debug
	// level. Nil disables them.
	Logger *logrus.Logger
}

// Option mutates Options during Acquire.
type Option func(*Options)

// WithEnforceReadOnly rejects typed access to read-only buffers.
func WithEnforceReadOnly() Option {
	return func(o *Options) { o.EnforceReadOnly = true }
}

// WithCheckAlignment enables alignment checks before aliasing.
func WithCheckAlignment() Option {
	return func(o *Options) { o.CheckAlignment = true }
}

// WithLogger installs a lifecycle logger.
func WithLogger(l *logrus.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// View wraps exactly one acquired Descriptor for a bounded lifetime.
// It is created Live and moves to Released by the first call to
// Release; there is no way back. Every metadata query and typed
// accessor requires the view to be Live.
type View struct {
	exp      Exporter
	desc     Descriptor
	format   structfmt.Format
	opts     Options
	token    uuid.UUID
	released bool
}

// Acquire performs the protocol check on obj and the native
// acquisition, returning a Live view. The format descriptor is decoded
// once here, so malformed metadata surfaces at construction rather
// than per accessor call. Fails with ErrAcquisition when obj is not an
// Exporter or its AcquireBuffer reports failure.
//
// The caller must guarantee Release on every exit path, typically:
//
//	v, err := bufview.Acquire(obj)
//	if err != nil { ... }
//	defer v.Release()
func Acquire(obj any, opts ...Option) (*View, error) {
	var o Options
	for _, fn := range opts {
		fn(&o)
	}
	exp, ok := obj.(Exporter)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrAcquisition, obj)
	}
	desc, err := exp.AcquireBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAcquisition, err)
	}
	v := &View{
		exp:    exp,
		desc:   desc,
		format: structfmt.Parse(desc.Format),
		opts:   o,
		token:  uuid.New(),
	}
	if o.Logger != nil {
		o.Logger.Debugf("acquired buffer %s: %d bytes format=%q ndim=%d readonly=%v",
			v.token, desc.ByteLen, desc.Format, desc.NDim, desc.ReadOnly)
	}
	return v, nil
}

// Release returns the descriptor to the exporter and moves the view to
// Released. Idempotent: only the first call reaches the exporter,
// later calls do nothing and report nothing.
func (v *View) Release() {
	if v.released {
		return
	}
	v.released = true
	v.exp.ReleaseBuffer(&v.desc)
	if v.opts.Logger != nil {
		v.opts.Logger.Debugf("released buffer %s", v.token)
	}
}

// Token identifies this acquisition in logs. Usable even after
// Release.
func (v *View) Token() uuid.UUID { return v.token }

// Len returns the region's total byte length.
func (v *View) Len() (int64, error) {
	if v.released {
		return 0, ErrReleased
	}
	return v.desc.ByteLen, nil
}

// NDim returns the raw dimension count.
func (v *View) NDim() (int, error) {
	if v.released {
		return 0, ErrReleased
	}
	return v.desc.NDim, nil
}

// Scalar reports whether the region is flat (0 or 1 dimensions) and
// therefore addressable through the typed accessors.
func (v *View) Scalar() (bool, error) {
	if v.released {
		return false, ErrReleased
	}
	return v.desc.NDim <= 1, nil
}

// ReadOnly reports the exporter's read-only flag.
func (v *View) ReadOnly() (bool, error) {
	if v.released {
		return false, ErrReleased
	}
	return v.desc.ReadOnly, nil
}

// Format returns the decoded format descriptor cached at
// construction.
func (v *View) Format() (structfmt.Format, error) {
	if v.released {
		return structfmt.Format{}, ErrReleased
	}
	return v.format, nil
}
