package bufview_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/bufview"
	"github.com/rawbytedev/bufview/pkg/memexport"
)

func acquire(t *testing.T, r *memexport.Region, opts ...bufview.Option) *bufview.View {
	t.Helper()
	v, err := bufview.Acquire(r, opts...)
	require.NoError(t, err)
	t.Cleanup(v.Release)
	return v
}

func TestInt64sScalar(t *testing.T) {
	data := make([]byte, 24)
	binary.LittleEndian.PutUint64(data[0:], 100)
	binary.LittleEndian.PutUint64(data[8:], 200)
	binary.LittleEndian.PutUint64(data[16:], 300)
	v := acquire(t, memexport.New(data, "<q"))

	got, err := v.Int64s()
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int64{100, 200, 300}, got)

	// same buffer, wrong code
	_, err = v.Float32s()
	require.ErrorIs(t, err, bufview.ErrFormatMismatch)
}

func TestElementCounts(t *testing.T) {
	data := make([]byte, 24)
	v := acquire(t, memexport.New(data, "iIqQfd"))

	i32, err := v.Int32s()
	require.NoError(t, err)
	assert.Len(t, i32, 6)
	u32, err := v.Uint32s()
	require.NoError(t, err)
	assert.Len(t, u32, 6)
	i64, err := v.Int64s()
	require.NoError(t, err)
	assert.Len(t, i64, 3)
	u64, err := v.Uint64s()
	require.NoError(t, err)
	assert.Len(t, u64, 3)
	f32, err := v.Float32s()
	require.NoError(t, err)
	assert.Len(t, f32, 6)
	f64, err := v.Float64s()
	require.NoError(t, err)
	assert.Len(t, f64, 3)
	raw, err := v.Bytes()
	require.NoError(t, err)
	assert.Len(t, raw, 24)
}

func TestRemainderBytesAreDropped(t *testing.T) {
	v := acquire(t, memexport.New(make([]byte, 10), "<i"))
	got, err := v.Int32s()
	require.NoError(t, err)
	require.Len(t, got, 2, "10 bytes hold two whole int32 elements")
}

func TestShapeRejected(t *testing.T) {
	r := memexport.New(make([]byte, 32), "<iIqQfd").SetDims(2)
	v := acquire(t, r)

	for name, call := range map[string]func() error{
		"Int32s":   func() error { _, err := v.Int32s(); return err },
		"Uint32s":  func() error { _, err := v.Uint32s(); return err },
		"Int64s":   func() error { _, err := v.Int64s(); return err },
		"Uint64s":  func() error { _, err := v.Uint64s(); return err },
		"Float32s": func() error { _, err := v.Float32s(); return err },
		"Float64s": func() error { _, err := v.Float64s(); return err },
		"Bytes":    func() error { _, err := v.Bytes(); return err },
	} {
		require.ErrorIs(t, call(), bufview.ErrShape, name)
	}
}

func TestWritesReachExporter(t *testing.T) {
	r := memexport.New(make([]byte, 8), "<i")
	v := acquire(t, r)

	got, err := v.Int32s()
	require.NoError(t, err)
	got[0] = 0x01020304
	got[1] = -1

	// no copy: the exporter's backing bytes must show the write
	assert.EqualValues(t, 0x01020304, binary.LittleEndian.Uint32(r.Bytes()[0:]))
	assert.EqualValues(t, 0xffffffff, binary.LittleEndian.Uint32(r.Bytes()[4:]))
}

func TestFormatMismatchBeforeMemoryAccess(t *testing.T) {
	// nil backing: if the accessor touched memory before validating,
	// this would fault instead of returning an error
	v := acquire(t, memexport.New(nil, "<q"))
	_, err := v.Float64s()
	require.ErrorIs(t, err, bufview.ErrFormatMismatch)
}

func TestEnforceReadOnly(t *testing.T) {
	data := []byte{1, 0, 0, 0}

	// permissive default: read-only buffers still hand out slices
	v := acquire(t, memexport.New(data, "<i").MarkReadOnly())
	got, err := v.Int32s()
	require.NoError(t, err)
	require.EqualValues(t, 1, got[0])
	v.Release()

	// hardened mode rejects them
	v2 := acquire(t, memexport.New(data, "<i").MarkReadOnly(), bufview.WithEnforceReadOnly())
	_, err = v2.Int32s()
	require.ErrorIs(t, err, bufview.ErrReadOnly)

	// metadata still works either way
	ro, err := v2.ReadOnly()
	require.NoError(t, err)
	require.True(t, ro)
}

func TestCheckAlignment(t *testing.T) {
	// Region backs buffers with Go slices, which are always aligned
	// for the supported widths, so the aligned path must pass.
	v := acquire(t, memexport.New(make([]byte, 16), "<q"), bufview.WithCheckAlignment())
	_, err := v.Int64s()
	require.NoError(t, err)
}

func TestEmptyBuffer(t *testing.T) {
	v := acquire(t, memexport.New(nil, "<d"))
	got, err := v.Float64s()
	require.NoError(t, err)
	require.Empty(t, got)
}
