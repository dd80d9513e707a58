package bufview_test

import (
	"testing"

	"github.com/rawbytedev/bufview"
	"github.com/rawbytedev/bufview/pkg/memexport"
)

func benchRegion(bytes int, format string) *memexport.Region {
	return memexport.New(make([]byte, bytes), format)
}

func Benchmark_AcquireRelease(b *testing.B) {
	r := benchRegion(4096, "<q")
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v, err := bufview.Acquire(r)
		if err != nil {
			b.Fatal(err)
		}
		v.Release()
	}
}

func Benchmark_Int64s_view(b *testing.B) {
	r := benchRegion(4096, "<q")
	v, err := bufview.Acquire(r)
	if err != nil {
		b.Fatal(err)
	}
	defer v.Release()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = v.Int64s()
	}
}

// baseline: the same 4096 bytes element-copied into a fresh slice
func Benchmark_Int64s_copy(b *testing.B) {
	r := benchRegion(4096, "<q")
	v, err := bufview.Acquire(r)
	if err != nil {
		b.Fatal(err)
	}
	defer v.Release()
	src, err := v.Int64s()
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		dst := make([]int64, len(src))
		copy(dst, src)
	}
}
