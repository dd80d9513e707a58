// Package snapshot is the explicit copy-out escape hatch for bufview:
// everything else in the module aliases exporter memory, this package
// deliberately duplicates it. Snapshots can be kept in memory or
// persisted as a small zstd-compressed frame with a fixed header.
package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/rawbytedev/bufview"
	"github.com/rawbytedev/bufview/internal/common"
)

const (
	MagicV1   = 0x4e535642 // "BVSN"
	VersionV1 = 1

	// fixed header: magic u32, version u16, flags u16, byteLen u64,
	// fmtLen u16; the format string follows.
	headerSize = 18

	flagReadOnly = 0x0001
)

var (
	ErrShortHeader = errors.New("snapshot header truncated")
	ErrBadMagic    = errors.New("not a snapshot frame")
	ErrBadVersion  = errors.New("unsupported snapshot version")
)

// Snapshot is one copied-out region plus the metadata needed to
// interpret it later.
type Snapshot struct {
	Format   string
	ReadOnly bool
	Data     []byte
}

// Bytes copies the view's region into a freshly allocated slice. The
// result is independent of the exporter's memory.
func Bytes(v *bufview.View) ([]byte, error) {
	raw, err := v.Bytes()
	if err != nil {
		return nil, err
	}
	return common.CloneBytes(raw), nil
}

func encodeHeader(buf []byte, byteLen int64, format string, readOnly bool) []byte {
	buf = append(buf, make([]byte, headerSize)...)
	binary.LittleEndian.PutUint32(buf[0:], MagicV1)
	binary.LittleEndian.PutUint16(buf[4:], VersionV1)
	var flags uint16
	if readOnly {
		flags |= flagReadOnly
	}
	binary.LittleEndian.PutUint16(buf[6:], flags)
	binary.LittleEndian.PutUint64(buf[8:], uint64(byteLen))
	binary.LittleEndian.PutUint16(buf[16:], uint16(len(format)))
	return append(buf, format...)
}

// Write persists the view's region to w: header, format string, then
// one zstd frame holding the raw bytes.
func Write(w io.Writer, v *bufview.View) error {
	raw, err := v.Bytes()
	if err != nil {
		return err
	}
	ro, err := v.ReadOnly()
	if err != nil {
		return err
	}
	fm, err := v.Format()
	if err != nil {
		return err
	}
	hdr := encodeHeader(nil, int64(len(raw)), fm.Raw, ro)
	if _, err := w.Write(hdr); err != nil {
		return err
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return err
	}
	defer enc.Close()
	_, err = w.Write(enc.EncodeAll(raw, nil))
	return err
}

// Read parses a frame previously produced by Write.
func Read(r io.Reader) (*Snapshot, error) {
	hdr := make([]byte, headerSize)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShortHeader, err)
	}
	if binary.LittleEndian.Uint32(hdr[0:]) != MagicV1 {
		return nil, ErrBadMagic
	}
	if binary.LittleEndian.Uint16(hdr[4:]) != VersionV1 {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, binary.LittleEndian.Uint16(hdr[4:]))
	}
	flags := binary.LittleEndian.Uint16(hdr[6:])
	byteLen := binary.LittleEndian.Uint64(hdr[8:])
	fmtLen := binary.LittleEndian.Uint16(hdr[16:])

	format := make([]byte, fmtLen)
	if _, err := io.ReadFull(r, format); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShortHeader, err)
	}
	comp, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	data, err := dec.DecodeAll(comp, make([]byte, 0, byteLen))
	if err != nil {
		return nil, err
	}
	if uint64(len(data)) != byteLen {
		return nil, fmt.Errorf("snapshot length mismatch: header says %d, frame holds %d", byteLen, len(data))
	}
	return &Snapshot{
		Format:   string(format),
		ReadOnly: flags&flagReadOnly != 0,
		Data:     data,
	}, nil
}
