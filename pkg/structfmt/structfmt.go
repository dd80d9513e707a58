// Package structfmt decodes the compact format descriptor strings that
// buffer exporters attach to their memory regions: an optional leading
// byte-order symbol followed by single-character element codes.
//
// The contract here is deliberately narrower than full struct-format
// parsing: Parse never fails, does not validate that the element codes
// form a coherent layout, and only supports "does this format contain
// code X" queries. That is all the typed view layer needs.
package structfmt

import "strings"

// ByteOrder is the byte-order tag taken from a format string's first
// character.
type ByteOrder int

const (
	// Native byte order, native sizes. Also the default when a format
	// string is empty or starts with something other than an order
	// symbol; that case is not an error.
	Native ByteOrder = iota
	// Standard byte order (native endianness, standard sizes).
	Standard
	// LittleEndian order, standard sizes.
	LittleEndian
	// BigEndian order, standard sizes.
	BigEndian
	// Network order: big-endian, standard sizes.
	Network
)

func (o ByteOrder) String() string {
	switch o {
	case Native:
		return "native"
	case Standard:
		return "standard"
	case LittleEndian:
		return "little-endian"
	case BigEndian:
		return "big-endian"
	case Network:
		return "network"
	default:
		return "unknown"
	}
}

// Canonical element codes. Each code has a fixed width under standard
// sizing, see Width.
const (
	Pad       byte = 'x'
	SChar     byte = 'b'
	UChar     byte = 'B'
	Bool      byte = '?'
	Short     byte = 'h'
	UShort    byte = 'H'
	Int       byte = 'i'
	UInt      byte = 'I'
	Long      byte = 'l'
	ULong     byte = 'L'
	LongLong  byte = 'q'
	ULongLong byte = 'Q'
	Float     byte = 'f'
	Double    byte = 'd'
	SSize     byte = 'n'
	Size      byte = 'N'
)

// Known reports whether c is one of the canonical element codes.
func Known(c byte) bool {
	return Width(c) > 0
}

// Width returns the standard-size byte width of element code c, or -1
// for unrecognized codes.
func Width(c byte) int {
	switch c {
	case Pad, SChar, UChar, Bool:
		return 1
	case Short, UShort:
		return 2
	case Int, UInt, Long, ULong, Float:
		return 4
	case LongLong, ULongLong, SSize, Size, Double:
		return 8
	default:
		return -1
	}
}

// Format is the decoded form of a format descriptor string: the
// byte-order tag plus the remaining element codes, kept verbatim.
type Format struct {
	Order ByteOrder
	// Codes is the format string with the order symbol (if any)
	// stripped. Not validated beyond Contains queries.
	Codes string
	// Raw is the descriptor string exactly as the exporter declared
	// it.
	Raw string
}

// Parse decodes a format string. The byte order comes from the first
// character when it is one of the five order symbols; anything else,
// including an empty string, defaults to Native with the whole string
// treated as element codes.
func Parse(s string) Format {
	if s == "" {
		return Format{Order: Native, Raw: s}
	}
	switch s[0] {
	case '@':
		return Format{Order: Native, Codes: s[1:], Raw: s}
	case '=':
		return Format{Order: Standard, Codes: s[1:], Raw: s}
	case '<':
		return Format{Order: LittleEndian, Codes: s[1:], Raw: s}
	case '>':
		return Format{Order: BigEndian, Codes: s[1:], Raw: s}
	case '!':
		return Format{Order: Network, Codes: s[1:], Raw: s}
	default:
		return Format{Order: Native, Codes: s, Raw: s}
	}
}

// Contains reports whether the format declares element code c. Only
// exact canonical codes match; width-compatible alternates (such as
// Long standing in for Int) do not.
func (f Format) Contains(c byte) bool {
	return Known(c) && strings.IndexByte(f.Codes, c) >= 0
}
