package binary

import "encoding/binary"

// Endianness represents byte order for multi-byte values.
type Endianness int

const (
	// LittleEndian uses little-endian byte order.
	// Used by: every Guitar Pro revision.
	LittleEndian Endianness = iota

	// BigEndian uses big-endian byte order.
	BigEndian
)

// ByteOrder returns the encoding/binary order for e.
func (e Endianness) ByteOrder() binary.ByteOrder {
	if e == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Value is the set of fixed-width values the readers and writers handle.
type Value interface {
	uint8 | int8 | uint16 | int16 | uint32 | int32
}

// sizeOf returns the encoded width of T in bytes.
func sizeOf[T Value]() int {
	var zero T
	switch any(zero).(type) {
	case uint8, int8:
		return 1
	case uint16, int16:
		return 2
	default:
		return 4
	}
}

// decode converts buf (exactly sizeOf[T] bytes) to a value of type T.
//
// Example:
//
//	n := decode[int32](buf, binary.LittleEndian)
func decode[T Value](buf []byte, order binary.ByteOrder) T {
	var zero T
	switch any(zero).(type) {
	case uint8, int8:
		return T(buf[0])
	case uint16, int16:
		return T(order.Uint16(buf))
	default:
		return T(order.Uint32(buf))
	}
}

// encode appends the encoding of val to buf.
func encode[T Value](buf []byte, val T, order binary.ByteOrder) []byte {
	var zero T
	switch any(zero).(type) {
	case uint8, int8:
		return append(buf, byte(val))
	case uint16, int16:
		var tmp [2]byte
		order.PutUint16(tmp[:], uint16(val))
		return append(buf, tmp[:]...)
	default:
		var tmp [4]byte
		order.PutUint32(tmp[:], uint32(val))
		return append(buf, tmp[:]...)
	}
}
