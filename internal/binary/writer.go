package binary

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/simonhull/tablature/internal/types"
)

// SafeWriter emits the primitive encodings of the tablature grammar with
// position tracking. The decoders never write; SafeWriter exists so tests
// and tools can build streams field by field.
//
// The first write error is kept and every later write becomes a no-op.
type SafeWriter struct {
	w      io.Writer
	order  binary.ByteOrder
	err    error
	offset int64
}

// NewSafeWriter creates a little-endian SafeWriter.
func NewSafeWriter(w io.Writer) *SafeWriter {
	return &SafeWriter{
		w:     w,
		order: binary.LittleEndian,
	}
}

// Offset returns the current position (number of bytes written).
func (sw *SafeWriter) Offset() int64 {
	return sw.offset
}

// Err returns the first write error, if any.
func (sw *SafeWriter) Err() error {
	return sw.err
}

// WriteBytes writes raw bytes to the underlying writer.
func (sw *SafeWriter) WriteBytes(b []byte) error {
	if sw.err != nil {
		return sw.err
	}
	n, err := sw.w.Write(b)
	sw.offset += int64(n)
	sw.err = err
	return err
}

// WriteRaw writes s as bytes with no framing.
func (sw *SafeWriter) WriteRaw(s string) error {
	return sw.WriteBytes([]byte(s))
}

// Write writes a fixed-width value in the writer's byte order.
func Write[T Value](sw *SafeWriter, val T) error {
	return sw.WriteBytes(encode(nil, val, sw.order))
}

// WriteFixedString writes s into a fixed slot of size bytes preceded by its
// length byte. s is truncated to the slot.
func (sw *SafeWriter) WriteFixedString(s string, size int) error {
	if len(s) > size {
		s = s[:size]
	}
	slot := make([]byte, 1+size)
	slot[0] = byte(len(s))
	copy(slot[1:], s)
	return sw.WriteBytes(slot)
}

// WriteString writes a length-prefixed string: 32-bit len+1, pascal length, bytes.
// s is truncated to 255 bytes.
func (sw *SafeWriter) WriteString(s string) error {
	if len(s) > math.MaxUint8 {
		s = s[:math.MaxUint8]
	}
	_ = Write(sw, uint32(len(s)+1))
	_ = Write(sw, uint8(len(s)))
	return sw.WriteRaw(s)
}

// WriteStringArray writes a signed count followed by each string.
func (sw *SafeWriter) WriteStringArray(ss []string) error {
	_ = Write(sw, int32(len(ss)))
	for _, s := range ss {
		_ = sw.WriteString(s)
	}
	return sw.err
}

// WriteLyric writes a lyric line: position, 32-bit length, raw text.
func (sw *SafeWriter) WriteLyric(l types.Lyric) error {
	_ = Write(sw, l.Position)
	_ = Write(sw, uint32(len(l.Text)))
	return sw.WriteRaw(l.Text)
}

// WriteColor writes a color with its unused fourth byte.
func (sw *SafeWriter) WriteColor(c types.Color) error {
	return sw.WriteBytes([]byte{c.R, c.G, c.B, 0})
}

// WriteMidiPort writes the 16 channel records of a MIDI port.
func (sw *SafeWriter) WriteMidiPort(p types.MidiPort) error {
	for _, ch := range p.Channels {
		_ = Write(sw, ch.Instrument)
		_ = sw.WriteBytes([]byte{ch.Volume, ch.Balance, ch.Chorus, ch.Reverb, ch.Phaser, ch.Tremolo, 0, 0})
	}
	return sw.err
}
