// Package binary provides the typed, budgeted reader used by the decoders.
//
// A Reader consumes a forward-only stream in the exact order the grammar
// dictates. It never seeks and never reads ahead. Every variable-length
// read is charged against a per-reader allocation budget before any memory
// is committed, so a corrupt or hostile length field fails fast instead of
// forcing a large allocation.
package binary

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf8"
	"unsafe"

	"github.com/simonhull/tablature/internal/types"
)

// DefaultBudget is the allocation budget of a Reader unless WithBudget is used.
const DefaultBudget uint64 = 1 << 30

// chunkSize bounds the up-front allocation of a large payload. Larger
// payloads grow as bytes actually arrive.
const chunkSize = 64 << 10

// MaxPrealloc caps the capacity allocated up front for a counted
// collection. Larger collections grow as their elements are decoded, so
// a short stream declaring a huge count fails on EOF before the memory
// is committed.
const MaxPrealloc = 1024

// Prealloc returns the initial capacity for a collection of n elements.
func Prealloc[N ~uint32 | ~int32 | ~uint64](n N) int {
	return int(min(uint64(n), MaxPrealloc))
}

// stringHeaderSize is the cost charged per element of a string array.
const stringHeaderSize = uint64(unsafe.Sizeof(""))

// Reader reads the primitive and composite values of the tablature grammar.
//
// A Reader is single-use and not safe for concurrent use. Once a
// cancellation has been observed every later call fails with the same error.
type Reader struct {
	r       io.Reader
	ctx     context.Context
	order   binary.ByteOrder
	err     error // sticky, set once cancellation is observed
	offset  int64
	budget  uint64
	charged uint64
	scratch [4]byte
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithBudget sets the maximum number of bytes the reader may commit.
func WithBudget(n uint64) ReaderOption {
	return func(r *Reader) {
		r.budget = n
	}
}

// WithByteOrder sets the byte order of multi-byte values.
func WithByteOrder(e Endianness) ReaderOption {
	return func(r *Reader) {
		r.order = e.ByteOrder()
	}
}

// NewReader creates a Reader over r. The context is checked before every read.
func NewReader(ctx context.Context, r io.Reader, opts ...ReaderOption) *Reader {
	rd := &Reader{
		r:      r,
		ctx:    ctx,
		order:  binary.LittleEndian,
		budget: DefaultBudget,
	}
	for _, opt := range opts {
		opt(rd)
	}
	return rd
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 {
	return r.offset
}

// Charged returns the number of bytes committed against the budget.
func (r *Reader) Charged() uint64 {
	return r.charged
}

// Budget returns the configured allocation budget.
func (r *Reader) Budget() uint64 {
	return r.budget
}

// check fails if the reader was cancelled, poisoning it on first observation.
func (r *Reader) check(what string) error {
	if r.err != nil {
		return r.err
	}
	if err := r.ctx.Err(); err != nil {
		r.err = &types.Error{Kind: types.KindCancelled, What: what, Offset: r.offset, Err: err}
		return r.err
	}
	return nil
}

// fill reads exactly len(buf) bytes.
func (r *Reader) fill(buf []byte, what string) error {
	start := r.offset
	n, err := io.ReadFull(r.r, buf)
	r.offset += int64(n)
	if err != nil {
		return streamError(err, start, what, int64(n), int64(len(buf)))
	}
	return nil
}

func streamError(err error, off int64, what string, got, want int64) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &types.Error{
			Kind:   types.KindEOF,
			What:   what,
			Offset: off,
			Reason: fmt.Sprintf("got %d of %d bytes", got, want),
		}
	}
	return &types.Error{Kind: types.KindIO, What: what, Offset: off, Err: err}
}

func (r *Reader) invalid(off int64, what, format string, args ...any) error {
	return &types.Error{
		Kind:   types.KindInvalidData,
		What:   what,
		Offset: off,
		Reason: fmt.Sprintf(format, args...),
	}
}

// Charge commits n bytes against the budget. It fails with a
// resource limit error, without committing anything, if the budget
// would be exceeded.
func (r *Reader) Charge(n uint64, what string) error {
	if n > r.budget-r.charged {
		return &types.Error{
			Kind:   types.KindResourceLimit,
			What:   what,
			Offset: r.offset,
			Reason: fmt.Sprintf("%d bytes requested with %d of %d already committed; the file may be corrupt",
				n, r.charged, r.budget),
		}
	}
	r.charged += n
	return nil
}

// Reserve charges count elements of size bytes each.
func (r *Reader) Reserve(count, size uint64, what string) error {
	if size != 0 && count > math.MaxUint64/size {
		return &types.Error{
			Kind:   types.KindResourceLimit,
			What:   what,
			Offset: r.offset,
			Reason: fmt.Sprintf("%d elements of %d bytes overflow", count, size),
		}
	}
	return r.Charge(count*size, what)
}

// ReadValue reads a fixed-width value and advances the offset.
func ReadValue[T Value](r *Reader, what string) (T, error) {
	var zero T
	if err := r.check(what); err != nil {
		return zero, err
	}
	buf := r.scratch[:sizeOf[T]()]
	if err := r.fill(buf, what); err != nil {
		return zero, err
	}
	return decode[T](buf, r.order), nil
}

// U8 reads one unsigned byte.
func (r *Reader) U8(what string) (uint8, error) {
	return ReadValue[uint8](r, what)
}

// I8 reads one signed byte.
func (r *Reader) I8(what string) (int8, error) {
	return ReadValue[int8](r, what)
}

// U32 reads an unsigned 32-bit integer.
func (r *Reader) U32(what string) (uint32, error) {
	return ReadValue[uint32](r, what)
}

// I32 reads a signed 32-bit integer.
func (r *Reader) I32(what string) (int32, error) {
	return ReadValue[int32](r, what)
}

// Bool reads one byte, any non-zero value is true.
func (r *Reader) Bool(what string) (bool, error) {
	b, err := r.U8(what)
	return b != 0, err
}

// Skip consumes n bytes without keeping them.
func (r *Reader) Skip(n int64, what string) error {
	if err := r.check(what); err != nil {
		return err
	}
	start := r.offset
	copied, err := io.CopyN(io.Discard, r.r, n)
	r.offset += copied
	if err != nil {
		return streamError(err, start, what, copied, n)
	}
	return nil
}

// Bytes charges and reads n raw bytes.
func (r *Reader) Bytes(n uint64, what string) ([]byte, error) {
	if err := r.check(what); err != nil {
		return nil, err
	}
	if err := r.Charge(n, what); err != nil {
		return nil, err
	}
	if n <= chunkSize {
		buf := make([]byte, n)
		if err := r.fill(buf, what); err != nil {
			return nil, err
		}
		return buf, nil
	}

	var buf bytes.Buffer
	buf.Grow(chunkSize)
	start := r.offset
	copied, err := io.CopyN(&buf, r.r, int64(n))
	r.offset += copied
	if err != nil {
		return nil, streamError(err, start, what, copied, int64(n))
	}
	return buf.Bytes(), nil
}

// FixedString reads a string stored in a fixed slot: one length byte
// followed by exactly size bytes, of which only the first length are used.
//
// The whole slot is consumed as soon as the length byte is read, even when
// the length turns out to be invalid, so the stream stays aligned on the
// slot boundary. The text must be valid UTF-8.
func (r *Reader) FixedString(size int, what string) (string, error) {
	start := r.offset
	n, err := r.U8(what + " length")
	if err != nil {
		return "", err
	}
	slot, err := r.Bytes(uint64(size), what)
	if err != nil {
		return "", err
	}
	if int(n) > size {
		return "", r.invalid(start, what, "length %d exceeds slot of %d bytes", n, size)
	}
	text := slot[:n]
	if !utf8.Valid(text) {
		return "", &types.Error{Kind: types.KindInvalidUTF8, What: what, Offset: start + 1}
	}
	return string(text), nil
}

// String reads a length-prefixed string: a 32-bit total length L, then a
// one-byte pascal length p with p+1 == L, then p bytes. The payload is not
// checked for valid UTF-8.
func (r *Reader) String(what string) (string, error) {
	start := r.offset
	total, err := r.U32(what + " length")
	if err != nil {
		return "", err
	}
	plen, err := r.U8(what + " pascal length")
	if err != nil {
		return "", err
	}
	if uint64(plen)+1 != uint64(total) {
		return "", r.invalid(start, what, "length %d does not match pascal length %d", total, plen)
	}
	buf, err := r.Bytes(uint64(plen), what)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// StringArray reads a signed 32-bit count followed by that many strings.
func (r *Reader) StringArray(what string) ([]string, error) {
	start := r.offset
	n, err := r.I32(what + " count")
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, r.invalid(start, what, "negative count %d", n)
	}
	if err := r.Reserve(uint64(n), stringHeaderSize, what); err != nil {
		return nil, err
	}
	out := make([]string, 0, Prealloc(n))
	for i := int32(0); i < n; i++ {
		s, err := r.String(fmt.Sprintf("%s[%d]", what, i))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Lyric reads a lyric line: a 32-bit position, a 32-bit length and the raw text.
func (r *Reader) Lyric(what string) (types.Lyric, error) {
	pos, err := r.U32(what + " position")
	if err != nil {
		return types.Lyric{}, err
	}
	start := r.offset
	n, err := r.U32(what + " length")
	if err != nil {
		return types.Lyric{}, err
	}
	if n == math.MaxUint32 {
		return types.Lyric{}, r.invalid(start, what, "invalid length")
	}
	buf, err := r.Bytes(uint64(n), what)
	if err != nil {
		return types.Lyric{}, err
	}
	return types.Lyric{Position: pos, Text: string(buf)}, nil
}

// Color reads a 4-byte color: red, green, blue and one unused byte.
func (r *Reader) Color(what string) (types.Color, error) {
	if err := r.check(what); err != nil {
		return types.Color{}, err
	}
	buf := r.scratch[:4]
	if err := r.fill(buf, what); err != nil {
		return types.Color{}, err
	}
	return types.Color{R: buf[0], G: buf[1], B: buf[2]}, nil
}

// MidiPort reads the 16 channel records of one MIDI port.
func (r *Reader) MidiPort(id uint32) (types.MidiPort, error) {
	port := types.MidiPort{ID: id}
	cr := NewChainReader(r)
	for i := range port.Channels {
		what := fmt.Sprintf("midi port %d channel %d", id, i+1)
		port.Channels[i] = types.MidiChannel{
			Port:       id,
			Channel:    uint32(i + 1),
			Instrument: ReadChained[uint32](cr, what+" instrument"),
			Volume:     ReadChained[uint8](cr, what+" volume"),
			Balance:    ReadChained[uint8](cr, what+" balance"),
			Chorus:     ReadChained[uint8](cr, what+" chorus"),
			Reverb:     ReadChained[uint8](cr, what+" reverb"),
			Phaser:     ReadChained[uint8](cr, what+" phaser"),
			Tremolo:    ReadChained[uint8](cr, what+" tremolo"),
		}
		cr.Skip(2, what+" padding")
	}
	if err := cr.Error(); err != nil {
		return types.MidiPort{}, err
	}
	return port, nil
}

// ChainReader allows chaining multiple reads with deferred error checking.
// This avoids repetitive "if err != nil" checks in fixed-layout records.
type ChainReader struct {
	*Reader
	err error
}

// NewChainReader creates a new ChainReader.
func NewChainReader(r *Reader) *ChainReader {
	return &ChainReader{Reader: r}
}

// ReadChained reads a value with deferred error checking.
// If a previous read failed, returns zero value without attempting read.
func ReadChained[T Value](cr *ChainReader, what string) T {
	if cr.err != nil {
		var zero T
		return zero
	}

	val, err := ReadValue[T](cr.Reader, what)
	if err != nil {
		cr.err = err
		var zero T
		return zero
	}

	return val
}

// Bool reads a boolean byte, accumulating any error.
func (cr *ChainReader) Bool(what string) bool {
	return ReadChained[uint8](cr, what) != 0
}

// Skip consumes n bytes, accumulating any error.
func (cr *ChainReader) Skip(n int64, what string) {
	if cr.err != nil {
		return
	}
	cr.err = cr.Reader.Skip(n, what)
}

// FixedString reads a fixed-slot string, accumulating any error.
func (cr *ChainReader) FixedString(size int, what string) string {
	if cr.err != nil {
		return ""
	}

	val, err := cr.Reader.FixedString(size, what)
	if err != nil {
		cr.err = err
		return ""
	}

	return val
}

// Error returns the accumulated error, if any.
func (cr *ChainReader) Error() error {
	return cr.err
}
