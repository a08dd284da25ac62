// Package source prepares the byte stream handed to a decoder: it unwraps
// a compressed container when one is detected and fingerprints the bytes
// the decoder actually consumes.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the container wrapped around a tablature stream.
type Compression int

const (
	// None means the stream is a raw tablature file.
	None Compression = iota
	Gzip
	Zstd
	LZ4
	// S2 covers both the S2 and Snappy framing formats.
	S2
)

func (c Compression) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	case S2:
		return "s2"
	default:
		return "none"
	}
}

// Magic numbers at the start of each container.
var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
	magicS2   = []byte{0xff, 0x06, 0x00, 0x00}
)

// sniffSize is the number of bytes Detect needs to identify every container.
const sniffSize = 4

// poolMemory is the decoder memory limit of pooled zstd decoders. Streams
// opened with a smaller MaxMemory get a dedicated decoder.
const poolMemory = 1 << 30

// Detect reports the container a stream starting with head is wrapped in.
// A head shorter than the longest magic is reported as None.
func Detect(head []byte) Compression {
	switch {
	case bytes.HasPrefix(head, magicZstd):
		return Zstd
	case bytes.HasPrefix(head, magicLZ4):
		return LZ4
	case bytes.HasPrefix(head, magicS2):
		return S2
	case bytes.HasPrefix(head, magicGzip):
		return Gzip
	default:
		return None
	}
}

// zstdDecoderPool pools streaming zstd decoders. A decoder goes back to the
// pool when the stream that used it is closed.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		d, err := newZstdDecoder(poolMemory)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}
		return d
	},
}

// newZstdDecoder returns a streaming decoder whose window, and so its
// memory, is bounded by maxMemory.
func newZstdDecoder(maxMemory uint64) (*zstd.Decoder, error) {
	window := min(max(maxMemory, uint64(zstd.MinWindowSize)), uint64(zstd.MaxWindowSize))
	return zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
		zstd.WithDecoderMaxWindow(window),
		zstd.WithDecoderMaxMemory(max(maxMemory, 1)),
	)
}

// Config controls Open.
type Config struct {
	// Detect enables container sniffing. Without it the input passes
	// through unchanged.
	Detect bool

	// MaxMemory bounds the zstd window a stream may declare. Zero means
	// the pooled decoder limit.
	MaxMemory uint64
}

// Stream is the decoded byte stream of a possibly compressed input.
type Stream struct {
	io.Reader
	closer      func() error
	Compression Compression
}

// Close releases the decompressor, if any. It does not close the input.
func (s *Stream) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer()
	s.closer = nil
	return err
}

// Open detects the container of r and returns a stream of its content.
//
// Sniffing reads exactly the magic bytes and replays them, so a raw
// stream is never read past what the decoder consumes.
func Open(r io.Reader, cfg Config) (*Stream, error) {
	if !cfg.Detect {
		return &Stream{Reader: r}, nil
	}

	head := make([]byte, sniffSize)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("detect compression: %w", err)
	}
	head = head[:n]
	in := io.MultiReader(bytes.NewReader(head), r)

	switch c := Detect(head); c {
	case Gzip:
		zr, err := gzip.NewReader(in)
		if err != nil {
			return nil, fmt.Errorf("open gzip stream: %w", err)
		}
		return &Stream{Reader: zr, closer: zr.Close, Compression: c}, nil

	case Zstd:
		return openZstd(in, cfg.MaxMemory)

	case LZ4:
		return &Stream{Reader: lz4.NewReader(in), Compression: c}, nil

	case S2:
		return &Stream{Reader: s2.NewReader(in), Compression: c}, nil

	default:
		return &Stream{Reader: in}, nil
	}
}

func openZstd(in io.Reader, maxMemory uint64) (*Stream, error) {
	if maxMemory != 0 && maxMemory < poolMemory {
		d, err := newZstdDecoder(maxMemory)
		if err != nil {
			return nil, fmt.Errorf("create zstd decoder: %w", err)
		}
		if err := d.Reset(in); err != nil {
			d.Close()
			return nil, fmt.Errorf("open zstd stream: %w", err)
		}
		return &Stream{
			Reader:      d,
			closer:      func() error { d.Close(); return nil },
			Compression: Zstd,
		}, nil
	}

	d := zstdDecoderPool.Get().(*zstd.Decoder)
	if err := d.Reset(in); err != nil {
		zstdDecoderPool.Put(d)
		return nil, fmt.Errorf("open zstd stream: %w", err)
	}
	return &Stream{
		Reader: d,
		closer: func() error {
			// Reset to nil drops the reference to the input.
			_ = d.Reset(nil)
			zstdDecoderPool.Put(d)
			return nil
		},
		Compression: Zstd,
	}, nil
}
