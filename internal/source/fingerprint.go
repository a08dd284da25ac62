package source

import (
	"io"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes every byte read through it with xxHash64.
//
// The hash covers the decoded content, not the container, so the same
// song stored plain or compressed has the same fingerprint.
type Fingerprint struct {
	r io.Reader
	d *xxhash.Digest
	n int64
}

// NewFingerprint wraps r.
func NewFingerprint(r io.Reader) *Fingerprint {
	return &Fingerprint{r: r, d: xxhash.New()}
}

// Read reads from the wrapped reader and hashes what was read.
func (f *Fingerprint) Read(p []byte) (int, error) {
	n, err := f.r.Read(p)
	if n > 0 {
		_, _ = f.d.Write(p[:n])
		f.n += int64(n)
	}
	return n, err
}

// Sum64 returns the hash of the bytes read so far.
func (f *Fingerprint) Sum64() uint64 {
	return f.d.Sum64()
}

// Count returns the number of bytes read so far.
func (f *Fingerprint) Count() int64 {
	return f.n
}

// Sum returns the fingerprint of a complete payload.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
