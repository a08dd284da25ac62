package tablature

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/simonhull/tablature/internal/binary"
	"github.com/simonhull/tablature/internal/registry"
	"github.com/simonhull/tablature/internal/source"
	"github.com/simonhull/tablature/internal/types"
)

// State is the lifecycle state of a Session.
type State int

const (
	// StateUnloaded means Load has not been called yet.
	StateUnloaded State = iota
	// StateLoaded means Load succeeded and the song is available.
	StateLoaded
	// StateFailed means Load ran and failed. The session cannot be retried.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "unloaded"
	}
}

// Session decodes one tablature stream, exactly once.
//
// A Session moves from StateUnloaded to StateLoaded or StateFailed on its
// first Load and never leaves that state. Concurrent Load calls are
// serialized; only the first decodes, the others fail with
// ErrAlreadyConsumed.
//
//	s := tablature.Open(r)
//	song, err := s.Load(ctx)
//	if err != nil {
//		return err
//	}
//	fmt.Println(song.Title)
type Session struct {
	mu     sync.Mutex
	r      io.Reader
	closer io.Closer
	opts   *options
	state  State
	song   *Song
	err    error
}

// Open returns a session over r. Nothing is read until Load is called.
//
// r is read strictly forward; it need not support seeking.
func Open(r io.Reader, opts ...Option) *Session {
	return &Session{
		r:    r,
		opts: applyOptions(opts),
	}
}

// Load decodes the stream. It may be called once; later calls return
// ErrAlreadyConsumed without touching the stream or the first result.
//
// On failure no partial song is exposed. Cancelling ctx aborts the decode
// at the next read with ErrCancelled.
func (s *Session) Load(ctx context.Context) (*Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateUnloaded {
		return nil, &types.Error{
			Kind:   types.KindAlreadyConsumed,
			Reason: "session is " + s.state.String(),
		}
	}

	song, err := s.load(ctx)
	if err != nil {
		s.state = StateFailed
		s.err = err
		s.opts.logger.DebugContext(ctx, "load failed", "error", err)
		return nil, err
	}

	s.state = StateLoaded
	s.song = song
	return song, nil
}

func (s *Session) load(ctx context.Context) (*Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, &types.Error{Kind: types.KindCancelled, What: "input", Err: err}
	}

	stream, err := source.Open(s.r, source.Config{
		Detect:    s.opts.decompress,
		MaxMemory: s.opts.maxAllocation,
	})
	if err != nil {
		return nil, &types.Error{Kind: types.KindIO, What: "input", Err: err}
	}
	defer stream.Close()
	if stream.Compression != source.None {
		s.opts.logger.DebugContext(ctx, "decompressing input", "compression", stream.Compression.String())
	}

	fp := source.NewFingerprint(stream)
	r := binary.NewReader(ctx, fp, binary.WithBudget(s.opts.maxAllocation))

	version, err := r.FixedString(types.VersionTagSize, "version")
	if err != nil {
		return nil, fmt.Errorf("version: %w", err)
	}

	song, err := s.opts.registry.Dispatch(ctx, r, registry.Options{
		Logger:         s.opts.logger,
		Version:        version,
		Strict:         s.opts.strictParsing,
		IgnoreWarnings: s.opts.ignoreWarnings,
	})
	if err != nil {
		return nil, err
	}
	song.Fingerprint = fp.Sum64()

	s.opts.logger.InfoContext(ctx, "song loaded",
		"version", version,
		"title", song.Title,
		"bytes", fp.Count(),
		"fingerprint", fmt.Sprintf("%016x", song.Fingerprint))
	return song, nil
}

// Song returns the decoded song after a successful Load.
func (s *Session) Song() (*Song, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.song, s.state == StateLoaded
}

// State returns the lifecycle state of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the error of a failed Load, or nil.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close releases the file opened by OpenFile. It is a no-op for sessions
// created with Open; the caller owns that reader.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}
