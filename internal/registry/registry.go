// Package registry maps version tags to the decoders that understand them.
package registry

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/simonhull/tablature/internal/binary"
	"github.com/simonhull/tablature/internal/types"
)

// Options carries the per-session settings a decoder needs.
type Options struct {
	Logger *slog.Logger

	// Version is the tag read from the start of the stream.
	Version string

	// Strict turns tolerated anomalies into errors.
	Strict bool

	// IgnoreWarnings drops warnings instead of collecting them on the Song.
	IgnoreWarnings bool
}

// Decoder decodes the body of a stream whose version tag has already been read.
type Decoder interface {
	Decode(ctx context.Context, r *binary.Reader, opts Options) (*types.Song, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(ctx context.Context, r *binary.Reader, opts Options) (*types.Song, error)

// Decode calls f.
func (f DecoderFunc) Decode(ctx context.Context, r *binary.Reader, opts Options) (*types.Song, error) {
	return f(ctx, r, opts)
}

// fallbackDecoder handles tags that are not in the table.
type fallbackDecoder struct{}

func (*fallbackDecoder) Decode(_ context.Context, r *binary.Reader, opts Options) (*types.Song, error) {
	return nil, &types.Error{
		Kind:   types.KindNotSupported,
		What:   "version",
		Offset: r.Offset(),
		Reason: "unknown version " + quote(opts.Version),
	}
}

// VersionInfo describes one row of the dispatch table.
type VersionInfo struct {
	Tag       string `json:"tag"`
	Supported bool   `json:"supported"`
}

// Registry is a version tag to Decoder table. The zero value is not usable;
// call New.
type Registry struct {
	mu       sync.RWMutex
	decoders map[string]Decoder
	order    []string
	fallback Decoder
}

// New returns a registry that recognizes every known version tag, with no
// decoder attached to any of them.
func New() *Registry {
	g := &Registry{
		decoders: make(map[string]Decoder, len(types.KnownVersions)),
		fallback: &fallbackDecoder{},
	}
	for _, v := range types.KnownVersions {
		g.decoders[v] = nil
		g.order = append(g.order, v)
	}
	return g
}

// Register attaches a decoder to a version tag, replacing any existing one.
// This is called by format packages during initialization (init functions).
func (g *Registry) Register(version string, d Decoder) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.decoders[version]; !ok {
		g.order = append(g.order, version)
	}
	g.decoders[version] = d
}

// Fallback returns the decoder used for tags missing from the table.
func (g *Registry) Fallback() Decoder {
	return g.fallback
}

// Lookup returns the decoder for version. The second result reports whether
// the tag is in the table at all; a recognized tag may still have a nil decoder.
func (g *Registry) Lookup(version string) (Decoder, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	d, ok := g.decoders[version]
	return d, ok
}

// Dispatch selects the decoder for opts.Version and runs it.
func (g *Registry) Dispatch(ctx context.Context, r *binary.Reader, opts Options) (*types.Song, error) {
	d, known := g.Lookup(opts.Version)
	switch {
	case !known:
		d = g.fallback
	case d == nil:
		return nil, &types.Error{
			Kind:   types.KindNotSupported,
			What:   "version",
			Offset: r.Offset(),
			Reason: quote(opts.Version) + " is recognized but not implemented",
		}
	case d == g.fallback:
		return nil, &types.Error{
			Kind:   types.KindInternalDispatch,
			What:   "version",
			Offset: r.Offset(),
			Reason: "known version " + quote(opts.Version) + " resolves to the fallback decoder",
		}
	}
	return d.Decode(ctx, r, opts)
}

// Versions lists the table rows, known tags first in release order.
func (g *Registry) Versions() []VersionInfo {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]VersionInfo, 0, len(g.order))
	for _, v := range g.order {
		d := g.decoders[v]
		out = append(out, VersionInfo{Tag: v, Supported: d != nil && d != g.fallback})
	}
	return out
}

// Supported reports whether a decoder is attached to version.
func (g *Registry) Supported(version string) bool {
	d, ok := g.Lookup(version)
	return ok && d != nil && d != g.fallback
}

func quote(s string) string {
	return `"` + s + `"`
}

var defaultRegistry = New()

// Default returns the process-wide registry the format packages register into.
func Default() *Registry {
	return defaultRegistry
}

// Register attaches a decoder to a version tag in the default registry.
func Register(version string, d Decoder) {
	defaultRegistry.Register(version, d)
}

// Lookup returns the decoder for version from the default registry.
func Lookup(version string) (Decoder, bool) {
	return defaultRegistry.Lookup(version)
}

// Dispatch runs the default registry's decoder for opts.Version.
func Dispatch(ctx context.Context, r *binary.Reader, opts Options) (*types.Song, error) {
	return defaultRegistry.Dispatch(ctx, r, opts)
}

// Versions lists the rows of the default registry.
func Versions() []VersionInfo {
	return defaultRegistry.Versions()
}

// SupportedVersions returns the tags of the default registry that have a decoder.
func SupportedVersions() []string {
	var out []string
	for _, v := range defaultRegistry.Versions() {
		if v.Supported {
			out = append(out, v.Tag)
		}
	}
	return slices.Clip(out)
}
