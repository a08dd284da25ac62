// Package gp4 decodes the Guitar Pro 4 revisions of the tablature format
// (v4.00, v4.06 and L4.06).
//
// The grammar is a single forward pass with no offsets or back references:
// every optional field is announced by a bit in the flag byte that precedes
// it. The decoder therefore reads strictly in stream order and aborts on
// the first error, leaving nothing partially built visible to the caller.
package gp4

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/simonhull/tablature/internal/binary"
	"github.com/simonhull/tablature/internal/registry"
	"github.com/simonhull/tablature/internal/types"
)

// Versions lists the tags this package decodes.
var Versions = []string{
	types.VersionGP400,
	types.VersionGP406,
	types.VersionGPL406,
}

func init() {
	for _, v := range Versions {
		registry.Register(v, &decoder{})
	}
}

// decoder implements registry.Decoder for the v4 grammar.
type decoder struct{}

// Decode reads everything after the version tag.
func (d *decoder) Decode(ctx context.Context, r *binary.Reader, opts registry.Options) (*types.Song, error) {
	return Decode(ctx, r, opts)
}

// Decode reads a v4 song body from r. The version tag must already have
// been consumed; opts.Version is recorded on the song.
func Decode(ctx context.Context, r *binary.Reader, opts registry.Options) (*types.Song, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	p := &parser{
		r:    r,
		ctx:  ctx,
		opts: opts,
		log:  log.With("version", opts.Version),
		song: &types.Song{Version: opts.Version},
	}
	if err := p.decode(); err != nil {
		return nil, err
	}
	return p.song, nil
}

// parser holds the state of one decode pass.
type parser struct {
	r    *binary.Reader
	ctx  context.Context
	opts registry.Options
	log  *slog.Logger
	song *types.Song
}

func (p *parser) decode() error {
	if err := p.readAttributes(); err != nil {
		return fmt.Errorf("attributes: %w", err)
	}
	if err := p.readTripletFeel(); err != nil {
		return fmt.Errorf("triplet feel: %w", err)
	}
	if err := p.readLyrics(); err != nil {
		return fmt.Errorf("lyrics: %w", err)
	}
	if err := p.readGlobals(); err != nil {
		return fmt.Errorf("song header: %w", err)
	}
	if err := p.readPorts(); err != nil {
		return fmt.Errorf("midi ports: %w", err)
	}

	nMeasures, nTracks, err := p.readCounts()
	if err != nil {
		return fmt.Errorf("counts: %w", err)
	}
	if err := p.readMeasures(nMeasures); err != nil {
		return fmt.Errorf("measures: %w", err)
	}
	if err := p.readTracks(nTracks); err != nil {
		return fmt.Errorf("tracks: %w", err)
	}
	if err := p.readGrid(); err != nil {
		return fmt.Errorf("beats: %w", err)
	}

	p.log.DebugContext(p.ctx, "song decoded",
		"measures", len(p.song.Measures),
		"tracks", len(p.song.Tracks),
		"bytes", p.r.Offset(),
		"charged", p.r.Charged(),
		"warnings", len(p.song.Warnings))
	return nil
}

// warn records a tolerated anomaly. In strict mode it is returned as an
// invalid data error instead.
func (p *parser) warn(stage string, offset int64, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if p.opts.Strict {
		return &types.Error{
			Kind:   types.KindInvalidData,
			What:   stage,
			Offset: offset,
			Reason: msg,
		}
	}
	p.log.WarnContext(p.ctx, msg, "stage", stage, "offset", offset)
	if !p.opts.IgnoreWarnings {
		p.song.Warnings = append(p.song.Warnings, types.Warning{
			Stage:   stage,
			Message: msg,
			Offset:  offset,
		})
	}
	return nil
}

func (p *parser) invalid(what string, offset int64, format string, args ...any) error {
	return &types.Error{
		Kind:   types.KindInvalidData,
		What:   what,
		Offset: offset,
		Reason: fmt.Sprintf(format, args...),
	}
}
