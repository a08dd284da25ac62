package tablature

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/simonhull/tablature/internal/gptest"
	"github.com/simonhull/tablature/internal/registry"
	"github.com/simonhull/tablature/internal/types"
)

func TestLoad_InternalDispatch(t *testing.T) {
	reg := registry.New()
	reg.Register(types.VersionGP406, reg.Fallback())

	s := Open(bytes.NewReader(gptest.MinimalStream()), withRegistry(reg))
	_, err := s.Load(context.Background())
	if !errors.Is(err, ErrInternalDispatch) {
		t.Fatalf("expected ErrInternalDispatch, got %v", err)
	}
}

func TestLoad_EmptyRegistry(t *testing.T) {
	s := Open(bytes.NewReader(gptest.MinimalStream()), withRegistry(registry.New()))
	_, err := s.Load(context.Background())
	if !errors.Is(err, ErrNotSupported) {
		t.Fatalf("expected ErrNotSupported, got %v", err)
	}
}

func TestDefaultOptions(t *testing.T) {
	o := applyOptions(nil)
	if o.maxAllocation != 1<<30 {
		t.Errorf("default budget = %d, want 1 GiB", o.maxAllocation)
	}
	if !o.decompress {
		t.Error("decompression should be enabled by default")
	}
	if o.strictParsing || o.ignoreWarnings {
		t.Error("strict parsing and ignore warnings should be off by default")
	}

	o = applyOptions([]Option{WithLogger(nil)})
	if o.logger == nil {
		t.Error("WithLogger(nil) must keep the default logger")
	}
}
