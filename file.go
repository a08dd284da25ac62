package tablature

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// OpenFile opens the file at path and returns a session over it.
//
// Always call Close when done to release the file:
//
//	s, err := tablature.OpenFile("song.gp4")
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//	song, err := s.Load(ctx)
func OpenFile(path string, opts ...Option) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	s := Open(f, opts...)
	s.closer = f
	return s, nil
}

// LoadFile opens, decodes and closes the file at path.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//
//	song, err := tablature.LoadFile(ctx, "song.gp4")
//	if err != nil {
//		return err
//	}
//	fmt.Printf("%s - %s\n", song.Artist, song.Title)
func LoadFile(ctx context.Context, path string, opts ...Option) (*Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Kind: KindCancelled, Reason: path, Err: err}
	}
	s, err := OpenFile(path, opts...)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.Load(ctx)
}

// LoadMany decodes multiple files concurrently.
//
// Files are decoded in parallel using up to runtime.NumCPU() goroutines,
// each in its own session with its own allocation budget. Results are
// returned in the same order as the input paths. The first failure
// cancels the remaining loads and is returned.
//
// Example:
//
//	songs, err := tablature.LoadMany(ctx, paths)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, s := range songs {
//		fmt.Printf("%s: %d measures\n", s.Title, len(s.Measures))
//	}
func LoadMany(ctx context.Context, paths []string, opts ...Option) ([]*Song, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*Song, len(paths))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			song, err := LoadFile(ctx, path, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = song
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
