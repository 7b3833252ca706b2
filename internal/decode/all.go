package decode

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of decoding one file: exactly one of Batch and Err is set.
type Result struct {
	Path  string
	Batch *Batch
	Err   error // a *FileError
}

// DecodeAll decodes every path concurrently, at most workers at a time
// (unbounded when workers <= 0), and waits until each one has succeeded or
// failed. Results come back in the order of paths. A failing file never stops
// the others.
func (d *Decoder) DecodeAll(ctx context.Context, paths []string, workers int) []Result {
	results := make([]Result, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			b, err := d.Decode(gctx, p)
			if err != nil {
				d.log.Warn("file failed to decode", zap.String("file", p), zap.Error(err))
				results[i] = Result{Path: p, Err: &FileError{Path: p, Err: err}}
				return nil
			}
			results[i] = Result{Path: p, Batch: b}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
