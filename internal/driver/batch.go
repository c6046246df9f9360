package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"tschema/internal/diag"
	"tschema/internal/schema"
)

// ConvertFiles converts several entry files (or glob patterns) and merges
// the batch mappings. Entries are converted concurrently; each individual
// conversion stays single-threaded and pure, so the fan-out is safe for
// disjoint inputs. The merged mapping keeps entry order, and the first
// occurrence of a type name wins.
func ConvertFiles(ctx context.Context, entries []string, opts Options) (*BatchResult, error) {
	files, err := ExpandEntries(entries, opts.BaseDir)
	if err != nil {
		return nil, err
	}

	results := make([]*BatchResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res, err := ConvertAllFromFile(file, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := schema.NewMap()
	bag := diag.NewBag()
	for _, res := range results {
		if res == nil {
			continue
		}
		for _, key := range res.Schemas.Keys() {
			if merged.Has(key) {
				continue
			}
			s, _ := res.Schemas.Get(key)
			merged.Set(key, s)
		}
		for _, d := range res.Bag.Items() {
			bag.Add(d)
		}
	}
	return &BatchResult{Schemas: merged, Bag: bag}, nil
}
