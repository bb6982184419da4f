package parser

import (
	"context"
	"os"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome for one file of DecodeFiles. Exactly one of
// Summary and Err is set.
type Result struct {
	Path    string
	Summary *Summary
	Err     error
}

// DecodeFiles reads and decodes paths in parallel, one goroutine per CPU.
// Results are in input order. A file that fails to read or decode only
// sets its own Result.Err; the returned error is non-nil only when ctx is
// done first.
func DecodeFiles(ctx context.Context, p Parser, paths ...string) ([]Result, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]Result, len(paths))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			results[i] = decodeFile(p, path)
			return nil
		})
	}

	if err := g.Wait(); nil != err {
		return nil, err
	}
	return results, nil
}

func decodeFile(p Parser, path string) Result {
	data, err := os.ReadFile(path)
	if nil != err {
		return Result{Path: path, Err: errors.Wrap(err, "unable to read chart")}
	}
	summary, err := p.Parse(string(data))
	if nil != err {
		return Result{Path: path, Err: errors.Wrapf(err, "unable to decode %s", path)}
	}
	summary.Path = path
	return Result{Path: path, Summary: summary}
}
