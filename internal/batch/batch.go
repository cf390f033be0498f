// Package batch canonicalizes and digests whole directory trees with a
// bounded worker pool. Results come back in path-sorted order regardless
// of completion order, so batch output is itself deterministic.
package batch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"kanon/internal/adapter"
	"kanon/internal/canon"
	"kanon/internal/digest"
	"kanon/internal/encode"
	"kanon/internal/logging"
	"kanon/internal/store"
)

// Result is the outcome for one file. Err is recorded per file instead of
// aborting the run; a single malformed document must not sink the batch.
type Result struct {
	Path   string `json:"path"`
	Digest string `json:"digest,omitempty"`
	Bytes  int    `json:"bytes,omitempty"`
	Cached bool   `json:"cached"`
	Err    string `json:"error,omitempty"`
}

// Limits bounds document shape and size during a run. Zero values fall
// back to the package defaults.
type Limits struct {
	MaxDepth int
	MaxBytes int
}

// Runner digests every supported file under a root directory.
type Runner struct {
	Workers int
	Algo    string
	Limits  Limits
	Cache   *store.Store // optional
	Logger  *logging.Logger
}

// Run walks root, digests each .json/.yaml/.yml/.toml file and returns
// one Result per file in path order. The returned error covers the walk
// and cancellation only; per-file failures live in the results.
func (r *Runner) Run(ctx context.Context, root string) ([]Result, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Skip the tool's own state directory.
			if d.Name() == ".kanon" {
				return filepath.SkipDir
			}
			return nil
		}
		if adapter.Supported(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	workers := r.Workers
	if workers <= 0 {
		workers = 4
	}

	results := make([]Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = r.digestOne(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if r.Logger != nil {
		r.Logger.Info("Batch complete", map[string]any{
			"root":  root,
			"files": len(results),
		})
	}
	return results, nil
}

func (r *Runner) digestOne(path string) Result {
	d, cached, err := DigestFile(path, r.Algo, r.Limits, r.Cache)
	res := Result{Path: path, Digest: d.Digest, Bytes: d.Bytes, Cached: cached}
	if err != nil {
		res = Result{Path: path, Err: err.Error()}
		if r.Logger != nil {
			r.Logger.Warn("Skipping file", map[string]any{"path": path, "error": err.Error()})
		}
	}
	return res
}

// FileDigest is the digest of one canonicalized file.
type FileDigest struct {
	Digest string
	Bytes  int // size of the canonical entry-form encoding
}

// DigestFile canonicalizes one file and computes its content digest,
// consulting and filling cache when non-nil.
func DigestFile(path, algo string, limits Limits, cache *store.Store) (FileDigest, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileDigest{}, false, err
	}
	mtime := info.ModTime().UnixNano()

	if cache != nil {
		if d, ok, err := cache.Get(path, mtime, algo); err == nil && ok {
			return FileDigest{Digest: d}, true, nil
		}
	}

	format, err := adapter.DetectFormat(path)
	if err != nil {
		return FileDigest{}, false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return FileDigest{}, false, err
	}

	v, err := adapter.ParseLimited(data, format, limits.MaxBytes)
	if err != nil {
		return FileDigest{}, false, err
	}
	cv, err := canon.CanonicalizeWithLimit(v, limits.MaxDepth)
	if err != nil {
		return FileDigest{}, false, err
	}
	canonical, err := encode.Entries(cv)
	if err != nil {
		return FileDigest{}, false, err
	}
	d, err := digest.Compute(algo, canonical)
	if err != nil {
		return FileDigest{}, false, err
	}

	if cache != nil {
		// Cache failures are not fatal; the digest is already computed.
		_ = cache.Put(path, mtime, algo, d)
	}
	return FileDigest{Digest: d, Bytes: len(canonical)}, false, nil
}
