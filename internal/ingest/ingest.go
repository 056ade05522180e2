// Package ingest resolves the input specs a jsonai invocation names (files,
// directories, globs, or stdin), parses each into a jsonval.Value tree, and
// shreds it into Records with process-wide, deterministically assigned doc
// IDs (spec §4.1, §5). Input resolution and the directory walk are
// sequential; the resolved files are then read and shredded concurrently up
// to a fixed worker count.
package ingest

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/jsonai/jsonai/internal/core"
	"github.com/jsonai/jsonai/internal/jsonval"
	"github.com/jsonai/jsonai/internal/record"
	"github.com/jsonai/jsonai/internal/shred"
)

// FileResult holds the outcome of shredding one input file. Err is non-nil
// when the file could not be read or parsed; Records is nil in that case.
type FileResult struct {
	Path    string
	Records []*record.Record
	Err     error
}

// Result is the full outcome of an Ingest call.
type Result struct {
	Files []FileResult

	// Records is the concatenation of every successfully shredded file's
	// records, in canonical order (file path sort, then each file's own
	// pre-order), with DocID assigned 0..n-1 in that order. This ordering
	// is fixed regardless of how much read/parse parallelism ran, so that
	// doc_id is a pure function of input content and spec's Ordering
	// guarantee (spec §5) holds.
	Records []*record.Record
}

// Options configures an Ingest call.
type Options struct {
	// Concurrency bounds parallel file reads/parses. Defaults to
	// runtime.NumCPU() when <= 0.
	Concurrency int

	// Stdin is read from when present, overriding file-based specs logic
	// for the "-" sentinel. Defaults to os.Stdin.
	Stdin io.Reader

	Logger *slog.Logger
}

// Ingest resolves specs (file paths, directories, glob patterns, or the "-"
// stdin sentinel) into a flat list of JSON input files, reads and shreds
// each with bounded parallelism, and returns the combined, doc_id-assigned
// Result.
func Ingest(ctx context.Context, specs []string, opts Options) (*Result, error) {
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.NumCPU()
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	paths, readStdin, err := resolveInputs(specs)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 && !readStdin {
		return nil, core.NewInputError("no input files matched", nil)
	}

	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			recs, err := readAndShred(p, func() (io.Reader, error) {
				f, err := os.Open(p)
				if err != nil {
					return nil, err
				}
				return f, nil
			}, logger)
			results[i] = FileResult{Path: p, Records: recs, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, core.NewInputError("ingest cancelled", err)
	}

	if readStdin {
		recs, err := readAndShred(core.StdinSource, func() (io.Reader, error) {
			return opts.Stdin, nil
		}, logger)
		results = append(results, FileResult{Path: core.StdinSource, Records: recs, Err: err})
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	var all []*record.Record
	for _, r := range results {
		all = append(all, r.Records...)
	}
	for i, rec := range all {
		rec.DocID = int64(i)
	}

	return &Result{Files: results, Records: all}, nil
}

func readAndShred(path string, open func() (io.Reader, error), logger *slog.Logger) ([]*record.Record, error) {
	rd, err := open()
	if err != nil {
		return nil, core.NewInputError(fmt.Sprintf("opening %s", path), err)
	}
	if closer, ok := rd.(io.Closer); ok && path != core.StdinSource {
		defer closer.Close()
	}

	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, core.NewInputError(fmt.Sprintf("reading %s", path), err)
	}

	for _, dup := range findDuplicateKeys(data) {
		logger.Warn("duplicate object key, last value wins", "file", path, "pointer", dup)
	}

	v, err := jsonval.Parse(data)
	if err != nil {
		return nil, core.NewParseError(fmt.Sprintf("parsing %s", path), err)
	}

	return shred.Shred(v, path), nil
}

// resolveInputs expands specs into a sorted, de-duplicated list of concrete
// file paths, plus whether stdin ("-") was requested. Each spec is treated,
// in order: "-" as stdin; a spec containing glob metacharacters is expanded
// with doublestar; a directory is walked recursively for "*.json" files
// (symlink loops are detected and skipped); anything else is a literal file
// path.
func resolveInputs(specs []string) (paths []string, readStdin bool, err error) {
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, spec := range specs {
		if spec == core.StdinSource {
			readStdin = true
			continue
		}

		if doublestar.ValidatePattern(spec) && hasGlobMeta(spec) {
			matches, gerr := doublestar.FilepathGlob(spec)
			if gerr != nil {
				return nil, false, core.NewInputError(fmt.Sprintf("expanding glob %s", spec), gerr)
			}
			if len(matches) == 0 {
				return nil, false, core.NewInputError(fmt.Sprintf("glob %s matched no files", spec), nil)
			}
			for _, m := range matches {
				add(m)
			}
			continue
		}

		info, statErr := os.Stat(spec)
		if statErr != nil {
			return nil, false, core.NewInputError(fmt.Sprintf("input %s", spec), statErr)
		}
		if info.IsDir() {
			found, werr := walkDir(spec)
			if werr != nil {
				return nil, false, werr
			}
			for _, f := range found {
				add(f)
			}
			continue
		}
		add(spec)
	}

	sort.Strings(paths)
	return paths, readStdin, nil
}

func hasGlobMeta(s string) bool {
	for _, r := range s {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

// walkDir recursively finds *.json files under root, skipping symlink
// loops and dangling symlinks.
func walkDir(root string) ([]string, error) {
	resolver := newSymlinkResolver()
	var out []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return fs.SkipDir
			}
			return nil
		}

		absPath := path
		if d.Type()&os.ModeSymlink != 0 {
			real, isLoop, rerr := resolver.resolve(path)
			if rerr != nil || isLoop {
				return nil
			}
			resolver.markVisited(real)
			absPath = real
		}

		if filepath.Ext(path) != ".json" {
			return nil
		}
		out = append(out, absPath)
		return nil
	})
	if err != nil {
		return nil, core.NewInputError(fmt.Sprintf("walking %s", root), err)
	}
	return out, nil
}
