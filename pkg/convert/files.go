package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog/log"

	"github.com/urmzd/sdfwot/pkg/document"
)

// FileResult describes one converted file.
type FileResult struct {
	Input  string
	Output string
	Result *Result
	Err    error
}

// OutputPath names the output file for in. An empty out places the file
// next to in, an existing directory receives a file named after in, and
// anything else is used as given.
func OutputPath(in, out string, to document.Kind) string {
	if out == "" {
		return document.SwapSuffix(in, to)
	}
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return filepath.Join(out, filepath.Base(document.SwapSuffix(in, to)))
	}
	return out
}

// ConvertFile converts the file at in and writes the result. The source
// kind is taken from the file suffix. An empty to selects the default
// target.
func (s *Service) ConvertFile(ctx context.Context, in, out string, to document.Kind) (*FileResult, error) {
	from, err := document.KindFromPath(in)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(in)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", in, err)
	}

	res, err := s.Convert(ctx, Request{From: from, To: to, Input: data, Source: in})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", in, err)
	}

	path := OutputPath(in, out, res.To)
	if sameFile(path, in) {
		return nil, fmt.Errorf("%w: output %s would overwrite the input", document.ErrWrite, path)
	}
	if err := os.WriteFile(path, res.Output, 0o644); err != nil {
		return nil, fmt.Errorf("%w: %w", document.ErrWrite, err)
	}

	log.Info().
		Str("input", in).
		Str("output", path).
		Str("from", string(res.From)).
		Str("to", string(res.To)).
		Msg("Converted file")

	return &FileResult{Input: in, Output: path, Result: res}, nil
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// Glob expands each pattern, supporting "**", and returns the matching
// files without duplicates in pattern order.
func Glob(patterns ...string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			abs, err := filepath.Abs(m)
			if err != nil {
				abs = m
			}
			if seen[abs] {
				continue
			}
			seen[abs] = true
			files = append(files, m)
		}
	}
	return files, nil
}

// ConvertGlob converts every file matched by patterns into outDir, or next
// to each input when outDir is empty. A failing file does not stop the
// run; its error is reported in the returned FileResult.
func (s *Service) ConvertGlob(ctx context.Context, outDir string, to document.Kind, patterns ...string) ([]FileResult, error) {
	files, err := Glob(patterns...)
	if err != nil {
		return nil, err
	}
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	results := make([]FileResult, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := s.ConvertFile(ctx, f, outDir, to)
		if err != nil {
			log.Warn().Err(err).Str("input", f).Msg("Skipping file")
			results = append(results, FileResult{Input: f, Err: err})
			continue
		}
		results = append(results, *res)
	}
	return results, nil
}
