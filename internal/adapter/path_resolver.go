package adapter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/mazrean/hashfiles/internal/domain"
)

// globMeta lists the characters that make an argument a glob pattern.
const globMeta = "*?[]{}"

// GlobResolver expands glob patterns into regular files, or reads one path per
// line from its input when no pattern is supplied.
type GlobResolver struct {
	stdin         io.Reader
	logger        domain.DebugLogger
	caseSensitive bool
}

// NewGlobResolver creates a GlobResolver. stdin is only read when Resolve is
// called without patterns.
func NewGlobResolver(caseSensitive bool, stdin io.Reader, logger domain.DebugLogger) *GlobResolver {
	return &GlobResolver{
		stdin:         stdin,
		logger:        logger,
		caseSensitive: caseSensitive,
	}
}

// Resolve implements port.PathResolver.
// The result keeps the first occurrence of each path, in pattern order.
func (r *GlobResolver) Resolve(ctx context.Context, patterns []string) ([]string, error) {
	var paths []string
	if len(patterns) == 0 {
		r.logger.Verbose("No path specified, reading from stdin")
		lines, err := r.readStdin(ctx)
		if err != nil {
			return nil, err
		}
		paths = lines
	} else {
		for _, pattern := range patterns {
			matches, err := r.expand(ctx, pattern)
			if err != nil {
				return nil, err
			}
			paths = append(paths, matches...)
		}
	}

	return dedupe(paths), nil
}

func (r *GlobResolver) readStdin(ctx context.Context) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r.stdin)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if isRegularFile(line) {
			lines = append(lines, line)
		} else {
			r.logger.Verbose("Not a file: %s", line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read paths from stdin: %w", err)
	}
	return lines, nil
}

func (r *GlobResolver) expand(ctx context.Context, pattern string) ([]string, error) {
	if !strings.ContainsAny(pattern, globMeta) {
		return r.literal(pattern)
	}

	matches, err := r.walkGlob(ctx, pattern)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 && isRegularFile(pattern) {
		// File names may legitimately contain glob characters.
		return []string{pattern}, nil
	}
	return matches, nil
}

func (r *GlobResolver) literal(path string) ([]string, error) {
	info, err := os.Stat(path)
	switch {
	case err != nil:
		return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, path)
	case info.IsDir():
		r.logger.Verbose("Ignoring directory: %s", path)
		return nil, nil
	case !info.Mode().IsRegular():
		r.logger.Verbose("Not a file: %s", path)
		return nil, nil
	}
	return []string{path}, nil
}

func (r *GlobResolver) walkGlob(ctx context.Context, pattern string) ([]string, error) {
	cleaned := filepath.ToSlash(filepath.Clean(pattern))
	matchPattern := cleaned
	if !r.caseSensitive {
		matchPattern = strings.ToLower(cleaned)
	}

	globs := make([]glob.Glob, 0, 1)
	for _, variant := range superDirVariants(matchPattern) {
		g, err := glob.Compile(variant, '/')
		if err != nil {
			return nil, fmt.Errorf("%w: invalid glob pattern %q: %w", domain.ErrInvalidConfig, pattern, err)
		}
		globs = append(globs, g)
	}

	root := filepath.FromSlash(globRoot(cleaned))
	if !r.caseSensitive {
		root = foldPath(root)
	}
	recursive := strings.Contains(cleaned, "**")
	maxDepth := strings.Count(cleaned, "/")

	var matches []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			// Unreadable entries are skipped like non-matching ones.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		slashPath := filepath.ToSlash(path)
		if d.IsDir() {
			if path != root && !recursive && strings.Count(slashPath, "/") >= maxDepth {
				return fs.SkipDir
			}
			return nil
		}

		candidate := slashPath
		if !r.caseSensitive {
			candidate = strings.ToLower(candidate)
		}
		if matchAny(globs, candidate) && isRegularFile(path) {
			matches = append(matches, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return matches, nil
}

// superDirVariants expands every "**/" path component into the variants with and
// without it, so that "**/" also matches zero directories.
func superDirVariants(pattern string) []string {
	for i := 0; ; {
		idx := strings.Index(pattern[i:], "**/")
		if idx < 0 {
			return []string{pattern}
		}
		idx += i
		if idx > 0 && pattern[idx-1] != '/' {
			i = idx + len("**/")
			continue
		}

		withDirs := superDirVariants(pattern[idx+len("**/"):])
		variants := make([]string, 0, 2*len(withDirs))
		for _, rest := range withDirs {
			variants = append(variants, pattern[:idx]+"**/"+rest, pattern[:idx]+rest)
		}
		return variants
	}
}

func matchAny(globs []glob.Glob, s string) bool {
	for _, g := range globs {
		if g.Match(s) {
			return true
		}
	}
	return false
}

// foldPath maps each component of path that does not exist as written to a
// directory entry with the same name under case folding. Components without
// such an entry are kept unchanged.
func foldPath(path string) string {
	if _, err := os.Lstat(path); err == nil {
		return path
	}

	parts := strings.Split(filepath.ToSlash(path), "/")
	resolved := ""
	for i, part := range parts {
		if i == 0 && part == "" {
			resolved = "/"
			continue
		}

		next := joinSlash(resolved, part)
		if _, err := os.Lstat(filepath.FromSlash(next)); err != nil {
			if name, ok := foldEntry(resolved, part); ok {
				next = joinSlash(resolved, name)
			}
		}
		resolved = next
	}
	return filepath.FromSlash(resolved)
}

func foldEntry(dir, name string) (string, bool) {
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(filepath.FromSlash(dir))
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if strings.EqualFold(e.Name(), name) {
			return e.Name(), true
		}
	}
	return "", false
}

func joinSlash(dir, name string) string {
	switch dir {
	case "":
		return name
	case "/":
		return "/" + name
	default:
		return dir + "/" + name
	}
}

// globRoot returns the leading directory of pattern that contains no glob
// characters, or "." when the first component is already a pattern.
func globRoot(pattern string) string {
	parts := strings.Split(pattern, "/")
	var fixed []string
	for _, part := range parts[:len(parts)-1] {
		if strings.ContainsAny(part, globMeta) {
			break
		}
		fixed = append(fixed, part)
	}

	switch {
	case len(fixed) == 0:
		return "."
	case len(fixed) == 1 && fixed[0] == "":
		return "/"
	default:
		return strings.Join(fixed, "/")
	}
}

func isRegularFile(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func dedupe(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
