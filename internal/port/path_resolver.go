package port

import "context"

// PathResolver turns user supplied patterns into the ordered list of regular files to hash.
// When patterns is empty, implementations read paths from their configured input.
type PathResolver interface {
	Resolve(ctx context.Context, patterns []string) ([]string, error)
}
