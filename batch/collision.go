package batch

import (
	"fmt"
	"runtime"
	"strings"
)

// caseInsensitiveFS reports whether destinations differing only in case
// name the same file on the default filesystems of this platform.
var caseInsensitiveFS = runtime.GOOS == "darwin" || runtime.GOOS == "windows"

// CollisionError is recorded for a source whose destination is already
// claimed by an earlier source in the same batch.
type CollisionError struct {
	Path   string
	Output string
	Owner  string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("output %s for %s already claimed by %s", e.Output, e.Path, e.Owner)
}

// findCollisions maps batch indexes that lose a destination to their error.
// The first path in batch order keeps the destination. With foldCase set,
// destinations are compared case-insensitively.
func findCollisions(paths []ImagePath, outputFor func(string) string, foldCase bool) map[int]*CollisionError {
	owners := make(map[string]string, len(paths))
	collisions := make(map[int]*CollisionError)

	for i, p := range paths {
		out := outputFor(p.Path)
		key := out
		if foldCase {
			key = strings.ToLower(out)
		}
		owner, taken := owners[key]
		if !taken {
			owners[key] = p.Path
			continue
		}
		collisions[i] = &CollisionError{Path: p.Path, Output: out, Owner: owner}
	}
	return collisions
}
