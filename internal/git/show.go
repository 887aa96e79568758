package git

import (
	"context"
	"strings"
)

// Show returns the content of path at revision rev, like `git show rev:path`.
// A relative path is resolved against dir the way git does for "./" prefixed paths.
func Show(ctx context.Context, dir, rev, path string) (string, error) {
	if !strings.HasPrefix(path, "/") && !strings.HasPrefix(path, "./") && !strings.HasPrefix(path, "../") {
		path = "./" + path
	}
	out, err := run(ctx, dir, "show", rev+":"+path)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
