package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Dir reads report files from a local directory tree.
type Dir struct {
	root string
	fsys fs.FS
}

// NewDir returns a Source rooted at dir.
func NewDir(dir string) *Dir {
	return &Dir{root: dir, fsys: os.DirFS(dir)}
}

// Fetch reads name below the root. Names that escape the root are rejected.
func (d *Dir) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name = strings.TrimPrefix(name, "/")
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("invalid report path %q", name)
	}
	data, err := fs.ReadFile(d.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return decompress(name, data)
}

func (d *Dir) String() string {
	return d.root
}

var _ Source = (*Dir)(nil)
