// Package localfs serves frame images from a directory in self-hosted mode.
package localfs

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	domainImage "github.com/photoframe/photoframe/domains/image"
)

// Source treats Root like a bucket. Keys are slash-separated paths relative
// to Root, so "public/a.jpg" maps to <Root>/public/a.jpg.
type Source struct {
	Root string
}

func NewSource(root string) *Source {
	return &Source{Root: root}
}

func (s *Source) List(ctx context.Context, prefix string) ([]domainImage.Object, error) {
	dir := filepath.Join(s.Root, filepath.FromSlash(prefix))
	var objects []domainImage.Object

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(s.Root, path)
		if err != nil {
			return err
		}
		objects = append(objects, domainImage.Object{Key: filepath.ToSlash(rel), Size: info.Size()})
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	return objects, nil
}

func (s *Source) Fetch(ctx context.Context, key string) (domainImage.Image, error) {
	root, err := os.OpenRoot(s.Root)
	if err != nil {
		return domainImage.Image{}, fmt.Errorf("failed to open %s: %w", s.Root, err)
	}
	defer root.Close()

	f, err := root.Open(filepath.FromSlash(key))
	if err != nil {
		return domainImage.Image{}, fmt.Errorf("failed to open %s: %w", key, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return domainImage.Image{}, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return domainImage.Image{Key: key, Data: data, ContentLength: int64(len(data))}, nil
}
