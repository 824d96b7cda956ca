package library

import (
	"context"
	"fmt"
	"github.com/viant/afs"
	"io"
	"os"
	"path/filepath"
	"sync"
)

//Fetcher retrieves a remote file or directory tree to local filesystem
type Fetcher interface {
	//IsDir returns true if URL denotes a directory
	IsDir(ctx context.Context, URL string) (bool, error)
	//Fetch copies URL content into dest; directories are copied recursively
	Fetch(ctx context.Context, URL string, dest string) error
}

type storageFetcher struct {
	fs afs.Service
}

func (f *storageFetcher) IsDir(ctx context.Context, URL string) (bool, error) {
	object, err := f.fs.Object(ctx, URL)
	if err != nil {
		return false, err
	}
	return object.IsDir(), nil
}

func (f *storageFetcher) Fetch(ctx context.Context, URL string, dest string) error {
	object, err := f.fs.Object(ctx, URL)
	if err != nil {
		return err
	}
	if !object.IsDir() {
		reader, err := f.fs.OpenURL(ctx, URL)
		if err != nil {
			return err
		}
		defer reader.Close()
		return writeFile(dest, reader, object.Mode().Perm())
	}
	if err = os.MkdirAll(dest, dirMode); err != nil {
		return err
	}
	return f.fs.Walk(ctx, URL, func(ctx context.Context, baseURL string, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		target := filepath.Join(dest, parent, info.Name())
		if info.IsDir() {
			return true, os.MkdirAll(target, dirMode)
		}
		if err := writeFile(target, reader, info.Mode().Perm()); err != nil {
			return false, fmt.Errorf("failed to copy %v/%v: %w", parent, info.Name(), err)
		}
		return true, nil
	})
}

//NewStorageFetcher creates afs backed fetcher (file, mem, http and other registered schemes)
func NewStorageFetcher(fs afs.Service) Fetcher {
	if fs == nil {
		fs = afs.New()
	}
	return &storageFetcher{fs: fs}
}

type lazyFetcher struct {
	once    sync.Once
	fetcher Fetcher
	err     error
	newFn   func(ctx context.Context) (Fetcher, error)
}

func (f *lazyFetcher) init(ctx context.Context) error {
	f.once.Do(func() {
		f.fetcher, f.err = f.newFn(ctx)
	})
	return f.err
}

func (f *lazyFetcher) IsDir(ctx context.Context, URL string) (bool, error) {
	if err := f.init(ctx); err != nil {
		return false, err
	}
	return f.fetcher.IsDir(ctx, URL)
}

func (f *lazyFetcher) Fetch(ctx context.Context, URL string, dest string) error {
	if err := f.init(ctx); err != nil {
		return err
	}
	return f.fetcher.Fetch(ctx, URL, dest)
}

//NewLazyFetcher creates fetcher initialised on first use
func NewLazyFetcher(newFn func(ctx context.Context) (Fetcher, error)) Fetcher {
	return &lazyFetcher{newFn: newFn}
}
