package library

import (
	"context"
	"fmt"
	"go.uber.org/zap"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const fileScheme = "file"

//Localizer materializes absolute references in a process local workspace
type Localizer struct {
	Workspace string
	fetchers  map[string]Fetcher
	fallback  Fetcher
	Logger    *zap.Logger
}

//Localize fetches source#alias reference into workspace, archives are unpacked into a directory named after alias
func (l *Localizer) Localize(ctx context.Context, reference string) (string, error) {
	source, _ := ParseName(reference)
	name, err := LocalName(reference)
	if err != nil {
		return "", &ArtifactUnpackFailure{Source: source, Err: err}
	}
	dest, err := entryPath(l.Workspace, name)
	if err != nil || dest == filepath.Clean(l.Workspace) {
		return "", &ArtifactUnpackFailure{Source: source, Err: fmt.Errorf("local name %q escapes workspace", name)}
	}
	URL, err := resolveURL(source)
	if err != nil {
		return "", &ArtifactUnpackFailure{Source: source, Err: err}
	}
	if err = os.MkdirAll(l.Workspace, dirMode); err != nil {
		return "", &ArtifactUnpackFailure{Source: source, Err: err}
	}
	fetcher := l.fetcher(URL)
	isDir, err := fetcher.IsDir(ctx, URL)
	if err != nil {
		return "", &ArtifactUnpackFailure{Source: source, Err: err}
	}
	if isDir || strings.HasSuffix(name, LibraryExtension) {
		l.Logger.Info("Fetching native library", zap.String("source", URL), zap.String("dest", dest), zap.Bool("dir", isDir))
		if err = os.RemoveAll(dest); err == nil {
			err = fetcher.Fetch(ctx, URL, dest)
		}
		if err != nil {
			return "", &ArtifactUnpackFailure{Source: source, Err: err}
		}
		return dest, nil
	}
	if err = l.unpack(ctx, fetcher, URL, dest); err != nil {
		return "", &ArtifactUnpackFailure{Source: source, Err: err}
	}
	return dest, nil
}

func (l *Localizer) unpack(ctx context.Context, fetcher Fetcher, URL, dest string) error {
	tempDir, err := os.MkdirTemp("", "nativeudf-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tempDir)
	archive := filepath.Join(tempDir, archiveName(URL))
	l.Logger.Info("Fetching native library archive", zap.String("source", URL), zap.String("dest", dest))
	if err = fetcher.Fetch(ctx, URL, archive); err != nil {
		return err
	}
	return Unpack(archive, dest, l.Logger)
}

func (l *Localizer) fetcher(URL string) Fetcher {
	if parsed, err := url.Parse(URL); err == nil {
		if fetcher, ok := l.fetchers[strings.ToLower(parsed.Scheme)]; ok {
			return fetcher
		}
	}
	return l.fallback
}

//Register registers scheme specific fetcher
func (l *Localizer) Register(scheme string, fetcher Fetcher) {
	l.fetchers[strings.ToLower(scheme)] = fetcher
}

//resolveURL returns source if it has a scheme, otherwise file URL of absolute source path
func resolveURL(source string) (string, error) {
	if parsed, err := url.Parse(source); err == nil && len(parsed.Scheme) > 1 {
		return source, nil
	}
	location, err := filepath.Abs(source)
	if err != nil {
		return "", err
	}
	return fileScheme + "://" + filepath.ToSlash(location), nil
}

func archiveName(URL string) string {
	if parsed, err := url.Parse(URL); err == nil && parsed.Path != "" {
		return path.Base(parsed.Path)
	}
	return path.Base(URL)
}

//NewLocalizer creates localizer, fallback handles schemes without registered fetcher
func NewLocalizer(workspace string, fallback Fetcher) *Localizer {
	if fallback == nil {
		fallback = NewStorageFetcher(nil)
	}
	return &Localizer{
		Workspace: workspace,
		fetchers:  map[string]Fetcher{},
		fallback:  fallback,
		Logger:    zap.NewNop(),
	}
}
