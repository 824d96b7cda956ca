package library

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"go.uber.org/zap"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	dirMode  = 0o755
	fileMode = 0o644
)

//Unpack clears dest and extracts archive into it. Supported formats are zip, jar, tar, tar.gz and tgz;
//any other file is copied into dest unchanged.
func Unpack(archive, dest string, logger *zap.Logger) error {
	if err := os.RemoveAll(dest); err != nil {
		return fmt.Errorf("failed to clear %v: %w", dest, err)
	}
	if err := os.MkdirAll(dest, dirMode); err != nil {
		return fmt.Errorf("failed to create %v: %w", dest, err)
	}
	name := strings.ToLower(filepath.Base(archive))
	switch {
	case strings.HasSuffix(name, ".zip"), strings.HasSuffix(name, ".jar"):
		return unzip(archive, dest)
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		return untar(archive, dest, true)
	case strings.HasSuffix(name, ".tar"):
		return untar(archive, dest, false)
	}
	logger.Warn("Unknown archive format, copying as is", zap.String("archive", archive), zap.String("dest", dest))
	return copyFile(archive, filepath.Join(dest, filepath.Base(archive)), fileMode)
}

func untar(archive, dest string, compressed bool) error {
	f, err := os.Open(archive)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()
	var reader io.Reader = f
	if compressed {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("creating gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}
	tr := tar.NewReader(reader)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading tar entry: %w", err)
		}
		target, err := entryPath(dest, hdr.Name)
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err = os.MkdirAll(target, dirMode); err != nil {
				return err
			}
		case tar.TypeReg:
			if err = writeFile(target, tr, os.FileMode(hdr.Mode).Perm()); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err = symlink(dest, target, hdr.Linkname); err != nil {
				return err
			}
		}
	}
}

func unzip(archive, dest string) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("opening zip archive: %w", err)
	}
	defer r.Close()
	for _, f := range r.File {
		target, err := entryPath(dest, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err = os.MkdirAll(target, dirMode); err != nil {
				return err
			}
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("opening zip entry %v: %w", f.Name, err)
		}
		err = writeFile(target, rc, f.Mode().Perm())
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

//entryPath returns archive entry location, rejecting entries escaping dest
func entryPath(dest, name string) (string, error) {
	target := filepath.Join(dest, name)
	if target != dest && !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
		return "", fmt.Errorf("illegal archive entry: %v", name)
	}
	return target, nil
}

func symlink(dest, target, linkName string) error {
	resolved := linkName
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(filepath.Dir(target), linkName)
	}
	if _, err := entryPath(dest, mustRel(dest, resolved)); err != nil || filepath.IsAbs(linkName) {
		return fmt.Errorf("illegal archive link: %v -> %v", target, linkName)
	}
	if err := os.MkdirAll(filepath.Dir(target), dirMode); err != nil {
		return err
	}
	return os.Symlink(linkName, target)
}

func mustRel(base, location string) string {
	rel, err := filepath.Rel(base, location)
	if err != nil {
		return location
	}
	return rel
}

func writeFile(target string, reader io.Reader, mode os.FileMode) error {
	if mode == 0 {
		mode = fileMode
	}
	if err := os.MkdirAll(filepath.Dir(target), dirMode); err != nil {
		return err
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("creating %v: %w", target, err)
	}
	if _, err = io.Copy(out, reader); err != nil {
		out.Close()
		return fmt.Errorf("extracting %v: %w", target, err)
	}
	return out.Close()
}

func copyFile(source, target string, mode os.FileMode) error {
	f, err := os.Open(source)
	if err != nil {
		return err
	}
	defer f.Close()
	return writeFile(target, f, mode)
}
