package library

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

type archiveEntry struct {
	name string
	body string
	link string
}

//chdir switches working directory for the test duration
func chdir(t *testing.T, dir string) {
	wd, err := os.Getwd()
	require.Nil(t, err)
	require.Nil(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})
}

func writeFiles(t *testing.T, baseDir string, files ...string) {
	for _, name := range files {
		location := filepath.Join(baseDir, name)
		require.Nil(t, os.MkdirAll(filepath.Dir(location), 0o755))
		require.Nil(t, os.WriteFile(location, []byte(name), 0o644))
	}
}

func writeTarGz(t *testing.T, location string, entries ...archiveEntry) {
	f, err := os.Create(location)
	require.Nil(t, err)
	defer f.Close()
	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	for _, entry := range entries {
		header := &tar.Header{Name: entry.name, Mode: 0o644, Size: int64(len(entry.body)), Typeflag: tar.TypeReg}
		if entry.link != "" {
			header = &tar.Header{Name: entry.name, Linkname: entry.link, Typeflag: tar.TypeSymlink}
		}
		require.Nil(t, tw.WriteHeader(header))
		if entry.link == "" {
			_, err = tw.Write([]byte(entry.body))
			require.Nil(t, err)
		}
	}
	require.Nil(t, tw.Close())
	require.Nil(t, gz.Close())
}

func writeZip(t *testing.T, location string, entries ...archiveEntry) {
	f, err := os.Create(location)
	require.Nil(t, err)
	defer f.Close()
	zw := zip.NewWriter(f)
	for _, entry := range entries {
		w, err := zw.Create(entry.name)
		require.Nil(t, err)
		_, err = w.Write([]byte(entry.body))
		require.Nil(t, err)
	}
	require.Nil(t, zw.Close())
}
