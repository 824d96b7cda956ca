package library

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//Expand returns location when it is a file, otherwise every regular file with extension found
//recursively under location. Symbolic links are followed, each real directory is visited once.
//A missing location fails with MissingLibraryError.
func Expand(location string, extension string) ([]string, error) {
	info, err := os.Stat(location)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &MissingLibraryError{Location: location}
		}
		return nil, fmt.Errorf("failed to expand %v: %w", location, err)
	}
	if !info.IsDir() {
		return []string{location}, nil
	}
	var result []string
	if err = walk(location, extension, map[string]bool{}, &result); err != nil {
		return nil, fmt.Errorf("failed to expand %v: %w", location, err)
	}
	return result, nil
}

func walk(dir string, extension string, visited map[string]bool, result *[]string) error {
	realPath, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return err
	}
	if visited[realPath] {
		return nil
	}
	visited[realPath] = true
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		candidate := filepath.Join(dir, entry.Name())
		info, err := os.Stat(candidate)
		if err != nil {
			if os.IsNotExist(err) { //dangling link
				continue
			}
			return err
		}
		if info.IsDir() {
			if err = walk(candidate, extension, visited, result); err != nil {
				return err
			}
			continue
		}
		if info.Mode().IsRegular() && strings.HasSuffix(entry.Name(), extension) {
			*result = append(*result, candidate)
		}
	}
	return nil
}
