package library

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	//LibraryExtension native library file extension
	LibraryExtension = ".so"
	aliasDelimiter   = '#'
	listDelimiter    = ","
)

//ParseName splits path#alias on the last delimiter, without alias the base name is used
func ParseName(name string) (string, string) {
	if index := strings.LastIndexByte(name, aliasDelimiter); index != -1 {
		return name[:index], name[index+1:]
	}
	return name, filepath.Base(name)
}

//Split splits comma separated references, blank items are skipped
func Split(list string) []string {
	var result []string
	for _, item := range strings.Split(list, listDelimiter) {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}

//Join joins paths with comma
func Join(paths []string) string {
	return strings.Join(paths, listDelimiter)
}

//LocalName returns workspace entry name for reference; names have to be a single path element
func LocalName(reference string) (string, error) {
	_, name := ParseName(reference)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid local name: %q", name)
	}
	return name, nil
}
