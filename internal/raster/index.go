package raster

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
)

// codePattern matches the filename convention "..._#<code>.<ext>" used for
// downloaded geoglyph rasters.
var codePattern = regexp.MustCompile(`_#([^#/.]+)\.(?:png|jpe?g)$`)

// MissingImageError reports that no raster matches an annotation identifier.
// Callers log it and skip the item; it is never fatal.
type MissingImageError struct {
	Code string
}

func (e *MissingImageError) Error() string {
	return fmt.Sprintf("no image found for code %q", e.Code)
}

// Index maps geoglyph codes to raster file paths. It is built once by
// scanning a directory tree and queried by exact key, replacing the original
// substring scan over filenames.
type Index struct {
	paths map[string]string
}

// BuildIndex walks root and records every image whose name carries a
// "_#<code>" tag. Later duplicates of a code win, matching a re-download
// overwriting an earlier file.
func BuildIndex(root string) (*Index, error) {
	idx := &Index{paths: make(map[string]string)}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if m := codePattern.FindStringSubmatch(d.Name()); m != nil {
			idx.paths[m[1]] = path
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return idx, nil
}

// Lookup returns the raster path for code, or *MissingImageError.
func (idx *Index) Lookup(code string) (string, error) {
	p, ok := idx.paths[code]
	if !ok {
		return "", &MissingImageError{Code: code}
	}
	return p, nil
}

// Len returns the number of indexed rasters.
func (idx *Index) Len() int { return len(idx.paths) }
