package utils

import (
	"net/url"
	"path/filepath"
)

// ResolveLocation resolves a reports location relative to baseDir. Absolute
// paths, URLs and the empty string are returned unchanged.
func ResolveLocation(location, baseDir string) string {
	if location == "" || filepath.IsAbs(location) || isURL(location) {
		return location
	}
	return filepath.Join(baseDir, location)
}

func isURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}
