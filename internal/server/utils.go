package server

import (
	"fmt"
	"path"
	"strings"
)

// normalizeRequestPath normalizes the request path for cross-platform
// consistency. The result is always rooted at "/".
func normalizeRequestPath(rawPath string) string {
	if !strings.HasPrefix(rawPath, "/") {
		rawPath = "/" + rawPath
	}
	return path.Clean(rawPath)
}

// validateRequestPath rejects raw request paths that attempt to traverse
// outside the served root via ".." segments.
func validateRequestPath(rawPath string) error {
	for _, seg := range strings.Split(rawPath, "/") {
		if seg == ".." {
			return fmt.Errorf("path traversal attempt detected")
		}
	}
	return nil
}
